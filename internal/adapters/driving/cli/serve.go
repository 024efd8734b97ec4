package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clauseworks/pactdiff/internal/adapters/driving/httpapi"
	"github.com/clauseworks/pactdiff/internal/connectors/inbox"
	"github.com/clauseworks/pactdiff/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the REST API, the background comparison worker, and the inbox
watcher when one is configured. Stops cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if comparisonService == nil {
		return errors.New("comparison service not configured")
	}

	settings := currentSettings()
	addr := serveAddr
	if addr == "" {
		addr = settings.API.Addr
	}

	server, err := httpapi.New(addr, documentService, comparisonService)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- comparisonService.Start(ctx)
	}()
	defer func() {
		if err := comparisonService.Stop(); err != nil {
			logger.Warn("stopping worker: %v", err)
		}
	}()

	var watcher *inbox.Watcher
	if settings.Inbox.Enabled {
		watcher = inbox.New(settings.Inbox.Dir, documentService)
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start inbox watcher: %w", err)
		}
		defer watcher.Stop()
		cmd.Printf("Watching inbox: %s\n", watcher.Dir())
	}

	cmd.Printf("Listening on %s\n", addr)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	select {
	case err := <-workerErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("worker error: %w", err)
		}
	default:
	}
	return nil
}
