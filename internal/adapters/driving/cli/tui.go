package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clauseworks/pactdiff/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [comparison-id]",
	Short: "Browse documents and comparisons in the terminal",
	Long: `Opens the interactive terminal UI. With a comparison ID, opens the
diff viewer for that comparison directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if comparisonService == nil {
		return errors.New("comparison service not configured")
	}

	app, err := tui.NewApp(tui.NewPorts(documentService, comparisonService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app = app.WithContext(cmd.Context())

	if len(args) == 1 {
		cmp, err := comparisonService.Status(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get comparison: %w", err)
		}
		app = app.WithComparison(*cmp)
	}

	return app.Run()
}
