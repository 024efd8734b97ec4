package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clauseworks/pactdiff/internal/report"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report [comparison-id]",
	Short: "Write an HTML report for a completed comparison",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if comparisonService == nil {
		return errors.New("comparison service not configured")
	}

	ctx := context.Background()
	cmp, err := comparisonService.Status(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get comparison: %w", err)
	}

	data := report.Data{Comparison: cmp}
	if documentService != nil {
		// Filenames in the report are best effort; IDs are shown otherwise.
		data.Original, _ = documentService.Get(ctx, cmp.OriginalDocumentID)
		data.Modified, _ = documentService.Get(ctx, cmp.ModifiedDocumentID)
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	if reportOut == "" {
		return renderer.Render(cmd.OutOrStdout(), data)
	}

	f, err := os.Create(reportOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := renderer.Render(f, data); err != nil {
		return err
	}
	cmd.Printf("Report written to %s\n", reportOut)
	return nil
}
