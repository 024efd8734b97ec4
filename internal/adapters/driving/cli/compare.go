package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

var (
	compareLevel string
	compareJSON  bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [original] [modified]",
	Short: "Compare two contract files",
	Long: `Uploads both files, runs the comparison pipeline synchronously, and
prints the summary and unified diff.

Levels:
  basic     text diff only
  detailed  adds formatting, date and visual comparison
  ai        adds semantic diff, grammar check and an AI summary`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareLevel, "level", "l", string(domain.LevelAI), "comparison level (basic, detailed, ai)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if comparisonService == nil {
		return errors.New("comparison service not configured")
	}

	level := domain.ComparisonLevel(compareLevel)
	if !level.IsValid() {
		return fmt.Errorf("invalid comparison level: %s", compareLevel)
	}

	ctx := context.Background()

	original, err := ingestFile(ctx, args[0])
	if err != nil {
		return err
	}
	modified, err := ingestFile(ctx, args[1])
	if err != nil {
		return err
	}

	result, err := comparisonService.Execute(ctx, original.ID, modified.ID, level)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if compareJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	printResult(cmd, original, modified, result)
	return nil
}

func ingestFile(ctx context.Context, path string) (*domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := documentService.Ingest(ctx, &domain.RawDocument{
		Filename: filepath.Base(path),
		URI:      path,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ingest %s: %w", path, err)
	}
	return doc, nil
}

func printResult(cmd *cobra.Command, original, modified *domain.Document, result *domain.Result) {
	cmd.Printf("Comparing %s -> %s\n\n", original.Filename, modified.Filename)

	if result.Summary != nil {
		cmd.Println(result.Summary.Text)
		cmd.Println()
		cmd.Printf("Differences: %d (%d additions, %d deletions, %d modifications)\n",
			result.Summary.Total, result.Summary.Additions,
			result.Summary.Deletions, result.Summary.Modifications)
		if result.Summary.High+result.Summary.Medium+result.Summary.Low > 0 {
			cmd.Printf("Importance: %d high, %d medium, %d low\n",
				result.Summary.High, result.Summary.Medium, result.Summary.Low)
		}
	}
	cmd.Printf("Similarity: %.1f%%\n", result.SimilarityScore*100)

	if result.SemanticNote != "" {
		cmd.Printf("\nNote: %s\n", result.SemanticNote)
	}

	if len(result.Semantic) > 0 {
		cmd.Println("\nSemantic findings:")
		for _, f := range result.Semantic {
			cmd.Printf("  - %q (similarity %.2f)\n", f.OriginalSentence, f.Similarity)
			if f.Note != "" {
				cmd.Printf("    %s\n", f.Note)
			}
		}
	}

	if result.Dates != nil && (len(result.Dates.Added) > 0 || len(result.Dates.Removed) > 0) {
		cmd.Println("\nDate changes:")
		for _, d := range result.Dates.Added {
			cmd.Printf("  + %s\n", d)
		}
		for _, d := range result.Dates.Removed {
			cmd.Printf("  - %s\n", d)
		}
	}

	if result.UnifiedDiff != "" {
		cmd.Println("\nUnified diff:")
		cmd.Println(result.UnifiedDiff)
	}
}
