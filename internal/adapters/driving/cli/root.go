// Package cli provides the pactdiff command line interface.
// Commands are wired to core services through package-level driving
// ports set up after flag parsing, before a command runs.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clauseworks/pactdiff/internal/adapters/driven/ai"
	configfile "github.com/clauseworks/pactdiff/internal/adapters/driven/config/file"
	"github.com/clauseworks/pactdiff/internal/adapters/driven/storage/memory"
	"github.com/clauseworks/pactdiff/internal/adapters/driven/storage/sqlite"
	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
	"github.com/clauseworks/pactdiff/internal/core/services"
	"github.com/clauseworks/pactdiff/internal/logger"
	"github.com/clauseworks/pactdiff/internal/normalisers/docx"
	"github.com/clauseworks/pactdiff/internal/normalisers/image"
	"github.com/clauseworks/pactdiff/internal/normalisers/markdown"
	"github.com/clauseworks/pactdiff/internal/normalisers/pdf"
	"github.com/clauseworks/pactdiff/internal/normalisers/plaintext"
	"github.com/clauseworks/pactdiff/internal/normalisers/shell"
	"github.com/clauseworks/pactdiff/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verboseFlag bool
	dataDirFlag string
	memoryFlag  bool
)

// Package-level services used by the commands. Tests replace these with
// mocks; InitServices wires the real implementations.
var (
	documentService   driving.DocumentService
	comparisonService driving.ComparisonService
	settingsService   driving.SettingsService

	appSettings *domain.AppSettings
	sqliteStore *sqlite.Store
	aiServices  *ai.InitResult
)

var rootCmd = &cobra.Command{
	Use:   "pactdiff",
	Short: "Compare contract documents",
	Long: `pactdiff compares two versions of a contract document and reports
the differences, classified by how much they are likely to matter.

Documents are normalised from PDF, DOCX, image or plain text uploads.
Comparison runs at three levels: basic (text diff), detailed (adds
formatting, date and visual comparison) and ai (adds semantic diff,
grammar check, importance classification and an LLM summary).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if skipServiceInit || documentService != nil {
			return nil
		}
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initServices()
	},
}

// skipServiceInit disables real service wiring; tests set it and install
// mocks instead.
var skipServiceInit bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.pactdiff/data)")
	rootCmd.PersistentFlags().BoolVar(&memoryFlag, "memory", false, "use in-memory storage (nothing persists)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the real service implementations. Runs once, after
// flag parsing, from the root command's PersistentPreRunE.
func initServices() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	svc := services.NewSettingsService(configStore)
	settingsService = svc

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	appSettings = settings

	var docStore driven.DocumentStore
	var cmpStore driven.ComparisonStore
	if memoryFlag {
		docStore = memory.NewDocumentStore()
		cmpStore = memory.NewComparisonStore()
	} else {
		store, err := sqlite.NewStore(dataDirFlag)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		sqliteStore = store
		docStore = store.DocumentStore()
		cmpStore = store.ComparisonStore()
	}

	runner := shell.New()
	registry := services.NewNormaliserRegistry(
		plaintext.New(),
		markdown.New(),
		docx.New(),
		pdf.NewWithRunner(runner),
		image.NewWithRunner(runner),
	)
	documentService = services.NewDocumentService(docStore, registry, chunker.New())

	aiServices = ai.InitServices(*settings)
	for _, warning := range aiServices.Warnings {
		logger.Warn("%s", warning)
	}
	if aiServices.EmbeddingService != nil {
		logger.Debug("embedding model: %s", aiServices.EmbeddingService.ModelName())
	}
	if aiServices.LLMService != nil {
		logger.Debug("LLM model: %s", aiServices.LLMService.ModelName())
	}

	cmpSvc := services.NewComparisonService(
		cmpStore,
		docStore,
		aiServices.EmbeddingService,
		aiServices.LLMService,
		aiServices.GrammarChecker,
		settings.Compare,
	)
	if prompts, err := configfile.NewPromptStore(""); err == nil {
		cmpSvc.SetPromptStore(prompts)
	} else {
		logger.Warn("prompt store unavailable: %v", err)
	}
	comparisonService = cmpSvc

	return nil
}

// CloseServices releases storage and AI service resources.
func CloseServices() {
	if aiServices != nil {
		aiServices.Close()
	}
	if sqliteStore != nil {
		if err := sqliteStore.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing storage: %v\n", err)
		}
	}
}

// currentSettings returns the loaded settings, falling back to defaults.
func currentSettings() domain.AppSettings {
	if appSettings != nil {
		return *appSettings
	}
	return domain.DefaultAppSettings()
}
