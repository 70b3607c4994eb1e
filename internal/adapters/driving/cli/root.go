// Package cli implements the korpus command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driving"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected once at startup by the composition root.
var (
	ingestService  driving.IngestService
	searchService  driving.SearchService
	corpusService  driving.CorpusService
	archiveService driving.ArchiveService
	configStore    driven.ConfigStore
	extractor      driven.TextExtractor
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "korpus",
	Short: "Manage an annotated text corpus",
	Long: `korpus maintains a local corpus of annotated Russian texts.

Documents are ingested from txt, pdf or docx files, segmented into
sentences and tokens, morphologically annotated and stored in a local
SQLite database for filtered search and concordance queries.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices wires the application services into the commands.
func SetServices(
	ingest driving.IngestService,
	search driving.SearchService,
	corpus driving.CorpusService,
	archive driving.ArchiveService,
	config driven.ConfigStore,
	extract driven.TextExtractor,
) {
	ingestService = ingest
	searchService = search
	corpusService = corpus
	archiveService = archive
	configStore = config
	extractor = extract
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
