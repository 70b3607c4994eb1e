package main

import (
	"fmt"
	"os"

	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/annotate/basic"
	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/annotate/mystem"
	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/config/file"
	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/execrunner"
	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/extract"
	"github.com/korpus-labs/korpus-cli/internal/adapters/driven/storage/sqlite"
	"github.com/korpus-labs/korpus-cli/internal/adapters/driving/cli"
	"github.com/korpus-labs/korpus-cli/internal/core/ports/driven"
	"github.com/korpus-labs/korpus-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	store, err := sqlite.NewStore(configStore.GetString("data_dir"))
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	runner := execrunner.New()

	extractor := extract.NewRegistry(
		extract.NewPlaintext(),
		extract.NewDocx(),
		extract.NewPDF(runner, configStore.GetInt("pdf_page_chars")),
	)

	annotator, err := buildAnnotator(configStore, runner)
	if err != nil {
		return err
	}

	cli.SetServices(
		services.NewIngestService(store, extractor, annotator),
		services.NewSearchService(store),
		services.NewCorpusService(store),
		services.NewArchiveService(store),
		configStore,
		extractor,
	)

	return cli.Execute()
}

// buildAnnotator selects the morphological annotator from the
// "annotator" config key: mystem (the default) or basic.
func buildAnnotator(config driven.ConfigStore, runner driven.CommandRunner) (driven.Annotator, error) {
	switch name := config.GetString("annotator"); name {
	case "", "mystem":
		return mystem.New(runner, config.GetString("mystem_path")), nil
	case "basic":
		return basic.New(), nil
	default:
		return nil, fmt.Errorf("unknown annotator %q in config (want mystem or basic)", name)
	}
}
