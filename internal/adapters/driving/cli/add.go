package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
)

var (
	addTitle  string
	addAuthor string
	addDate   string
	addGenre  string
)

var addCmd = &cobra.Command{
	Use:   "add [files...]",
	Short: "Add documents to the corpus",
	Long: `Extracts text from the given files, annotates it and stores the
result. Each document needs a unique title; with a single file the
--title flag overrides the default, which is the file name without
extension.

Extraction and annotation run in the background; the command waits for
every started job and reports each outcome.`,
	Example: `  korpus add tolstoy.txt --title "Война и мир" --author "Толстой" --date 1869
  korpus add papers/*.pdf --genre статья`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "document title (single file only)")
	addCmd.Flags().StringVarP(&addAuthor, "author", "a", "", "document author")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "publication date")
	addCmd.Flags().StringVarP(&addGenre, "genre", "g", "", "genre")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if addTitle != "" && len(args) > 1 {
		return fmt.Errorf("%w: --title cannot be combined with multiple files", domain.ErrValidation)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Start all jobs; validation failures (bad path, duplicate title)
	// surface immediately, accepted jobs proceed in the background.
	var mu sync.Mutex
	accepted := 0
	g, ctx := errgroup.WithContext(ctx)
	for _, path := range args {
		g.Go(func() error {
			req := domain.IngestRequest{
				Path:   path,
				Title:  titleFor(path),
				Author: addAuthor,
				Date:   addDate,
				Genre:  addGenre,
			}
			if _, err := ingestService.AddDocument(ctx, req); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			mu.Lock()
			accepted++
			mu.Unlock()
			return nil
		})
	}
	startErr := g.Wait()

	// Drain one completion event per accepted job.
	failed := 0
	for i := 0; i < accepted; i++ {
		ev := <-ingestService.Events()
		switch ev.Kind {
		case domain.IngestSucceeded:
			cmd.Printf("added %q\n", ev.Title)
		case domain.IngestFailed:
			failed++
			cmd.PrintErrf("failed %q: %s\n", ev.Title, ev.Message)
		}
	}
	ingestService.Wait()

	if startErr != nil {
		return startErr
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, accepted)
	}
	return nil
}

// titleFor picks the document title: the --title flag for a single
// file, otherwise the file name without its extension.
func titleFor(path string) string {
	if addTitle != "" {
		return addTitle
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
