package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/logger"
)

// settleDelay is how long a file must stay quiet after its last write
// before it is ingested.
const settleDelay = 500 * time.Millisecond

var (
	watchAuthor string
	watchGenre  string
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and ingest new documents automatically",
	Long: `Watches a directory for new txt, pdf or docx files and adds each
one to the corpus, titled after its file name. Runs until interrupted.`,
	Example: `  korpus watch ~/incoming --genre статья`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchAuthor, "author", "a", "", "author for ingested documents")
	watchCmd.Flags().StringVarP(&watchGenre, "genre", "g", "", "genre for ingested documents")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil || extractor == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Print job outcomes as they arrive.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ingestService.Events():
				switch ev.Kind {
				case domain.IngestSucceeded:
					cmd.Printf("added %q\n", ev.Title)
				case domain.IngestFailed:
					cmd.PrintErrf("failed %q: %s\n", ev.Title, ev.Message)
				}
			}
		}
	}()

	supported := make(map[string]struct{})
	for _, ext := range extractor.SupportedExtensions() {
		supported[ext] = struct{}{}
	}

	cmd.Printf("watching %s (%s), press Ctrl-C to stop\n",
		dir, strings.Join(extractor.SupportedExtensions(), ", "))

	// Writers deliver files in bursts of events; ingest a path only
	// after it has settled.
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if timer, ok := timers[path]; ok {
			timer.Reset(settleDelay)
			return
		}
		timers[path] = time.AfterFunc(settleDelay, func() {
			mu.Lock()
			delete(timers, path)
			mu.Unlock()
			ingestFile(ctx, path)
		})
	}

	for {
		select {
		case <-ctx.Done():
			ingestService.Wait()
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			ext := strings.ToLower(filepath.Ext(event.Name))
			if _, ok := supported[ext]; !ok {
				continue
			}
			schedule(event.Name)
		}
	}
}

// ingestFile starts one background ingest job for a settled file.
func ingestFile(ctx context.Context, path string) {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	_, err := ingestService.AddDocument(ctx, domain.IngestRequest{
		Path:   path,
		Title:  title,
		Author: watchAuthor,
		Genre:  watchGenre,
	})
	if err != nil && !errors.Is(err, domain.ErrDuplicateTitle) {
		logger.Warn("could not ingest %s: %v", path, err)
	}
}
