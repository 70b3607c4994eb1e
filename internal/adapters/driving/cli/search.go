package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
	"github.com/korpus-labs/korpus-cli/internal/translate"
)

var (
	searchKind    string
	searchPrefix  bool
	searchFilters []string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search tokens in the corpus",
	Long: `Searches the annotated corpus. The term matches by lemma, word form
or part of speech depending on --kind; matching is case-insensitive.

Filters constrain grammar features and accept either internal codes or
Russian display labels, e.g. --filter Case="Именительный падеж" or
--filter Case=Nom. The special key "pos" filters the part of speech. A
filter value that is not a known feature matches nothing.`,
	Example: `  korpus search кот
  korpus search сид --kind wordform --prefix
  korpus search --kind pos Глагол
  korpus search кот --filter Case=Nom --filter Number=Sing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "lemma", "search kind: lemma, wordform or pos")
	searchCmd.Flags().BoolVarP(&searchPrefix, "prefix", "p", false, "prefix match instead of exact")
	searchCmd.Flags().StringArrayVarP(&searchFilters, "filter", "f", nil, "grammar filter key=value (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	kind, err := domain.ParseSearchKind(searchKind)
	if err != nil {
		return fmt.Errorf("unknown search kind %q (want lemma, wordform or pos)", searchKind)
	}

	query := domain.SearchQuery{Kind: kind, Prefix: searchPrefix}
	if len(args) == 1 {
		query.Term = args[0]
	}
	if query.Filters, err = parseFilters(searchFilters); err != nil {
		return err
	}

	hits, err := searchService.Search(cmd.Context(), query)
	if err != nil {
		return err
	}

	if searchJSON {
		data, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Token", "Lemma", "POS", "Sentence", "Document"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Sentence", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})
	for _, h := range hits {
		t.AppendRow(table.Row{h.Token, h.Lemma, translate.POSLabel(h.POS), h.SentenceText, h.DocumentTitle})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	cmd.Printf("%d results", len(hits))
	if len(hits) == domain.MaxSearchResults {
		cmd.Printf(" (limit reached)")
	}
	cmd.Println()
	return nil
}

// parseFilters decodes repeated key=value flags.
func parseFilters(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(raw))
	for _, f := range raw {
		key, value, ok := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid filter %q (want key=value)", f)
		}
		filters[key] = value
	}
	return filters, nil
}
