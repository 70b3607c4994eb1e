package cli

import (
	"errors"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents in the corpus",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	docs, err := corpusService.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		cmd.Println("The corpus is empty.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "Title", "Author", "Date", "Genre", "Pages"})
	for _, doc := range docs {
		pages := ""
		if doc.PageCount != nil {
			pages = strconv.Itoa(*doc.PageCount)
		}
		t.AppendRow(table.Row{doc.ID, doc.Title, doc.Author, doc.Date, doc.Genre, pages})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
