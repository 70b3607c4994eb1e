package cli

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ingestion timing per document",
	Long: `Reports how long each document took to process relative to its page
count. Only documents with a recorded page count appear.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	stats, err := corpusService.ProcessingStats(cmd.Context())
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		cmd.Println("No processing statistics recorded yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "Title", "Pages", "Seconds", "Sec/Page"})
	for _, st := range stats {
		perPage := st.ProcessingSeconds / float64(st.PageCount)
		t.AppendRow(table.Row{
			st.DocumentID,
			st.Title,
			st.PageCount,
			fmt.Sprintf("%.2f", st.ProcessingSeconds),
			fmt.Sprintf("%.2f", perPage),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
