package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xml>",
	Short: "Import documents from an XML archive",
	Long: `Adds documents from an exported archive to the corpus. Existing
documents are never touched; archived documents whose title already
exists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	summary, err := archiveService.ImportCorpus(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cmd.Printf("imported %d documents, skipped %d existing\n", summary.Imported, summary.Skipped)
	return nil
}
