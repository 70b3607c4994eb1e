package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var exportID int64

var exportCmd = &cobra.Command{
	Use:   "export <file.xml>",
	Short: "Export the corpus to an XML archive",
	Long: `Writes the corpus with all annotations to an XML file. With --id
only that document is exported. Raw text stays local; the archive
carries metadata, sentences and tokens.`,
	Example: `  korpus export corpus.xml
  korpus export tolstoy.xml --id 3`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Int64Var(&exportID, "id", 0, "export a single document by id")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	path := args[0]
	if exportID > 0 {
		if err := archiveService.ExportDocument(cmd.Context(), exportID, path); err != nil {
			return err
		}
		cmd.Printf("exported document %d to %s\n", exportID, path)
		return nil
	}

	if err := archiveService.ExportCorpus(cmd.Context(), path); err != nil {
		return err
	}
	cmd.Printf("exported corpus to %s\n", path)
	return nil
}
