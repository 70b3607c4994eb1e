package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document and its annotation",
	Long: `Removes a document from the corpus together with all of its
sentences, tokens and grammar features. Use "korpus list" to find the
document id.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	if err := corpusService.Delete(cmd.Context(), id); err != nil {
		return err
	}
	cmd.Printf("deleted document %d\n", id)
	return nil
}
