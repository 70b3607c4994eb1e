package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var textCmd = &cobra.Command{
	Use:   "text <id>",
	Short: "Print the raw text of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runText,
}

func init() {
	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	text, err := corpusService.Text(cmd.Context(), id)
	if err != nil {
		return err
	}
	cmd.Println(text)
	return nil
}
