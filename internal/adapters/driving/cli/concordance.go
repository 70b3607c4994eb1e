package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// defaultContext is the concordance window size when neither flags nor
// configuration specify one.
const defaultContext = 3

var (
	concordanceLeft  int
	concordanceRight int
)

var concordanceCmd = &cobra.Command{
	Use:   "concordance <wordform>",
	Short: "Show every occurrence of a word form with context",
	Long: `Prints one line per occurrence of the word form anywhere in the
corpus: the match surrounded by up to --left tokens before and --right
tokens after, clamped at sentence boundaries.

Window defaults come from the context_left and context_right config
keys.`,
	Example: `  korpus concordance кот
  korpus concordance кот --left 5 --right 2`,
	Args: cobra.ExactArgs(1),
	RunE: runConcordance,
}

func init() {
	concordanceCmd.Flags().IntVarP(&concordanceLeft, "left", "l", -1, "tokens of context to the left")
	concordanceCmd.Flags().IntVarP(&concordanceRight, "right", "r", -1, "tokens of context to the right")
	rootCmd.AddCommand(concordanceCmd)
}

func runConcordance(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	left := concordanceLeft
	if left < 0 {
		left = configWindow("context_left")
	}
	right := concordanceRight
	if right < 0 {
		right = configWindow("context_right")
	}

	lines, err := searchService.Concordance(cmd.Context(), args[0], left, right)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		cmd.Println("No occurrences found.")
		return nil
	}

	for _, line := range lines {
		cmd.Println(line)
	}
	cmd.Printf("\n%d occurrences\n", len(lines))
	return nil
}

// configWindow reads a context size from configuration, falling back
// to the default.
func configWindow(key string) int {
	if configStore != nil {
		if v := configStore.GetInt(key); v > 0 {
			return v
		}
	}
	return defaultContext
}
