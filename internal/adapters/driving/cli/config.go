package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// configKeys are the settings korpus reads, with how their values are
// parsed on "config set".
var configKeys = []struct {
	name string
	kind string // "string" or "int"
	help string
}{
	{"data_dir", "string", "directory holding the corpus database"},
	{"annotator", "string", "morphological annotator: mystem or basic"},
	{"mystem_path", "string", "path to the mystem binary"},
	{"context_left", "int", "default concordance window to the left, in tokens"},
	{"context_right", "int", "default concordance window to the right, in tokens"},
	{"pdf_page_chars", "int", "characters per page for the PDF page-count estimate"},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Example: `  korpus config set annotator basic
  korpus config set context_left 5`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	for _, k := range configKeys {
		if val, ok := configStore.Get(k.name); ok {
			cmd.Printf("%s = %v\n", k.name, val)
		} else {
			cmd.Printf("%s = (not set)\n", k.name)
		}
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if !knownConfigKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	val, ok := configStore.Get(key)
	if !ok {
		cmd.Println("(not set)")
		return nil
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	value, err := parseConfigValue(key, raw)
	if err != nil {
		return err
	}
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}

// parseConfigValue validates the key and converts the raw string to
// the key's value type.
func parseConfigValue(key, raw string) (any, error) {
	for _, k := range configKeys {
		if k.name != key {
			continue
		}
		if k.kind == "int" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
			}
			return n, nil
		}
		if key == "annotator" && raw != "mystem" && raw != "basic" {
			return nil, fmt.Errorf("annotator must be mystem or basic, got %q", raw)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("unknown config key %q", key)
}

func knownConfigKey(key string) bool {
	for _, k := range configKeys {
		if k.name == key {
			return true
		}
	}
	return false
}
