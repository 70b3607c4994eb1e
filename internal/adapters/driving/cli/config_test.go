package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_HasSubcommands(t *testing.T) {
	commands := configCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, c := range commands {
		commandNames = append(commandNames, c.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "set")
}

func TestConfigShowCmd_ListsAllKeys(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, configStore.Set("annotator", "basic"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "annotator = basic")
	assert.Contains(t, buf.String(), "context_left = (not set)")
	assert.Contains(t, buf.String(), "pdf_page_chars = (not set)")
}

func TestConfigSetCmd_StoresTypedValue(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "context_left", "5"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 5, configStore.GetInt("context_left"))
	assert.Contains(t, buf.String(), "context_left = 5")
}

func TestConfigSetCmd_RejectsBadValues(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	for _, args := range [][]string{
		{"config", "set", "context_left", "many"},
		{"config", "set", "context_left", "-2"},
		{"config", "set", "annotator", "treetagger"},
		{"config", "set", "color_scheme", "dark"},
	} {
		buf := new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs(args)

		err := rootCmd.Execute()

		assert.Error(t, err, "%v", args)
	}
	rootCmd.SetArgs(nil)
}

func TestConfigGetCmd_PrintsValue(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, configStore.Set("mystem_path", "/opt/mystem"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "get", "mystem_path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/opt/mystem")
}

func TestConfigGetCmd_UnsetKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "get", "data_dir"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(not set)")
}
