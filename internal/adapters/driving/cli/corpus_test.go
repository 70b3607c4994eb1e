package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
)

func TestListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "The corpus is empty.")
}

func TestListCmd_RendersDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	pages := 12
	corpusService.(*fakeCorpusService).docs = []domain.Document{
		{ID: 1, Title: "Сказка", Author: "Пушкин", Date: "1831", Genre: "сказка", PageCount: &pages},
		{ID: 2, Title: "Импортированный"},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Сказка")
	assert.Contains(t, buf.String(), "Пушкин")
	assert.Contains(t, buf.String(), "12")
	assert.Contains(t, buf.String(), "Импортированный")
}

func TestDeleteCmd_DeletesByID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	svc := corpusService.(*fakeCorpusService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"delete", "42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, int64(42), svc.deletedID)
	assert.Contains(t, buf.String(), "deleted document 42")
}

func TestDeleteCmd_RejectsNonNumericID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"delete", "сказка"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid document id")
}

func TestDeleteCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusService.(*fakeCorpusService).err = domain.ErrNotFound

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"delete", "99"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTextCmd_PrintsText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusService.(*fakeCorpusService).text = "Кот сидит на ковре."

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"text", "1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Кот сидит на ковре.")
}

func TestStatsCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No processing statistics recorded yet.")
}

func TestStatsCmd_RendersPerPageRate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusService.(*fakeCorpusService).stats = []domain.ProcessingStat{
		{DocumentID: 1, Title: "Сказка", ProcessingSeconds: 6, PageCount: 4},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "6.00")
	assert.Contains(t, buf.String(), "1.50")
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "korpus version dev")
}
