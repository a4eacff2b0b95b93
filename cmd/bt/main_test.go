package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadenzaleski/bible-translations/internal/export"
)

// execute runs the root command with args and returns captured output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Keep test runs away from the real cache and output locations.
	t.Setenv("BT_CACHE_PATH", filepath.Join(t.TempDir(), "cache.sqlite"))
	t.Setenv("BT_OUTPUT_DIR", t.TempDir())

	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "get", "download", "serve", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestListPrintsRegistry(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "KJV")
	assert.Contains(t, out, "King James Version")
	assert.Contains(t, out, "Public Domain")
}

func TestDownloadRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "download", "KJV", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestDownloadRejectsUnknownTranslation(t *testing.T) {
	_, err := execute(t, "download", "NIV")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown translation")
}

func TestGetRejectsUnknownBook(t *testing.T) {
	_, err := execute(t, "get", "KJV", "Hezekiah 3")
	require.Error(t, err)
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats("all")
	require.NoError(t, err)
	assert.Equal(t, []export.Format{export.FormatJSON, export.FormatSQL}, got)

	got, err = parseFormats("sql")
	require.NoError(t, err)
	assert.Equal(t, []export.Format{export.FormatSQL}, got)

	_, err = parseFormats("xml")
	assert.Error(t, err)
}
