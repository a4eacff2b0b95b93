package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "exports", cfg.OutputDir)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout())
	assert.NotEmpty(t, cfg.CachePath)
	assert.False(t, cfg.Notify.Enabled())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output_dir: /tmp/bundles
max_concurrency: 4
http_timeout_seconds: 30
listen_addr: ":9090"
notify:
  domain: mg.example.com
  api_key: key-123
  sender: bt@example.com
  recipient: me@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bundles", cfg.OutputDir)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.True(t, cfg.Notify.Enabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: /from/file\n"), 0o644))

	t.Setenv("BT_OUTPUT_DIR", "/from/env")
	t.Setenv("BT_MAX_CONCURRENCY", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.OutputDir)
	assert.Equal(t, 2, cfg.MaxConcurrency)
}

func TestEnvIgnoresGarbageNumbers(t *testing.T) {
	t.Setenv("BT_MAX_CONCURRENCY", "lots")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxConcurrency)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.MaxConcurrency = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.OutputDir = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.HTTPTimeoutSeconds = 0
	assert.Error(t, cfg.Validate())
}

func TestNotifyEnabledRequiresAllFields(t *testing.T) {
	n := NotifyConfig{Domain: "d", APIKey: "k", Sender: "s", Recipient: "r"}
	assert.True(t, n.Enabled())

	n.Recipient = ""
	assert.False(t, n.Enabled())
}
