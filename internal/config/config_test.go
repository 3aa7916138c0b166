package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bestiary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadServer_MissingFile(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServer(), cfg)
}

func TestLoadServer_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
data_dir: /srv/bestiary
scripts_dir: /srv/bestiary/scripts
metrics_addr: ""
max_viewport_x: 9
rates:
  loot: 3
`)

	cfg, err := LoadServer(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/bestiary", cfg.DataDir)
	assert.Equal(t, "/srv/bestiary/scripts", cfg.ScriptsDir)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, 9, cfg.MaxViewportX)
	assert.Equal(t, 3, cfg.Rates.Loot)
}

func TestLoadServer_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "rates:\n  loot: 2\n")

	t.Setenv("BESTIARY_RATE_LOOT", "5")
	t.Setenv("BESTIARY_LOG_LEVEL", "warn")

	cfg, err := LoadServer(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Rates.Loot)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadServer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero loot rate", "rates:\n  loot: 0\n"},
		{"unknown log level", "log_level: chatty\n"},
		{"zero viewport", "max_viewport_x: 0\n"},
		{"bad metrics addr", "metrics_addr: nowhere\n"},
		{"malformed yaml", "rates: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadServer(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
