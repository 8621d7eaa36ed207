package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test, restoring the
// previous working directory afterwards. (testing.T.Chdir needs Go 1.24;
// the local toolchain is older.)
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(65536), cfg.Server.MaxMessageSize)
	assert.Equal(t, 60*time.Second, cfg.Server.PongWait.Std())
	assert.Equal(t, "", cfg.Echo.Prefix)
	assert.False(t, cfg.Echo.DropBinary)
	assert.Equal(t, "info", cfg.Log.Level)

	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "echokit.yml")
	content := `
server:
  port: "9090"
  pong_wait: 30s
  ping_period: 25s
echo:
  prefix: "Echo: "
  drop_binary: true
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.PongWait.Std())
	assert.Equal(t, 25*time.Second, cfg.Server.PingPeriod.Std())
	assert.Equal(t, "Echo: ", cfg.Echo.Prefix)
	assert.True(t, cfg.Echo.DropBinary)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Equal(t, "json", cfg.Log.Format)

	// Unset keys keep their defaults.
	assert.Equal(t, 1024, cfg.Server.ReadBufferSize)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout.Std())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_EnvPortOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ECHOKIT_PORT", "7777")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.Server.Port)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = "not-a-port" }},
		{"port zero", func(c *Config) { c.Server.Port = "0" }},
		{"port negative", func(c *Config) { c.Server.Port = "-1" }},
		{"port out of range", func(c *Config) { c.Server.Port = "99999" }},
		{"zero message size", func(c *Config) { c.Server.MaxMessageSize = 0 }},
		{"ping period >= pong wait", func(c *Config) { c.Server.PingPeriod = c.Server.PongWait }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_BadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "echokit.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  pong_wait: sixty\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duration")
}
