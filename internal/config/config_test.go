package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so no stray config.yaml or .env is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "localhost:5000", cfg.Server.Addr())
	assert.Equal(t, "", cfg.Server.BasePath)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "notodo.db", cfg.Database.DSN)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Assistant.APIKey)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := inTempDir(t)
	yaml := []byte(`
server:
  port: 8080
  base_path: /api
database:
  driver: postgres
  dsn: postgres://localhost/notodo
auth:
  token_ttl: 2h
log:
  format: json
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("NOTODO_SERVER_PORT", "9090")
	t.Setenv("NOTODO_AUTH_SECRET", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "environment wins over file")
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadDotEnv(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOTODO_ASSISTANT_API_KEY=key-from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("NOTODO_ASSISTANT_API_KEY") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "key-from-dotenv", cfg.Assistant.APIKey)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	inTempDir(t)
	_, err := Load("missing.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 5000},
			Database: DatabaseConfig{Driver: "sqlite3", DSN: ":memory:"},
			Auth:     AuthConfig{TokenTTL: time.Hour},
			Log:      LogConfig{Format: "text"},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"driver":    func(c *Config) { c.Database.Driver = "mysql" },
		"dsn":       func(c *Config) { c.Database.DSN = "" },
		"port":      func(c *Config) { c.Server.Port = 0 },
		"ttl":       func(c *Config) { c.Auth.TokenTTL = 0 },
		"base path": func(c *Config) { c.Server.BasePath = "api/" },
		"format":    func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
