package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roofingmaterials/roofserve/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Load with no config files should use defaults
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, 60, cfg.Server.RequestTimeout)
	assert.Equal(t, "output/images", cfg.Storage.ImagesRoot)
	assert.Equal(t, "output/all-companies.json", cfg.Storage.CompaniesFile)
	assert.Equal(t, "/RoofingMaterials", cfg.Routes.Prefix)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
env: production
server:
  port: 8080
  read_timeout: 5
  request_timeout: 0
storage:
  images_root: /srv/roofing/images
  companies_file: /srv/roofing/all-companies.json
routes:
  prefix: /api/roofing
log:
  level: debug
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, 0, cfg.Server.RequestTimeout)
	assert.Equal(t, 120, cfg.Server.WriteTimeout)
	assert.Equal(t, "/srv/roofing/images", cfg.Storage.ImagesRoot)
	assert.Equal(t, "/srv/roofing/all-companies.json", cfg.Storage.CompaniesFile)
	assert.Equal(t, "/api/roofing", cfg.Routes.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	basePath := writeConfig(t, "base.yaml", `
server:
  port: 3000
storage:
  images_root: data/images
  companies_file: data/all-companies.json
log:
  level: info
`)
	overridePath := writeConfig(t, "override.yaml", `
server:
  port: 9000
log:
  level: warn
`)

	// Load with merge (later files override earlier)
	cfg, err := config.Load([]string{basePath, overridePath}, nil)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)

	// Preserved values from base
	assert.Equal(t, "data/images", cfg.Storage.ImagesRoot)
	assert.Equal(t, "data/all-companies.json", cfg.Storage.CompaniesFile)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := config.Load([]string{filepath.Join(t.TempDir(), "nope.yaml")}, nil)
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "port too large", content: "server:\n  port: 99999\n"},
		{name: "negative port", content: "server:\n  port: -1\n"},
		{name: "zero read timeout", content: "server:\n  read_timeout: 0\n"},
		{name: "negative request timeout", content: "server:\n  request_timeout: -5\n"},
		{name: "empty images root", content: "storage:\n  images_root: \"\"\n"},
		{name: "empty companies file", content: "storage:\n  companies_file: \"\"\n"},
		{name: "prefix without leading slash", content: "routes:\n  prefix: RoofingMaterials\n"},
		{name: "prefix with trailing slash", content: "routes:\n  prefix: /RoofingMaterials/\n"},
		{name: "root prefix", content: "routes:\n  prefix: /\n"},
		{name: "prefix with query", content: "routes:\n  prefix: /a?b\n"},
		{name: "invalid log level", content: "log:\n  level: verbose\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			configPath := writeConfig(t, "config.yaml", tc.content)

			_, err := config.Load([]string{configPath}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ROOFSERVE_SERVER_PORT", "9090")
	t.Setenv("ROOFSERVE_STORAGE_IMAGES_ROOT", "/env/images")
	t.Setenv("ROOFSERVE_ROUTES_PREFIX", "/Env")
	t.Setenv("ROOFSERVE_ENV", "prod")

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/env/images", cfg.Storage.ImagesRoot)
	assert.Equal(t, "/Env", cfg.Routes.Prefix)
	assert.Equal(t, "prod", cfg.Env)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", "server:\n  port: 8080\n")
	t.Setenv("ROOFSERVE_SERVER_PORT", "9191")

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestLoad_Flags(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", "server:\n  port: 8080\n")
	t.Setenv("ROOFSERVE_STORAGE_IMAGES_ROOT", "/env/images")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 3000, "")
	flags.String("images-root", "", "")
	flags.String("companies-file", "", "")
	flags.String("prefix", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "7070", "--images-root", "/flag/images"}))

	cfg, err := config.Load([]string{configPath}, flags)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/flag/images", cfg.Storage.ImagesRoot)
	// Unchanged flags do not shadow defaults
	assert.Equal(t, "output/all-companies.json", cfg.Storage.CompaniesFile)
	assert.Equal(t, "/RoofingMaterials", cfg.Routes.Prefix)
}

func TestServerConfig_Durations(t *testing.T) {
	s := config.ServerConfig{
		ReadTimeout:     1,
		WriteTimeout:    2,
		IdleTimeout:     3,
		RequestTimeout:  0,
		ShutdownTimeout: 5,
	}

	assert.Equal(t, time.Second, s.ReadTimeoutDuration())
	assert.Equal(t, 2*time.Second, s.WriteTimeoutDuration())
	assert.Equal(t, 3*time.Second, s.IdleTimeoutDuration())
	assert.Equal(t, time.Duration(0), s.RequestTimeoutDuration())
	assert.Equal(t, 5*time.Second, s.ShutdownTimeoutDuration())
}
