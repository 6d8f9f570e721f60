package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

// Полный корректный YAML под текущую структуру config.go.
const sampleYAML = `
env: "prod"
api:
  base_url: "https://api.example.com/v1"
  timeout: "5s"
session:
  check_interval: "10m"
  max_retries: 5
  retry_step: "1s"
storage:
  backend: "file"
  path: "/tmp/fitgen/session.json"
`

// Минимальный YAML (всё остальное — через дефолты/ENV).
const minimalYAML = `
env: "stage"
`

// Некорректный YAML для проверки сообщений об ошибке.
const brokenYAML = `
env: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
	require.Equal(t, 5*time.Second, cfg.API.Timeout)
	require.Equal(t, 10*time.Minute, cfg.Session.CheckInterval)
	require.Equal(t, 5, cfg.Session.MaxRetries)
	require.Equal(t, time.Second, cfg.Session.RetryStep)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, "/tmp/fitgen/session.json", cfg.Storage.Path)
}

func TestLoad_MinimalYAML_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "stage", cfg.Env)
	// Зашитый дефолт базового URL.
	require.Equal(t, "https://api.fitgen.app/api/v1", cfg.API.BaseURL)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, 5*time.Minute, cfg.Session.CheckInterval)
	require.Equal(t, 3, cfg.Session.MaxRetries)
	require.Equal(t, 2*time.Second, cfg.Session.RetryStep)
	require.Equal(t, "securefile", cfg.Storage.Backend)
}

func TestLoad_EnvOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	t.Setenv("FITGEN_API_URL", "https://staging.fitgen.app/api/v1")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "https://staging.fitgen.app/api/v1", cfg.API.BaseURL)
	require.Equal(t, "memory", cfg.Storage.Backend)
}

func TestLoad_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_CONFIGPATH(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", minimalYAML)

	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "stage", cfg.Env)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}
