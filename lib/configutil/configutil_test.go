package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Debug   bool   `json:"debug"`
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "athlinks.json5")

	err := os.WriteFile(name, []byte(`{base_url: "https://example.com"}`), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "athlinks.local.json5"), []byte(`{debug: true}`), 0644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.BaseUrl)
	require.True(t, cfg.Debug)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "athlinks.local.json5"), []byte(`{base_url: "https://local.example.com"}`), 0644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "athlinks.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://local.example.com", cfg.BaseUrl)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "athlinks.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
