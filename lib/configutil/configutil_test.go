package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Domain  string `json:"domain"`
	Name    string `json:"name"`
	Timeout int    `json:"timeout"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shindan.json5")

	err := os.WriteFile(path, []byte(`{
		// default config
		domain: "en",
		name: "test_user",
		timeout: 10,
	}`), 0600)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "en", config.Domain)
	require.Equal(t, "test_user", config.Name)
	require.Equal(t, 10, config.Timeout)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(
		filepath.Join(dir, "shindan.json5"),
		[]byte(`{domain: "en", timeout: 10}`),
		0600,
	)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "shindan.local.json5"),
		[]byte(`{domain: "jp"}`),
		0600,
	)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "shindan.json5"))
	require.NoError(t, err)
	require.Equal(t, "jp", config.Domain)
	require.Equal(t, 10, config.Timeout)
}

func TestReadConfigNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
