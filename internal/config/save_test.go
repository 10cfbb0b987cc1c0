package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigTemplate(t *testing.T) {
	template, err := DefaultConfigTemplate()
	require.NoError(t, err)

	require.Contains(t, template, "# lineedit configuration")
	require.Contains(t, template, "editor:")
	require.Contains(t, template, "  left_padding: 5")
	require.Contains(t, template, "  paste_splits_lines: false")
	require.Contains(t, template, "metrics:")
	require.Contains(t, template, "theme:")
}

func TestWriteDefaultConfig_CreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "lineedit", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteDefaultConfig_LoadsBackAsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}
