package netfleece

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "resolve: inplace\npretty: false\nclass_aliases:\n  System.String: str\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "inplace", cfg.Resolve)
	require.False(t, cfg.Pretty)
	require.Equal(t, "str", cfg.ClassAliases["System.String"])
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestResolveModeFromString(t *testing.T) {
	m, err := ResolveModeFromString("expand")
	require.NoError(t, err)
	require.Equal(t, ResolveExpand, m)

	_, err = ResolveModeFromString("bogus")
	require.Error(t, err)
}
