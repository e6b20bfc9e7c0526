package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP(KeyOutput, "o", ".", "")
	flags.Bool(KeyPreview, false, "")
	flags.String(KeyKind, KindAuto, "")
	return flags
}

// chdir switches to an empty directory so no stray config file is found
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load(newFlags(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: from-file\npreview: true\nkind: symbol\nmodels: false\n"), 0644))

	t.Run("config file", func(t *testing.T) {
		cfg, err := Load(newFlags(), path)
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Output)
		assert.True(t, cfg.Preview)
		assert.False(t, cfg.Models)
		assert.Equal(t, KindSymbol, cfg.Kind)
	})

	t.Run("environment over file", func(t *testing.T) {
		t.Setenv("EASYEDA2KICAD_OUTPUT", "from-env")
		cfg, err := Load(newFlags(), path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Output)
	})

	t.Run("flag over environment", func(t *testing.T) {
		t.Setenv("EASYEDA2KICAD_OUTPUT", "from-env")
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--output", "from-flag"}))
		cfg, err := Load(flags, path)
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.Output)
	})
}

func TestLoadDefaultFileName(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "easyeda2kicad.yaml"), []byte("overwrite: true\n"), 0644))

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.True(t, cfg.Overwrite)
}

func TestLoadErrors(t *testing.T) {
	dir := chdir(t)

	tests := []struct {
		name        string
		configFile  string
		env         string
		errContains string
	}{
		{"missing explicit file", filepath.Join(dir, "nope.yaml"), "", "failed to read config"},
		{"invalid kind", "", "board", "invalid kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("EASYEDA2KICAD_KIND", tt.env)
			}
			_, err := Load(newFlags(), tt.configFile)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
