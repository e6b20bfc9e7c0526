// Package config loads converter settings from flags, environment and an
// optional easyeda2kicad.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. EASYEDA2KICAD_OUTPUT
	EnvPrefix = "EASYEDA2KICAD"

	// FileName is the config file name without extension
	FileName = "easyeda2kicad"
)

// Keys
const (
	KeyOutput    = "output"
	KeyModels    = "models"
	KeyPreview   = "preview"
	KeyOverwrite = "overwrite"
	KeyVerbose   = "verbose"
	KeyKind      = "kind"
	KeyCheck     = "check"
)

// Document kinds accepted by KeyKind
const (
	KindAuto      = "auto"
	KindFootprint = "footprint"
	KindSymbol    = "symbol"
)

// Config holds the resolved settings
type Config struct {
	Output    string // Output directory
	Models    bool   // Copy 3D model blobs next to the footprint
	Preview   bool   // Write SVG previews
	Overwrite bool   // Replace existing output files
	Verbose   bool   // Log parse diagnostics to stderr
	Kind      string // auto, footprint or symbol
	Check     bool   // Re-parse emitted files with an independent s-expression reader
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Output: ".",
		Models: true,
		Kind:   KindAuto,
	}
}

// Load resolves settings. Precedence from high to low: changed flags,
// environment, config file, defaults. configFile selects an explicit file;
// when empty, easyeda2kicad.yaml is looked up in the working directory and
// the user config directory, and a missing file is not an error.
func Load(flags *pflag.FlagSet, configFile string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyOutput, def.Output)
	v.SetDefault(KeyModels, def.Models)
	v.SetDefault(KeyPreview, def.Preview)
	v.SetDefault(KeyOverwrite, def.Overwrite)
	v.SetDefault(KeyVerbose, def.Verbose)
	v.SetDefault(KeyKind, def.Kind)
	v.SetDefault(KeyCheck, def.Check)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{
		Output:    v.GetString(KeyOutput),
		Models:    v.GetBool(KeyModels),
		Preview:   v.GetBool(KeyPreview),
		Overwrite: v.GetBool(KeyOverwrite),
		Verbose:   v.GetBool(KeyVerbose),
		Kind:      strings.ToLower(v.GetString(KeyKind)),
		Check:     v.GetBool(KeyCheck),
	}

	switch cfg.Kind {
	case KindAuto, KindFootprint, KindSymbol:
	default:
		return Config{}, fmt.Errorf("invalid kind %q: want auto, footprint or symbol", cfg.Kind)
	}

	return cfg, nil
}
