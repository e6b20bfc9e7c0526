package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/easyeda2kicad/internal/config"
	"github.com/OpenTraceLab/easyeda2kicad/internal/version"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
)

var (
	// Global flags
	verbose    bool
	configFile string

	// cfg is resolved before every command runs
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "easyeda2kicad",
	Short: "Convert EasyEDA footprints and symbols to KiCad",
	Long: `easyeda2kicad converts EasyEDA shape documents and component API responses
into KiCad footprints (.kicad_mod) and symbol libraries (.kicad_sym).

Examples:
  easyeda2kicad convert C7593.json -o lib/          # Footprint, symbol and 3D model
  easyeda2kicad convert C7593 --source cache/       # Look up cache/C7593.json
  easyeda2kicad preview footprint.json -o fp.svg    # SVG preview
  easyeda2kicad dump symbol.json --format yaml      # Parsed model
  easyeda2kicad inspect lib/SOIC-8.kicad_mod        # Summary of a KiCad file
  easyeda2kicad mcp                                 # MCP server on stdio`,
	Version:           version.String(),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, config.KeyVerbose, "v", false, "log parse diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./easyeda2kicad.yaml)")
}

// loadConfig merges flags, environment and config file, then routes
// diagnostics to stderr in verbose mode
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cmd.Flags(), configFile)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		easyeda.SetLogger(log.New(os.Stderr, "easyeda: ", 0))
	} else {
		easyeda.SetLogger(nil)
	}
	return nil
}

// addKindFlag registers --kind on commands that read bare documents
func addKindFlag(cmd *cobra.Command) {
	cmd.Flags().String(config.KeyKind, config.KindAuto, "document kind for bare documents: auto, footprint or symbol")
}

// readInput reads a file argument
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// reportDiagnostics prints a one-line diagnostics count
func reportDiagnostics(diags easyeda.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d diagnostic(s); rerun with --verbose for details\n", len(diags))
}
