package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/easyeda2kicad/internal/convert"
)

var (
	dumpFormat string
	dumpOut    string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the parsed model of an EasyEDA document",
	Long: `Parse an EasyEDA shape document or component API response and print the
decoded footprint and symbol as JSON, YAML or canonical CBOR.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "json", "output format: json, yaml or cbor")
	dumpCmd.Flags().StringVar(&dumpOut, "out", "", "write to file instead of stdout")
	addKindFlag(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	model, err := convert.Decode(data, cfg.Kind)
	if err != nil {
		return err
	}
	reportDiagnostics(model.Diagnostics)

	encoded, err := encodeModel(model, dumpFormat)
	if err != nil {
		return err
	}

	if dumpOut != "" {
		if err := os.WriteFile(dumpOut, encoded, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dumpOut, err)
		}
		return nil
	}

	_, err = os.Stdout.Write(encoded)
	return err
}

// encodeModel serializes a model in the given format
func encodeModel(model *convert.Model, format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(out, '\n'), nil
	case "yaml":
		out, err := yaml.Marshal(model)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return out, nil
	case "cbor":
		enc, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, fmt.Errorf("failed to create cbor encoder: %w", err)
		}
		out, err := enc.Marshal(model)
		if err != nil {
			return nil, fmt.Errorf("failed to encode cbor: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown format %q: want json, yaml or cbor", format)
	}
}
