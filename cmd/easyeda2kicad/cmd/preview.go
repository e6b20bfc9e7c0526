package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/easyeda2kicad/internal/config"
	"github.com/OpenTraceLab/easyeda2kicad/internal/convert"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/preview"
)

var (
	previewOut    string
	previewWidth  int
	previewHeight int
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render an SVG preview of an EasyEDA footprint or symbol",
	Long: `Render an SVG preview of an EasyEDA document. For component responses the
footprint is drawn unless --kind symbol is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewOut, "out", "", "write to file instead of stdout")
	previewCmd.Flags().IntVar(&previewWidth, "width", preview.DefaultWidth, "canvas width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", preview.DefaultHeight, "canvas height in pixels")
	addKindFlag(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	model, err := convert.Decode(data, cfg.Kind)
	if err != nil {
		return err
	}
	reportDiagnostics(model.Diagnostics)

	opts := preview.Options{Width: previewWidth, Height: previewHeight}
	var buf bytes.Buffer
	if model.Footprint != nil && (cfg.Kind != config.KindSymbol || model.Symbol == nil) {
		err = preview.Footprint(&buf, model.Footprint, opts)
	} else {
		err = preview.Symbol(&buf, model.Symbol, opts)
	}
	if err != nil {
		return err
	}

	if previewOut != "" {
		if err := os.WriteFile(previewOut, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", previewOut, err)
		}
		return nil
	}

	_, err = os.Stdout.Write(buf.Bytes())
	return err
}
