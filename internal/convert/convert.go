// Package convert turns EasyEDA documents and component responses into
// KiCad files on disk.
package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/easyeda2kicad/internal/config"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/shape"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/symbol"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/schematic"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/preview"
)

// Library is the footprint library nickname written into symbol Footprint fields
const Library = "easyeda2kicad"

// DefaultName names outputs when neither the input nor its file name offers one
const DefaultName = "easyeda"

// Options controls a conversion
type Options struct {
	Output    string     // Output directory, created on demand
	Kind      string     // auto, footprint or symbol; applies to bare documents only
	Models    bool       // Copy 3D models found through Blobs
	Preview   bool       // Write SVG previews
	Overwrite bool       // Replace existing files
	Check     bool       // Re-parse emitted KiCad text before writing it
	Blobs     BlobSource // Optional 3D model source
}

// Result lists the files written for one input
type Result struct {
	Name        string
	Footprint   string   // .kicad_mod path, if written
	Symbol      string   // .kicad_sym path, if written
	Previews    []string // .svg paths
	Models      []string // 3D model paths
	Diagnostics easyeda.Diagnostics
}

// Files returns every written path
func (r *Result) Files() []string {
	var files []string
	if r.Footprint != "" {
		files = append(files, r.Footprint)
	}
	if r.Symbol != "" {
		files = append(files, r.Symbol)
	}
	files = append(files, r.Previews...)
	return append(files, r.Models...)
}

// Converter writes KiCad files for EasyEDA inputs
type Converter struct {
	opts Options
}

// New creates a converter
func New(opts Options) *Converter {
	if opts.Output == "" {
		opts.Output = "."
	}
	if opts.Kind == "" {
		opts.Kind = config.KindAuto
	}
	return &Converter{opts: opts}
}

// ConvertFile converts a local file. The file name stem names the outputs
// when the input carries no name.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return c.Convert(data, stem)
}

// ConvertID converts the component src holds for id
func (c *Converter) ConvertID(src Source, id string) (*Result, error) {
	data, err := src.Component(id)
	if err != nil {
		return nil, err
	}
	return c.Convert(data, id)
}

// Convert converts a bare shape document or a component API response.
// fallback names the outputs when the input carries no name.
func (c *Converter) Convert(data []byte, fallback string) (*Result, error) {
	if isDocument(data) {
		return c.convertDocument(data, fallback)
	}

	comp, err := easyeda.DecodeComponent(data)
	if err != nil {
		return nil, err
	}
	return c.convertComponent(comp, fallback)
}

// isDocument reports whether data is a bare shape document, possibly
// serialized into a JSON string
func isDocument(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return true
	}

	var probe struct {
		Shape json.RawMessage `json:"shape"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return false
	}
	return len(probe.Shape) > 0
}

// DetectKind classifies a bare document: any PAD record makes it a footprint
func DetectKind(doc *easyeda.Document) string {
	entries, _ := doc.Entries()
	for _, entry := range entries {
		if shape.Tokenize(entry).Tag() == "PAD" {
			return config.KindFootprint
		}
	}
	return config.KindSymbol
}

func (c *Converter) convertDocument(data []byte, fallback string) (*Result, error) {
	doc, diags := easyeda.Load(data)

	kind := c.opts.Kind
	if kind == config.KindAuto {
		kind = DetectKind(doc)
	}

	res := &Result{Diagnostics: diags}
	if kind == config.KindFootprint {
		res.Name = outputName(fallback, doc.Head.Param("package"))
		return res, c.writeFootprint(res, doc)
	}

	res.Name = outputName(fallback, doc.Head.Param("name"), doc.Head.Param("package"))
	return res, c.writeSymbol(res, doc, schematic.Fields{})
}

func (c *Converter) convertComponent(comp *easyeda.Component, fallback string) (*Result, error) {
	name := strings.Join(nonEmpty(comp.Package, comp.Title, comp.LCSC), "_")
	res := &Result{Name: outputName(fallback, name)}
	fields := schematic.Fields{LCSC: comp.LCSC}

	if comp.HasFootprint() {
		doc, diags := easyeda.Load(comp.Footprint)
		res.Diagnostics.Append(diags)
		if err := c.writeFootprint(res, doc); err != nil {
			return res, err
		}
		fields.Footprint = Library + ":" + res.Name
	}

	if comp.HasSymbol() {
		doc, diags := easyeda.Load(comp.Symbol)
		res.Diagnostics.Append(diags)
		if err := c.writeSymbol(res, doc, fields); err != nil {
			return res, err
		}
	}

	return res, nil
}

// writeFootprint emits the footprint named res.Name with its preview and models
func (c *Converter) writeFootprint(res *Result, doc *easyeda.Document) error {
	fp, diags := footprint.Parse(doc)
	res.Diagnostics.Append(diags)
	fp.Name = res.Name

	path, err := c.writeKiCad(res.Name+".kicad_mod", pcb.EmitFootprint(fp))
	if err != nil {
		return err
	}
	res.Footprint = path

	if c.opts.Preview {
		var buf bytes.Buffer
		if err := preview.Footprint(&buf, fp, preview.Options{}); err != nil {
			return err
		}
		path, err := c.write(res.Name+"_footprint.svg", buf.Bytes())
		if err != nil {
			return err
		}
		res.Previews = append(res.Previews, path)
	}

	if c.opts.Models {
		return c.copyModels(res, doc)
	}
	return nil
}

// writeSymbol emits the symbol library file named res.Name and its preview
func (c *Converter) writeSymbol(res *Result, doc *easyeda.Document, fields schematic.Fields) error {
	sym, diags := symbol.Parse(doc)
	res.Diagnostics.Append(diags)

	path, err := c.writeKiCad(res.Name+".kicad_sym", schematic.EmitSymbolFields(sym, fields))
	if err != nil {
		return err
	}
	res.Symbol = path

	if c.opts.Preview {
		var buf bytes.Buffer
		if err := preview.Symbol(&buf, sym, preview.Options{}); err != nil {
			return err
		}
		path, err := c.write(res.Name+"_symbol.svg", buf.Bytes())
		if err != nil {
			return err
		}
		res.Previews = append(res.Previews, path)
	}
	return nil
}

// copyModels copies every available format of the footprint's 3D model
func (c *Converter) copyModels(res *Result, doc *easyeda.Document) error {
	model, ok := easyeda.FindModel3D(doc)
	if !ok || c.opts.Blobs == nil {
		return nil
	}

	for _, ext := range ModelExtensions {
		data, err := c.opts.Blobs.Blob(model.UUID, ext)
		if errors.Is(err, os.ErrNotExist) {
			easyeda.Logger().Printf("[INFO] no %s model for %s", ext, model.UUID)
			continue
		}
		if errors.Is(err, ErrInvalidModelID) {
			easyeda.Logger().Printf("[WARN] skipping 3D model: %v", err)
			return nil
		}
		if err != nil {
			return err
		}

		path, err := c.write(res.Name+"."+ext, data)
		if err != nil {
			return err
		}
		res.Models = append(res.Models, path)
	}
	return nil
}

func (c *Converter) writeKiCad(filename, text string) (string, error) {
	if c.opts.Check {
		if err := Check(text); err != nil {
			return "", fmt.Errorf("failed to check %s: %w", filename, err)
		}
	}
	return c.write(filename, []byte(text))
}

// write creates filename in the output directory. Existing files are
// only replaced when Overwrite is set.
func (c *Converter) write(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(c.opts.Output, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(c.opts.Output, filename)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !c.opts.Overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s already exists (use --overwrite to replace it)", path)
		}
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// outputName sanitizes the first non-empty candidate, then fallback
func outputName(fallback string, candidates ...string) string {
	for _, name := range candidates {
		if name != "" {
			return sexp.SanitizeName(name, DefaultName)
		}
	}
	return sexp.SanitizeName(fallback, DefaultName)
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
