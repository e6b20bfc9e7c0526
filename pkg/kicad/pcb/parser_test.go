package pcb

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/footprint"
)

const kicad6Footprint = `(footprint "R_0603" (version 20211014) (generator pcbnew)
  (layer "F.Cu")
  (attr smd)
  (fp_text reference "REF**" (at 0 -1.43) (layer "F.SilkS")
    (effects (font (size 1 1) (thickness 0.15)))
  )
  (fp_text value "R_0603" (at 0 1.43) (layer "F.Fab")
    (effects (font (size 1 1) (thickness 0.15)))
  )
  (fp_text user "${REFERENCE}" (at 0 0) (layer "F.Fab")
    (effects (font (size 0.4 0.4) (thickness 0.06)))
  )
  (fp_line (start -0.8 0.4) (end 0.8 0.4) (layer "F.Fab") (width 0.1))
  (fp_circle (center 0 0) (end 0.5 0) (stroke (width 0.12) (type solid)) (fill none) (layer "F.SilkS"))
  (fp_arc (start 1 0) (mid 0.7071 0.7071) (end 0 1) (stroke (width 0.12) (type solid)) (layer "F.SilkS"))
  (pad "1" smd roundrect (at -0.825 0) (size 0.8 0.95) (layers "F.Cu" "F.Paste" "F.Mask"))
  (pad "2" thru_hole circle (at 0.825 0 90) (size 0.8 0.8) (drill 0.5) (layers "*.Cu" "*.Mask"))
)
`

func TestParse(t *testing.T) {
	fp, err := Parse(strings.NewReader(kicad6Footprint))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if fp.Name != "R_0603" || fp.Version != 20211014 || fp.Generator != "pcbnew" || fp.Layer != "F.Cu" {
		t.Errorf("header = %q %d %q %q", fp.Name, fp.Version, fp.Generator, fp.Layer)
	}
	if !fp.HasAttribute("smd") {
		t.Error("HasAttribute(smd) = false")
	}
	if fp.Reference != "REF**" || fp.Value != "R_0603" {
		t.Errorf("Reference/Value = %q/%q", fp.Reference, fp.Value)
	}

	if len(fp.Texts) != 1 {
		t.Fatalf("len(Texts) = %d, want 1", len(fp.Texts))
	}
	if fp.Texts[0].Text != "${REFERENCE}" || fp.Texts[0].Layer != "F.Fab" {
		t.Errorf("Texts[0] = %+v", fp.Texts[0])
	}

	if len(fp.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(fp.Lines))
	}
	if fp.Lines[0].Stroke.Width != 0.1 || fp.Lines[0].Start != (Position{X: -0.8, Y: 0.4}) {
		t.Errorf("Lines[0] = %+v", fp.Lines[0])
	}

	if len(fp.Circles) != 1 {
		t.Fatalf("len(Circles) = %d, want 1", len(fp.Circles))
	}
	if r := fp.Circles[0].Radius(); math.Abs(r-0.5) > 1e-9 || fp.Circles[0].Fill.Type != "none" {
		t.Errorf("Circles[0] radius = %v fill = %q", r, fp.Circles[0].Fill.Type)
	}

	if len(fp.Arcs) != 1 || fp.Arcs[0].Mid != (Position{X: 0.7071, Y: 0.7071}) {
		t.Errorf("Arcs = %+v", fp.Arcs)
	}

	if len(fp.Pads) != 2 {
		t.Fatalf("len(Pads) = %d, want 2", len(fp.Pads))
	}
	if fp.Pads[0].Shape != "roundrect" || !fp.Pads[0].Layers.Contains("F.Paste") {
		t.Errorf("Pads[0] = %+v", fp.Pads[0])
	}
	pad := fp.Pads[1]
	if pad.Type != "thru_hole" || pad.Position.Angle != 90 || pad.Drill != 0.5 || !pad.Layers.HasCopper() {
		t.Errorf("Pads[1] = %+v", pad)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "empty file"},
		{"wrong root", `(kicad_pcb (version 20221018))`, "not a KiCad footprint file"},
		{"missing version", `(footprint "X" (layer "F.Cu"))`, "missing required 'version'"},
		{"old version", `(footprint "X" (version 20171130))`, "unsupported footprint version"},
		{"unbalanced", `(footprint "X" (version 20221018)`, "failed to parse s-expression"},
		{"pad without size", `(footprint "X" (version 20221018) (pad "1" smd rect (at 0 0) (layers "F.Cu")))`, "missing required 'size'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	src, diags := footprint.Parse(map[string]any{
		"head": map[string]any{"c_para": map[string]any{"package": "DIP-2"}},
		"shape": []any{
			"PAD~ELLIPSE~0~0~20~20~11~~1~~~0",
			"PAD~RECT~100~0~20~20~11~~2~~~90",
			"TRACK~1~3~~-20 -20 120 -20",
			"CIRCLE~50~0~10~1~3",
			"TEXT~U1~50~20~~12~3",
		},
	})
	if len(diags) != 0 {
		t.Fatalf("footprint.Parse() diagnostics = %v", diags)
	}

	fp, err := Parse(strings.NewReader(EmitFootprint(src)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if fp.Name != "DIP-2" || fp.Version != FormatVersion || fp.Generator != Generator {
		t.Errorf("header = %q %d %q", fp.Name, fp.Version, fp.Generator)
	}
	if !fp.HasAttribute("through_hole") {
		t.Error("HasAttribute(through_hole) = false")
	}
	if fp.Reference != "REF**" || fp.Value != "DIP-2" {
		t.Errorf("Reference/Value = %q/%q", fp.Reference, fp.Value)
	}

	if len(fp.Pads) != 2 {
		t.Fatalf("len(Pads) = %d, want 2", len(fp.Pads))
	}
	// Bounding box x -20..120 centered on 50
	near := func(got, want float64) bool { return math.Abs(got-want) < 1e-4 }
	if !near(fp.Pads[0].Position.X, -12.7) || !near(fp.Pads[1].Position.X, 12.7) {
		t.Errorf("pad x = %v, %v, want -12.7, 12.7", fp.Pads[0].Position.X, fp.Pads[1].Position.X)
	}
	if fp.Pads[1].Position.Angle != 90 {
		t.Errorf("pad 2 angle = %v, want 90", fp.Pads[1].Position.Angle)
	}
	if !near(fp.Pads[0].Drill, 3.048) {
		t.Errorf("pad 1 drill = %v, want 3.048", fp.Pads[0].Drill)
	}
	if !reflect.DeepEqual(fp.Pads[0].Layers, ThroughHolePadLayers) {
		t.Errorf("pad 1 layers = %v, want %v", fp.Pads[0].Layers, ThroughHolePadLayers)
	}

	if len(fp.Lines) != 1 || fp.Lines[0].Layer != "F.SilkS" {
		t.Errorf("Lines = %+v", fp.Lines)
	}
	if len(fp.Circles) != 1 || !near(fp.Circles[0].Radius(), 2.54) {
		t.Errorf("Circles = %+v", fp.Circles)
	}
	if len(fp.Texts) != 1 || fp.Texts[0].Text != "U1" {
		t.Errorf("Texts = %+v", fp.Texts)
	}

	bbox := fp.GetBoundingBox()
	if !near(bbox.Min.X, -17.78) || !near(bbox.Max.X, 17.78) {
		t.Errorf("bounding box x = %v..%v, want -17.78..17.78", bbox.Min.X, bbox.Max.X)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "R_0603.kicad_mod")
	if err := os.WriteFile(path, []byte(kicad6Footprint), 0o644); err != nil {
		t.Fatal(err)
	}

	fp, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(fp.Pads) != 2 {
		t.Errorf("len(Pads) = %d, want 2", len(fp.Pads))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.kicad_mod")); err == nil {
		t.Error("ParseFile(missing) error = nil")
	}
}

func TestLayerName(t *testing.T) {
	tests := map[string]string{
		"1":   "F.Cu",
		"2":   "B.Cu",
		"3":   "F.SilkS",
		"11":  "Edge.Cuts",
		"12":  "Cmts.User",
		"15":  "Dwgs.User",
		"101": "F.Fab",
		"":    "F.Fab",
		"42":  "F.Fab",
	}
	for id, want := range tests {
		if got := LayerName(id); got != want {
			t.Errorf("LayerName(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestLayerSet(t *testing.T) {
	tests := []struct {
		name       string
		layers     LayerSet
		wantCopper bool
		wantPaste  bool
	}{
		{"smd", SMDPadLayers, true, true},
		{"through hole", ThroughHolePadLayers, true, false},
		{"mask only", LayerSet{"F.Mask"}, false, false},
		{"empty", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layers.HasCopper(); got != tt.wantCopper {
				t.Errorf("HasCopper() = %v, want %v", got, tt.wantCopper)
			}
			if got := tt.layers.Contains("F.Paste"); got != tt.wantPaste {
				t.Errorf("Contains(F.Paste) = %v, want %v", got, tt.wantPaste)
			}
		})
	}
}
