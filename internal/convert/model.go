package convert

import (
	"github.com/OpenTraceLab/easyeda2kicad/internal/config"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/symbol"
)

// Model holds the parsed entities of one input without writing anything
type Model struct {
	Name        string               `json:"name" yaml:"name" cbor:"name"`
	LCSC        string               `json:"lcsc,omitempty" yaml:"lcsc,omitempty" cbor:"lcsc,omitempty"`
	Footprint   *footprint.Footprint `json:"footprint,omitempty" yaml:"footprint,omitempty" cbor:"footprint,omitempty"`
	Symbol      *symbol.Symbol       `json:"symbol,omitempty" yaml:"symbol,omitempty" cbor:"symbol,omitempty"`
	Diagnostics easyeda.Diagnostics  `json:"-" yaml:"-" cbor:"-"`
}

// Decode parses a bare shape document or a component API response.
// kind applies to bare documents as in Options.Kind. Entities with
// non-finite values are left out of the model and reported as a diagnostic.
func Decode(data []byte, kind string) (*Model, error) {
	if isDocument(data) {
		doc, diags := easyeda.Load(data)
		if kind == "" || kind == config.KindAuto {
			kind = DetectKind(doc)
		}

		m := &Model{Diagnostics: diags}
		if kind == config.KindFootprint {
			fp, fdiags := footprint.Parse(doc)
			m.Diagnostics.Append(fdiags)
			m.Name, m.Footprint = fp.Name, finiteFootprint(fp, &m.Diagnostics)
		} else {
			sym, sdiags := symbol.Parse(doc)
			m.Diagnostics.Append(sdiags)
			m.Name, m.Symbol = sym.Name, finiteSymbol(sym, &m.Diagnostics)
		}
		return m, nil
	}

	comp, err := easyeda.DecodeComponent(data)
	if err != nil {
		return nil, err
	}

	m := &Model{Name: comp.Title, LCSC: comp.LCSC}
	if comp.HasFootprint() {
		fp, diags := footprint.Parse(comp.Footprint)
		m.Diagnostics.Append(diags)
		m.Footprint = finiteFootprint(fp, &m.Diagnostics)
	}
	if comp.HasSymbol() {
		sym, diags := symbol.Parse(comp.Symbol)
		m.Diagnostics.Append(diags)
		m.Symbol = finiteSymbol(sym, &m.Diagnostics)
	}
	return m, nil
}

// finiteFootprint drops entities with non-finite values from fp
func finiteFootprint(fp *footprint.Footprint, diags *easyeda.Diagnostics) *footprint.Footprint {
	finite := fp.Finite()
	count := func(f *footprint.Footprint) int {
		return len(f.Pads) + len(f.Lines) + len(f.Circles) + len(f.Arcs) + len(f.Texts)
	}
	if dropped := count(fp) - count(finite); dropped > 0 {
		diags.Add(easyeda.DocumentIndex, "", "%d footprint entities with non-finite values omitted", dropped)
	}
	return finite
}

// finiteSymbol drops entities with non-finite values from sym
func finiteSymbol(sym *symbol.Symbol, diags *easyeda.Diagnostics) *symbol.Symbol {
	finite := sym.Finite()
	count := func(s *symbol.Symbol) int {
		n := len(s.Pins) + len(s.Circles) + len(s.Rectangles) + len(s.Texts)
		for _, pl := range s.Polylines {
			n += len(pl.Points)
		}
		return n
	}
	if dropped := count(sym) - count(finite); dropped > 0 {
		diags.Add(easyeda.DocumentIndex, "", "%d symbol values with non-finite coordinates omitted", dropped)
	}
	return finite
}
