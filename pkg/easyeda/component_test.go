package easyeda

import (
	"encoding/json"
	"testing"
)

const sampleResponse = `{
	"success": true,
	"code": 0,
	"result": {
		"uuid": "abc123",
		"title": "NE555DR",
		"description": "Timer",
		"dataStr": {"head":{"c_para":{"name":"NE555DR"}},"shape":["P~show~0~1~0~0~180~gge1~0"]},
		"packageDetail": {
			"title": "SOIC-8",
			"dataStr": "{\"head\":{\"c_para\":{\"package\":\"SOIC-8\"}},\"shape\":[\"PAD~RECT~0~0~10~5~1~~1\"]}"
		},
		"lcsc": {"number": "C7593"}
	}
}`

func TestDecodeComponent(t *testing.T) {
	comp, err := DecodeComponent([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("DecodeComponent() error = %v", err)
	}

	if comp.Title != "NE555DR" || comp.LCSC != "C7593" || comp.Package != "SOIC-8" {
		t.Errorf("DecodeComponent() = %+v", comp)
	}
	if !comp.HasSymbol() || !comp.HasFootprint() {
		t.Fatalf("HasSymbol() = %v, HasFootprint() = %v, want both", comp.HasSymbol(), comp.HasFootprint())
	}

	// The footprint arrives as a JSON string and must still load
	fp, diags := Load(comp.Footprint)
	if len(diags) != 0 {
		t.Fatalf("Load(footprint) diagnostics = %v", diags)
	}
	if got := fp.Head.Param("package"); got != "SOIC-8" {
		t.Errorf("footprint package = %q, want SOIC-8", got)
	}

	sym, diags := Load(comp.Symbol)
	if len(diags) != 0 {
		t.Fatalf("Load(symbol) diagnostics = %v", diags)
	}
	if got := sym.Head.Param("name"); got != "NE555DR" {
		t.Errorf("symbol name = %q, want NE555DR", got)
	}
}

func TestDecodeComponentBareResult(t *testing.T) {
	var resp struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal([]byte(sampleResponse), &resp); err != nil {
		t.Fatal(err)
	}

	comp, err := DecodeComponent(resp.Result)
	if err != nil {
		t.Fatalf("DecodeComponent() error = %v", err)
	}
	if comp.UUID != "abc123" {
		t.Errorf("UUID = %q, want abc123", comp.UUID)
	}
}

func TestDecodeComponentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid json", "{"},
		{"failed request", `{"success":false,"code":404,"message":"not found"}`},
		{"no documents", `{"success":true,"result":{"title":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeComponent([]byte(tt.input)); err == nil {
				t.Error("DecodeComponent() expected error, got nil")
			}
		})
	}
}

func TestFindModel3D(t *testing.T) {
	raw := `{"shape":[
		"PAD~RECT~0~0~10~5~1~~1",
		"SVGNODE~not json",
		"SVGNODE~{\"gId\":\"g1\",\"nodeName\":\"g\",\"attrs\":{\"c_etype\":\"outline3D\",\"uuid\":\"0f1e2d\",\"title\":\"SOIC-8_L4.9\"}}"
	]}`

	doc, _ := Load(raw)
	model, ok := FindModel3D(doc)
	if !ok {
		t.Fatal("FindModel3D() found nothing")
	}
	if model.UUID != "0f1e2d" || model.Title != "SOIC-8_L4.9" {
		t.Errorf("FindModel3D() = %+v", model)
	}

	doc, _ = Load(`{"shape":["PAD~RECT~0~0~10~5~1~~1"]}`)
	if _, ok := FindModel3D(doc); ok {
		t.Error("FindModel3D() found a model in a document without SVGNODE")
	}
}
