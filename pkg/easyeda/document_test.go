package easyeda

import (
	"encoding/json"
	"testing"
)

const sampleDoc = `{"head":{"docType":"4","c_para":{"package":"SOT-23","name":"BC847"}},"shape":["PAD~RECT~0~0~10~5~1~~1",{"gge":"TRACK~1~3~~0 0 10 10~gge2"},42,{"id":1}]}`

func TestLoad(t *testing.T) {
	var generic map[string]any
	if err := json.Unmarshal([]byte(sampleDoc), &generic); err != nil {
		t.Fatalf("failed to decode sample: %v", err)
	}
	doubled, _ := json.Marshal(sampleDoc)

	tests := []struct {
		name  string
		input any
	}{
		{"string", sampleDoc},
		{"bytes", []byte(sampleDoc)},
		{"raw message", json.RawMessage(sampleDoc)},
		{"generic object", generic},
		{"string inside string", string(doubled)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := Load(tt.input)
			if len(diags) != 0 {
				t.Fatalf("Load() diagnostics = %v, want none", diags)
			}
			if got := doc.Head.Param("package"); got != "SOT-23" {
				t.Errorf("Param(package) = %q, want SOT-23", got)
			}
			if len(doc.Shape) != 4 {
				t.Errorf("len(Shape) = %d, want 4", len(doc.Shape))
			}

			entries, indexes := doc.Entries()
			if len(entries) != 2 {
				t.Fatalf("Entries() = %d, want 2", len(entries))
			}
			if indexes[1] != 1 || !entries[1].IsWrapped() {
				t.Errorf("second entry index = %d wrapped = %v, want 1 true", indexes[1], entries[1].IsWrapped())
			}
		})
	}
}

func TestLoadDocumentValue(t *testing.T) {
	in := &Document{Shape: []json.RawMessage{json.RawMessage(`"PAD~RECT"`)}}
	doc, diags := Load(in)
	if len(diags) != 0 {
		t.Fatalf("Load() diagnostics = %v", diags)
	}
	if len(doc.Shape) != 1 {
		t.Errorf("len(Shape) = %d, want 1", len(doc.Shape))
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"invalid json", "{not json"},
		{"empty string", ""},
		{"array", "[1,2]"},
		{"shape not an array", `{"shape":"PAD"}`},
		{"missing shape", `{"head":{}}`},
		{"triple encoded", `"\"{\\\"shape\\\":[]}\""`},
		{"unencodable", func() {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := Load(tt.input)
			if doc == nil {
				t.Fatal("Load() returned nil document")
			}
			if len(diags) == 0 {
				t.Error("Load() returned no diagnostics")
			}
			if len(doc.Shape) != 0 {
				t.Errorf("len(Shape) = %d, want 0", len(doc.Shape))
			}
			if diags[0].Index != DocumentIndex {
				t.Errorf("diagnostic index = %d, want DocumentIndex", diags[0].Index)
			}
		})
	}
}

func TestLoadPartiallyMalformed(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPackage string
		wantDocType string
		wantShapes  int
		wantDiags   int
	}{
		{
			name:        "numeric docType",
			input:       `{"head":{"docType":2,"c_para":{"package":"X"}},"shape":["PAD~RECT~0~0~10~5~1~~1"]}`,
			wantPackage: "X",
			wantDocType: "2",
			wantShapes:  1,
		},
		{
			name:        "c_para not an object",
			input:       `{"head":{"docType":"4","c_para":"oops"},"shape":["PAD~RECT~0~0~10~5~1~~1"]}`,
			wantShapes:  1,
			wantDiags:   1,
			wantDocType: "4",
		},
		{
			name:       "head not an object",
			input:      `{"head":[1],"shape":["PAD~RECT~0~0~10~5~1~~1","TRACK~1~1~~0 0 1 1"]}`,
			wantShapes: 2,
			wantDiags:  1,
		},
		{
			name:        "docType of the wrong type",
			input:       `{"head":{"docType":{},"c_para":{"package":"X"}},"shape":[]}`,
			wantPackage: "X",
			wantDiags:   1,
		},
		{
			name:        "shape not an array",
			input:       `{"head":{"c_para":{"package":"SOT"}},"shape":"notarray"}`,
			wantPackage: "SOT",
			wantDiags:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := Load(tt.input)
			if len(diags) != tt.wantDiags {
				t.Errorf("Load() diagnostics = %v, want %d", diags, tt.wantDiags)
			}
			if got := doc.Head.Param("package"); got != tt.wantPackage {
				t.Errorf("Param(package) = %q, want %q", got, tt.wantPackage)
			}
			if doc.Head.DocType != tt.wantDocType {
				t.Errorf("DocType = %q, want %q", doc.Head.DocType, tt.wantDocType)
			}
			if len(doc.Shape) != tt.wantShapes {
				t.Errorf("len(Shape) = %d, want %d", len(doc.Shape), tt.wantShapes)
			}
		})
	}
}

func TestHeadParam(t *testing.T) {
	h := Head{CPara: map[string]any{"name": "R1", "pre": 3.0, "none": nil}}
	if got := h.Param("name"); got != "R1" {
		t.Errorf("Param(name) = %q", got)
	}
	if got := h.Param("pre"); got != "3" {
		t.Errorf("Param(pre) = %q, want 3", got)
	}
	if got := h.Param("none"); got != "" {
		t.Errorf("Param(none) = %q, want empty", got)
	}
	if got := (Head{}).Param("x"); got != "" {
		t.Errorf("Param on empty head = %q", got)
	}
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		diag Diagnostic
		want string
	}{
		{Diagnostic{Index: DocumentIndex, Message: "bad"}, "bad"},
		{Diagnostic{Index: 3, Message: "bad"}, "shape 3: bad"},
		{Diagnostic{Index: 3, Tag: "PAD", Message: "bad"}, "shape 3 (PAD): bad"},
	}
	for _, tt := range tests {
		if got := tt.diag.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
