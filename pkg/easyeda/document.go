// Package easyeda loads EasyEDA shape documents.
// A document is the JSON object found in a component's dataStr field:
// a header with component parameters and an array of shape records.
package easyeda

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/shape"
)

// Head is the document header
type Head struct {
	DocType string         `json:"docType,omitempty"`
	CPara   map[string]any `json:"c_para,omitempty"`
}

// Param returns a c_para value as a string, or "" when absent
func (h Head) Param(key string) string {
	v, ok := h.CPara[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Document is an EasyEDA shape document
type Document struct {
	Head  Head              `json:"head"`
	Shape []json.RawMessage `json:"shape"`
}

// Entries resolves the shape array, skipping elements that are not shape entries.
// The returned indexes refer to positions in the shape array.
func (d *Document) Entries() ([]shape.Entry, []int) {
	entries := make([]shape.Entry, 0, len(d.Shape))
	indexes := make([]int, 0, len(d.Shape))
	for i, raw := range d.Shape {
		entry, ok := shape.EntryFromJSON(raw)
		if !ok {
			continue
		}
		entries = append(entries, entry)
		indexes = append(indexes, i)
	}
	return entries, indexes
}

// maxStringDepth bounds how many times a JSON string is unwrapped
const maxStringDepth = 1

// Load accepts a document as JSON text, bytes, a decoded JSON value or a
// *Document. Load never fails: malformed input yields an empty document
// together with a diagnostic. A malformed header or shape array loses only
// that part of the document.
func Load(raw any) (*Document, Diagnostics) {
	var diags Diagnostics

	var data []byte
	switch v := raw.(type) {
	case nil:
		diags.Add(DocumentIndex, "", "no document")
		return &Document{}, diags
	case *Document:
		if v == nil {
			diags.Add(DocumentIndex, "", "no document")
			return &Document{}, diags
		}
		doc := *v
		return &doc, diags
	case Document:
		return &v, diags
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			diags.Add(DocumentIndex, "", "failed to encode document: %v", err)
			return &Document{}, diags
		}
		data = encoded
	}

	doc, err := decode(data, 0, &diags)
	if err != nil {
		diags.Add(DocumentIndex, "", "failed to decode document: %v", err)
		return &Document{}, diags
	}

	return doc, diags
}

// rawDocument holds the undecoded header and shape array of a document
type rawDocument struct {
	Head  json.RawMessage `json:"head"`
	Shape json.RawMessage `json:"shape"`
}

// decode parses a document, unwrapping a document that was itself
// serialized into a JSON string. Only input that is not a JSON object is
// an error; a malformed header or shape array is reported in diags and
// the other part is still decoded.
func decode(data []byte, depth int, diags *Diagnostics) (*Document, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("empty input")
	}

	if trimmed[0] == '"' {
		if depth >= maxStringDepth {
			return nil, fmt.Errorf("document is nested in too many strings")
		}
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil, err
		}
		return decode([]byte(inner), depth+1, diags)
	}

	var raw rawDocument
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, err
	}

	doc := &Document{Head: decodeHead(raw.Head, diags)}
	if isNull(raw.Shape) {
		diags.Add(DocumentIndex, "", "document has no shape array")
	} else if err := json.Unmarshal(raw.Shape, &doc.Shape); err != nil {
		doc.Shape = nil
		diags.Add(DocumentIndex, "", "shape is not an array: %v", err)
	}
	return doc, nil
}

// decodeHead resolves the header field by field. Fields of the wrong type
// are dropped with a diagnostic. A numeric docType is kept as its text.
func decodeHead(raw json.RawMessage, diags *Diagnostics) Head {
	var head Head
	if isNull(raw) {
		return head
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		diags.Add(DocumentIndex, "", "head ignored: %v", err)
		return head
	}

	if v := fields["docType"]; !isNull(v) {
		var docType any
		if err := json.Unmarshal(v, &docType); err == nil {
			switch dt := docType.(type) {
			case string:
				head.DocType = dt
			case float64:
				head.DocType = strconv.FormatFloat(dt, 'f', -1, 64)
			default:
				diags.Add(DocumentIndex, "", "head docType ignored: unexpected %s", v)
			}
		}
	}

	if v := fields["c_para"]; !isNull(v) {
		if err := json.Unmarshal(v, &head.CPara); err != nil {
			head.CPara = nil
			diags.Add(DocumentIndex, "", "head c_para ignored: %v", err)
		}
	}

	return head
}

// isNull reports whether a raw value is absent or JSON null
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
