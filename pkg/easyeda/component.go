package easyeda

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/shape"
)

// Component is a decoded component API response.
// Symbol and Footprint hold the raw documents, which may be JSON objects
// or JSON strings; pass them to Load.
type Component struct {
	UUID        string
	Title       string
	Description string
	Package     string
	LCSC        string
	Symbol      json.RawMessage
	Footprint   json.RawMessage
}

type componentResponse struct {
	Success *bool           `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type componentResult struct {
	UUID          string          `json:"uuid"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	DataStr       json.RawMessage `json:"dataStr"`
	PackageDetail struct {
		Title   string          `json:"title"`
		DataStr json.RawMessage `json:"dataStr"`
	} `json:"packageDetail"`
	LCSC struct {
		Number string `json:"number"`
	} `json:"lcsc"`
}

// DecodeComponent decodes a component API response.
// The "result" object may also be passed on its own.
func DecodeComponent(data []byte) (*Component, error) {
	var resp componentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode component response: %w", err)
	}

	if resp.Success != nil && !*resp.Success {
		return nil, fmt.Errorf("component request failed: %s (code %d)", resp.Message, resp.Code)
	}

	body := resp.Result
	if len(body) == 0 || string(body) == "null" {
		body = data
	}

	var result componentResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode component result: %w", err)
	}

	if isEmptyJSON(result.DataStr) && isEmptyJSON(result.PackageDetail.DataStr) {
		return nil, fmt.Errorf("component has neither symbol nor footprint data")
	}

	return &Component{
		UUID:        result.UUID,
		Title:       result.Title,
		Description: result.Description,
		Package:     result.PackageDetail.Title,
		LCSC:        result.LCSC.Number,
		Symbol:      result.DataStr,
		Footprint:   result.PackageDetail.DataStr,
	}, nil
}

// HasSymbol reports whether the component carries a symbol document
func (c *Component) HasSymbol() bool {
	return !isEmptyJSON(c.Symbol)
}

// HasFootprint reports whether the component carries a footprint document
func (c *Component) HasFootprint() bool {
	return !isEmptyJSON(c.Footprint)
}

func isEmptyJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == `""`
}

// Model3D identifies the 3D model attached to a footprint
type Model3D struct {
	UUID  string
	Title string
}

// svgNodeTag marks the footprint shape that carries 3D model attributes
const svgNodeTag = "SVGNODE"

// FindModel3D returns the 3D model referenced by the first SVGNODE shape.
// The SVGNODE payload is a JSON object: SVGNODE~{"attrs":{"uuid":...}}.
func FindModel3D(doc *Document) (Model3D, bool) {
	entries, _ := doc.Entries()
	for _, entry := range entries {
		text := entry.Text()
		if !strings.HasPrefix(text, svgNodeTag+shape.Delimiter) {
			continue
		}

		var node struct {
			Attrs struct {
				UUID  string `json:"uuid"`
				Title string `json:"title"`
			} `json:"attrs"`
		}
		if err := json.Unmarshal([]byte(text[len(svgNodeTag)+1:]), &node); err != nil {
			logger.Printf("[WARN] failed to decode %s payload: %v", svgNodeTag, err)
			continue
		}
		if node.Attrs.UUID == "" {
			continue
		}

		return Model3D{UUID: node.Attrs.UUID, Title: node.Attrs.Title}, true
	}

	return Model3D{}, false
}
