package pcb

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp/kicadsexp"
)

// Minimum supported footprint format version (KiCad 6.0 = 20211014)
const MinSupportedVersion = 20211014

// ParseFile reads and parses a .kicad_mod file
func ParseFile(filename string) (*Footprint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads and parses a footprint from an io.Reader
func Parse(r io.Reader) (*Footprint, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	// The root should be a (footprint ...) expression. Files older than
	// KiCad 6 use (module ...).
	root := sexps[0]

	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}

	if rootName != "footprint" && rootName != "module" {
		return nil, fmt.Errorf("not a KiCad footprint file: expected 'footprint', got '%s'", rootName)
	}

	version, generator, err := parseHeader(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	fp, err := parseFootprint(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint: %w", err)
	}
	fp.Version = version
	fp.Generator = generator

	return fp, nil
}

// parseHeader extracts version and generator information from the root node
// Expected format: (footprint "name" (version 20221018) (generator easyeda2kicad) ...)
func parseHeader(root kicadsexp.Sexp) (version int, generator string, err error) {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return 0, "", fmt.Errorf("missing required 'version' field")
	}

	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}

	if ver < MinSupportedVersion {
		return 0, "", fmt.Errorf("unsupported footprint version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}

	gen := "unknown"
	if genNode, found := sexp.FindNode(root, "generator"); found {
		if name, err := sexp.GetString(genNode, 1); err == nil {
			gen = name
		}
	}

	return ver, gen, nil
}
