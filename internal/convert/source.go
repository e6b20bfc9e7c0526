package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source resolves a component id to raw component JSON
type Source interface {
	Component(id string) ([]byte, error)
}

// BlobSource resolves a 3D model id and file extension to the model bytes.
// A missing model yields an error wrapping os.ErrNotExist.
type BlobSource interface {
	Blob(id, ext string) ([]byte, error)
}

// ErrInvalidModelID is returned for model ids that are not a plain file name
var ErrInvalidModelID = errors.New("invalid model id")

// ModelExtensions lists the 3D model formats copied next to a footprint
var ModelExtensions = []string{"step", "obj"}

// DirSource serves components and models from a local directory:
// <id>.json for components and <uuid>.<ext> for models.
type DirSource struct {
	Dir string
}

// Component reads <Dir>/<id>.json
func (s DirSource) Component(id string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, id+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read component %s: %w", id, err)
	}
	return data, nil
}

// Blob reads <Dir>/<id>.<ext>. Ids that are not a plain file name are
// rejected.
func (s DirSource) Blob(id, ext string) ([]byte, error) {
	if !isPlainName(id) || !isPlainName(ext) {
		return nil, fmt.Errorf("%w %q", ErrInvalidModelID, id+"."+ext)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, id+"."+ext))
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s.%s: %w", id, ext, err)
	}
	return data, nil
}

// isPlainName reports whether name stays inside its directory when joined
func isPlainName(name string) bool {
	return name != "" && name != "." && !strings.Contains(name, "..") &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
