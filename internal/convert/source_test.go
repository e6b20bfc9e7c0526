package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSourceBlob(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "models")
	require.NoError(t, os.Mkdir(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m1.step"), []byte("step"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.step"), []byte("secret"), 0644))

	src := DirSource{Dir: dir}

	data, err := src.Blob("m1", "step")
	require.NoError(t, err)
	assert.Equal(t, "step", string(data))

	_, err = src.Blob("m2", "step")
	assert.ErrorIs(t, err, os.ErrNotExist)

	for _, id := range []string{"../secret", "..", "a/b", `a\b`, "", "."} {
		_, err := src.Blob(id, "step")
		assert.ErrorIs(t, err, ErrInvalidModelID, "Blob(%q)", id)
	}
	_, err = src.Blob("m1", "../step")
	assert.ErrorIs(t, err, ErrInvalidModelID)
}

func TestConvertSkipsInvalidModelID(t *testing.T) {
	root := t.TempDir()
	blobs := filepath.Join(root, "models")
	require.NoError(t, os.Mkdir(blobs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.step"), []byte("secret"), 0644))

	response := strings.Replace(componentResponse, `m1\"`, `../secret\"`, 1)
	require.NotEqual(t, componentResponse, response)

	dir := t.TempDir()
	res, err := New(Options{Output: dir, Models: true, Blobs: DirSource{Dir: blobs}}).Convert([]byte(response), "input")
	require.NoError(t, err)
	assert.Empty(t, res.Models)
	assert.NotEmpty(t, res.Footprint)
}
