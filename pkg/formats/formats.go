// Package formats provides encoders and decoders for mesh file formats.
package formats

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Faultbox/trefoil/pkg/mesh"
)

// Format errors.
var (
	ErrUnknownFormat = errors.New("unknown mesh format")
	ErrEmptyMesh     = errors.New("mesh has no triangles")
)

// Format names a mesh file format.
type Format string

// Supported formats.
const (
	FormatOBJ Format = "obj" // Wavefront OBJ with texture coordinates and normals
	FormatSTL Format = "stl" // binary STL, positions and face normals only
)

// ParseFormat converts a format name such as "obj" or ".STL" to a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(name), "."))
	switch f {
	case FormatOBJ, FormatSTL:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes m to w in the given format.
func Encode(w io.Writer, f Format, m *mesh.Mesh) error {
	if m == nil || m.TriangleCount() == 0 {
		return ErrEmptyMesh
	}
	switch f {
	case FormatOBJ:
		return WriteOBJ(w, m)
	case FormatSTL:
		tris, err := MeshTriangles(m)
		if err != nil {
			return err
		}
		_, err = WriteBinarySTL(w, tris)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
