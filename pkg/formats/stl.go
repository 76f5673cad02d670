package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/Faultbox/trefoil/pkg/mesh"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrNonFiniteVertex  = errors.New("vertex not representable as float32")
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 50
)

// stlTriangle is the on-disk layout of one binary STL facet.
type stlTriangle struct {
	Normal   [3]float32
	Vertices [3][3]float32
	Attr     uint16
}

// MeshTriangles converts the indexed mesh to a flat float32 triangle list.
func MeshTriangles(m *mesh.Mesh) ([]ms3.Triangle, error) {
	tris := make([]ms3.Triangle, m.TriangleCount())
	for k := range tris {
		idx := m.Triangle(k)
		for c, vi := range idx {
			p := m.Vertices[vi].Position
			v := ms3.Vec{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
			if !finite32(v) {
				return nil, fmt.Errorf("%w: vertex %d at %v", ErrNonFiniteVertex, vi, p)
			}
			tris[k][c] = v
		}
	}
	return tris, nil
}

// WriteBinarySTL writes triangles in binary STL format and returns the
// number of bytes written. Facet normals are derived from the winding order.
func WriteBinarySTL(w io.Writer, triangles []ms3.Triangle) (int, error) {
	bw := bufio.NewWriter(w)
	var header [stlHeaderSize]byte
	copy(header[:], "binary STL written by trefoil")
	n, _ := bw.Write(header[:])
	_ = binary.Write(bw, binary.LittleEndian, uint32(len(triangles)))
	n += 4
	for _, t := range triangles {
		nrm := facetNormal(t)
		facet := stlTriangle{
			Normal: [3]float32{nrm.X, nrm.Y, nrm.Z},
			Vertices: [3][3]float32{
				{t[0].X, t[0].Y, t[0].Z},
				{t[1].X, t[1].Y, t[1].Z},
				{t[2].X, t[2].Y, t[2].Z},
			},
		}
		if err := binary.Write(bw, binary.LittleEndian, &facet); err != nil {
			return n, err
		}
		n += stlFacetSize
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return n, nil
}

// ParseSTL parses a binary STL file from raw bytes.
func ParseSTL(data []byte) ([]ms3.Triangle, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, fmt.Errorf("%w: header", ErrTruncatedSTLData)
	}
	r := bytes.NewReader(data[stlHeaderSize:])

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading triangle count", ErrTruncatedSTLData)
	}
	if uint64(r.Len()) < uint64(count)*stlFacetSize {
		return nil, fmt.Errorf("%w: %d triangles declared, %d bytes left", ErrTruncatedSTLData, count, r.Len())
	}

	triangles := make([]ms3.Triangle, count)
	var facet stlTriangle
	for i := range triangles {
		if err := binary.Read(r, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("%w: triangle %d", ErrTruncatedSTLData, i)
		}
		for c, v := range facet.Vertices {
			triangles[i][c] = ms3.Vec{X: v[0], Y: v[1], Z: v[2]}
		}
	}
	return triangles, nil
}

// facetNormal returns the unit normal of t, or zero for a degenerate facet.
func facetNormal(t ms3.Triangle) ms3.Vec {
	n := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
	l := ms3.Norm(n)
	if l == 0 || !finite32(n) {
		return ms3.Vec{}
	}
	return ms3.Scale(1/l, n)
}

func finite32(v ms3.Vec) bool {
	for _, f := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return false
		}
	}
	return true
}
