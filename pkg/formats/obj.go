package formats

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/trefoil/pkg/mesh"
)

// WriteOBJ writes m as a Wavefront OBJ file with positions, texture
// coordinates and, when present, vertex normals. Texture coordinates are
// written as stored, without renormalizing to [0, 1].
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# parametric surface %dx%d, %d vertices, %d triangles\n",
		m.Nu, m.Nv, len(m.Vertices), m.TriangleCount())

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position.X, v.Position.Y, v.Position.Z)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord.X, v.TexCoord.Y)
	}
	if m.HasNormals {
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
		}
	}

	// OBJ indices are 1-based.
	for k, n := 0, m.TriangleCount(); k < n; k++ {
		t := m.Triangle(k)
		a, b, c := t[0]+1, t[1]+1, t[2]+1
		if m.HasNormals {
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		} else {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		}
	}
	return bw.Flush()
}
