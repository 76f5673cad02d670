// Package mesh tessellates parametric surfaces into indexed triangle meshes.
package mesh

import "github.com/Faultbox/trefoil/pkg/math"

// Vertex represents a mesh vertex with all attributes.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3 // zero unless normals were requested
	TexCoord math.Vec2
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh holds a tessellated surface laid out as a regular Nu x Nv grid.
// The vertex of grid node (i, j) is Vertices[i*Nv+j].
type Mesh struct {
	Vertices []Vertex
	// Indices lists triangles as consecutive index triples.
	Indices []uint32
	Nu, Nv  int
	// WrapU and WrapV report whether the grid is stitched across the seam
	// in that direction.
	WrapU, WrapV bool
	HasNormals   bool
	Bounds       Bounds
	// Degenerate lists the vertices whose sample fell back to the central
	// curve because the local frame was undefined.
	Degenerate []int
}

// Index returns the vertex index of grid node (i, j).
func (m *Mesh) Index(i, j int) int {
	return i*m.Nv + j
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle k.
func (m *Mesh) Triangle(k int) [3]uint32 {
	return [3]uint32{m.Indices[3*k], m.Indices[3*k+1], m.Indices[3*k+2]}
}
