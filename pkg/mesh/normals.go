package mesh

// computeNormals sets each vertex normal to the normalized sum of the
// unnormalized normals of its adjacent triangles, which weights every face by
// its area. Vertices touching only zero-area faces keep a zero normal.
func computeNormals(m *Mesh) {
	for k := 0; k+2 < len(m.Indices); k += 3 {
		ia, ib, ic := m.Indices[k], m.Indices[k+1], m.Indices[k+2]
		a := m.Vertices[ia].Position
		edge1 := m.Vertices[ib].Position.Sub(a)
		edge2 := m.Vertices[ic].Position.Sub(a)
		n := edge1.Cross(edge2)
		m.Vertices[ia].Normal = m.Vertices[ia].Normal.Add(n)
		m.Vertices[ib].Normal = m.Vertices[ib].Normal.Add(n)
		m.Vertices[ic].Normal = m.Vertices[ic].Normal.Add(n)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}
