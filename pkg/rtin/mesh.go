package rtin

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TerrainMeshData holds a deduplicated vertex list and a triangle list
// index buffer, three indices per triangle.
type TerrainMeshData struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// Bounds is the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *TerrainMeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the bounding box of all vertices.
func (m *TerrainMeshData) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		for i := range 3 {
			b.Min[i] = min(b.Min[i], v[i])
			b.Max[i] = max(b.Max[i], v[i])
		}
	}
	return b
}

// Normals returns smooth per-vertex normals. Face normals are weighted by
// triangle area and always point to +Y, whatever the winding.
func (m *TerrainMeshData) Normals() []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(m.Vertices))

	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		v0 := m.Vertices[i0]
		face := m.Vertices[i1].Sub(v0).Cross(m.Vertices[i2].Sub(v0))
		if face.Y() < 0 {
			face = face.Mul(-1)
		}
		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i, n := range normals {
		if n.Len() == 0 {
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}

// UVs maps every vertex to texture space by its X and Z over size.
func (m *TerrainMeshData) UVs(size float32) []mgl32.Vec2 {
	uvs := make([]mgl32.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		uvs[i] = mgl32.Vec2{v.X() / size, v.Z() / size}
	}
	return uvs
}

// WireframeIndices expands the triangle list into a line list.
func (m *TerrainMeshData) WireframeIndices() []uint32 {
	lines := make([]uint32, 0, len(m.Indices)*2)
	for t := 0; t+2 < len(m.Indices); t += 3 {
		for _, j := range [6]int{0, 1, 1, 2, 2, 0} {
			lines = append(lines, m.Indices[t+j])
		}
	}
	return lines
}
