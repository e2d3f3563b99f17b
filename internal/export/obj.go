// Package export writes generated worlds to files other tools can open.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/slenderish/pkg/rtin"
)

// WriteOBJ writes the mesh as a Wavefront OBJ with texture coordinates and
// smooth normals. Faces are wound counter-clockwise seen from above.
func WriteOBJ(w io.Writer, mesh *rtin.TerrainMeshData, size float32) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# terrain: %d vertices, %d triangles\n", len(mesh.Vertices), mesh.TriangleCount())
	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X(), v.Y(), v.Z())
	}
	for _, uv := range mesh.UVs(size) {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X(), uv.Y())
	}
	for _, n := range mesh.Normals() {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
	}

	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		a, b, c := mesh.Indices[t]+1, mesh.Indices[t+1]+1, mesh.Indices[t+2]+1
		if !upward(mesh, t) {
			b, c = c, b
		}
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}

// upward reports whether triangle t is already counter-clockwise when seen
// from +Y.
func upward(mesh *rtin.TerrainMeshData, t int) bool {
	v0 := mesh.Vertices[mesh.Indices[t]]
	e1 := mesh.Vertices[mesh.Indices[t+1]].Sub(v0)
	e2 := mesh.Vertices[mesh.Indices[t+2]].Sub(v0)
	return e1.Cross(e2).Y() >= 0
}

// SaveOBJ writes the mesh to path, creating parent directories.
func SaveOBJ(path string, mesh *rtin.TerrainMeshData, size float32) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteOBJ(w, mesh, size)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
