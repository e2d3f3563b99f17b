package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/slenderish/pkg/wfc"
)

// OverlayVertex is a coloured vertex of the tile debug overlay.
type OverlayVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// TileOverlay generates debug geometry for a solved tile grid, laid out in
// grid space with cell (1, 1) at the origin.
type TileOverlay struct {
	size     uint32
	cells    []wfc.TileCell
	cellSize float32
}

// NewTileOverlay creates an overlay for a size x size grid.
func NewTileOverlay(size uint32, cells []wfc.TileCell, cellSize float32) *TileOverlay {
	return &TileOverlay{size: size, cells: cells, cellSize: cellSize}
}

// GridLines generates a line list outlining every cell.
func (t *TileOverlay) GridLines(height float32) []OverlayVertex {
	var vertices []OverlayVertex
	gridColor := [3]float32{0.5, 0.5, 0.5}
	extent := float32(t.size) * t.cellSize

	for i := uint32(0); i <= t.size; i++ {
		p := float32(i) * t.cellSize
		vertices = append(vertices,
			// Line along Z
			OverlayVertex{p, height, 0, gridColor[0], gridColor[1], gridColor[2]},
			OverlayVertex{p, height, extent, gridColor[0], gridColor[1], gridColor[2]},
			// Line along X
			OverlayVertex{0, height, p, gridColor[0], gridColor[1], gridColor[2]},
			OverlayVertex{extent, height, p, gridColor[0], gridColor[1], gridColor[2]},
		)
	}

	return vertices
}

// CellQuads generates one coloured quad per cell, 6 vertices (2 triangles)
// each, wound counter-clockwise seen from +Y.
func (t *TileOverlay) CellQuads(height float32) []OverlayVertex {
	vertices := make([]OverlayVertex, 0, len(t.cells)*6)

	for _, c := range t.cells {
		color := tileColor(c.ID)

		// Quad corners
		x0 := float32(c.X-1) * t.cellSize
		z0 := float32(c.Z-1) * t.cellSize
		x1 := x0 + t.cellSize
		z1 := z0 + t.cellSize

		// Triangle 1
		vertices = append(vertices,
			OverlayVertex{x0, height, z0, color[0], color[1], color[2]},
			OverlayVertex{x0, height, z1, color[0], color[1], color[2]},
			OverlayVertex{x1, height, z1, color[0], color[1], color[2]},
		)

		// Triangle 2
		vertices = append(vertices,
			OverlayVertex{x0, height, z0, color[0], color[1], color[2]},
			OverlayVertex{x1, height, z1, color[0], color[1], color[2]},
			OverlayVertex{x1, height, z0, color[0], color[1], color[2]},
		)
	}

	return vertices
}

// tileColor returns the overlay color for a tile type, walls and corners
// shaded by rotation.
func tileColor(id wfc.TileID) [3]float32 {
	shade := 0.5 + float32(id.Rotation().Degrees())/540
	switch id.Type() {
	case wfc.TypeFloor:
		return [3]float32{0.0, 0.5, 0.0} // Green for floor
	case wfc.TypeWall:
		return [3]float32{shade, 0.1, 0.1}
	case wfc.TypeCorner:
		return [3]float32{0.1, 0.1, shade}
	default:
		return [3]float32{1.0, 0.0, 1.0} // Magenta for unknown
	}
}

// WriteOverlayOBJ writes the overlay as an OBJ with per-vertex colors
// (v x y z r g b): the cell quads as faces in group "cells" and the grid
// line list as line elements in group "grid".
func WriteOverlayOBJ(w io.Writer, quads, lines []OverlayVertex) error {
	if len(quads)%3 != 0 {
		return fmt.Errorf("overlay has %d quad vertices, not a triangle list", len(quads))
	}
	if len(lines)%2 != 0 {
		return fmt.Errorf("overlay has %d grid vertices, not a line list", len(lines))
	}

	bw := bufio.NewWriter(w)
	writeVertices := func(vertices []OverlayVertex) {
		for _, v := range vertices {
			fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", v.X, v.Y, v.Z, v.R, v.G, v.B)
		}
	}

	bw.WriteString("g cells\n")
	writeVertices(quads)
	for i := 1; i+2 <= len(quads); i += 3 {
		fmt.Fprintf(bw, "f %d %d %d\n", i, i+1, i+2)
	}

	// OBJ indices are global, so grid vertices follow the quads.
	bw.WriteString("g grid\n")
	writeVertices(lines)
	base := len(quads)
	for i := 1; i+1 <= len(lines); i += 2 {
		fmt.Fprintf(bw, "l %d %d\n", base+i, base+i+1)
	}
	return bw.Flush()
}

var tileGlyphs = map[wfc.TileID]byte{
	wfc.Floor:     '.',
	wfc.Wall0:     '|',
	wfc.Wall90:    '-',
	wfc.Wall180:   '!',
	wfc.Wall270:   '=',
	wfc.Corner0:   'r',
	wfc.Corner90:  '7',
	wfc.Corner180: 'J',
	wfc.Corner270: 'L',
}

// WriteTileMap prints the grid as text, one glyph per cell and the highest
// row first. Missing cells print as a space.
func WriteTileMap(w io.Writer, size uint32, cells []wfc.TileCell) error {
	rows := make([][]byte, size)
	for i := range rows {
		rows[i] = make([]byte, size)
		for j := range rows[i] {
			rows[i][j] = ' '
		}
	}

	for _, c := range cells {
		if c.X < 1 || c.Z < 1 || c.X > size || c.Z > size {
			continue
		}
		glyph, ok := tileGlyphs[c.ID]
		if !ok {
			glyph = '?'
		}
		rows[size-c.Z][c.X-1] = glyph
	}

	bw := bufio.NewWriter(w)
	for _, row := range rows {
		bw.Write(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
