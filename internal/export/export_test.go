package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/slenderish/pkg/rtin"
	"github.com/Faultbox/slenderish/pkg/wfc"
)

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

func TestWriteOBJ(t *testing.T) {
	flat := rtin.SamplerFunc(func(x, y float32) float32 { return 0 })
	mesh := rtin.BuildTerrain(flat, 1, 8, 0)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if got := countPrefix(lines, "v "); got != 4 {
		t.Errorf("expected 4 vertices, got %d", got)
	}
	if got := countPrefix(lines, "vt "); got != 4 {
		t.Errorf("expected 4 texture coordinates, got %d", got)
	}
	if got := countPrefix(lines, "vn "); got != 4 {
		t.Errorf("expected 4 normals, got %d", got)
	}
	if got := countPrefix(lines, "f "); got != 2 {
		t.Errorf("expected 2 faces, got %d", got)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "vn ") {
			continue
		}
		var x, y, z float32
		if _, err := fmt.Sscanf(l, "vn %g %g %g", &x, &y, &z); err != nil {
			t.Fatalf("unexpected normal line %q: %v", l, err)
		}
		if x != 0 || y != 1 || z != 0 {
			t.Errorf("expected upward normal, got %q", l)
		}
	}
}

func TestWriteOBJWindsUpward(t *testing.T) {
	mesh := &rtin.TerrainMeshData{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}},
		Indices:  []uint32{0, 1, 2},
	}
	if upward(mesh, 0) {
		t.Fatal("expected the test triangle to face down")
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "f 1/1/1 3/3/3 2/2/2") {
		t.Errorf("expected the face to be flipped, got:\n%s", buf.String())
	}
}

func TestSaveOBJCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "terrain.obj")
	mesh := rtin.BuildTerrain(rtin.SamplerFunc(func(x, y float32) float32 { return x }), 1, 4, 0)

	if err := SaveOBJ(path, mesh, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty file at %s (err=%v)", path, err)
	}
}

func TestTileLayoutRoundTrip(t *testing.T) {
	cells := []wfc.TileCell{
		{ID: wfc.Wall90, X: 1, Z: 2},
		{ID: wfc.Floor, X: 2, Z: 2},
		{ID: wfc.Corner270, X: 1, Z: 1},
		{ID: wfc.Wall0, X: 2, Z: 1},
	}

	var buf bytes.Buffer
	if err := WriteTileLayout(&buf, 2, cells); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "tile: WALL_90") {
		t.Errorf("expected tiles by name, got:\n%s", buf.String())
	}

	layout, err := ReadTileLayout(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.Size != 2 {
		t.Errorf("expected size 2, got %d", layout.Size)
	}
	if !reflect.DeepEqual(layout.Tiles, cells) {
		t.Errorf("expected %+v, got %+v", cells, layout.Tiles)
	}
}

func TestReadTileLayoutErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown tile", "size: 2\ntiles:\n  - {tile: ROOF_0, x: 1, z: 1}\n"},
		{"outside grid", "size: 2\ntiles:\n  - {tile: FLOOR, x: 3, z: 1}\n"},
		{"unknown field", "size: 2\nlayers: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTileLayout(strings.NewReader(tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSaveAndLoadTileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tiles.yaml")
	cells := wfc.NewWaveGrid(3).CollapseAllIntoVec()

	if err := SaveTileLayout(path, 3, cells); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	layout, err := LoadTileLayout(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(layout.Tiles, cells) {
		t.Error("expected the saved layout to load back unchanged")
	}
}

func TestTileOverlay(t *testing.T) {
	cells := []wfc.TileCell{{ID: wfc.Floor, X: 1, Z: 1}, {ID: wfc.Wall0, X: 2, Z: 1}}
	overlay := NewTileOverlay(2, cells, 4)

	if got := len(overlay.GridLines(0)); got != 12 {
		t.Errorf("expected 12 line vertices, got %d", got)
	}

	quads := overlay.CellQuads(0.1)
	if len(quads) != 12 {
		t.Fatalf("expected 12 quad vertices, got %d", len(quads))
	}
	if quads[0].G != 0.5 {
		t.Errorf("expected green floor, got %+v", quads[0])
	}
	if quads[6].X != 4 || quads[6].Z != 0 {
		t.Errorf("expected second cell to start at (4, 0), got (%v, %v)", quads[6].X, quads[6].Z)
	}

	grid := overlay.GridLines(0)

	var buf bytes.Buffer
	if err := WriteOverlayOBJ(&buf, quads, grid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got := countPrefix(lines, "v "); got != 24 {
		t.Errorf("expected 24 vertices, got %d", got)
	}
	if got := countPrefix(lines, "f "); got != 4 {
		t.Errorf("expected 4 faces, got %d", got)
	}
	if got := countPrefix(lines, "l "); got != 6 {
		t.Errorf("expected 6 grid lines, got %d", got)
	}
	if countPrefix(lines, "g cells") != 1 || countPrefix(lines, "g grid") != 1 {
		t.Errorf("expected cells and grid groups, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "l 13 14\n") || !strings.Contains(buf.String(), "l 23 24\n") {
		t.Errorf("expected grid lines indexed after the quads, got:\n%s", buf.String())
	}

	if err := WriteOverlayOBJ(&buf, quads[:4], grid); err == nil {
		t.Error("expected error for a partial triangle list")
	}
	if err := WriteOverlayOBJ(&buf, quads, grid[:3]); err == nil {
		t.Error("expected error for a partial line list")
	}
}

func TestWriteTileMap(t *testing.T) {
	cells := []wfc.TileCell{
		{ID: wfc.Corner0, X: 1, Z: 2},
		{ID: wfc.Wall90, X: 2, Z: 2},
		{ID: wfc.Floor, X: 1, Z: 1},
	}

	var buf bytes.Buffer
	if err := WriteTileMap(&buf, 2, cells); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := "r-\n. \n"; buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
