package world

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/slenderish/internal/config"
	"github.com/Faultbox/slenderish/pkg/wfc"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Terrain.Size = 16
	cfg.Terrain.ChunkSize = 50
	cfg.Tiles.GridSize = 6
	cfg.Tiles.Origin = [3]float32{50, 0, 105}
	return cfg
}

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Terrain.Size = 12

	if _, err := NewGenerator(cfg, nil); err == nil {
		t.Error("expected error for non power of two terrain size")
	}
}

func TestGenerate(t *testing.T) {
	cfg := smallConfig()
	cfg.Tiles.Pins = []config.PinConfig{{X: 3, Y: 3, Tile: "WALL_90"}}

	gen, err := NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Terrain.TriangleCount() < 2 {
		t.Errorf("expected at least 2 triangles, got %d", w.Terrain.TriangleCount())
	}
	b := w.Terrain.Bounds()
	if b.Min.X() != 0 || b.Max.X() != 16 || b.Min.Z() != 0 || b.Max.Z() != 16 {
		t.Errorf("expected terrain to span 0..16, got %v", b)
	}

	if len(w.Tiles) != 36 || len(w.Placements) != 36 {
		t.Fatalf("expected 36 tiles and placements, got %d and %d", len(w.Tiles), len(w.Placements))
	}
	if w.Chunk != (ChunkCoord{1, 3}) {
		t.Errorf("expected chunk (1, 3), got %s", w.Chunk)
	}

	pinned := false
	for i, p := range w.Placements {
		if p.Cell != w.Tiles[i] {
			t.Fatalf("placement %d does not match tile %d", i, i)
		}
		expected := p.Cell.GlobalPosition(mgl32.Vec3{50, 0, 105}, cfg.Tiles.CellSize)
		if p.Position != expected {
			t.Errorf("cell %+v: expected position %v, got %v", p.Cell, expected, p.Position)
		}
		if p.Cell.X == 3 && p.Cell.Z == 3 {
			pinned = p.Cell.ID == wfc.Wall90
		}
	}
	if !pinned {
		t.Error("expected the pinned cell to keep WALL_90")
	}

	if w.Audit.Pairs != 2*6*5 {
		t.Errorf("expected %d adjacent pairs, got %d", 2*6*5, w.Audit.Pairs)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	run := func() *World {
		gen, err := NewGenerator(smallConfig(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		w, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return w
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a.Terrain, b.Terrain) {
		t.Error("expected identical terrain for the same config")
	}
	if !reflect.DeepEqual(a.Tiles, b.Tiles) {
		t.Error("expected identical tiles for the same config")
	}
}

func TestPlacementModel(t *testing.T) {
	p := Placement{
		Cell:     wfc.TileCell{ID: wfc.Floor, X: 1, Z: 1},
		Position: mgl32.Vec3{4, 0, 8},
		Local:    wfc.TileCell{ID: wfc.Floor}.LocalTransform(4),
	}

	got := p.Model().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if got != (mgl32.Vec3{4, -1.5, 8}) {
		t.Errorf("expected (4, -1.5, 8), got %v", got)
	}
}
