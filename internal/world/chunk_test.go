package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/slenderish/internal/config"
)

func TestXAndYFromPos(t *testing.T) {
	tests := []struct {
		pos      mgl32.Vec3
		size     float32
		expected ChunkCoord
	}{
		{mgl32.Vec3{50, 7, 105}, 50, ChunkCoord{1, 3}},
		{mgl32.Vec3{0.5, 0, 0.5}, 50, ChunkCoord{1, 1}},
		{mgl32.Vec3{100, 0, 100.01}, 50, ChunkCoord{2, 3}},
		{mgl32.Vec3{0, 0, 0}, 50, ChunkCoord{0, 0}},
		{mgl32.Vec3{-10, 0, 0}, 50, ChunkCoord{0, 0}},
		{mgl32.Vec3{-60, 0, 30}, 50, ChunkCoord{-1, 1}},
	}

	for _, tt := range tests {
		if got := XAndYFromPos(tt.pos, tt.size); got != tt.expected {
			t.Errorf("%v / %v: expected %s, got %s", tt.pos, tt.size, tt.expected, got)
		}
	}
}

func TestChunkOrigin(t *testing.T) {
	c := ChunkCoord{2, 3}
	if got := c.Origin(50); got != (mgl32.Vec3{50, 0, 100}) {
		t.Errorf("expected (50, 0, 100), got %v", got)
	}

	// Just past the origin falls back into the same chunk.
	inside := c.Origin(50).Add(mgl32.Vec3{1, 0, 1})
	if got := XAndYFromPos(inside, 50); got != c {
		t.Errorf("expected %s, got %s", c, got)
	}
}

func TestDefaultOriginIsOnChunkBoundary(t *testing.T) {
	cfg := config.Default()
	origin := mgl32.Vec3(cfg.Tiles.Origin)

	if got := XAndYFromPos(origin, cfg.Terrain.ChunkSize); got != (ChunkCoord{0, 0}) {
		t.Errorf("expected (0, 0), got %s", got)
	}

	// The first tile cell sits at the origin, the next one steps into chunk 1.
	next := origin.Add(mgl32.Vec3{0, 0, cfg.Tiles.CellSize})
	if got := XAndYFromPos(next, cfg.Terrain.ChunkSize); got != (ChunkCoord{0, 1}) {
		t.Errorf("expected (0, 1), got %s", got)
	}
}
