// Package world turns configuration into generated terrain and tile layouts.
package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord addresses a square chunk of the world on the XZ plane. Chunk n
// covers (size*(n-1), size*n], so positions in (0, size] fall into chunk 1
// and the world origin itself, sitting on the boundary, into chunk 0.
type ChunkCoord struct {
	X, Y int
}

// XAndYFromPos returns the chunk containing pos. The Y component of pos is
// ignored; the chunk's Y follows the world Z axis.
func XAndYFromPos(pos mgl32.Vec3, chunkSize float32) ChunkCoord {
	return ChunkCoord{
		X: int(math.Ceil(float64(pos.X() / chunkSize))),
		Y: int(math.Ceil(float64(pos.Z() / chunkSize))),
	}
}

// Origin returns the lowest corner of the chunk, the inverse of
// XAndYFromPos up to the chunk boundary.
func (c ChunkCoord) Origin(chunkSize float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X-1) * chunkSize, 0, float32(c.Y-1) * chunkSize}
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}
