package wfc

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a tile mesh relative to its cell.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// Mat4 returns the model matrix, rotation applied first.
func (t Transform) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).Mul4(t.Rotation.Mat4())
}

// Apply transforms a point.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// LocalTransform returns the offset and rotation of the tile mesh inside its
// cell. Tile meshes are meshSize units wide and authored around the origin,
// so walls and corners are pushed towards the edge they face and floors are
// sunk to the cell bottom.
func (c TileCell) LocalTransform(meshSize float32) Transform {
	t := Transform{Rotation: mgl32.QuatIdent()}
	offset := meshSize/2 - 0.5

	if c.ID.Type() == TypeFloor {
		t.Translation[1] -= offset
		return t
	}

	rot := c.ID.Rotation()
	switch rot {
	case Rot0:
		t.Translation[2] -= offset
	case Rot90:
		t.Translation[0] += offset
	case Rot180:
		t.Translation[2] += offset
	case Rot270:
		t.Translation[0] -= offset
	}
	t.Rotation = rot.Quat()
	return t
}

// GlobalPosition returns the world position of the cell for a grid anchored
// at origin with cells size units wide. Grid rows run along -X and columns
// along +Z.
func (c TileCell) GlobalPosition(origin mgl32.Vec3, size float32) mgl32.Vec3 {
	return mgl32.Vec3{
		origin.X() - size*float32(c.Z-1),
		origin.Y(),
		origin.Z() + size*float32(c.X-1),
	}
}
