package rtin

import (
	"fmt"
	"math/bits"

	"github.com/go-gl/mathgl/mgl32"
)

// BinaryNode names a node of an implicit binary tree of right triangles.
//
//	    1
//	   / \
//	  2   3
//
// Ids 0 and 1 are never valid: the two root triangles are 2 and 3.
type BinaryNode uint32

// Triangle2D holds the three corners of a triangle in pixel space. The first
// two vertices span the hypotenuse, the third is the right-angle corner.
type Triangle2D struct {
	Vertices [3]mgl32.Vec2
}

// NewBinaryNode returns the node with the given id. It panics for ids below 2.
func NewBinaryNode(id uint32) BinaryNode {
	if id <= 1 {
		panic(fmt.Sprintf("rtin: binary node ids start at 2, got %d", id))
	}
	return BinaryNode(id)
}

// MSB returns the 1-based position of the most significant set bit, so
// 0b1000 yields 4.
func MSB(v uint32) uint32 {
	return uint32(bits.Len32(v))
}

// LevelStartIndex returns the first triangle index of a level.
func LevelStartIndex(level uint32) uint32 {
	return ((2 << level) - 1) &^ 1
}

// FromTriangleIndex returns the node with the given level-order triangle index.
func FromTriangleIndex(idx uint32) BinaryNode {
	var level, levelStart uint32
	for i := uint32(0); i < 32; i++ {
		start := LevelStartIndex(i)
		if idx < start {
			break
		}
		level, levelStart = i, start
	}
	return NewBinaryNode((1 << (level + 1)) + (idx - levelStart))
}

// ID returns the raw node id.
func (n BinaryNode) ID() uint32 {
	return uint32(n)
}

// Level returns the depth of the node, the root triangles being level 1.
func (n BinaryNode) Level() uint32 {
	return MSB(uint32(n)) - 1
}

// IndexInLevel returns the position of the node among its level siblings.
func (n BinaryNode) IndexInLevel() uint32 {
	return uint32(n) - (1 << (MSB(uint32(n)) - 1))
}

// Children returns the left and right child nodes.
func (n BinaryNode) Children() (BinaryNode, BinaryNode) {
	left := uint32(n) * 2
	return NewBinaryNode(left), NewBinaryNode(left + 1)
}

// TriangleIndex returns the level-order triangle index of the node.
func (n BinaryNode) TriangleIndex() uint32 {
	return LevelStartIndex(n.Level()-1) + n.IndexInLevel()
}

// stepsToNode records the branch taken at each level from the root, true
// meaning a left (even) step.
func (n BinaryNode) stepsToNode() []bool {
	level := n.Level()
	steps := make([]bool, level)
	val := uint32(n)
	for i := uint32(0); val > 1; i++ {
		if val%2 == 0 {
			steps[level-1-i] = true
		}
		val /= 2
	}
	return steps
}

// TriangleCoords returns the corners of the node's triangle on a grid with
// gridSize pixels per side.
func (n BinaryNode) TriangleCoords(gridSize float32) Triangle2D {
	steps := n.stepsToNode()
	last := gridSize - 1

	var a, b, c mgl32.Vec2
	if steps[0] {
		a, b, c = mgl32.Vec2{last, last}, mgl32.Vec2{0, 0}, mgl32.Vec2{0, last}
	} else {
		a, b, c = mgl32.Vec2{0, 0}, mgl32.Vec2{last, last}, mgl32.Vec2{last, 0}
	}

	for _, left := range steps[1:] {
		mid := a.Add(b).Mul(0.5)
		if left {
			a, b, c = c, a, mid
		} else {
			a, b, c = b, c, mid
		}
	}

	return Triangle2D{Vertices: [3]mgl32.Vec2{a, b, c}}
}

// MidpointPixelCoords returns the midpoint of the triangle's hypotenuse.
func (n BinaryNode) MidpointPixelCoords(gridSize float32) mgl32.Vec2 {
	tri := n.TriangleCoords(gridSize)
	return tri.Vertices[0].Add(tri.Vertices[1]).Mul(0.5)
}

// ErrorsVecIndex flattens the hypotenuse midpoint into an error grid index.
func (n BinaryNode) ErrorsVecIndex(gridSize float32) int {
	mid := n.MidpointPixelCoords(gridSize)
	return int(mid[1]*gridSize + mid[0])
}

func (n BinaryNode) String() string {
	return fmt.Sprintf("BinaryNode(%d)", uint32(n))
}
