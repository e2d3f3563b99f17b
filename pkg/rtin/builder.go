// Package rtin builds simplified terrain meshes with a right-triangulated
// irregular network.
//
// A square height sample is split recursively into right triangles. Each
// triangle is addressed by a BinaryNode id, so the hierarchy never exists as
// an explicit tree. Triangles are kept coarse wherever the interpolation
// error of all the detail they hide stays under a threshold.
package rtin

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// PlaneSampler returns the terrain height at a grid position.
type PlaneSampler interface {
	Get(x, y float32) float32
}

// SamplerFunc adapts a plain function to PlaneSampler.
type SamplerFunc func(x, y float32) float32

// Get calls f(x, y).
func (f SamplerFunc) Get(x, y float32) float32 {
	return f(x, y)
}

// IsPowerOfTwo reports whether x is a positive power of two.
func IsPowerOfTwo(x uint32) bool {
	return x != 0 && x&(x-1) == 0
}

// Builder builds terrain meshes and reports build statistics to its logger.
type Builder struct {
	log *zap.Logger
}

// NewBuilder creates a builder. A nil logger disables logging.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log}
}

// BuildTerrain builds a mesh for a size x size terrain without logging.
func BuildTerrain(sampler PlaneSampler, heightMultiplier, size, errorThreshold float32) *TerrainMeshData {
	return NewBuilder(nil).Build(sampler, heightMultiplier, size, errorThreshold)
}

// Build samples a size x size terrain and returns the simplified mesh. Heights
// are scaled by heightMultiplier only when vertices are emitted, so
// errorThreshold is expressed in sampler units. size must be a power of two.
func (b *Builder) Build(sampler PlaneSampler, heightMultiplier, size, errorThreshold float32) *TerrainMeshData {
	if size < 2 || size != float32(uint32(size)) || !IsPowerOfTwo(uint32(size)) {
		panic(fmt.Sprintf("rtin: terrain size must be a power of two, got %v", size))
	}

	gridSize := size + 1
	errors := errorsVec(sampler, gridSize)

	var sum float32
	for _, e := range errors {
		sum += e
	}
	b.log.Debug("error grid built",
		zap.Float32("size", size),
		zap.Int("slots", len(errors)),
		zap.Float32("avg_error", sum/float32(len(errors))))

	nodes := selectNodes(size, errors, errorThreshold)

	mesh := &TerrainMeshData{
		Vertices: make([]mgl32.Vec3, 0, len(nodes)),
		Indices:  make([]uint32, 0, len(nodes)*3),
	}
	positions := make(map[uint32]uint32)

	for _, node := range nodes {
		tri := node.TriangleCoords(gridSize)
		for _, v := range tri.Vertices {
			key := uint32(v[1])*uint32(gridSize) + uint32(v[0])
			idx, ok := positions[key]
			if !ok {
				idx = uint32(len(mesh.Vertices))
				positions[key] = idx
				h := sampleCorner(sampler, gridSize, v) * heightMultiplier
				mesh.Vertices = append(mesh.Vertices, mgl32.Vec3{v[0], h, v[1]})
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
	}

	b.log.Debug("terrain mesh built",
		zap.Int("triangles", len(nodes)),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Float32("error_threshold", errorThreshold))

	return mesh
}

// sampleCorner samples the height at a pixel, clamping coordinates that fall
// past the last pixel of the grid.
func sampleCorner(sampler PlaneSampler, gridSize float32, corner mgl32.Vec2) float32 {
	x, y := corner[0], corner[1]
	if x >= gridSize {
		x = gridSize - 1
	}
	if y >= gridSize {
		y = gridSize - 1
	}
	return sampler.Get(x, y)
}

// errorsVec computes, for every triangle midpoint, the largest interpolation
// error of that triangle or any of its descendants. Triangles are visited
// from the finest level up so children are always computed first.
func errorsVec(sampler PlaneSampler, gridSize float32) []float32 {
	grid := uint32(gridSize)
	numTriangles := grid*grid*2 - 2
	numLevels := (MSB(grid) - 1) * 2
	lastLevelStart := LevelStartIndex(numLevels - 1)

	errors := make([]float32, grid*grid)

	for idx := int64(numTriangles) - 1; idx >= 0; idx-- {
		node := FromTriangleIndex(uint32(idx))

		tri := node.TriangleCoords(gridSize)
		h0 := sampleCorner(sampler, gridSize, tri.Vertices[0])
		h1 := sampleCorner(sampler, gridSize, tri.Vertices[1])
		interpolated := (h0 + h1) / 2
		actual := sampleCorner(sampler, gridSize, node.MidpointPixelCoords(gridSize))
		own := abs32(interpolated - actual)

		slot := node.ErrorsVecIndex(gridSize)
		if uint32(idx) >= lastLevelStart {
			errors[slot] = own
			continue
		}

		left, right := node.Children()
		errors[slot] = max(errors[slot], errors[left.ErrorsVecIndex(gridSize)], errors[right.ErrorsVecIndex(gridSize)], own)
	}

	return errors
}

// selectNodes walks the hierarchy from both root triangles and returns the
// coarsest triangles whose error is within the threshold.
func selectNodes(size float32, errors []float32, errorThreshold float32) []BinaryNode {
	s := uint32(size)
	sel := selector{
		gridSize:     size + 1,
		errors:       errors,
		threshold:    errorThreshold,
		numTriangles: s*s*2 - 2 + s*s*2,
	}
	sel.visit(0)
	sel.visit(1)
	return sel.nodes
}

type selector struct {
	gridSize     float32
	errors       []float32
	threshold    float32
	numTriangles uint32
	nodes        []BinaryNode
}

func (s *selector) visit(triangleIndex uint32) {
	node := FromTriangleIndex(triangleIndex)
	left, right := node.Children()

	leaf := right.TriangleIndex() >= s.numTriangles
	if leaf || s.errors[node.ErrorsVecIndex(s.gridSize)] <= s.threshold {
		s.nodes = append(s.nodes, node)
		return
	}

	s.visit(left.TriangleIndex())
	s.visit(right.TriangleIndex())
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
