package world

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/slenderish/internal/config"
	"github.com/Faultbox/slenderish/internal/noise"
	"github.com/Faultbox/slenderish/pkg/rtin"
	"github.com/Faultbox/slenderish/pkg/wfc"
)

// Placement positions one solved tile in the world.
type Placement struct {
	Cell     wfc.TileCell
	Position mgl32.Vec3    // cell position in world space
	Local    wfc.Transform // mesh offset and rotation inside the cell
}

// Model returns the world matrix for the tile mesh.
func (p Placement) Model() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(p.Local.Mat4())
}

// TileLayout is a solved tile grid.
type TileLayout struct {
	Cells      []wfc.TileCell
	Placements []Placement
	Audit      wfc.AuditReport
}

// World is everything one generation run produces.
type World struct {
	Terrain    *rtin.TerrainMeshData
	Tiles      []wfc.TileCell
	Placements []Placement
	Audit      wfc.AuditReport
	Chunk      ChunkCoord // chunk holding the tile grid origin, (0, 0) for the default origin
}

// Generator runs the terrain and tile pipelines for one configuration.
type Generator struct {
	cfg   *config.Config
	log   *zap.Logger
	table *wfc.ConnectionTable
}

// NewGenerator validates cfg and returns a generator. A nil logger disables
// logging.
func NewGenerator(cfg *config.Config, log *zap.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{cfg: cfg, log: log, table: wfc.NewConnectionTable()}, nil
}

// track logs how long a stage took when the returned func is called.
func (g *Generator) track(stage string) func() {
	start := time.Now()
	return func() {
		g.log.Debug("stage finished", zap.String("stage", stage), zap.Duration("took", time.Since(start)))
	}
}

// Terrain samples the configured noise and builds the simplified mesh.
func (g *Generator) Terrain() (*rtin.TerrainMeshData, error) {
	defer g.track("terrain")()

	sampler, err := noise.New(g.cfg.Noise.Seed, g.cfg.NoiseLayers())
	if err != nil {
		return nil, fmt.Errorf("building sampler: %w", err)
	}

	tc := g.cfg.Terrain
	builder := rtin.NewBuilder(g.log.Named("rtin"))
	mesh := builder.Build(sampler, tc.HeightMultiplier, float32(tc.Size), tc.ErrorThreshold)

	b := mesh.Bounds()
	g.log.Info("terrain generated",
		zap.Int("size", tc.Size),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Float32("min_height", b.Min.Y()),
		zap.Float32("max_height", b.Max.Y()))

	return mesh, nil
}

// Tiles solves the tile grid, applying configured pins first.
func (g *Generator) Tiles() (*TileLayout, error) {
	defer g.track("tiles")()

	tc := g.cfg.Tiles
	grid := wfc.NewWaveGridWithOptions(uint32(tc.GridSize), wfc.Options{
		Rand:         rand.New(rand.NewSource(tc.Seed)),
		TriesAllowed: tc.TriesAllowed,
		Table:        g.table,
		Logger:       g.log.Named("wfc"),
	})

	for _, pin := range tc.Pins {
		id, err := wfc.ParseTileID(pin.Tile)
		if err != nil {
			return nil, err
		}
		if err := grid.Pin(pin.X, pin.Y, id); err != nil {
			return nil, fmt.Errorf("pinning (%d, %d): %w", pin.X, pin.Y, err)
		}
	}

	cells := grid.CollapseAllIntoVec()
	audit := g.table.Audit(cells)
	if len(audit.Violations) > 0 {
		g.log.Warn("tile adjacency violations",
			zap.Int("violations", len(audit.Violations)),
			zap.Float64("rate", audit.Rate()))
	}

	origin := mgl32.Vec3(tc.Origin)
	placements := make([]Placement, 0, len(cells))
	for _, c := range cells {
		placements = append(placements, Placement{
			Cell:     c,
			Position: c.GlobalPosition(origin, tc.CellSize),
			Local:    c.LocalTransform(tc.MeshSize),
		})
	}

	g.log.Info("tiles generated",
		zap.Int("grid", tc.GridSize),
		zap.Int("cells", len(cells)),
		zap.Int("pinned", len(tc.Pins)),
		zap.Int("pairs", audit.Pairs))

	return &TileLayout{Cells: cells, Placements: placements, Audit: audit}, nil
}

// Generate runs both pipelines.
func (g *Generator) Generate() (*World, error) {
	mesh, err := g.Terrain()
	if err != nil {
		return nil, err
	}
	layout, err := g.Tiles()
	if err != nil {
		return nil, err
	}

	return &World{
		Terrain:    mesh,
		Tiles:      layout.Cells,
		Placements: layout.Placements,
		Audit:      layout.Audit,
		Chunk:      XAndYFromPos(mgl32.Vec3(g.cfg.Tiles.Origin), g.cfg.Terrain.ChunkSize),
	}, nil
}
