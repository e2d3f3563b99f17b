package wfc

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/slenderish/pkg/heapmap"
)

// DefaultSeed seeds the random source when Options.Rand is nil.
const DefaultSeed = 1

var (
	// ErrOutOfBounds is returned for coordinates outside [1, size].
	ErrOutOfBounds = errors.New("wfc: cell out of bounds")
	// ErrAlreadyCollapsed is returned when pinning a cell that already holds a tile.
	ErrAlreadyCollapsed = errors.New("wfc: cell already collapsed")
	// ErrInvalidTile is returned for ids outside the tile universe.
	ErrInvalidTile = errors.New("wfc: invalid tile")
)

// Rand is the randomness the solver needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Options configures a WaveGrid. Zero values select the defaults.
type Options struct {
	// Rand picks among the candidates of a collapsing cell.
	Rand Rand
	// TriesAllowed caps how many candidates one propagation step may remove
	// from a neighbour. Zero or less removes every incompatible candidate.
	TriesAllowed int
	// Table supplies the edge sockets. Defaults to NewConnectionTable().
	Table *ConnectionTable
	// Logger receives solver diagnostics.
	Logger *zap.Logger
}

// TileCell is one solved cell. Z is the grid row.
type TileCell struct {
	ID TileID `yaml:"tile"`
	X  uint32 `yaml:"x"`
	Z  uint32 `yaml:"z"`
}

// gridCell is either a waveCell or a collapsedCell.
type gridCell interface {
	heapmap.Heapable
	entropy() int
}

type waveCell struct {
	possible mapset.Set[TileID]
	x, y     uint32
}

func (c waveCell) X() uint32    { return c.x }
func (c waveCell) Y() uint32    { return c.y }
func (c waveCell) entropy() int { return c.possible.Size() }

type collapsedCell struct {
	tile TileID
	x, y uint32
}

func (c collapsedCell) X() uint32 { return c.x }
func (c collapsedCell) Y() uint32 { return c.y }

// entropy sorts collapsed cells after every wave.
func (c collapsedCell) entropy() int { return math.MaxInt }

func lessCell(a, b gridCell) bool {
	if ea, eb := a.entropy(), b.entropy(); ea != eb {
		return ea < eb
	}
	if a.Y() != b.Y() {
		return a.Y() < b.Y()
	}
	return a.X() < b.X()
}

// WaveGrid solves a size x size grid. Cells are addressed 1-based.
type WaveGrid struct {
	size  uint32
	cells *heapmap.MinHeapMap[gridCell]
	table *ConnectionTable
	rng   Rand
	tries int
	log   *zap.Logger
}

// NewWaveGrid creates a grid with default options.
func NewWaveGrid(size uint32) *WaveGrid {
	return NewWaveGridWithOptions(size, Options{})
}

// NewWaveGridWithOptions creates a grid where every cell may hold any tile
// of the table.
func NewWaveGridWithOptions(size uint32, opts Options) *WaveGrid {
	if opts.Table == nil {
		opts.Table = NewConnectionTable()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(DefaultSeed))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ids := opts.Table.IDs()
	cells := make([]gridCell, 0, size*size)
	for y := uint32(1); y <= size; y++ {
		for x := uint32(1); x <= size; x++ {
			possible := mapset.New[TileID]()
			for _, id := range ids {
				possible.Put(id)
			}
			cells = append(cells, waveCell{possible: possible, x: x, y: y})
		}
	}

	return &WaveGrid{
		size:  size,
		cells: heapmap.FromSlice(cells, lessCell),
		table: opts.Table,
		rng:   opts.Rand,
		tries: opts.TriesAllowed,
		log:   opts.Logger,
	}
}

// Size returns the side length of the grid.
func (g *WaveGrid) Size() uint32 {
	return g.size
}

// Pin collapses a cell to id before solving and constrains its neighbours.
func (g *WaveGrid) Pin(x, y uint32, id TileID) error {
	if x < 1 || y < 1 || x > g.size || y > g.size {
		return fmt.Errorf("%w: (%d, %d) in grid of %d", ErrOutOfBounds, x, y, g.size)
	}
	if !g.table.Has(id) {
		return fmt.Errorf("%w: %#02x", ErrInvalidTile, uint8(id))
	}
	id = id.canonical()

	cell, ok := g.cells.Lookup(x, y)
	if !ok {
		return fmt.Errorf("%w: (%d, %d)", ErrAlreadyCollapsed, x, y)
	}
	switch c := cell.(type) {
	case collapsedCell:
		return fmt.Errorf("%w: (%d, %d)", ErrAlreadyCollapsed, x, y)
	case waveCell:
		if !c.possible.Has(id) {
			return fmt.Errorf("%w: %s no longer fits at (%d, %d)", ErrInvalidTile, id, x, y)
		}
	}

	err := g.cells.LookupAndMutate(x, y, func(c *gridCell) {
		*c = collapsedCell{tile: id, x: x, y: y}
	})
	if err != nil {
		return err
	}
	g.propagate(x, y, id)
	return nil
}

// CollapseAllIntoVec collapses every remaining cell and returns them in the
// order they were solved. Pinned cells come last.
func (g *WaveGrid) CollapseAllIntoVec() []TileCell {
	out := make([]TileCell, 0, g.cells.Len())

	for g.cells.Len() > 0 {
		cell, err := g.cells.Pop()
		if err != nil {
			break
		}

		switch c := cell.(type) {
		case collapsedCell:
			out = append(out, TileCell{ID: c.tile, X: c.x, Z: c.y})
		case waveCell:
			tile := g.forceCollapse(c)
			g.propagate(c.x, c.y, tile)
			out = append(out, TileCell{ID: tile, X: c.x, Z: c.y})
		}
	}

	g.log.Debug("grid collapsed", zap.Uint32("size", g.size), zap.Int("cells", len(out)))
	return out
}

// forceCollapse picks a random candidate of the wave. Floor is only chosen
// when nothing else is left.
func (g *WaveGrid) forceCollapse(c waveCell) TileID {
	candidates := make([]TileID, 0, c.possible.Size())
	for _, id := range g.table.IDs() {
		if c.possible.Has(id) {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) == 0 {
		g.log.Warn("wave has no candidates, falling back to floor",
			zap.Uint32("x", c.x), zap.Uint32("y", c.y))
		return Floor
	}

	if len(candidates) > 1 {
		filtered := candidates[:0]
		for _, id := range candidates {
			if id != Floor {
				filtered = append(filtered, id)
			}
		}
		candidates = filtered
	}

	return candidates[g.rng.Intn(len(candidates))]
}

type neighbor struct {
	side Orientation
	x, y uint32
}

// neighbors returns the in-grid cells around (x, y) and the side of (x, y)
// they lie on.
func (g *WaveGrid) neighbors(x, y uint32) []neighbor {
	out := make([]neighbor, 0, 4)
	if x > 1 {
		out = append(out, neighbor{Left, x - 1, y})
	}
	if x < g.size {
		out = append(out, neighbor{Right, x + 1, y})
	}
	if y < g.size {
		out = append(out, neighbor{Top, x, y + 1})
	}
	if y > 1 {
		out = append(out, neighbor{Bottom, x, y - 1})
	}
	return out
}

// propagate removes candidates that no longer fit next to tile from the wave
// neighbours of (x, y).
func (g *WaveGrid) propagate(x, y uint32, tile TileID) {
	for _, n := range g.neighbors(x, y) {
		err := g.cells.LookupAndMutate(n.x, n.y, func(c *gridCell) {
			if w, ok := (*c).(waveCell); ok {
				g.constrain(w, tile, n.side.Invert())
			}
		})
		if err != nil && !errors.Is(err, heapmap.ErrLookupMiss) {
			g.log.Error("propagation failed", zap.Error(err))
		}
	}
}

// constrain drops the candidates of w that cannot have tile on the given
// side. A wave is never emptied: the last candidate always stays.
func (g *WaveGrid) constrain(w waveCell, tile TileID, side Orientation) {
	var remove []TileID
	for _, id := range g.table.IDs() {
		if g.tries > 0 && len(remove) >= g.tries {
			break
		}
		if w.possible.Has(id) && !g.table.Compatible(id, tile, side) {
			remove = append(remove, id)
		}
	}

	for _, id := range remove {
		if w.possible.Size() == 1 {
			g.log.Debug("keeping last candidate",
				zap.Uint32("x", w.x), zap.Uint32("y", w.y), zap.Stringer("tile", id))
			return
		}
		w.possible.Remove(id)
	}
}
