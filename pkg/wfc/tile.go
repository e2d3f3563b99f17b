// Package wfc assigns wall, corner and floor tiles to the cells of a square
// grid with wave function collapse.
//
// Every cell starts as a wave of all possible tiles. The solver repeatedly
// collapses the cell with the fewest remaining candidates and removes the
// candidates of its neighbours whose edges no longer fit.
package wfc

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// TileType is the category stored in the low four bits of a TileID.
type TileType uint8

// Tile categories.
const (
	TypeFloor  TileType = 0b0000_0000
	TypeWall   TileType = 0b0000_0001
	TypeCorner TileType = 0b0000_0010
)

// Rotation is the quarter turn stored in bits 4-6 of a TileID.
type Rotation uint8

// Rotations. The packing is kept stable because tile layouts are stored by
// their raw byte.
const (
	Rot0   Rotation = 0b001_0000
	Rot90  Rotation = 0b011_0000
	Rot180 Rotation = 0b101_0000
	Rot270 Rotation = 0b111_0000
)

const (
	typeMask     = 0b0000_1111
	rotationMask = 0b0111_0000
)

// TileID packs a tile category and rotation into one byte.
type TileID uint8

// The tile universe: floor plus walls and corners at each rotation.
const (
	Floor     = TileID(TypeFloor)
	Wall0     = TileID(uint8(TypeWall) | uint8(Rot0))
	Wall90    = TileID(uint8(TypeWall) | uint8(Rot90))
	Wall180   = TileID(uint8(TypeWall) | uint8(Rot180))
	Wall270   = TileID(uint8(TypeWall) | uint8(Rot270))
	Corner0   = TileID(uint8(TypeCorner) | uint8(Rot0))
	Corner90  = TileID(uint8(TypeCorner) | uint8(Rot90))
	Corner180 = TileID(uint8(TypeCorner) | uint8(Rot180))
	Corner270 = TileID(uint8(TypeCorner) | uint8(Rot270))
)

// AllTileIDs lists every valid tile in a fixed order. Candidate selection
// iterates in this order, which keeps seeded solves reproducible.
var AllTileIDs = [...]TileID{
	Floor,
	Wall0, Wall90, Wall180, Wall270,
	Corner0, Corner90, Corner180, Corner270,
}

// NewTileID combines a type and a rotation. Floor tiles carry no rotation, so
// a zero rotation is the only one accepted for TypeFloor. It panics on
// anything outside the tile universe.
func NewTileID(typ TileType, rot Rotation) TileID {
	id := TileID(uint8(typ) | uint8(rot))
	if !id.Valid() {
		panic(fmt.Sprintf("wfc: no tile with type %d and rotation %#b", typ, rot))
	}
	return id
}

// Type returns the tile category.
func (id TileID) Type() TileType {
	return TileType(id & typeMask)
}

// Rotation returns the tile's quarter turn. Ids without rotation bits,
// including Floor, report Rot0.
func (id TileID) Rotation() Rotation {
	rot := Rotation(id & rotationMask)
	if rot == 0 {
		return Rot0
	}
	return rot
}

// Valid reports whether id belongs to the tile universe. Walls and corners
// without rotation bits are accepted as rotation 0.
func (id TileID) Valid() bool {
	if uint8(id)&^(typeMask|rotationMask) != 0 {
		return false
	}
	switch id.Type() {
	case TypeFloor:
		return id&rotationMask == 0
	case TypeWall, TypeCorner:
		switch Rotation(id & rotationMask) {
		case 0, Rot0, Rot90, Rot180, Rot270:
			return true
		}
	}
	return false
}

// canonical maps bare walls and corners onto their rotation 0 variant.
func (id TileID) canonical() TileID {
	if id.Type() != TypeFloor && id&rotationMask == 0 {
		return id | TileID(Rot0)
	}
	return id
}

// String returns names such as FLOOR, WALL_90 or CORNER_270.
func (id TileID) String() string {
	var prefix string
	switch id.Type() {
	case TypeFloor:
		if id&rotationMask == 0 {
			return "FLOOR"
		}
		prefix = "FLOOR_"
	case TypeWall:
		prefix = "WALL_"
	case TypeCorner:
		prefix = "CORNER_"
	default:
		return fmt.Sprintf("TileID(%#02x)", uint8(id))
	}
	return fmt.Sprintf("%s%d", prefix, id.Rotation().Degrees())
}

// ParseTileID is the inverse of String for valid tiles.
func ParseTileID(s string) (TileID, error) {
	for _, id := range AllTileIDs {
		if strings.EqualFold(s, id.String()) {
			return id, nil
		}
	}
	switch strings.ToUpper(s) {
	case "EMPTY":
		return Floor, nil
	case "WALL":
		return Wall0, nil
	case "CORNER":
		return Corner0, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTile, s)
}

// MarshalText implements encoding.TextMarshaler.
func (id TileID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %#02x", ErrInvalidTile, uint8(id))
	}
	return []byte(id.canonical().String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TileID) UnmarshalText(text []byte) error {
	parsed, err := ParseTileID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Degrees returns the rotation in degrees: 0, 90, 180 or 270.
func (r Rotation) Degrees() int {
	switch r {
	case Rot90:
		return 90
	case Rot180:
		return 180
	case Rot270:
		return 270
	default:
		return 0
	}
}

// Quat returns the rotation about +Y. Quarter turns are clockwise seen from
// above, so 90 degrees maps to a negative angle.
func (r Rotation) Quat() mgl32.Quat {
	switch r {
	case Rot90:
		return mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{0, 1, 0})
	case Rot180:
		return mgl32.QuatRotate(math.Pi, mgl32.Vec3{0, 1, 0})
	case Rot270:
		return mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})
	default:
		return mgl32.QuatIdent()
	}
}

// Orientation names one edge of a tile.
type Orientation uint8

// Tile edges.
const (
	Top Orientation = iota
	Right
	Bottom
	Left
)

// Orientations lists the edges in table order.
var Orientations = [4]Orientation{Top, Right, Bottom, Left}

// Invert returns the opposite edge.
func (o Orientation) Invert() Orientation {
	switch o {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return Left
	}
}

func (o Orientation) String() string {
	switch o {
	case Top:
		return "Top"
	case Right:
		return "Right"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	}
	return fmt.Sprintf("Orientation(%d)", uint8(o))
}

// Connection is the kind of joint a tile offers on one edge.
type Connection uint8

// Connection kinds.
const (
	ConnNone Connection = iota
	ConnFirst
	ConnSecond
	ConnEither
)

// Matches compares two connections. ConnEither matches anything except
// ConnNone; every other kind only matches itself.
func (c Connection) Matches(other Connection) bool {
	if c == ConnEither {
		return other != ConnNone
	}
	if other == ConnEither {
		return c != ConnNone
	}
	return c == other
}

// Invert swaps First with Second and None with Either.
func (c Connection) Invert() Connection {
	switch c {
	case ConnNone:
		return ConnEither
	case ConnFirst:
		return ConnSecond
	case ConnSecond:
		return ConnFirst
	default:
		return ConnNone
	}
}

func (c Connection) String() string {
	switch c {
	case ConnNone:
		return "None"
	case ConnFirst:
		return "First"
	case ConnSecond:
		return "Second"
	case ConnEither:
		return "Either"
	}
	return fmt.Sprintf("Connection(%d)", uint8(c))
}

// ConnectionSocket describes what an edge offers and accepts. A symmetric
// socket offers and accepts the same connection; a directional socket offers
// its male side and accepts on its female side.
type ConnectionSocket struct {
	Male        Connection
	Female      Connection
	Directional bool
}

// Symmetric returns a socket that offers and accepts c.
func Symmetric(c Connection) ConnectionSocket {
	return ConnectionSocket{Male: c, Female: c}
}

// MaleFemale returns a directional socket.
func MaleFemale(male, female Connection) ConnectionSocket {
	return ConnectionSocket{Male: male, Female: female, Directional: true}
}

// Accepts reports whether s accepts what incoming offers.
func (s ConnectionSocket) Accepts(incoming ConnectionSocket) bool {
	return s.Female.Matches(incoming.Male)
}

func (s ConnectionSocket) String() string {
	if s.Directional {
		return fmt.Sprintf("%s/%s", s.Male, s.Female)
	}
	return s.Male.String()
}

// ConnectionTable maps every tile to its four edge sockets.
type ConnectionTable struct {
	sockets map[TileID][4]ConnectionSocket
}

// NewConnectionTable builds the table for the tile universe.
func NewConnectionTable() *ConnectionTable {
	row := func(top, right, bottom, left Connection) [4]ConnectionSocket {
		return [4]ConnectionSocket{Symmetric(top), Symmetric(right), Symmetric(bottom), Symmetric(left)}
	}

	return &ConnectionTable{sockets: map[TileID][4]ConnectionSocket{
		Floor:     row(ConnEither, ConnEither, ConnEither, ConnEither),
		Wall0:     row(ConnFirst, ConnNone, ConnFirst, ConnNone),
		Corner0:   row(ConnNone, ConnFirst, ConnFirst, ConnNone),
		Wall90:    row(ConnNone, ConnFirst, ConnNone, ConnFirst),
		Corner90:  row(ConnNone, ConnNone, ConnSecond, ConnFirst),
		Wall180:   row(ConnSecond, ConnNone, ConnSecond, ConnNone),
		Corner180: row(ConnSecond, ConnNone, ConnNone, ConnSecond),
		Wall270:   row(ConnNone, ConnSecond, ConnNone, ConnSecond),
		Corner270: row(ConnFirst, ConnSecond, ConnNone, ConnNone),
	}}
}

// IDs returns the tiles in the table in AllTileIDs order.
func (t *ConnectionTable) IDs() []TileID {
	ids := make([]TileID, 0, len(t.sockets))
	for _, id := range AllTileIDs {
		if _, ok := t.sockets[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Has reports whether the table knows id.
func (t *ConnectionTable) Has(id TileID) bool {
	_, ok := t.sockets[id.canonical()]
	return ok && id.Valid()
}

// Socket returns the socket of id on one edge. It panics for tiles missing
// from the table.
func (t *ConnectionTable) Socket(id TileID, side Orientation) ConnectionSocket {
	sockets, ok := t.sockets[id.canonical()]
	if !ok {
		panic(fmt.Sprintf("wfc: tile %s has no connection table entry", id))
	}
	return sockets[side]
}

// Compatible reports whether candidate can sit next to neighbor when the
// neighbor lies on the given side of the candidate.
func (t *ConnectionTable) Compatible(candidate, neighbor TileID, side Orientation) bool {
	return t.Socket(candidate, side).Accepts(t.Socket(neighbor, side.Invert()))
}
