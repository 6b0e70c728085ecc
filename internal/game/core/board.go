package core

import "fmt"

// Cell is the state of a single grid position.
// 0 = water, 1..5 = unshot ship segment tagged with the ship's size,
// 6 = shot ship segment, 7 = shot water.
type Cell uint8

const (
	CellEmpty Cell = 0
	CellHit   Cell = 6
	CellMiss  Cell = 7

	MinShipSize = 1
	MaxShipSize = 5

	DefaultBoardSize = 10
)

// ShipCell returns the cell value for an unshot segment of a ship of the given size.
func ShipCell(size int) Cell { return Cell(size) }

func (c Cell) IsEmpty() bool { return c == CellEmpty }
func (c Cell) IsShip() bool  { return c >= MinShipSize && c <= MaxShipSize }
func (c Cell) IsHit() bool   { return c == CellHit }
func (c Cell) IsMiss() bool  { return c == CellMiss }
func (c Cell) IsShot() bool  { return c == CellHit || c == CellMiss }

// ShipSize returns the size tag of an unshot ship segment, or 0 for any other state.
func (c Cell) ShipSize() int {
	if !c.IsShip() {
		return 0
	}
	return int(c)
}

func (c Cell) String() string {
	switch {
	case c.IsEmpty():
		return "empty"
	case c.IsShip():
		return fmt.Sprintf("ship(%d)", int(c))
	case c.IsHit():
		return "hit"
	case c.IsMiss():
		return "miss"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// View is the read-only face of a board handed to presentation code.
type View interface {
	Size() int
	At(c Coordinate) Cell
}

// Board is one player's N×N grid.
type Board struct {
	N int
	T []Cell // length = N*N (row-major)
}

var _ View = (*Board)(nil)

// NewBoard returns an all-water board of dimension n.
func NewBoard(n int) *Board {
	return &Board{N: n, T: make([]Cell, n*n)}
}

func (b *Board) Size() int                  { return b.N }
func (b *Board) Idx(row, col int) int       { return row*b.N + col }
func (b *Board) RowCol(idx int) (int, int)  { return idx / b.N, idx % b.N }
func (b *Board) CoordOf(idx int) Coordinate { return FromIndex(idx, b.N) }

// InBounds checks if the coordinate lies on the board
func (b *Board) InBounds(c Coordinate) bool {
	return c.IsValid(b.N)
}

// At returns the cell at c, or CellEmpty when c is off the board.
func (b *Board) At(c Coordinate) Cell {
	if !b.InBounds(c) {
		return CellEmpty
	}
	return b.T[c.ToIndex(b.N)]
}

// Get returns the cell at c and fails with ErrOutOfBounds when c is off the board.
func (b *Board) Get(c Coordinate) (Cell, error) {
	if !b.InBounds(c) {
		return CellEmpty, fmt.Errorf("%s on %dx%d board: %w", c, b.N, b.N, ErrOutOfBounds)
	}
	return b.T[c.ToIndex(b.N)], nil
}

// Set writes v at c.
func (b *Board) Set(c Coordinate, v Cell) error {
	if !b.InBounds(c) {
		return fmt.Errorf("%s on %dx%d board: %w", c, b.N, b.N, ErrOutOfBounds)
	}
	b.T[c.ToIndex(b.N)] = v
	return nil
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := &Board{N: b.N, T: make([]Cell, len(b.T))}
	copy(cp.T, b.T)
	return cp
}

// CountNonEmpty returns how many cells hold anything other than unexplored water.
func (b *Board) CountNonEmpty() int {
	n := 0
	for _, c := range b.T {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// CountShipCells returns how many unshot ship segments remain.
func (b *Board) CountShipCells() int {
	n := 0
	for _, c := range b.T {
		if c.IsShip() {
			n++
		}
	}
	return n
}
