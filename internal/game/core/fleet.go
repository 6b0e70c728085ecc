package core

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Ship is one contiguous run of segments on a board.
type Ship struct {
	ID    int
	Size  int
	Cells []Coordinate
	Hits  int
}

// IsSunk reports whether every segment has been hit.
func (s *Ship) IsSunk() bool { return s.Hits >= len(s.Cells) }

// Fleet indexes the ships of a board so a hit can be traced back to its ship.
type Fleet struct {
	ships []*Ship
	index *swiss.Map[int, int] // board index -> ship ID
	size  int
}

// FleetFromBoard groups orthogonally connected ship segments (shot or not) into ships.
func FleetFromBoard(b *Board) *Fleet {
	f := &Fleet{
		index: swiss.NewMap[int, int](uint32(len(b.T) / 2)),
		size:  b.N,
	}

	for idx, cell := range b.T {
		if !(cell.IsShip() || cell.IsHit()) || f.index.Has(idx) {
			continue
		}

		ship := &Ship{ID: len(f.ships)}
		stack := []int{idx}
		f.index.Put(idx, ship.ID)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			c := b.CoordOf(cur)
			ship.Cells = append(ship.Cells, c)
			if b.T[cur].IsHit() {
				ship.Hits++
			} else if tag := b.T[cur].ShipSize(); tag > ship.Size {
				ship.Size = tag
			}

			for _, n := range c.Neighbors() {
				if !b.InBounds(n) {
					continue
				}
				ni := n.ToIndex(b.N)
				nc := b.T[ni]
				if (nc.IsShip() || nc.IsHit()) && !f.index.Has(ni) {
					f.index.Put(ni, ship.ID)
					stack = append(stack, ni)
				}
			}
		}
		if ship.Size == 0 {
			ship.Size = len(ship.Cells)
		}
		f.ships = append(f.ships, ship)
	}
	return f
}

// ShipAt returns the ship occupying c.
func (f *Fleet) ShipAt(c Coordinate) (*Ship, error) {
	if !c.IsValid(f.size) {
		return nil, fmt.Errorf("%s: %w", c, ErrOutOfBounds)
	}
	id, ok := f.index.Get(c.ToIndex(f.size))
	if !ok {
		return nil, fmt.Errorf("%s: %w", c, ErrUnknownShip)
	}
	return f.ships[id], nil
}

// RecordHit registers a fresh hit at c and reports whether it sank the ship.
func (f *Fleet) RecordHit(c Coordinate) (*Ship, bool, error) {
	ship, err := f.ShipAt(c)
	if err != nil {
		return nil, false, err
	}
	if ship.IsSunk() {
		return ship, false, nil
	}
	ship.Hits++
	return ship, ship.IsSunk(), nil
}

// Ships returns every ship in discovery order.
func (f *Fleet) Ships() []*Ship { return f.ships }

// Afloat counts ships with at least one unhit segment.
func (f *Fleet) Afloat() int {
	n := 0
	for _, s := range f.ships {
		if !s.IsSunk() {
			n++
		}
	}
	return n
}
