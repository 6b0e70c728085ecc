package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"default board", DefaultBoardSize},
		{"small board", 5},
		{"minimum board", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard(tt.size)

			assert.Equal(t, tt.size, board.N)
			assert.Equal(t, tt.size, board.Size())
			assert.Len(t, board.T, tt.size*tt.size)
			for i, cell := range board.T {
				assert.Equal(t, CellEmpty, cell, "cell %d should start empty", i)
			}
		})
	}
}

func TestBoard_Idx(t *testing.T) {
	board := NewBoard(5)

	tests := []struct {
		row, col int
		expected int
	}{
		{0, 0, 0},
		{0, 4, 4},
		{1, 0, 5},
		{2, 2, 12},
		{4, 4, 24},
	}

	for _, tt := range tests {
		idx := board.Idx(tt.row, tt.col)
		assert.Equal(t, tt.expected, idx, "Idx(%d,%d) should be %d", tt.row, tt.col, tt.expected)

		row, col := board.RowCol(idx)
		assert.Equal(t, tt.row, row)
		assert.Equal(t, tt.col, col)
	}
}

func TestBoard_GetSet(t *testing.T) {
	board := NewBoard(4)

	require.NoError(t, board.Set(NewCoordinate(1, 2), ShipCell(3)))
	cell, err := board.Get(NewCoordinate(1, 2))
	require.NoError(t, err)
	assert.Equal(t, ShipCell(3), cell)
	assert.Equal(t, ShipCell(3), board.At(NewCoordinate(1, 2)))

	_, err = board.Get(NewCoordinate(4, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, board.Set(NewCoordinate(-1, 0), CellHit), ErrOutOfBounds)
	assert.Equal(t, CellEmpty, board.At(NewCoordinate(0, 9)), "off-board At reads as water")
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	board := NewBoard(3)
	require.NoError(t, board.Set(NewCoordinate(0, 0), ShipCell(1)))

	clone := board.Clone()
	require.NoError(t, clone.Set(NewCoordinate(0, 0), CellHit))

	assert.Equal(t, ShipCell(1), board.At(NewCoordinate(0, 0)))
	assert.Equal(t, CellHit, clone.At(NewCoordinate(0, 0)))
}

func TestBoard_Counts(t *testing.T) {
	board := NewBoard(3)
	board.T[0] = ShipCell(2)
	board.T[1] = ShipCell(2)
	board.T[4] = CellHit
	board.T[8] = CellMiss

	assert.Equal(t, 4, board.CountNonEmpty())
	assert.Equal(t, 2, board.CountShipCells())
}

func TestCell_Predicates(t *testing.T) {
	tests := []struct {
		cell     Cell
		ship     bool
		shot     bool
		shipSize int
		str      string
	}{
		{CellEmpty, false, false, 0, "empty"},
		{ShipCell(1), true, false, 1, "ship(1)"},
		{ShipCell(5), true, false, 5, "ship(5)"},
		{CellHit, false, true, 0, "hit"},
		{CellMiss, false, true, 0, "miss"},
		{Cell(9), false, false, 0, "Cell(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.ship, tt.cell.IsShip())
			assert.Equal(t, tt.shot, tt.cell.IsShot())
			assert.Equal(t, tt.shipSize, tt.cell.ShipSize())
			assert.Equal(t, tt.str, tt.cell.String())
		})
	}
}
