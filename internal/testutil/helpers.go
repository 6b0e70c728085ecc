package testutil

import (
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NewTestRNG returns a seeded source so generated layouts repeat between runs
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a disabled logger for engines and consoles under test
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// BoardFromRows builds a board from one string per row.
// '.' is water, '1'..'5' a ship segment of that size, 'X' a hit and 'o' a miss.
func BoardFromRows(t *testing.T, rows ...string) *core.Board {
	t.Helper()
	b := core.NewBoard(len(rows))
	for r, row := range rows {
		require.Len(t, row, len(rows), "row %d must be %d cells wide", r, len(rows))
		for c, ch := range row {
			var cell core.Cell
			switch {
			case ch == '.':
				cell = core.CellEmpty
			case ch >= '1' && ch <= '5':
				cell = core.ShipCell(int(ch - '0'))
			case ch == 'X':
				cell = core.CellHit
			case ch == 'o':
				cell = core.CellMiss
			default:
				t.Fatalf("unknown cell %q at (%d,%d)", ch, r, c)
			}
			b.T[b.Idx(r, c)] = cell
		}
	}
	return b
}

// SingleBoatBoard returns an n×n board whose only ship is a size-1 boat at (0,0).
func SingleBoatBoard(n int) *core.Board {
	b := core.NewBoard(n)
	b.T[0] = core.ShipCell(1)
	return b
}

// RequireValidLayout checks the generated-board invariants: coverage matches
// the catalog, every ship is a straight run of its own size, and no two ships
// touch (at corners too when diagonal is set).
func RequireValidLayout(t *testing.T, b *core.Board, catalog core.Catalog, diagonal bool) {
	t.Helper()

	require.Equal(t, catalog.TotalCells(), b.CountNonEmpty(), "non-empty cells should match catalog total")

	fleet := core.FleetFromBoard(b)
	perSize := map[int]int{}
	owner := map[core.Coordinate]int{}
	for _, ship := range fleet.Ships() {
		perSize[ship.Size]++
		require.Len(t, ship.Cells, ship.Size, "ship %d length should equal its size tag", ship.ID)

		rows, cols := map[int]bool{}, map[int]bool{}
		for _, c := range ship.Cells {
			require.Equal(t, core.ShipCell(ship.Size), b.At(c), "ship %d cell %s tag", ship.ID, c)
			rows[c.Row] = true
			cols[c.Col] = true
			owner[c] = ship.ID
		}
		require.True(t, len(rows) == 1 || len(cols) == 1, "ship %d should lie on a single axis", ship.ID)
	}

	for _, sc := range catalog {
		require.Equal(t, sc.Count, perSize[sc.Size], "ships of size %d", sc.Size)
	}

	for c, id := range owner {
		neighbours := c.Neighbors()
		if diagonal {
			neighbours = c.Surrounding()
		}
		for _, n := range neighbours {
			if other, ok := owner[n]; ok {
				require.Equal(t, id, other, "ships %d and %d touch at %s/%s", id, other, c, n)
			}
		}
	}
}
