package game

import (
	"testing"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/mitchelldurbincs/hundirlaflota/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRandomTargeter(t *testing.T) {
	view := core.NewBoard(4)
	a := NewRandomTargeter(testutil.NewTestRNG(3))
	b := NewRandomTargeter(testutil.NewTestRNG(3))

	seen := make(map[core.Coordinate]bool)
	for i := 0; i < 500; i++ {
		c := a.NextTarget(view)
		assert.True(t, c.IsValid(4), "target %s off the board", c)
		assert.Equal(t, c, b.NextTarget(view), "same seed must give the same targets")
		seen[c] = true
	}
	assert.Len(t, seen, 16, "every cell should be reachable")
}

func TestPlayerStats_Accuracy(t *testing.T) {
	assert.Zero(t, PlayerStats{}.Accuracy())
	assert.InDelta(t, 0.25, PlayerStats{Shots: 4, Hits: 1}.Accuracy(), 1e-9)
}
