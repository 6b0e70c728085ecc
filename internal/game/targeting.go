package game

import (
	"math/rand"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
)

// Targeter picks the next cell for a computer-controlled player
type Targeter interface {
	NextTarget(view core.View) core.Coordinate
}

// RandomTargeter fires uniformly over the whole board. Cells that were
// already shot stay eligible, so the computer can waste shots.
type RandomTargeter struct {
	rng *rand.Rand
}

func NewRandomTargeter(rng *rand.Rand) *RandomTargeter {
	return &RandomTargeter{rng: rng}
}

func (rt *RandomTargeter) NextTarget(view core.View) core.Coordinate {
	n := view.Size()
	row := rt.rng.Intn(n)
	col := rt.rng.Intn(n)
	return core.NewCoordinate(row, col)
}
