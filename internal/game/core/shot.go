package core

import "fmt"

// Outcome is what a shot reports back to the shooter.
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
)

func (o Outcome) String() string {
	if o == OutcomeHit {
		return "hit"
	}
	return "miss"
}

// ShotResult describes a resolved shot.
// A repeated shot reports OutcomeMiss like fresh water; Repeated tells them apart.
type ShotResult struct {
	Target   Coordinate
	Outcome  Outcome
	Repeated bool
	ShipSize int // size tag of the segment hit, 0 otherwise
}

func (r ShotResult) IsHit() bool { return r.Outcome == OutcomeHit }

// Shoot resolves a shot at c and mutates the target cell.
// Ship segments become CellHit, water becomes CellMiss, and cells already
// shot are left untouched.
func Shoot(b *Board, c Coordinate) (ShotResult, error) {
	if !b.InBounds(c) {
		return ShotResult{Target: c}, fmt.Errorf("shot at %s on %dx%d board: %w", c, b.N, b.N, ErrOutOfBounds)
	}

	idx := c.ToIndex(b.N)
	cell := b.T[idx]
	switch {
	case cell.IsShip():
		b.T[idx] = CellHit
		return ShotResult{Target: c, Outcome: OutcomeHit, ShipSize: cell.ShipSize()}, nil
	case cell.IsEmpty():
		b.T[idx] = CellMiss
		return ShotResult{Target: c, Outcome: OutcomeMiss}, nil
	default:
		return ShotResult{Target: c, Outcome: OutcomeMiss, Repeated: true}, nil
	}
}

// ApplyShotAction validates and resolves a shot action against the target board
func ApplyShotAction(b *Board, action *ShotAction) (ShotResult, error) {
	if err := action.Validate(b, action.PlayerID); err != nil {
		return ShotResult{Target: action.Target}, WrapActionError(action, err)
	}
	return Shoot(b, action.Target)
}
