package game

import "github.com/mitchelldurbincs/hundirlaflota/internal/game/processor"

// PlayerStats counts the shots a player has fired.
type PlayerStats struct {
	Shots     int
	Hits      int
	Misses    int
	Repeats   int // shots at cells already hit or missed
	ShipsSunk int
}

// Accuracy is the share of shots that hit, in [0,1].
func (s PlayerStats) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots)
}

func (s *PlayerStats) record(out processor.ShotOutcome) {
	s.Shots++
	switch {
	case out.Result.IsHit():
		s.Hits++
	case out.Result.Repeated:
		s.Repeats++
	default:
		s.Misses++
	}
	if out.Sunk {
		s.ShipsSunk++
	}
}
