package processor

import (
	"context"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/rs/zerolog"
)

// ShotOutcome is the resolved shot plus what it did to the target fleet.
type ShotOutcome struct {
	Result core.ShotResult
	Ship   *core.Ship // nil unless the shot was a fresh hit
	Sunk   bool
}

// ShotProcessor applies shot actions to a target board and keeps its fleet in sync
type ShotProcessor struct {
	logger zerolog.Logger
}

// NewShotProcessor creates a new shot processor
func NewShotProcessor(logger zerolog.Logger) *ShotProcessor {
	return &ShotProcessor{
		logger: logger.With().Str("component", "ShotProcessor").Logger(),
	}
}

// Process resolves action against target. fleet may be nil when sinking is not tracked.
// The board is left untouched when an error is returned.
func (sp *ShotProcessor) Process(ctx context.Context, target *core.Board, fleet *core.Fleet, action *core.ShotAction) (ShotOutcome, error) {
	select {
	case <-ctx.Done():
		sp.logger.Warn().Err(ctx.Err()).Msg("Shot processing interrupted by context cancellation")
		return ShotOutcome{}, ctx.Err()
	default:
	}

	result, err := core.ApplyShotAction(target, action)
	if err != nil {
		sp.logger.Debug().Err(err).
			Int("player_id", action.PlayerID).
			Stringer("target", action.Target).
			Msg("Rejected shot")
		return ShotOutcome{Result: result}, err
	}

	outcome := ShotOutcome{Result: result}
	if !result.IsHit() || fleet == nil {
		sp.logger.Debug().
			Int("player_id", action.PlayerID).
			Stringer("target", action.Target).
			Bool("repeated", result.Repeated).
			Msg("Shot missed")
		return outcome, nil
	}

	ship, sunk, err := fleet.RecordHit(action.Target)
	if err != nil {
		// The cell is already marked hit, so the shot stands without sinking info.
		sp.logger.Error().Err(err).Stringer("target", action.Target).Msg("Hit cell is not indexed in the fleet")
		return outcome, nil
	}
	outcome.Ship = ship
	outcome.Sunk = sunk

	sp.logger.Debug().
		Int("player_id", action.PlayerID).
		Stringer("target", action.Target).
		Int("ship_id", ship.ID).
		Int("ship_size", ship.Size).
		Bool("sunk", sunk).
		Msg("Shot hit")
	return outcome, nil
}
