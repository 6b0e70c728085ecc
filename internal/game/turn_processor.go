package game

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/events"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single shot
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessShot validates and applies one shot, then either ends the game or
// hands the turn to the opponent.
func (tp *TurnProcessor) ProcessShot(ctx context.Context, playerID int, target core.Coordinate) (ShotReport, error) {
	e := tp.engine
	turnLogger := tp.logger.With().Int("turn", e.gs.Turn).Int("player_id", playerID).Logger()

	if err := tp.checkContext(ctx); err != nil {
		return ShotReport{}, err
	}
	if err := tp.validateGameState(); err != nil {
		return ShotReport{}, err
	}
	if err := tp.validateShooter(playerID); err != nil {
		tp.publishRejected(playerID, target, err)
		return ShotReport{}, err
	}

	opponent := &e.gs.Players[opponentOf(playerID)]
	action := &core.ShotAction{PlayerID: playerID, Target: target}
	outcome, err := e.shots.Process(ctx, opponent.Board, opponent.Fleet, action)
	if err != nil {
		turnLogger.Debug().Err(err).Msg("Shot rejected")
		tp.publishRejected(playerID, target, err)
		return ShotReport{}, err
	}

	shooter := &e.gs.Players[playerID]
	shooter.Stats.record(outcome)
	if outcome.Result.IsHit() {
		opponent.Remaining--
	}

	report := ShotReport{
		Turn:      e.gs.Turn,
		Shooter:   playerID,
		Target:    opponent.ID,
		Result:    outcome.Result,
		Sunk:      outcome.Sunk,
		ShipSize:  outcome.Result.ShipSize,
		Remaining: opponent.Remaining,
		Winner:    -1,
	}

	e.eventBus.Publish(events.NewShotFiredEvent(e.gameID, playerID, opponent.ID, outcome.Result, opponent.Remaining, e.gs.Turn))
	if outcome.Sunk {
		report.ShipSize = outcome.Ship.Size
		report.ShipName = e.catalog.NameFor(outcome.Ship.Size)
		e.eventBus.Publish(events.NewShipSunkEvent(e.gameID, playerID, opponent.ID, outcome.Ship.Size, report.ShipName, opponent.Fleet.Afloat(), e.gs.Turn))
		turnLogger.Info().Str("ship", report.ShipName).Int("afloat", opponent.Fleet.Afloat()).Msg("Ship sunk")
	}

	turnLogger.Debug().
		Stringer("target", target).
		Stringer("outcome", outcome.Result.Outcome).
		Bool("repeated", outcome.Result.Repeated).
		Int("opponent_remaining", opponent.Remaining).
		Msg("Shot resolved")

	e.checkGameOver(turnLogger)
	if e.gameOver {
		report.GameOver = true
		report.Winner = e.winner
		return report, nil
	}

	tp.advanceTurn()
	return report, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.gs.Turn).
			Msg("Shot cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can receive shots
func (tp *TurnProcessor) validateGameState() error {
	e := tp.engine
	if e.gameOver {
		return core.WrapGameStateError(e.gs.Turn, e.stateMachine.CurrentPhase().String(), core.ErrGameOver)
	}

	currentPhase := e.stateMachine.CurrentPhase()
	if !currentPhase.CanReceiveActions() {
		tp.logger.Warn().
			Str("current_phase", currentPhase.String()).
			Int("turn", e.gs.Turn).
			Msg("Attempted to fire in phase that cannot receive actions")
		return fmt.Errorf("game is in %s phase and cannot receive shots", currentPhase)
	}
	return nil
}

func (tp *TurnProcessor) validateShooter(playerID int) error {
	if !validSide(playerID) {
		return fmt.Errorf("player %d: %w", playerID, core.ErrInvalidPlayer)
	}
	if current := tp.engine.gs.Current; playerID != current {
		return fmt.Errorf("player %d fired on player %d's turn: %w", playerID, current, core.ErrNotYourTurn)
	}
	return nil
}

func (tp *TurnProcessor) advanceTurn() {
	e := tp.engine
	e.gs.Current = opponentOf(e.gs.Current)
	e.gs.Turn++
	e.eventBus.Publish(events.NewTurnStartedEvent(e.gameID, e.gs.Current, e.gs.Turn))
}

func (tp *TurnProcessor) publishRejected(playerID int, target core.Coordinate, reason error) {
	e := tp.engine
	e.eventBus.Publish(events.NewShotRejectedEvent(e.gameID, playerID, target, reason, e.gs.Turn))
}
