package states

import (
	"errors"
	"fmt"
	"time"
)

// InitializingState represents game object creation
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// PlacingState represents fleet layout on every board
type PlacingState struct{}

func NewPlacingState() State {
	return &PlacingState{}
}

func (s *PlacingState) Phase() GamePhase {
	return PhasePlacing
}

func (s *PlacingState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Int("player_count", ctx.PlayerCount).Msg("Placing fleets")
	return nil
}

func (s *PlacingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Int("fleet_cells", ctx.FleetCells).Msg("Fleets placed")
	return nil
}

func (s *PlacingState) Validate(ctx *GameContext) error {
	if ctx.PlayerCount != 2 {
		return fmt.Errorf("player count must be 2, got %d", ctx.PlayerCount)
	}
	return nil
}

// RunningState represents the exchange of shots
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() GamePhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	if !ctx.BoardsReady {
		return errors.New("boards have not been generated")
	}
	if ctx.FleetCells < 1 {
		return fmt.Errorf("fleet must have at least one ship cell, got %d", ctx.FleetCells)
	}
	return nil
}

// EndedState represents a finished match
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	return nil
}

// ErrorState represents a failed setup
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() GamePhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *GameContext) error {
	ctx.Logger.Error().Err(ctx.Error).Msg("Game entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Leaving error state")
	ctx.Error = nil
	return nil
}

func (s *ErrorState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return errors.New("error state requires an error")
	}
	return nil
}

// ResetState clears the match so a new one can start with the same machine
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() GamePhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.clear()
	ctx.Logger.Info().Msg("Game reset")
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error {
	return nil
}
