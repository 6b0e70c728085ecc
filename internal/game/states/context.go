package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// PlayerCount is the number of sides in the match
	PlayerCount int

	// BoardsReady is set once every side has a generated board
	BoardsReady bool

	// FleetCells is the number of ship cells each side starts with
	FleetCells int

	// StartTime is when the game started (PhaseRunning entered)
	StartTime time.Time

	// EndTime is when PhaseEnded was entered
	EndTime time.Time

	// Winner is the player ID of the winner (if game ended)
	Winner int

	// Error holds any error that caused transition to PhaseError
	Error error
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, playerCount int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:      gameID,
		PlayerCount: playerCount,
		Logger:      logger.With().Str("game_id", gameID).Logger(),
		Winner:      -1,
	}
}

// GetElapsedTime returns the time spent in play. Once the game has ended it is frozen.
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}

func (gc *GameContext) clear() {
	gc.BoardsReady = false
	gc.StartTime = time.Time{}
	gc.EndTime = time.Time{}
	gc.Winner = -1
	gc.Error = nil
}
