package rules

import "github.com/rs/zerolog"

// WinConditionChecker decides when a match is over. A side is eliminated once
// its remaining ship-cell counter reaches zero.
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether the game is over and who won. The game ends
// once at most one side is afloat; winnerID is -1 when nobody is.
func (wc *WinConditionChecker) CheckGameOver(players []Player) (bool, int) {
	aliveCount := 0
	lastAliveID := -1
	alivePlayers := make([]int, 0, len(players))

	for _, p := range players {
		if p.IsAlive() {
			aliveCount++
			lastAliveID = p.GetID()
			alivePlayers = append(alivePlayers, lastAliveID)
		}
	}

	gameOver := aliveCount <= 1

	winnerID := -1
	if gameOver && aliveCount == 1 {
		winnerID = lastAliveID
		wc.logger.Info().Int("winner_player_id", winnerID).Msg("Winner determined")
	} else if gameOver {
		wc.logger.Info().Msg("No fleet left afloat")
	}

	wc.logger.Debug().
		Bool("is_game_over", gameOver).
		Int("alive_player_count", aliveCount).
		Ints("alive_player_ids", alivePlayers).
		Msg("Game over check complete")

	return gameOver, winnerID
}

// Player interface to avoid circular imports
type Player interface {
	GetID() int
	IsAlive() bool
}
