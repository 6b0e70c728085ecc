package game

import "github.com/mitchelldurbincs/hundirlaflota/internal/game/core"

// Player is one side of the match. Board holds the player's own fleet and
// is the board the opponent fires at.
type Player struct {
	ID        int
	Board     *core.Board
	Fleet     *core.Fleet
	Remaining int // ship cells not yet hit
	Stats     PlayerStats
}

func (p *Player) GetID() int { return p.ID }

// IsAlive reports whether the player still has a ship cell afloat.
func (p *Player) IsAlive() bool { return p.Remaining > 0 }

type GameState struct {
	Turn    int
	Current int // ID of the player whose shot is next
	Players []Player
}

// newGameState opens turn 1 with the first player to shoot.
func newGameState() *GameState {
	return &GameState{
		Turn:    1,
		Current: 0,
		Players: make([]Player, NumPlayers),
	}
}

func opponentOf(playerID int) int { return 1 - playerID }
