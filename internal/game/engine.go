package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/events"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/mapgen"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/processor"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/rules"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/states"
	"github.com/rs/zerolog"
)

const (
	// NumPlayers is fixed: every match has two sides.
	NumPlayers = 2

	HumanID    = 0
	ComputerID = 1
)

// Mode selects who controls the second side.
type Mode int

const (
	ModePvP Mode = iota
	ModePvE
)

func (m Mode) String() string {
	switch m {
	case ModePvP:
		return "pvp"
	case ModePvE:
		return "pve"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "pvp" or "pve" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pvp":
		return ModePvP, nil
	case "pve":
		return ModePvE, nil
	default:
		return ModePvP, fmt.Errorf("unknown game mode %q (want pvp or pve)", s)
	}
}

// GameConfig holds everything needed to start a match. Zero values fall back
// to the classic 10x10 game with the default catalog.
type GameConfig struct {
	Size        int
	Catalog     core.Catalog
	Spacing     mapgen.Spacing
	MaxAttempts int
	MaxRestarts int
	Mode        Mode
	Rng         *rand.Rand
	Logger      zerolog.Logger
	EventBus    *events.EventBus
	GameID      string
	Targeter    Targeter

	// Boards replaces generation with fixed layouts, one per player.
	Boards []*core.Board
}

// ShotReport is what a caller learns from one consumed shot.
type ShotReport struct {
	Turn      int
	Shooter   int
	Target    int
	Result    core.ShotResult
	Sunk      bool
	ShipSize  int    // set on a fresh hit
	ShipName  string // set when Sunk
	Remaining int    // target's ship cells left after the shot
	GameOver  bool
	Winner    int // -1 until GameOver
}

// Engine runs one match. It is not safe for concurrent use.
type Engine struct {
	gs           *GameState
	mode         Mode
	catalog      core.Catalog
	rng          *rand.Rand
	gameOver     bool
	winner       int
	logger       zerolog.Logger
	shots        *processor.ShotProcessor
	winCondition *rules.WinConditionChecker
	eventBus     *events.EventBus
	gameID       string
	stateMachine *states.StateMachine
	targeter     Targeter
	turns        *TurnProcessor
	setup        *EngineInitializer
}

// NewEngine generates both boards and returns an engine ready for the first shot
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Fire resolves a shot by playerID at the opponent's board. Rejected shots
// (wrong turn, out of range, finished game) return an error and do not
// consume the turn.
func (e *Engine) Fire(ctx context.Context, playerID int, target core.Coordinate) (ShotReport, error) {
	return e.turns.ProcessShot(ctx, playerID, target)
}

// ComputerShot lets the computer side pick a target and fire. Only valid in PvE.
func (e *Engine) ComputerShot(ctx context.Context) (ShotReport, error) {
	if e.mode != ModePvE {
		return ShotReport{}, fmt.Errorf("computer shots need %s mode, game is %s: %w", ModePvE, e.mode, core.ErrInvalidPlayer)
	}
	target := e.targeter.NextTarget(e.TargetView(ComputerID))
	e.logger.Debug().Stringer("target", target).Msg("Computer picked target")
	return e.Fire(ctx, ComputerID, target)
}

// Rematch starts a new match on this engine once the current one is over.
// Settings are kept; boards, counters, stats and the game id are new.
func (e *Engine) Rematch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.setup.rematch(ctx, e); err != nil {
		return fmt.Errorf("rematch: %w", err)
	}
	return nil
}

// Board returns side's own board with every ship visible, or nil for an unknown side.
func (e *Engine) Board(side int) core.View {
	if !validSide(side) {
		return nil
	}
	return e.gs.Players[side].Board
}

// TargetView returns the opponent's board as side sees it, ships hidden.
func (e *Engine) TargetView(side int) core.View {
	if !validSide(side) {
		return nil
	}
	return HiddenView(e.gs.Players[opponentOf(side)].Board)
}

// Remaining returns side's ship cells still afloat
func (e *Engine) Remaining(side int) int {
	if !validSide(side) {
		return 0
	}
	return e.gs.Players[side].Remaining
}

// ShipsAfloat returns how many of side's ships still have an unhit segment
func (e *Engine) ShipsAfloat(side int) int {
	if !validSide(side) {
		return 0
	}
	return e.gs.Players[side].Fleet.Afloat()
}

// Stats returns side's shooting statistics
func (e *Engine) Stats(side int) PlayerStats {
	if !validSide(side) {
		return PlayerStats{}
	}
	return e.gs.Players[side].Stats
}

func (e *Engine) CurrentPlayer() int           { return e.gs.Current }
func (e *Engine) IsGameOver() bool             { return e.gameOver }
func (e *Engine) Winner() int                  { return e.winner }
func (e *Engine) Turn() int                    { return e.gs.Turn }
func (e *Engine) GameID() string               { return e.gameID }
func (e *Engine) Mode() Mode                   { return e.mode }
func (e *Engine) Catalog() core.Catalog        { return e.catalog }
func (e *Engine) EventBus() *events.EventBus   { return e.eventBus }
func (e *Engine) Phase() states.GamePhase      { return e.stateMachine.CurrentPhase() }
func (e *Engine) Elapsed() time.Duration       { return e.stateMachine.GetContext().GetElapsedTime() }
func (e *Engine) BoardSize() int               { return e.gs.Players[0].Board.Size() }
func (e *Engine) History() []states.Transition { return e.stateMachine.GetHistory() }

func validSide(side int) bool { return side >= 0 && side < NumPlayers }

// checkGameOver asks the win condition checker whether a fleet is gone and
// moves the state machine to Ended when it is.
func (e *Engine) checkGameOver(logger zerolog.Logger) {
	players := make([]rules.Player, len(e.gs.Players))
	for i := range e.gs.Players {
		players[i] = &e.gs.Players[i]
	}

	over, winner := e.winCondition.CheckGameOver(players)
	if !over || e.gameOver {
		return
	}

	e.gameOver = true
	e.winner = winner

	reason := "every fleet sunk"
	if winner >= 0 {
		reason = fmt.Sprintf("player %d fleet sunk", opponentOf(winner))
	}

	gameCtx := e.stateMachine.GetContext()
	gameCtx.Winner = winner
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, reason); err != nil {
		logger.Error().Err(err).Msg("Failed to transition to Ended state")
	}

	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, gameCtx.GetElapsedTime(), e.gs.Turn))
	logger.Info().Int("winner", winner).Int("turn", e.gs.Turn).Msg("Game over")
}
