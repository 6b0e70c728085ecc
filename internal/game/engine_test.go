package game

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/events"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/states"
	"github.com/mitchelldurbincs/hundirlaflota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg GameConfig) *Engine {
	t.Helper()
	if cfg.Rng == nil {
		cfg.Rng = testutil.NewTestRNG(12345)
	}
	cfg.Logger = testutil.NopLogger()
	e, err := NewEngine(context.Background(), cfg)
	require.NoError(t, err)
	return e
}

// scriptedTargeter replays fixed coordinates.
type scriptedTargeter struct {
	targets []core.Coordinate
}

func (s *scriptedTargeter) NextTarget(core.View) core.Coordinate {
	c := s.targets[0]
	s.targets = s.targets[1:]
	return c
}

func twoBoatBoards(t *testing.T) []*core.Board {
	return []*core.Board{
		testutil.BoardFromRows(t,
			"1...",
			"....",
			"..22",
			"....",
		),
		testutil.BoardFromRows(t,
			"....",
			".1..",
			"....",
			"22..",
		),
	}
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t, GameConfig{})

	_, err := uuid.Parse(e.GameID())
	assert.NoError(t, err, "game id should be a uuid")
	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.Equal(t, ModePvP, e.Mode())
	assert.Equal(t, 1, e.Turn())
	assert.Equal(t, 0, e.CurrentPlayer())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, -1, e.Winner())
	assert.Equal(t, core.DefaultBoardSize, e.BoardSize())

	for side := 0; side < NumPlayers; side++ {
		assert.Equal(t, 35, e.Remaining(side))
		assert.Equal(t, 15, e.ShipsAfloat(side))
		testutil.RequireValidLayout(t, e.gs.Players[side].Board, core.DefaultCatalog(), true)
	}
	assert.NotEqual(t, e.gs.Players[0].Board.T, e.gs.Players[1].Board.T, "each side gets its own layout")

	history := e.History()
	require.Len(t, history, 2)
	assert.Equal(t, states.PhasePlacing, history[0].To)
	assert.Equal(t, states.PhaseRunning, history[1].To)
}

func TestNewEngine_SameSeedSameBoards(t *testing.T) {
	a := newTestEngine(t, GameConfig{Rng: testutil.NewTestRNG(7)})
	b := newTestEngine(t, GameConfig{Rng: testutil.NewTestRNG(7)})

	for side := 0; side < NumPlayers; side++ {
		assert.Equal(t, a.gs.Players[side].Board.T, b.gs.Players[side].Board.T)
	}
}

func TestNewEngine_Errors(t *testing.T) {
	t.Run("placement exhausted", func(t *testing.T) {
		catalog, err := core.NewCatalog([]int{1}, []int{2})
		require.NoError(t, err)

		_, err = NewEngine(context.Background(), GameConfig{
			Size:        2,
			Catalog:     catalog,
			MaxAttempts: 5,
			MaxRestarts: 1,
			Rng:         testutil.NewTestRNG(1),
			Logger:      testutil.NopLogger(),
		})
		assert.ErrorIs(t, err, core.ErrPlacementExhausted)
	})

	t.Run("catalog too large", func(t *testing.T) {
		_, err := NewEngine(context.Background(), GameConfig{Size: 5, Logger: testutil.NopLogger()})
		assert.ErrorIs(t, err, core.ErrInvalidCatalog)
	})

	t.Run("wrong number of fixed boards", func(t *testing.T) {
		_, err := NewEngine(context.Background(), GameConfig{
			Boards: []*core.Board{testutil.SingleBoatBoard(3)},
			Logger: testutil.NopLogger(),
		})
		assert.Error(t, err)
	})

	t.Run("fixed board without ships", func(t *testing.T) {
		sunk := testutil.BoardFromRows(t,
			"X..",
			".o.",
			"...",
		)
		for _, empty := range []*core.Board{core.NewBoard(3), sunk} {
			_, err := NewEngine(context.Background(), GameConfig{
				Boards: []*core.Board{testutil.SingleBoatBoard(3), empty},
				Logger: testutil.NopLogger(),
			})
			assert.ErrorIs(t, err, core.ErrInvalidCatalog)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewEngine(ctx, GameConfig{Logger: testutil.NopLogger()})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEngine_TurnOrder(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, GameConfig{Boards: twoBoatBoards(t)})

	_, err := e.Fire(ctx, 1, core.NewCoordinate(0, 0))
	assert.ErrorIs(t, err, core.ErrNotYourTurn)
	assert.Equal(t, 0, e.CurrentPlayer())
	assert.Equal(t, 1, e.Turn())

	report, err := e.Fire(ctx, 0, core.NewCoordinate(3, 3))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeMiss, report.Result.Outcome)
	assert.Equal(t, 1, report.Turn)
	assert.Equal(t, 1, e.CurrentPlayer())
	assert.Equal(t, 2, e.Turn())

	// A hit does not grant another shot.
	report, err = e.Fire(ctx, 1, core.NewCoordinate(0, 0))
	require.NoError(t, err)
	assert.True(t, report.Result.IsHit())
	assert.Equal(t, 0, e.CurrentPlayer())
}

func TestEngine_RejectedShotsKeepTheTurn(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, GameConfig{Boards: twoBoatBoards(t)})

	var rejected []string
	e.EventBus().SubscribeFunc(events.TypeShotRejected, func(ev events.Event) {
		rejected = append(rejected, ev.Type())
	})

	_, err := e.Fire(ctx, 0, core.NewCoordinate(4, 0))
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
	_, err = e.Fire(ctx, 0, core.NewCoordinate(-1, 2))
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
	_, err = e.Fire(ctx, 2, core.NewCoordinate(0, 0))
	assert.ErrorIs(t, err, core.ErrInvalidPlayer)

	assert.Equal(t, 0, e.CurrentPlayer())
	assert.Equal(t, 1, e.Turn())
	assert.Equal(t, 0, e.Stats(0).Shots)
	assert.Len(t, rejected, 3)
}

func TestEngine_Counters(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, GameConfig{Boards: twoBoatBoards(t)})
	require.Equal(t, 3, e.Remaining(1))

	report, err := e.Fire(ctx, 0, core.NewCoordinate(3, 0))
	require.NoError(t, err)
	assert.True(t, report.Result.IsHit())
	assert.False(t, report.Sunk)
	assert.Equal(t, 2, report.ShipSize)
	assert.Equal(t, 2, report.Remaining)
	assert.Equal(t, 2, e.Remaining(1))

	_, err = e.Fire(ctx, 1, core.NewCoordinate(3, 3))
	require.NoError(t, err)

	// Shooting the same segment again is a miss and leaves the counter alone.
	report, err = e.Fire(ctx, 0, core.NewCoordinate(3, 0))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeMiss, report.Result.Outcome)
	assert.True(t, report.Result.Repeated)
	assert.Equal(t, 2, e.Remaining(1))

	_, err = e.Fire(ctx, 1, core.NewCoordinate(3, 2))
	require.NoError(t, err)

	report, err = e.Fire(ctx, 0, core.NewCoordinate(3, 1))
	require.NoError(t, err)
	assert.True(t, report.Sunk)
	assert.Equal(t, "Crucero", report.ShipName)
	assert.Equal(t, 1, e.Remaining(1))
	assert.Equal(t, 1, e.ShipsAfloat(1))

	stats := e.Stats(0)
	assert.Equal(t, 3, stats.Shots)
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 1, stats.Repeats)
	assert.Equal(t, 1, stats.ShipsSunk)
	assert.InDelta(t, 2.0/3.0, stats.Accuracy(), 1e-9)
}

func TestEngine_GameEnds(t *testing.T) {
	ctx := context.Background()
	bus := events.NewEventBus()
	var seen []string
	for _, typ := range []string{events.TypeShotFired, events.TypeShipSunk, events.TypeGameEnded} {
		bus.SubscribeFunc(typ, func(ev events.Event) { seen = append(seen, ev.Type()) })
	}

	e := newTestEngine(t, GameConfig{
		Boards:   []*core.Board{testutil.SingleBoatBoard(3), testutil.SingleBoatBoard(3)},
		EventBus: bus,
	})
	require.Equal(t, 1, e.Remaining(0))
	require.Equal(t, 1, e.Remaining(1))

	report, err := e.Fire(ctx, 0, core.NewCoordinate(0, 0))
	require.NoError(t, err)
	assert.True(t, report.GameOver)
	assert.True(t, report.Sunk)
	assert.Equal(t, "Lancha", report.ShipName)
	assert.Equal(t, 0, report.Winner)

	assert.True(t, e.IsGameOver())
	assert.Equal(t, 0, e.Winner())
	assert.Equal(t, 0, e.Remaining(1))
	assert.Equal(t, 1, e.Remaining(0))
	assert.Equal(t, states.PhaseEnded, e.Phase())
	assert.Equal(t, []string{events.TypeShotFired, events.TypeShipSunk, events.TypeGameEnded}, seen)

	_, err = e.Fire(ctx, 1, core.NewCoordinate(0, 0))
	assert.ErrorIs(t, err, core.ErrGameOver)
	assert.Equal(t, 1, e.Remaining(0))
}

func TestEngine_Rematch(t *testing.T) {
	ctx := context.Background()
	bus := events.NewEventBus()
	started := 0
	bus.SubscribeFunc(events.TypeGameStarted, func(events.Event) { started++ })

	e := newTestEngine(t, GameConfig{Boards: twoBoatBoards(t), EventBus: bus})
	firstID := e.GameID()

	err := e.Rematch(ctx)
	assert.ErrorContains(t, err, "cannot reset from Running")
	assert.Equal(t, states.PhaseRunning, e.Phase())

	for _, shot := range []struct {
		player int
		target core.Coordinate
	}{
		{0, core.NewCoordinate(1, 1)},
		{1, core.NewCoordinate(3, 3)},
		{0, core.NewCoordinate(3, 0)},
		{1, core.NewCoordinate(3, 2)},
		{0, core.NewCoordinate(3, 1)},
	} {
		_, err := e.Fire(ctx, shot.player, shot.target)
		require.NoError(t, err)
	}
	require.True(t, e.IsGameOver())
	require.Equal(t, 0, e.Winner())

	require.NoError(t, e.Rematch(ctx))
	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.NotEqual(t, firstID, e.GameID())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, -1, e.Winner())
	assert.Equal(t, 1, e.Turn())
	assert.Equal(t, 0, e.CurrentPlayer())
	assert.Equal(t, 2, started)
	for side := 0; side < NumPlayers; side++ {
		assert.Equal(t, 3, e.Remaining(side))
		assert.Equal(t, 2, e.ShipsAfloat(side))
		assert.Equal(t, PlayerStats{}, e.Stats(side))
	}
	assert.Equal(t, core.ShipCell(1), e.Board(1).At(core.NewCoordinate(1, 1)), "fixed boards are dealt again")

	history := e.History()
	require.Len(t, history, 2, "reset clears the previous match")
	assert.Equal(t, states.PhasePlacing, history[0].To)
	assert.Equal(t, states.PhaseRunning, history[1].To)

	_, err = e.Fire(ctx, 0, core.NewCoordinate(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, e.Remaining(1))
}

func TestEngine_RematchGeneratesNewBoards(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, GameConfig{})
	before := e.gs.Players[0].Board.Clone()

	e.gameOver = true
	require.NoError(t, e.stateMachine.TransitionTo(states.PhaseEnded, "test"))
	require.NoError(t, e.Rematch(ctx))

	testutil.RequireValidLayout(t, e.gs.Players[0].Board, core.DefaultCatalog(), true)
	assert.NotEqual(t, before.T, e.gs.Players[0].Board.T)
	assert.Equal(t, 35, e.Remaining(0))
}

func TestEngine_FixedBoardsAreCopied(t *testing.T) {
	boards := twoBoatBoards(t)
	e := newTestEngine(t, GameConfig{Boards: boards})

	_, err := e.Fire(context.Background(), 0, core.NewCoordinate(1, 1))
	require.NoError(t, err)
	assert.Equal(t, core.ShipCell(1), boards[1].At(core.NewCoordinate(1, 1)))
	assert.Equal(t, core.CellHit, e.Board(1).At(core.NewCoordinate(1, 1)))
}

func TestEngine_Views(t *testing.T) {
	e := newTestEngine(t, GameConfig{Boards: twoBoatBoards(t)})
	ctx := context.Background()

	_, err := e.Fire(ctx, 0, core.NewCoordinate(3, 0))
	require.NoError(t, err)
	_, err = e.Fire(ctx, 1, core.NewCoordinate(1, 1))
	require.NoError(t, err)

	own := e.Board(0)
	assert.Equal(t, core.ShipCell(1), own.At(core.NewCoordinate(0, 0)))
	assert.Equal(t, core.CellMiss, own.At(core.NewCoordinate(1, 1)))

	enemy := e.TargetView(0)
	assert.Equal(t, 4, enemy.Size())
	assert.Equal(t, core.CellHit, enemy.At(core.NewCoordinate(3, 0)))
	assert.Equal(t, core.CellEmpty, enemy.At(core.NewCoordinate(3, 1)), "unhit segment stays hidden")
	assert.Equal(t, core.CellEmpty, enemy.At(core.NewCoordinate(1, 1)))

	assert.Nil(t, e.Board(2))
	assert.Nil(t, e.TargetView(-1))
	assert.Equal(t, 0, e.Remaining(5))
}

func TestEngine_ComputerShot(t *testing.T) {
	ctx := context.Background()

	t.Run("requires pve", func(t *testing.T) {
		e := newTestEngine(t, GameConfig{Boards: twoBoatBoards(t)})
		_, err := e.ComputerShot(ctx)
		assert.ErrorIs(t, err, core.ErrInvalidPlayer)
	})

	t.Run("waits for its turn", func(t *testing.T) {
		e := newTestEngine(t, GameConfig{Boards: twoBoatBoards(t), Mode: ModePvE})
		_, err := e.ComputerShot(ctx)
		assert.ErrorIs(t, err, core.ErrNotYourTurn)
	})

	t.Run("scripted target", func(t *testing.T) {
		targeter := &scriptedTargeter{targets: []core.Coordinate{core.NewCoordinate(2, 3)}}
		e := newTestEngine(t, GameConfig{Boards: twoBoatBoards(t), Mode: ModePvE, Targeter: targeter})

		_, err := e.Fire(ctx, HumanID, core.NewCoordinate(0, 0))
		require.NoError(t, err)

		report, err := e.ComputerShot(ctx)
		require.NoError(t, err)
		assert.Equal(t, ComputerID, report.Shooter)
		assert.Equal(t, HumanID, report.Target)
		assert.True(t, report.Result.IsHit())
		assert.Equal(t, 2, e.Remaining(HumanID))
		assert.Equal(t, HumanID, e.CurrentPlayer())
	})

	t.Run("random shots stay on the board", func(t *testing.T) {
		e := newTestEngine(t, GameConfig{Mode: ModePvE})
		for i := 0; i < 50 && !e.IsGameOver(); i++ {
			_, err := e.Fire(ctx, HumanID, core.NewCoordinate(9, 9))
			require.NoError(t, err)
			report, err := e.ComputerShot(ctx)
			require.NoError(t, err)
			assert.True(t, report.Result.Target.IsValid(e.BoardSize()))
		}
	})
}

func TestEngine_FullPvEGame(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, GameConfig{Mode: ModePvE, Rng: testutil.NewTestRNG(99)})
	n := e.BoardSize()

	for idx := 0; idx < n*n && !e.IsGameOver(); idx++ {
		_, err := e.Fire(ctx, HumanID, core.FromIndex(idx, n))
		require.NoError(t, err)
		if e.IsGameOver() {
			break
		}
		_, err = e.ComputerShot(ctx)
		require.NoError(t, err)
	}

	require.True(t, e.IsGameOver(), "sweeping every cell must sink the computer fleet")
	loser := opponentOf(e.Winner())
	assert.Equal(t, 0, e.Remaining(loser))
	assert.Positive(t, e.Remaining(e.Winner()))
	assert.Equal(t, 0, e.ShipsAfloat(loser))
	assert.Equal(t, states.PhaseEnded, e.Phase())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("PvE")
	require.NoError(t, err)
	assert.Equal(t, ModePvE, m)

	m, err = ParseMode(" pvp ")
	require.NoError(t, err)
	assert.Equal(t, ModePvP, m)

	_, err = ParseMode("coop")
	assert.Error(t, err)
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
