package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/events"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/mapgen"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/processor"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/rules"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/states"
	"github.com/rs/zerolog"
)

// EngineInitializer handles the setup of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates the engine, places both fleets and opens the first turn
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before setup")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()
	engine := ei.createEngine()

	if err := ei.start(ctx, engine); err != nil {
		return nil, err
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Str("mode", engine.mode.String()).
		Int("board_size", engine.BoardSize()).
		Int("fleet_cells", engine.gs.Players[0].Remaining).
		Msg("Engine created successfully")

	return engine, nil
}

// start places both fleets and opens the first turn. The state machine must
// be in PhaseInitializing.
func (ei *EngineInitializer) start(ctx context.Context, engine *Engine) error {
	if err := engine.stateMachine.TransitionTo(states.PhasePlacing, "engine created"); err != nil {
		return fmt.Errorf("state machine initialization failed: %w", err)
	}

	boards, err := ei.placeFleets(ctx)
	if err != nil {
		ei.fail(engine, err)
		return fmt.Errorf("fleet placement failed: %w", err)
	}
	ei.initializePlayers(engine.gs, boards)

	gameCtx := engine.stateMachine.GetContext()
	gameCtx.BoardsReady = true
	gameCtx.FleetCells = min(engine.gs.Players[0].Remaining, engine.gs.Players[1].Remaining)
	if err := engine.stateMachine.TransitionTo(states.PhaseRunning, "fleets placed"); err != nil {
		ei.fail(engine, err)
		return fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(
		engine.gameID,
		engine.mode.String(),
		NumPlayers,
		boards[0].Size(),
		engine.gs.Players[0].Remaining,
	))
	engine.eventBus.Publish(events.NewTurnStartedEvent(engine.gameID, engine.gs.Current, engine.gs.Turn))
	return nil
}

// rematch resets a finished engine and deals new boards under a new game id.
func (ei *EngineInitializer) rematch(ctx context.Context, engine *Engine) error {
	if err := engine.stateMachine.Reset(); err != nil {
		return err
	}

	engine.gameID = uuid.NewString()
	engine.logger = ei.logger.With().Str("game_id", engine.gameID).Logger()
	engine.gs = newGameState()
	engine.gameOver = false
	engine.winner = -1
	engine.turns = NewTurnProcessor(engine)

	gameCtx := engine.stateMachine.GetContext()
	gameCtx.GameID = engine.gameID
	gameCtx.Logger = ei.logger.With().Str("game_id", engine.gameID).Logger()

	ei.logger.Info().Str("game_id", engine.gameID).Msg("Rematch requested")
	return ei.start(ctx, engine)
}

// setupDefaults fills in missing configuration values
func (ei *EngineInitializer) setupDefaults() {
	cfg := &ei.config

	if cfg.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.NewString()
	}
	if cfg.Size == 0 {
		cfg.Size = core.DefaultBoardSize
	}
	if len(cfg.Catalog) == 0 {
		cfg.Catalog = core.DefaultCatalog()
	}

	defaults := mapgen.DefaultMapConfig(cfg.Size)
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.MaxRestarts == 0 {
		cfg.MaxRestarts = defaults.MaxRestarts
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus().WithLogger(ei.logger)
	}
	if cfg.Targeter == nil {
		cfg.Targeter = NewRandomTargeter(cfg.Rng)
	}
}

// createEngine wires the engine components together
func (ei *EngineInitializer) createEngine() *Engine {
	cfg := ei.config

	gameContext := states.NewGameContext(cfg.GameID, NumPlayers, ei.logger)
	stateMachine := states.NewStateMachine(gameContext, cfg.EventBus)

	engine := &Engine{
		gs:           newGameState(),
		mode:         cfg.Mode,
		catalog:      cfg.Catalog,
		rng:          cfg.Rng,
		winner:       -1,
		logger:       ei.logger.With().Str("game_id", cfg.GameID).Logger(),
		shots:        processor.NewShotProcessor(ei.logger),
		winCondition: rules.NewWinConditionChecker(ei.logger),
		eventBus:     cfg.EventBus,
		gameID:       cfg.GameID,
		stateMachine: stateMachine,
		targeter:     cfg.Targeter,
		setup:        ei,
	}
	engine.turns = NewTurnProcessor(engine)
	return engine
}

// placeFleets returns one board per player, either the fixed layouts from
// the configuration or freshly generated ones.
func (ei *EngineInitializer) placeFleets(ctx context.Context) ([]*core.Board, error) {
	if len(ei.config.Boards) > 0 {
		return ei.fixedBoards()
	}

	mapCfg := mapgen.MapConfig{
		Size:        ei.config.Size,
		Catalog:     ei.config.Catalog,
		MaxAttempts: ei.config.MaxAttempts,
		MaxRestarts: ei.config.MaxRestarts,
		Spacing:     ei.config.Spacing,
	}
	generator := mapgen.NewGenerator(mapCfg, ei.config.Rng)

	boards := make([]*core.Board, NumPlayers)
	for i := range boards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("player %d board: %w", i, err)
		}
		stats := generator.Stats()
		ei.logger.Debug().
			Int("player_id", i).
			Int("restarts", stats.Restarts).
			Int("samples", stats.Samples).
			Msg("Board generated")
		boards[i] = b
	}
	return boards, nil
}

func (ei *EngineInitializer) fixedBoards() ([]*core.Board, error) {
	if len(ei.config.Boards) != NumPlayers {
		return nil, fmt.Errorf("need %d fixed boards, got %d", NumPlayers, len(ei.config.Boards))
	}
	boards := make([]*core.Board, NumPlayers)
	for i, b := range ei.config.Boards {
		if b == nil {
			return nil, fmt.Errorf("fixed board %d is nil", i)
		}
		if b.Size() != ei.config.Boards[0].Size() {
			return nil, fmt.Errorf("fixed boards differ in size: %d and %d", ei.config.Boards[0].Size(), b.Size())
		}
		if b.CountShipCells() == 0 {
			return nil, fmt.Errorf("fixed board %d has no ships afloat: %w", i, core.ErrInvalidCatalog)
		}
		boards[i] = b.Clone()
	}
	ei.logger.Debug().Int("board_size", boards[0].Size()).Msg("Using fixed boards")
	return boards, nil
}

// initializePlayers indexes each fleet and starts the remaining counters
func (ei *EngineInitializer) initializePlayers(gs *GameState, boards []*core.Board) {
	for i, b := range boards {
		gs.Players[i] = Player{
			ID:        i,
			Board:     b,
			Fleet:     core.FleetFromBoard(b),
			Remaining: b.CountShipCells(),
		}
	}
}

func (ei *EngineInitializer) fail(engine *Engine, err error) {
	engine.stateMachine.GetContext().Error = err
	if tErr := engine.stateMachine.TransitionTo(states.PhaseError, "setup failed"); tErr != nil {
		ei.logger.Error().Err(tErr).Msg("Failed to transition to Error state")
	}
	ei.logger.Error().Err(err).Msg("Engine setup failed")
}
