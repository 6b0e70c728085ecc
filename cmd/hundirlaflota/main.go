package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mitchelldurbincs/hundirlaflota/internal/config"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/events"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/hundirlaflota/internal/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML config file")
	environment = flag.String("env", "", "Environment overlay (merges config.<env>.yaml)")
	logLevel    = flag.String("log-level", "", "Overrides log.level (debug, info, warn, error)")
	seed        = flag.Int64("seed", 0, "Overrides game.seed; 0 seeds from the clock")
	mode        = flag.String("mode", "", "Skip the menu and play one match (pvp or pve)")
	printConfig = flag.Bool("print-config", false, "Print the effective configuration and exit")
)

func main() {
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.LoadEnvironmentConfig(*environment); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s config: %v\n", *environment, err)
		os.Exit(1)
	}
	overrides := map[string]interface{}{}
	if *logLevel != "" {
		overrides["log.level"] = *logLevel
	}
	if *seed != 0 {
		overrides["game.seed"] = *seed
	}
	if *mode != "" {
		overrides["game.mode"] = *mode
	}
	for key, value := range overrides {
		if err := config.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "invalid override %s: %v\n", key, err)
			os.Exit(2)
		}
	}

	cfg := config.Get()
	setupLogging(cfg.Log)

	if *printConfig {
		out, err := config.Dump()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to dump config")
		}
		fmt.Print(out)
		return
	}

	if path := config.ConfigFilePath(); path != "" {
		log.Info().Str("file", path).Msg("Watching config file")
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Config reload rejected, keeping previous settings")
				return
			}
			if level, lerr := zerolog.ParseLevel(config.Get().Log.Level); lerr == nil {
				zerolog.SetGlobalLevel(level)
			}
			log.Info().Msg("Config reloaded, changes apply to matches started from the menu")
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewEventBus().WithLogger(log.Logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("event-log", log.Logger, zerolog.DebugLevel))

	rng := newRng(cfg.Game.Seed)
	factory := func(ctx context.Context, m game.Mode) (*game.Engine, error) {
		return newEngine(ctx, config.Get(), m, rng, bus)
	}

	console := ui.NewConsole(os.Stdin, os.Stdout, cfg.UI.Color, cfg.UI.ShowOwnBoard, factory, log.Logger)

	var err error
	if cfg.Game.Mode != "" {
		m, perr := game.ParseMode(cfg.Game.Mode)
		if perr != nil {
			log.Fatal().Err(perr).Msg("Invalid game mode")
		}
		err = console.RunMode(ctx, m)
	} else {
		err = console.Run(ctx)
	}
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("Game aborted")
	}
}

// newEngine starts a match from the current configuration.
func newEngine(ctx context.Context, cfg *config.Config, m game.Mode, rng *rand.Rand, bus *events.EventBus) (*game.Engine, error) {
	spacing, err := cfg.Game.Placement.ParsedSpacing()
	if err != nil {
		return nil, err
	}
	return game.NewEngine(ctx, game.GameConfig{
		Size:        cfg.Game.Board.Size,
		Catalog:     cfg.Game.Catalog(),
		Spacing:     spacing,
		MaxAttempts: cfg.Game.Placement.MaxAttempts,
		MaxRestarts: cfg.Game.Placement.MaxRestarts,
		Mode:        m,
		Rng:         rng,
		Logger:      log.Logger,
		EventBus:    bus,
	})
}

func newRng(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug().Int64("seed", seed).Msg("Random source seeded")
	return rand.New(rand.NewSource(seed))
}

func setupLogging(c config.LogConfig) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	// Logs go to stderr so they never interleave with the boards on stdout.
	if c.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
