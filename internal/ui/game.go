package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game"
	"github.com/mitchelldurbincs/hundirlaflota/internal/ui/input"
	"github.com/mitchelldurbincs/hundirlaflota/internal/ui/renderer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Option is a main menu entry
type Option int

const (
	OptionExit Option = iota
	OptionPvP
	OptionPvE
)

// EngineFactory builds a fresh match for the chosen mode.
type EngineFactory func(ctx context.Context, mode game.Mode) (*game.Engine, error)

// Console drives the terminal front end: menu, match setup and replay.
type Console struct {
	in           *input.Handler
	out          io.Writer
	br           *renderer.BoardRenderer
	newEngine    EngineFactory
	showOwnBoard bool
	logger       zerolog.Logger
}

// NewConsole wires a console to the given streams.
func NewConsole(in io.Reader, out io.Writer, color, showOwnBoard bool, newEngine EngineFactory, logger zerolog.Logger) *Console {
	return &Console{
		in:           input.NewHandler(in, out),
		out:          out,
		br:           renderer.NewBoardRenderer(color),
		newEngine:    newEngine,
		showOwnBoard: showOwnBoard,
		logger:       logger.With().Str("component", "Console").Logger(),
	}
}

// Menu shows the main menu and returns a valid option.
func (c *Console) Menu() (Option, error) {
	p := c.br.Paint
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, p(renderer.Blue, "=============================="))
	fmt.Fprintln(c.out, p(renderer.Blue, "      HUNDIR LA FLOTA"))
	fmt.Fprintln(c.out, p(renderer.Blue, "=============================="))
	fmt.Fprintln(c.out, p(renderer.Yellow, " 1 ")+"- PvP")
	fmt.Fprintln(c.out, p(renderer.Cyan, " 2 ")+"- PvE")
	fmt.Fprintln(c.out, p(renderer.Green, " 0 ")+"- Salir")
	fmt.Fprintln(c.out)

	n, err := c.in.ReadIntInRange(
		"Selecciona una opcion: ",
		"Vuelve a introducir una opcion: ",
		p(renderer.Red, "Opcion no valida."),
		int(OptionExit), int(OptionPvE),
	)
	return Option(n), err
}

// Run loops over the menu until the player exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		opt, err := c.Menu()
		if err != nil {
			return c.closed(err)
		}

		var mode game.Mode
		switch opt {
		case OptionPvP:
			mode = game.ModePvP
		case OptionPvE:
			mode = game.ModePvE
		default:
			fmt.Fprintln(c.out, c.br.Paint(renderer.Red, "Saliendo..."))
			return nil
		}

		if err := c.Play(ctx, mode); err != nil {
			return c.closed(err)
		}
	}
}

// Play runs a match in the given mode and offers rematches on the same
// engine until the player declines.
func (c *Console) Play(ctx context.Context, mode game.Mode) error {
	engine, err := c.newEngine(ctx, mode)
	if err != nil {
		return errors.WithMessage(err, "start game")
	}
	c.logger.Info().Str("game_id", engine.GameID()).Stringer("mode", mode).Msg("Match started")

	fmt.Fprintln(c.out, c.br.Paint(renderer.Green, "Tablero del Jugador 1 cargado correctamente."))
	fmt.Fprintln(c.out, c.br.Paint(renderer.Green, "Tablero del Jugador 2 cargado correctamente."))
	fmt.Fprintln(c.out, c.br.Paint(renderer.Yellow, fmt.Sprintf("Modo %s seleccionado", modeLabel(mode))))

	for {
		if err := NewHumanGame(engine, c.in, c.out, c.br, c.showOwnBoard, c.logger).Play(ctx); err != nil {
			return err
		}

		again, err := c.in.ReadIntInRange(
			"Revancha? (1 = si, 0 = volver al menu): ",
			"Vuelve a introducir una opcion: ",
			c.br.Paint(renderer.Red, "Opcion no valida."),
			0, 1,
		)
		if err != nil || again == 0 {
			return err
		}
		if err := engine.Rematch(ctx); err != nil {
			return errors.WithMessage(err, "start rematch")
		}
		c.logger.Info().Str("game_id", engine.GameID()).Msg("Rematch started")
	}
}

// RunMode plays the given mode without the menu. End of input is a clean exit.
func (c *Console) RunMode(ctx context.Context, mode game.Mode) error {
	return c.closed(c.Play(ctx, mode))
}

// closed turns the end of input into a clean exit.
func (c *Console) closed(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, input.ErrClosed) {
		c.logger.Debug().Err(err).Msg("Input closed")
		fmt.Fprintln(c.out, c.br.Paint(renderer.Red, "Saliendo..."))
		return nil
	}
	return err
}

func modeLabel(mode game.Mode) string {
	if mode == game.ModePvE {
		return "PvE"
	}
	return "PvP"
}
