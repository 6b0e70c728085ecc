package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game"
	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/mitchelldurbincs/hundirlaflota/internal/ui/input"
	"github.com/mitchelldurbincs/hundirlaflota/internal/ui/renderer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type PlayerType int

const (
	PlayerTypeHuman PlayerType = iota
	PlayerTypeComputer
)

// HumanGame plays one match on the terminal.
type HumanGame struct {
	engine       *game.Engine
	in           *input.Handler
	out          io.Writer
	br           *renderer.BoardRenderer
	players      [game.NumPlayers]PlayerType
	showOwnBoard bool
	logger       zerolog.Logger
}

func NewHumanGame(engine *game.Engine, in *input.Handler, out io.Writer, br *renderer.BoardRenderer, showOwnBoard bool, logger zerolog.Logger) *HumanGame {
	g := &HumanGame{
		engine:       engine,
		in:           in,
		out:          out,
		br:           br,
		showOwnBoard: showOwnBoard,
		logger:       logger.With().Str("component", "HumanGame").Str("game_id", engine.GameID()).Logger(),
	}
	if engine.Mode() == game.ModePvE {
		g.players[game.ComputerID] = PlayerTypeComputer
	}
	return g
}

// Play alternates turns until one fleet is sunk.
func (g *HumanGame) Play(ctx context.Context) error {
	for !g.engine.IsGameOver() {
		current := g.engine.CurrentPlayer()

		var err error
		if g.players[current] == PlayerTypeComputer {
			err = g.handleComputerTurn(ctx)
		} else {
			err = g.handleHumanTurn(ctx, current)
		}
		if err != nil {
			return err
		}
	}

	g.announceWinner()
	return nil
}

func (g *HumanGame) pve() bool { return g.engine.Mode() == game.ModePvE }

func (g *HumanGame) handleHumanTurn(ctx context.Context, playerID int) error {
	rowPrompt, colPrompt := "Ingresa fila: ", "Ingresa columna: "
	if g.pve() {
		fmt.Fprintln(g.out, g.br.Paint(renderer.Cyan, "Tu turno:"))
		rowPrompt, colPrompt = "Introduce la fila: ", "Introduce la columna: "
	} else {
		fmt.Fprintln(g.out, g.br.Paint(renderer.Yellow, fmt.Sprintf("Turno del Jugador %d", playerID+1)))
	}
	if err := g.drawBoards(playerID); err != nil {
		return err
	}

	for {
		target, err := g.in.ReadCoordinate(rowPrompt, colPrompt)
		if err != nil {
			return err
		}

		report, err := g.engine.Fire(ctx, playerID, target)
		if errors.Is(err, core.ErrOutOfBounds) {
			n := g.engine.BoardSize() - 1
			fmt.Fprintln(g.out, g.br.Paint(renderer.Red, fmt.Sprintf("Coordenada fuera del tablero, usa valores entre 0 y %d.", n)))
			continue
		}
		if err != nil {
			return errors.WithMessagef(err, "player %d shot", playerID+1)
		}

		g.announceShot(report)
		return nil
	}
}

func (g *HumanGame) handleComputerTurn(ctx context.Context) error {
	report, err := g.engine.ComputerShot(ctx)
	if err != nil {
		return errors.WithMessage(err, "computer shot")
	}

	c := report.Result.Target
	fmt.Fprintln(g.out, g.br.Paint(renderer.Purple, fmt.Sprintf("La Máquina dispara a: (%d,%d)", c.Row, c.Col)))
	switch {
	case report.Sunk:
		fmt.Fprintln(g.out, g.br.Paint(renderer.Red, "Han tocado tu barco!"))
		fmt.Fprintln(g.out, g.br.Paint(renderer.Red, fmt.Sprintf("Te han hundido: %s", report.ShipName)))
	case report.Result.IsHit():
		fmt.Fprintln(g.out, g.br.Paint(renderer.Red, "Han tocado tu barco!"))
	default:
		fmt.Fprintln(g.out, g.br.Paint(renderer.Grey, "Han fallado."))
	}
	return nil
}

func (g *HumanGame) announceShot(report game.ShotReport) {
	switch {
	case report.Sunk:
		fmt.Fprintln(g.out, g.br.Paint(renderer.Green, "Tocado!"))
		fmt.Fprintln(g.out, g.br.Paint(renderer.Green, fmt.Sprintf("Hundido! %s", report.ShipName)))
	case report.Result.IsHit():
		fmt.Fprintln(g.out, g.br.Paint(renderer.Green, "Tocado!"))
	case report.Result.Repeated:
		fmt.Fprintln(g.out, g.br.Paint(renderer.Grey, "Agua... (ya habias disparado ahi)"))
	case g.pve():
		fmt.Fprintln(g.out, g.br.Paint(renderer.Grey, "Agua..."))
	default:
		fmt.Fprintln(g.out, g.br.Paint(renderer.Cyan, "Agua..."))
	}
	g.logger.Debug().
		Int("shooter", report.Shooter).
		Stringer("target", report.Result.Target).
		Int("remaining", report.Remaining).
		Msg("Shot announced")
}

func (g *HumanGame) drawBoards(playerID int) error {
	enemy := g.engine.TargetView(playerID)
	if !g.showOwnBoard {
		return g.br.Render(g.out, "Flota rival", enemy)
	}
	return g.br.RenderPair(g.out, "Tu flota", g.engine.Board(playerID), "Flota rival", enemy)
}

func (g *HumanGame) announceWinner() {
	fmt.Fprintln(g.out)
	winner := g.engine.Winner()
	switch {
	case g.pve() && winner == game.HumanID:
		fmt.Fprintln(g.out, g.br.Paint(renderer.Green, "Enhorabuena! ¡Has ganado!"))
	case g.pve():
		fmt.Fprintln(g.out, g.br.Paint(renderer.Red, "Has perdido..."))
	default:
		fmt.Fprintln(g.out, g.br.Paint(renderer.Red, fmt.Sprintf("Gana el Jugador %d!!", winner+1)))
	}

	stats := g.engine.Stats(winner)
	g.logger.Info().
		Int("winner", winner).
		Int("turns", g.engine.Turn()).
		Int("shots", stats.Shots).
		Float64("accuracy", stats.Accuracy()).
		Dur("elapsed", g.engine.Elapsed()).
		Msg("Match finished")
}
