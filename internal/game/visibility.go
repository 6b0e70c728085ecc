package game

import "github.com/mitchelldurbincs/hundirlaflota/internal/game/core"

// fogView shows a board the way its opponent sees it: shots are visible,
// ship segments that have not been hit read as water.
type fogView struct {
	board *core.Board
}

func (f fogView) Size() int { return f.board.Size() }

func (f fogView) At(c core.Coordinate) core.Cell {
	cell := f.board.At(c)
	if cell.IsShip() {
		return core.CellEmpty
	}
	return cell
}

// HiddenView wraps b so unhit ships are masked.
func HiddenView(b *core.Board) core.View {
	return fogView{board: b}
}
