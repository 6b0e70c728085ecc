package renderer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
)

// -----------------------------------------------------------------------------
// Colour definitions
// -----------------------------------------------------------------------------

const (
	Reset  = "\033[0m"
	Black  = "\033[30m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	White  = "\033[37m"
	Grey   = "\033[90m"
)

// CellColors is indexed by cell value: water, ship sizes 1..5, hit, miss.
var CellColors = [...]string{Black, Cyan, Blue, Yellow, Green, Purple, Red, Grey}

const (
	WaterSymbol = "~"
	HitSymbol   = "X"
	MissSymbol  = "o"
)

// boardGap separates two boards printed side by side.
const boardGap = "     "

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

type BoardRenderer struct {
	color bool
}

// NewBoardRenderer returns a renderer; color=false prints plain text.
func NewBoardRenderer(color bool) *BoardRenderer {
	return &BoardRenderer{color: color}
}

// Paint wraps s in an ANSI colour when colour output is enabled.
func (br *BoardRenderer) Paint(code, s string) string {
	if !br.color || code == "" {
		return s
	}
	return code + s + Reset
}

// Symbol returns the text used for one cell.
func Symbol(cell core.Cell) string {
	switch {
	case cell.IsShip():
		return fmt.Sprint(cell.ShipSize())
	case cell.IsHit():
		return HitSymbol
	case cell.IsMiss():
		return MissSymbol
	default:
		return WaterSymbol
	}
}

func (br *BoardRenderer) cell(cell core.Cell) string {
	code := ""
	if int(cell) < len(CellColors) {
		code = CellColors[cell]
	}
	return br.Paint(code, Symbol(cell))
}

// width is the visible width of a rendered board line.
func width(n int) int { return 3 + 2*n }

// Lines renders view under title, one string per output line.
func (br *BoardRenderer) Lines(title string, view core.View) []string {
	n := view.Size()
	lines := make([]string, 0, n+2)
	lines = append(lines, pad(title, width(n)))

	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < n; col++ {
		fmt.Fprintf(&sb, "%2d", col)
	}
	lines = append(lines, sb.String())

	for row := 0; row < n; row++ {
		sb.Reset()
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 0; col < n; col++ {
			sb.WriteByte(' ')
			sb.WriteString(br.cell(view.At(core.NewCoordinate(row, col))))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// Render writes a single board.
func (br *BoardRenderer) Render(w io.Writer, title string, view core.View) error {
	for _, line := range br.Lines(title, view) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderPair writes two boards of the same size next to each other.
func (br *BoardRenderer) RenderPair(w io.Writer, leftTitle string, left core.View, rightTitle string, right core.View) error {
	l := br.Lines(leftTitle, left)
	r := br.Lines(rightTitle, right)
	for i := 0; i < max(len(l), len(r)); i++ {
		var a, b string
		if i < len(l) {
			a = l[i]
		} else {
			a = strings.Repeat(" ", width(left.Size()))
		}
		if i < len(r) {
			b = r[i]
		}
		if _, err := fmt.Fprintln(w, a+boardGap+b); err != nil {
			return err
		}
	}
	return nil
}

// pad right-fills s with spaces up to n visible characters.
func pad(s string, n int) string {
	if k := utf8.RuneCountInString(s); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
