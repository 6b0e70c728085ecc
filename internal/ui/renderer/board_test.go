package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/mitchelldurbincs/hundirlaflota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	assert.Equal(t, "~", Symbol(core.CellEmpty))
	assert.Equal(t, "3", Symbol(core.ShipCell(3)))
	assert.Equal(t, "X", Symbol(core.CellHit))
	assert.Equal(t, "o", Symbol(core.CellMiss))
}

func TestBoardRenderer_Plain(t *testing.T) {
	b := testutil.BoardFromRows(t,
		"2X.",
		"...",
		"o.1",
	)
	br := NewBoardRenderer(false)

	var buf bytes.Buffer
	require.NoError(t, br.Render(&buf, "Mi flota", b))

	want := strings.Join([]string{
		"Mi flota ",
		"    0 1 2",
		" 0  2 X ~",
		" 1  ~ ~ ~",
		" 2  o ~ 1",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestBoardRenderer_Color(t *testing.T) {
	br := NewBoardRenderer(true)
	lines := br.Lines("t", testutil.BoardFromRows(t, "X.", ".5"))

	assert.Contains(t, lines[2], Red+"X"+Reset)
	assert.Contains(t, lines[2], Black+"~"+Reset)
	assert.Contains(t, lines[3], Purple+"5"+Reset)
	assert.Equal(t, "plain", NewBoardRenderer(false).Paint(Red, "plain"))
}

func TestBoardRenderer_RenderPair(t *testing.T) {
	br := NewBoardRenderer(false)
	left := testutil.BoardFromRows(t, "1.", "..")
	right := testutil.BoardFromRows(t, "..", ".X")

	var buf bytes.Buffer
	require.NoError(t, br.RenderPair(&buf, "Tuyo", left, "Rival", right))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Tuyo   "+boardGap+"Rival  ", lines[0])
	assert.Equal(t, " 0  1 ~"+boardGap+" 0  ~ ~", lines[2])
	assert.Equal(t, " 1  ~ ~"+boardGap+" 1  ~ X", lines[3])
}
