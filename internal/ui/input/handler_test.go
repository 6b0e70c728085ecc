package input

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(input string) (*Handler, *bytes.Buffer) {
	var out bytes.Buffer
	return NewHandler(strings.NewReader(input), &out), &out
}

func TestReadInt(t *testing.T) {
	h, out := newHandler("abc 12\n")

	n, err := h.ReadInt("> ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, "> "+h.InvalidNumber+"\n> ", out.String())
}

func TestReadInt_EOF(t *testing.T) {
	h, _ := newHandler("  \n")

	_, err := h.ReadInt("> ")
	assert.True(t, errors.Is(err, ErrClosed))
	assert.Contains(t, err.Error(), "input closed")
}

func TestReadIntInRange(t *testing.T) {
	h, out := newHandler("5\n-1\n2\n")

	n, err := h.ReadIntInRange("opcion: ", "otra: ", "no valida", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, strings.Count(out.String(), "no valida"))
	assert.Equal(t, 2, strings.Count(out.String(), "otra: "))
}

func TestReadCoordinate(t *testing.T) {
	t.Run("one line", func(t *testing.T) {
		h, _ := newHandler("3 7\n")
		c, err := h.ReadCoordinate("fila: ", "columna: ")
		require.NoError(t, err)
		assert.Equal(t, core.NewCoordinate(3, 7), c)
	})

	t.Run("separate lines with noise", func(t *testing.T) {
		h, _ := newHandler("x\n4\n?\n0\n")
		c, err := h.ReadCoordinate("fila: ", "columna: ")
		require.NoError(t, err)
		assert.Equal(t, core.NewCoordinate(4, 0), c)
	})

	t.Run("eof after row", func(t *testing.T) {
		h, _ := newHandler("4")
		_, err := h.ReadCoordinate("fila: ", "columna: ")
		assert.ErrorIs(t, err, ErrClosed)
		assert.Contains(t, err.Error(), "column")
	})
}
