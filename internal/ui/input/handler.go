package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
	"github.com/pkg/errors"
)

// ErrClosed is returned once the input stream has no more tokens.
var ErrClosed = errors.New("input closed")

// Handler reads whitespace-separated integers from the player. Several
// numbers may be typed on one line.
type Handler struct {
	scanner *bufio.Scanner
	out     io.Writer

	// InvalidNumber is printed when a token is not an integer.
	InvalidNumber string
}

func NewHandler(in io.Reader, out io.Writer) *Handler {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Handler{
		scanner:       sc,
		out:           out,
		InvalidNumber: "Introduce un numero entero.",
	}
}

// ReadInt prints prompt and returns the next integer, re-prompting past
// anything that does not parse.
func (h *Handler) ReadInt(prompt string) (int, error) {
	for {
		fmt.Fprint(h.out, prompt)
		if !h.scanner.Scan() {
			if err := h.scanner.Err(); err != nil {
				return 0, errors.Wrap(err, "read input")
			}
			fmt.Fprintln(h.out)
			return 0, errors.WithMessagef(ErrClosed, "waiting for %q", prompt)
		}

		n, err := strconv.Atoi(h.scanner.Text())
		if err != nil {
			fmt.Fprintln(h.out, h.InvalidNumber)
			continue
		}
		return n, nil
	}
}

// ReadIntInRange keeps asking until the number is within [lo, hi].
// retry replaces the prompt after an out-of-range answer.
func (h *Handler) ReadIntInRange(prompt, retry, invalid string, lo, hi int) (int, error) {
	n, err := h.ReadInt(prompt)
	for err == nil && (n < lo || n > hi) {
		fmt.Fprintln(h.out, invalid)
		n, err = h.ReadInt(retry)
	}
	return n, err
}

// ReadCoordinate asks for a row and then a column.
func (h *Handler) ReadCoordinate(rowPrompt, colPrompt string) (core.Coordinate, error) {
	row, err := h.ReadInt(rowPrompt)
	if err != nil {
		return core.Coordinate{}, errors.WithMessage(err, "row")
	}
	col, err := h.ReadInt(colPrompt)
	if err != nil {
		return core.Coordinate{}, errors.WithMessage(err, "column")
	}
	return core.NewCoordinate(row, col), nil
}
