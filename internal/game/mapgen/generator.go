package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/hundirlaflota/internal/game/core"
)

// Spacing selects which neighbours of a candidate cell must be water.
type Spacing int

const (
	// SpacingDiagonal keeps ships from touching at edges or corners.
	SpacingDiagonal Spacing = iota
	// SpacingOrthogonal only checks the four edge neighbours; ships may touch corner to corner.
	SpacingOrthogonal
)

func (s Spacing) String() string {
	switch s {
	case SpacingDiagonal:
		return "diagonal"
	case SpacingOrthogonal:
		return "orthogonal"
	default:
		return fmt.Sprintf("Spacing(%d)", int(s))
	}
}

// ParseSpacing converts a config string to a Spacing
func ParseSpacing(s string) (Spacing, error) {
	switch s {
	case "diagonal", "":
		return SpacingDiagonal, nil
	case "orthogonal":
		return SpacingOrthogonal, nil
	default:
		return SpacingDiagonal, fmt.Errorf("unknown spacing %q (want diagonal or orthogonal)", s)
	}
}

// MapConfig holds configuration for board generation
type MapConfig struct {
	Size        int
	Catalog     core.Catalog
	MaxAttempts int // start-cell samples per ship before the board is restarted
	MaxRestarts int // fresh boards tried before giving up
	Spacing     Spacing
}

// DefaultMapConfig returns the classic 35-cell fleet on a board of the given size
func DefaultMapConfig(size int) MapConfig {
	return MapConfig{
		Size:        size,
		Catalog:     core.DefaultCatalog(),
		MaxAttempts: 1000,
		MaxRestarts: 500,
		Spacing:     SpacingDiagonal,
	}
}

// Stats describes the work done by the last Generate call
type Stats struct {
	Restarts int
	Samples  int
}

// Generator places a fleet on a fresh board using the supplied RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
	stats  Stats
}

// NewGenerator creates a new board generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Validate rejects configurations that can never produce a board
func (g *Generator) Validate() error {
	if g.config.Size < 1 {
		return fmt.Errorf("board size %d must be positive", g.config.Size)
	}
	if err := g.config.Catalog.Validate(); err != nil {
		return err
	}
	if total := g.config.Catalog.TotalCells(); total > g.config.Size*g.config.Size {
		return fmt.Errorf("%d ship cells do not fit a %dx%d board: %w",
			total, g.config.Size, g.config.Size, core.ErrInvalidCatalog)
	}
	for _, sc := range g.config.Catalog {
		if sc.Count > 0 && sc.Size > g.config.Size {
			return fmt.Errorf("size %d ship longer than %dx%d board: %w",
				sc.Size, g.config.Size, g.config.Size, core.ErrInvalidCatalog)
		}
	}
	if g.config.MaxAttempts < 1 || g.config.MaxRestarts < 0 {
		return fmt.Errorf("placement limits must be positive (attempts=%d restarts=%d)",
			g.config.MaxAttempts, g.config.MaxRestarts)
	}
	return nil
}

// Generate returns a new board holding the whole catalog.
// Each call starts from an empty board; nothing is shared between calls.
func (g *Generator) Generate() (*core.Board, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	g.stats = Stats{}
	for restart := 0; restart <= g.config.MaxRestarts; restart++ {
		g.stats.Restarts = restart
		board := core.NewBoard(g.config.Size)
		if g.placeFleet(board) {
			return board, nil
		}
	}

	return nil, fmt.Errorf("%d ship cells on %dx%d board after %d restarts: %w",
		g.config.Catalog.TotalCells(), g.config.Size, g.config.Size, g.config.MaxRestarts, core.ErrPlacementExhausted)
}

// Stats returns counters from the most recent Generate call
func (g *Generator) Stats() Stats { return g.stats }

// placeFleet places every ship, largest first. It returns false when a ship
// exhausted its attempts and the board has to be thrown away.
func (g *Generator) placeFleet(b *core.Board) bool {
	for _, sc := range g.config.Catalog.LargestFirst() {
		for i := 0; i < sc.Count; i++ {
			if !g.placeShip(b, sc.Size) {
				return false
			}
		}
	}
	return true
}

func (g *Generator) placeShip(b *core.Board, size int) bool {
	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		g.stats.Samples++
		start := core.NewCoordinate(g.rng.Intn(b.N), g.rng.Intn(b.N))

		viable := g.viableDirections(b, start, size)
		if len(viable) == 0 {
			continue
		}

		dir := viable[g.rng.Intn(len(viable))]
		writeShip(b, start, dir, size)
		return true
	}
	return false
}

// viableDirections evaluates every step of every direction before deciding.
func (g *Generator) viableDirections(b *core.Board, start core.Coordinate, size int) []core.Direction {
	if !g.isClear(b, start) {
		return nil
	}
	if size == 1 {
		return []core.Direction{core.East}
	}

	viable := make([]core.Direction, 0, len(core.Directions))
	for _, dir := range core.Directions {
		ok := true
		for step := 0; step < size; step++ {
			if !g.isClear(b, start.Walk(dir, step)) {
				ok = false
			}
		}
		if ok {
			viable = append(viable, dir)
		}
	}
	return viable
}

// isClear is the position-clear check: c is on the board, water, and every
// in-bounds neighbour selected by the spacing rule is water too.
func (g *Generator) isClear(b *core.Board, c core.Coordinate) bool {
	if !b.InBounds(c) || !b.At(c).IsEmpty() {
		return false
	}

	var neighbours []core.Coordinate
	if g.config.Spacing == SpacingOrthogonal {
		neighbours = c.Neighbors()
	} else {
		neighbours = c.Surrounding()
	}
	for _, n := range neighbours {
		if b.InBounds(n) && !b.At(n).IsEmpty() {
			return false
		}
	}
	return true
}

func writeShip(b *core.Board, start core.Coordinate, dir core.Direction, size int) {
	for i := 0; i < size; i++ {
		c := start.Walk(dir, i)
		b.T[c.ToIndex(b.N)] = core.ShipCell(size)
	}
}
