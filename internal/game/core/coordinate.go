package core

import "fmt"

// Coordinate represents a (row, column) position on a board
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a row-major board index
func FromIndex(idx, size int) Coordinate {
	return Coordinate{
		Row: idx / size,
		Col: idx % size,
	}
}

// IsValid checks if the coordinate is within a size×size board
func (c Coordinate) IsValid(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// ToIndex converts the coordinate to a row-major board index
func (c Coordinate) ToIndex(size int) int {
	return c.Row*size + c.Col
}

// Add returns the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// Scale returns the coordinate with both components multiplied by k
func (c Coordinate) Scale(k int) Coordinate {
	return Coordinate{Row: c.Row * k, Col: c.Col * k}
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	dr := abs(c.Row - other.Row)
	dc := abs(c.Col - other.Col)
	return (dr == 1 && dc == 0) || (dr == 0 && dc == 1)
}

// Touches reports whether two distinct coordinates share an edge or a corner
func (c Coordinate) Touches(other Coordinate) bool {
	dr := abs(c.Row - other.Row)
	dc := abs(c.Col - other.Col)
	return dr <= 1 && dc <= 1 && !(dr == 0 && dc == 0)
}

// Neighbors returns the four orthogonal neighbors, in Direction order
func (c Coordinate) Neighbors() []Coordinate {
	out := make([]Coordinate, 0, len(Directions))
	for _, d := range Directions {
		out = append(out, c.Move(d))
	}
	return out
}

// Surrounding returns all eight orthogonal and diagonal neighbors
func (c Coordinate) Surrounding() []Coordinate {
	out := make([]Coordinate, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			out = append(out, Coordinate{Row: c.Row + dr, Col: c.Col + dc})
		}
	}
	return out
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is one of the four orthogonal orientations a ship can extend in
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in the order placement evaluates them
var Directions = [...]Direction{North, East, South, West}

// DirectionVectors provides the row/column step for each direction
var DirectionVectors = map[Direction]Coordinate{
	North: {Row: -1, Col: 0},
	East:  {Row: 0, Col: 1},
	South: {Row: 1, Col: 0},
	West:  {Row: 0, Col: -1},
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	if offset, ok := DirectionVectors[direction]; ok {
		return c.Add(offset)
	}
	return c
}

// Walk returns the coordinate reached after steps moves in direction
func (c Coordinate) Walk(direction Direction, steps int) Coordinate {
	if offset, ok := DirectionVectors[direction]; ok {
		return c.Add(offset.Scale(steps))
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
