package core

import (
	"fmt"
	"sort"
)

// ShipClass is one row of the fleet table: how many ships of a size to place.
type ShipClass struct {
	Size  int    `mapstructure:"size" yaml:"size"`
	Count int    `mapstructure:"count" yaml:"count"`
	Name  string `mapstructure:"name" yaml:"name"`
}

// Catalog is the complete fleet a board must hold.
type Catalog []ShipClass

var defaultShipNames = map[int]string{
	1: "Lancha",
	2: "Crucero",
	3: "Submarino",
	4: "Buque",
	5: "Portaaviones",
}

// DefaultCatalog returns five size-1 boats down to one size-5 carrier (35 cells).
func DefaultCatalog() Catalog {
	c, _ := NewCatalog([]int{1, 2, 3, 4, 5}, []int{5, 4, 3, 2, 1})
	return c
}

// NewCatalog pairs sizes with counts. The slices must be the same length.
func NewCatalog(sizes, counts []int) (Catalog, error) {
	if len(sizes) != len(counts) {
		return nil, fmt.Errorf("%d sizes but %d counts: %w", len(sizes), len(counts), ErrInvalidCatalog)
	}
	c := make(Catalog, len(sizes))
	for i := range sizes {
		c[i] = ShipClass{Size: sizes[i], Count: counts[i], Name: ShipName(sizes[i])}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ShipName returns the traditional name for a ship size.
func ShipName(size int) string {
	if name, ok := defaultShipNames[size]; ok {
		return name
	}
	return fmt.Sprintf("Barco-%d", size)
}

// Validate checks sizes fit the cell encoding, counts are non-negative and sizes are unique.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("empty catalog: %w", ErrInvalidCatalog)
	}
	seen := make(map[int]bool, len(c))
	for _, sc := range c {
		if sc.Size < MinShipSize || sc.Size > MaxShipSize {
			return fmt.Errorf("ship size %d outside %d..%d: %w", sc.Size, MinShipSize, MaxShipSize, ErrInvalidCatalog)
		}
		if sc.Count < 0 {
			return fmt.Errorf("negative count %d for size %d: %w", sc.Count, sc.Size, ErrInvalidCatalog)
		}
		if seen[sc.Size] {
			return fmt.Errorf("duplicate ship size %d: %w", sc.Size, ErrInvalidCatalog)
		}
		seen[sc.Size] = true
	}
	return nil
}

// TotalCells is the number of ship segments a full fleet occupies.
func (c Catalog) TotalCells() int {
	total := 0
	for _, sc := range c {
		total += sc.Size * sc.Count
	}
	return total
}

// ShipCount is the number of ships in the fleet.
func (c Catalog) ShipCount() int {
	n := 0
	for _, sc := range c {
		n += sc.Count
	}
	return n
}

// LargestFirst returns a copy ordered by descending ship size.
func (c Catalog) LargestFirst() Catalog {
	out := make(Catalog, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out
}

// NameFor returns the catalog's name for a size, falling back to ShipName.
func (c Catalog) NameFor(size int) string {
	for _, sc := range c {
		if sc.Size == size && sc.Name != "" {
			return sc.Name
		}
	}
	return ShipName(size)
}
