// Package tiles loads and validates terrain tile definitions: the named
// categories the solver assigns to cells, with their environmental ranges
// and adjacency requirements.
package tiles

import (
	"fmt"
	"math"
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Unbounded admits every value.
var Unbounded = Range{Min: math.Inf(-1), Max: math.Inf(1)}

// Contains reports whether v lies in the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Empty reports whether no value can satisfy the range.
func (r Range) Empty() bool {
	return math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// Adjacency requires at least MinCount of a cell's four orthogonal neighbors
// to carry one of the Required tiles.
type Adjacency struct {
	Required []string
	MinCount int

	mask []bool // indexed by tile index
}

// Accepts reports whether the tile with index i is in the required set.
func (a Adjacency) Accepts(i int) bool {
	return i >= 0 && i < len(a.mask) && a.mask[i]
}

// Definition is a validated tile. Definitions are immutable and shared by
// every cell that references them.
type Definition struct {
	Name        string
	Symbol      string
	Elevation   Range
	Temperature Range
	Humidity    Range
	Weight      float64
	// Overlay tiles are labels applied after solving (rivers, settlements).
	// The solver never places them.
	Overlay bool
	Rules   []Adjacency

	index int
}

// Index returns the tile's position in its Set.
func (d *Definition) Index() int { return d.index }

// Admits reports whether the tile's environmental ranges contain the given
// field values.
func (d *Definition) Admits(elevation, temperature, humidity float64) bool {
	return d.Elevation.Contains(elevation) &&
		d.Temperature.Contains(temperature) &&
		d.Humidity.Contains(humidity)
}
