package grid

import (
	"fmt"
	"math"
)

// Field is a dense row-major grid of real values (elevation, temperature, humidity).
type Field struct {
	Size
	data []float64
}

// NewField allocates a zeroed field.
func NewField(size Size) *Field {
	return &Field{Size: size, data: make([]float64, size.Cells())}
}

// FieldFromRows builds a field from [y][x] rows. All rows must share a length.
func FieldFromRows(rows [][]float64) (*Field, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("field: need at least one row and one column")
	}
	f := NewField(Size{W: len(rows[0]), H: len(rows)})
	for y, row := range rows {
		if len(row) != f.W {
			return nil, fmt.Errorf("field: row %d has %d values, want %d", y, len(row), f.W)
		}
		copy(f.data[y*f.W:], row)
	}
	return f, nil
}

// Values exposes the backing slice so callers can read/write values directly.
func (f *Field) Values() []float64 { return f.data }

// At returns the value at p.
func (f *Field) At(p Point) float64 {
	return f.data[f.Index(p)]
}

// Set stores v at p.
func (f *Field) Set(p Point, v float64) {
	f.data[f.Index(p)] = v
}

// Scale multiplies the value at p by k.
func (f *Field) Scale(p Point, k float64) {
	f.data[f.Index(p)] *= k
}

// Clone returns an independent copy.
func (f *Field) Clone() *Field {
	c := NewField(f.Size)
	copy(c.data, f.data)
	return c
}

// Bounds returns the minimum and maximum value in the field.
func (f *Field) Bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range f.data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
