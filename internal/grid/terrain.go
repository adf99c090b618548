package grid

import (
	"encoding/json"
	"fmt"
)

// TerrainMap holds the tile name assigned to every cell.
type TerrainMap struct {
	Size
	names []string
}

// NewTerrainMap creates a map with every cell set to fill.
func NewTerrainMap(size Size, fill string) *TerrainMap {
	m := &TerrainMap{Size: size, names: make([]string, size.Cells())}
	for i := range m.names {
		m.names[i] = fill
	}
	return m
}

// TerrainFromRows builds a map from [y][x] rows of tile names.
func TerrainFromRows(rows [][]string) (*TerrainMap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("terrain: need at least one row and one column")
	}
	m := NewTerrainMap(Size{W: len(rows[0]), H: len(rows)}, "")
	for y, row := range rows {
		if len(row) != m.W {
			return nil, fmt.Errorf("terrain: row %d has %d cells, want %d", y, len(row), m.W)
		}
		copy(m.names[y*m.W:], row)
	}
	return m, nil
}

// At returns the tile name at p.
func (m *TerrainMap) At(p Point) string {
	return m.names[m.Index(p)]
}

// Set relabels the cell at p.
func (m *TerrainMap) Set(p Point, name string) {
	m.names[m.Index(p)] = name
}

// Rows returns a [y][x] copy of the map, suitable for encoding.
func (m *TerrainMap) Rows() [][]string {
	rows := make([][]string, m.H)
	for y := range rows {
		rows[y] = append([]string(nil), m.names[y*m.W:(y+1)*m.W]...)
	}
	return rows
}

// MarshalJSON encodes the map as its rows.
func (m *TerrainMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}

// Find returns every cell labeled name, in row-major order.
func (m *TerrainMap) Find(name string) []Point {
	var out []Point
	for i, n := range m.names {
		if n == name {
			out = append(out, m.PointAt(i))
		}
	}
	return out
}

// Count returns how many cells are labeled name.
func (m *TerrainMap) Count(name string) int {
	n := 0
	for _, v := range m.names {
		if v == name {
			n++
		}
	}
	return n
}

// Counts returns a summary of the tile distribution.
func (m *TerrainMap) Counts() map[string]int {
	counts := make(map[string]int)
	for _, v := range m.names {
		counts[v]++
	}
	return counts
}

// String returns a summary of the map.
func (m *TerrainMap) String() string {
	return fmt.Sprintf("TerrainMap(%dx%d)", m.W, m.H)
}
