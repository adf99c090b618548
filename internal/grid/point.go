// Package grid provides the square grid coordinates and the row-major
// containers shared by every generation stage.
package grid

import "math"

// Point is a cell position. X grows east, Y grows south.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Directions4 lists the four orthogonal offsets in fixed N, E, S, W order.
// Every neighbor scan in the generator uses this order, which keeps
// tie-breaks reproducible.
var Directions4 = [4]Point{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// Add returns p offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Manhattan returns the taxicab distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev returns the king-move distance between two points.
func Chebyshev(a, b Point) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Euclidean returns the straight-line distance between two points.
func Euclidean(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Size holds grid dimensions.
type Size struct {
	W int `json:"width"`
	H int `json:"height"`
}

// Cells returns W*H.
func (s Size) Cells() int {
	return s.W * s.H
}

// InBounds reports whether p lies inside the grid.
func (s Size) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.W && p.Y >= 0 && p.Y < s.H
}

// Index returns the row-major slice index of p.
func (s Size) Index(p Point) int {
	return p.Y*s.W + p.X
}

// PointAt is the inverse of Index.
func (s Size) PointAt(i int) Point {
	return Point{X: i % s.W, Y: i / s.W}
}

// Neighbors returns the in-bounds orthogonal neighbors of p in N, E, S, W order.
func (s Size) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range Directions4 {
		n := p.Add(d)
		if s.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Points returns every cell in row-major order.
func (s Size) Points() []Point {
	out := make([]Point, 0, s.Cells())
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
