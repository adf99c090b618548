package fields

import (
	"math"

	"github.com/talgya/worldforge/internal/grid"
)

// truncate is the kernel half-width in standard deviations.
const truncate = 4.0

// GaussianBlur returns a smoothed copy of f. The blur is separable (rows,
// then columns) and mirrors the field at its edges.
func GaussianBlur(f *grid.Field, sigma float64) *grid.Field {
	if sigma <= 0 {
		return f.Clone()
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	tmp := grid.NewField(f.Size)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			sum := 0.0
			for k, w := range kernel {
				sx := reflect(x+k-radius, f.W)
				sum += w * f.At(grid.Point{X: sx, Y: y})
			}
			tmp.Set(grid.Point{X: x, Y: y}, sum)
		}
	}

	out := grid.NewField(f.Size)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			sum := 0.0
			for k, w := range kernel {
				sy := reflect(y+k-radius, f.H)
				sum += w * tmp.At(grid.Point{X: x, Y: sy})
			}
			out.Set(grid.Point{X: x, Y: y}, sum)
		}
	}
	return out
}

// gaussianKernel returns normalized weights for offsets -r..r.
func gaussianKernel(sigma float64) []float64 {
	r := int(truncate*sigma + 0.5)
	kernel := make([]float64, 2*r+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - r)
		kernel[i] = math.Exp(-0.5 * d * d / (sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// reflect maps an out-of-range index back into [0, n) by mirroring about the
// edges (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
