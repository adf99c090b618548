package fields

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/worldforge/internal/grid"
)

// Elevation sums the basis functions over normalized grid coordinates.
func Elevation(size grid.Size, cfg Config) *grid.Field {
	f := grid.NewField(size)
	for _, p := range size.Points() {
		x := normalize(p.X, size.W, cfg.Span)
		y := normalize(p.Y, size.H, cfg.Span)
		v := 0.0
		for _, b := range cfg.Basis {
			v += b.Amplitude * math.Sin(b.FreqX*x) * math.Cos(b.FreqY*y)
		}
		f.Set(p, v)
	}
	return f
}

// normalize maps cell i of n onto [0, span], endpoints included.
func normalize(i, n int, span float64) float64 {
	if n <= 1 {
		return 0
	}
	return span * float64(i) / float64(n-1)
}

// AddDetail layers seeded simplex noise on top of the field in place.
func AddDetail(f *grid.Field, cfg Config, seed int64) {
	noise := opensimplex.New(seed)
	octaves := cfg.DetailOctaves
	if octaves < 1 {
		octaves = 1
	}
	for _, p := range f.Points() {
		x := normalize(p.X, f.W, cfg.Span)
		y := normalize(p.Y, f.H, cfg.Span)
		f.Set(p, f.At(p)+cfg.DetailAmplitude*octaveNoise(noise, x, y, octaves, cfg.DetailFrequency, 0.5))
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
// The result stays within [-1, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
