package fields

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/worldforge/internal/grid"
)

func TestElevationBasis(t *testing.T) {
	cfg := DefaultConfig()
	size := grid.Size{W: 11, H: 11}
	elev := Elevation(size, cfg)

	// x = 0 makes every sin term vanish.
	for y := 0; y < size.H; y++ {
		assert.InDelta(t, 0, elev.At(grid.Point{X: 0, Y: y}), 1e-12)
	}

	// Spot check one interior cell against the closed form.
	x, y := 5*3/10.0, 5*7/10.0
	want := math.Sin(x)*math.Cos(y) + 0.5*math.Sin(2.3*x)*math.Cos(3.7*y)
	assert.InDelta(t, want, elev.At(grid.Point{X: 3, Y: 7}), 1e-12)
}

func TestElevationSingleColumn(t *testing.T) {
	elev := Elevation(grid.Size{W: 1, H: 1}, DefaultConfig())
	assert.Equal(t, 0.0, elev.At(grid.Point{}))
}

func TestGaussianBlur(t *testing.T) {
	t.Run("ConstantIsFixedPoint", func(t *testing.T) {
		f := grid.NewField(grid.Size{W: 6, H: 4})
		for i := range f.Values() {
			f.Values()[i] = 0.7
		}
		out := GaussianBlur(f, 2)
		for _, v := range out.Values() {
			assert.InDelta(t, 0.7, v, 1e-12)
		}
	})

	t.Run("SmoothsCheckerboard", func(t *testing.T) {
		f := grid.NewField(grid.Size{W: 16, H: 16})
		for _, p := range f.Points() {
			if (p.X+p.Y)%2 == 0 {
				f.Set(p, 1)
			} else {
				f.Set(p, -1)
			}
		}
		out := GaussianBlur(f, 3)
		lo, hi := out.Bounds()
		assert.Less(t, hi-lo, 0.1)
		assert.NotSame(t, f, out)
	})

	t.Run("ZeroSigmaCopies", func(t *testing.T) {
		f, err := grid.FieldFromRows([][]float64{{1, 2}, {3, 4}})
		require.NoError(t, err)
		out := GaussianBlur(f, 0)
		assert.Equal(t, f.Values(), out.Values())
		out.Set(grid.Point{}, 9)
		assert.Equal(t, 1.0, f.At(grid.Point{}))
	})
}

func TestReflect(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{-1, 4, 0}, {-2, 4, 1}, {4, 4, 3}, {5, 4, 2}, {2, 4, 2}, {-9, 4, 0}, {3, 1, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, reflect(tc.i, tc.n), "reflect(%d, %d)", tc.i, tc.n)
	}
}

func TestTemperature(t *testing.T) {
	elev, err := grid.FieldFromRows([][]float64{{0, 1, -0.5}})
	require.NoError(t, err)
	temp := Temperature(elev, DefaultConfig())
	assert.InDeltaSlice(t, []float64{30, 24, 33}, temp.Values(), 1e-9)
}

// TestDistanceTransform compares the separable transform with brute force.
func TestDistanceTransform(t *testing.T) {
	size := grid.Size{W: 13, H: 9}
	rng := rand.New(rand.NewSource(7))
	water := make([]bool, size.Cells())
	for i := range water {
		water[i] = rng.Float64() < 0.08
	}
	water[size.Index(grid.Point{X: 6, Y: 4})] = true

	got := DistanceTransform(size, water)
	for _, p := range size.Points() {
		best := math.Inf(1)
		for _, q := range size.Points() {
			if water[size.Index(q)] {
				best = math.Min(best, grid.Euclidean(p, q))
			}
		}
		assert.InDelta(t, best, got.At(p), 1e-9, "cell %v", p)
	}
}

func TestDistanceTransformNoWater(t *testing.T) {
	size := grid.Size{W: 3, H: 3}
	got := DistanceTransform(size, make([]bool, size.Cells()))
	for _, v := range got.Values() {
		assert.True(t, math.IsInf(v, 1))
	}
}

func TestHumidity(t *testing.T) {
	cfg := DefaultConfig()
	dist, err := grid.FieldFromRows([][]float64{{0, 20, math.Inf(1)}})
	require.NoError(t, err)

	hum := Humidity(dist, cfg)
	assert.InDelta(t, 1.0, hum.Values()[0], 1e-12)
	assert.InDelta(t, 0.3+0.7*math.Exp(-1), hum.Values()[1], 1e-12)
	assert.InDelta(t, 0.3, hum.Values()[2], 1e-12)
}

func TestSynthesize(t *testing.T) {
	size := grid.Size{W: 24, H: 16}
	cfg := DefaultConfig()

	f := Synthesize(size, cfg, 1)
	require.Equal(t, size, f.Size())
	for i, e := range f.Elevation.Values() {
		assert.Equal(t, e < cfg.SeaLevel, f.Water[i])
		assert.InDelta(t, cfg.BaseTemperature-cfg.LapseRate*e*cfg.ElevationScale, f.Temperature.Values()[i], 1e-9)
		h := f.Humidity.Values()[i]
		assert.True(t, h >= cfg.HumidityBase && h <= 1, "humidity %v out of range", h)
		if f.Water[i] {
			assert.Equal(t, 1.0, h)
		}
	}

	// Without the detail layer the seed is irrelevant.
	assert.Equal(t, f.Elevation.Values(), Synthesize(size, cfg, 99).Elevation.Values())
}

func TestSynthesizeDetail(t *testing.T) {
	size := grid.Size{W: 20, H: 20}
	cfg := DefaultConfig()
	cfg.DetailAmplitude = 0.2

	a := Synthesize(size, cfg, 5)
	b := Synthesize(size, cfg, 5)
	c := Synthesize(size, cfg, 6)
	assert.Equal(t, a.Elevation.Values(), b.Elevation.Values(), "same seed, same field")
	assert.NotEqual(t, a.Elevation.Values(), c.Elevation.Values())

	base := Synthesize(size, DefaultConfig(), 5)
	for i, v := range a.Elevation.Values() {
		assert.InDelta(t, base.Elevation.Values()[i], v, 0.2+1e-9)
	}
}
