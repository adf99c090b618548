package fields

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/talgya/worldforge/internal/grid"
)

// far stands in for infinity inside the distance transform; the parabola
// intersections produce NaN on real infinities.
const far = 1e20

// Temperature applies the lapse-rate model: base - lapse * elevation * scale.
func Temperature(elev *grid.Field, cfg Config) *grid.Field {
	out := grid.NewField(elev.Size)
	src, dst := elev.Values(), out.Values()
	for i, e := range src {
		dst[i] = cfg.BaseTemperature - cfg.LapseRate*e*cfg.ElevationScale
	}
	return out
}

// WaterMask tags every cell below seaLevel.
func WaterMask(elev *grid.Field, seaLevel float64) []bool {
	mask := make([]bool, elev.Cells())
	for i, e := range elev.Values() {
		mask[i] = e < seaLevel
	}
	return mask
}

// Humidity maps distance-to-water onto [0, 1]:
// clamp(base + (1-base) * exp(-d/decay), 0, 1).
func Humidity(dist *grid.Field, cfg Config) *grid.Field {
	out := grid.NewField(dist.Size)
	dst := out.Values()
	for i, d := range dist.Values() {
		decay := 0.0
		if cfg.HumidityDecay > 0 {
			decay = math.Exp(-d / cfg.HumidityDecay)
		} else if d == 0 {
			decay = 1
		}
		dst[i] = clamp(cfg.HumidityBase+(1-cfg.HumidityBase)*decay, 0, 1)
	}
	return out
}

// DistanceTransform returns the exact Euclidean distance from every cell to
// the nearest cell with water[i] set. Water cells get 0; with no water at
// all every cell gets +Inf.
func DistanceTransform(size grid.Size, water []bool) *grid.Field {
	out := grid.NewField(size)
	sq := out.Values()

	found := false
	for i, w := range water {
		if w {
			sq[i] = 0
			found = true
		} else {
			sq[i] = far
		}
	}
	if !found {
		for i := range sq {
			sq[i] = math.Inf(1)
		}
		return out
	}

	n := max(size.W, size.H)
	line := make([]float64, n)
	res := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := 0; x < size.W; x++ {
		for y := 0; y < size.H; y++ {
			line[y] = sq[y*size.W+x]
		}
		squaredDistance1D(line[:size.H], res[:size.H], v, z)
		for y := 0; y < size.H; y++ {
			sq[y*size.W+x] = res[y]
		}
	}
	for y := 0; y < size.H; y++ {
		row := sq[y*size.W : (y+1)*size.W]
		copy(line, row)
		squaredDistance1D(line[:size.W], res[:size.W], v, z)
		copy(row, res[:size.W])
	}

	for i, d := range sq {
		if d >= far/2 {
			sq[i] = math.Inf(1)
		} else {
			sq[i] = math.Sqrt(d)
		}
	}
	return out
}

// squaredDistance1D is the lower-envelope pass of Felzenszwalb and
// Huttenlocher: d[q] = min_p (q-p)^2 + f[p].
func squaredDistance1D(f, d []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

func intersect(f []float64, q, p int) float64 {
	fq, fp := float64(q), float64(p)
	return ((f[q] + fq*fq) - (f[p] + fp*fp)) / (2*fq - 2*fp)
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
