// Package fields synthesizes the physical fields the terrain solver reads:
// elevation from layered periodic functions, then temperature and humidity
// derived from it.
package fields

import (
	"github.com/talgya/worldforge/internal/grid"
)

// Basis is one sinusoidal term: Amplitude * sin(FreqX*x) * cos(FreqY*y).
type Basis struct {
	Amplitude float64
	FreqX     float64
	FreqY     float64
}

// Config holds field synthesis parameters.
type Config struct {
	Span  float64 // normalized coordinates run from 0 to Span along each axis
	Basis []Basis

	CoreSize float64 // Gaussian smoothing sigma, in cells; <= 0 disables smoothing

	// Optional simplex detail added after smoothing. Zero amplitude disables it.
	DetailAmplitude float64
	DetailFrequency float64
	DetailOctaves   int

	SeaLevel float64 // cells below this elevation count as water for humidity

	BaseTemperature float64 // °C at elevation 0
	LapseRate       float64 // °C per meter
	ElevationScale  float64 // meters per elevation unit

	HumidityBase  float64
	HumidityDecay float64 // cells
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		Span: 5,
		Basis: []Basis{
			{Amplitude: 1, FreqX: 1, FreqY: 1},
			{Amplitude: 0.5, FreqX: 2.3, FreqY: 3.7},
		},
		CoreSize:        5,
		DetailFrequency: 1.5,
		DetailOctaves:   4,
		SeaLevel:        0,
		BaseTemperature: 30,
		LapseRate:       0.006, // 0.6 °C per 100 m
		ElevationScale:  1000,
		HumidityBase:    0.3,
		HumidityDecay:   20,
	}
}

// Fields bundles the synthesized layers. All share one Size.
type Fields struct {
	Elevation   *grid.Field
	Temperature *grid.Field
	Humidity    *grid.Field
	Water       []bool // row-major water mask used for the humidity pass
}

// Size returns the shared dimensions.
func (f *Fields) Size() grid.Size { return f.Elevation.Size }

// Synthesize builds every field for a grid of the given size. The seed only
// matters when the detail layer is enabled.
func Synthesize(size grid.Size, cfg Config, seed int64) *Fields {
	elev := Elevation(size, cfg)
	if cfg.CoreSize > 0 {
		elev = GaussianBlur(elev, cfg.CoreSize)
	}
	if cfg.DetailAmplitude != 0 {
		AddDetail(elev, cfg, seed)
	}
	return FromElevation(elev, cfg)
}

// FromElevation derives the climate layers from an existing elevation field.
func FromElevation(elev *grid.Field, cfg Config) *Fields {
	water := WaterMask(elev, cfg.SeaLevel)
	return &Fields{
		Elevation:   elev,
		Temperature: Temperature(elev, cfg),
		Humidity:    Humidity(DistanceTransform(elev.Size, water), cfg),
		Water:       water,
	}
}
