// World generation: synthesizes the physical fields, solves the terrain grid,
// then carves rivers and seeds settlements on top of it.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/worldforge/internal/fields"
	"github.com/talgya/worldforge/internal/grid"
	"github.com/talgya/worldforge/internal/rivers"
	"github.com/talgya/worldforge/internal/settlements"
	"github.com/talgya/worldforge/internal/tiles"
	"github.com/talgya/worldforge/internal/wfc"
)

// ErrInvalidSize is returned for non-positive world dimensions.
var ErrInvalidSize = errors.New("world: width and height must be positive")

// Seed offsets for the stage RNGs. Each stage owns its own source so that a
// change in one stage's consumption does not shift the others.
const (
	riverSeedOffset      = 100
	settlementSeedOffset = 200
)

// worldNamespace scopes world IDs.
var worldNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/talgya/worldforge/world"))

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width  int
	Height int
	Seed   int64 // Random seed (0 = random)

	Fields      fields.Config
	Solver      wfc.Options
	Rivers      rivers.Options
	Settlements settlements.Options
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       64,
		Height:      64,
		Seed:        0,
		Fields:      fields.DefaultConfig(),
		Solver:      wfc.DefaultOptions(),
		Rivers:      rivers.DefaultOptions(),
		Settlements: settlements.DefaultOptions(),
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	cfg := DefaultGenConfig()
	cfg.Width = 16
	cfg.Height = 16
	cfg.Seed = 42
	return cfg
}

// WithRules returns a copy of cfg with the global and civilization rules of
// a tile configuration applied. Unset values keep what cfg already has.
func (cfg GenConfig) WithRules(c *tiles.Config) GenConfig {
	if c == nil {
		return cfg
	}
	if cs := c.GlobalRules.ContinentShape.CoreSize; cs != nil {
		cfg.Fields.CoreSize = *cs
	}

	civ := c.Civilization
	if civ.MinDistance != nil {
		cfg.Settlements.MinDistance = *civ.MinDistance
	}
	if civ.RequiredResources != nil {
		cfg.Settlements.RequiredResources = append([]string(nil), civ.RequiredResources...)
	}
	if civ.MaxSettlements != nil {
		cfg.Settlements.MaxSettlements = *civ.MaxSettlements
	}
	if civ.SearchRadius != nil {
		cfg.Settlements.SearchRadius = *civ.SearchRadius
	}
	return cfg
}

// Stats summarizes generation quality.
type Stats struct {
	SolverState    string `json:"solver_state"`
	Resets         int    `json:"resets"`
	Contradictions int    `json:"contradictions"`
	Defaulted      int    `json:"defaulted"`
	Rivers         int    `json:"rivers"`
	Settlements    int    `json:"settlements"`
}

// World is a finished generation pass. It is plain data: nothing in it calls
// back into the generator.
type World struct {
	ID   uuid.UUID `json:"id"`
	Seed int64     `json:"seed"`
	Size grid.Size `json:"size"`

	Fields  *fields.Fields   `json:"-"`
	Terrain *grid.TerrainMap `json:"terrain"`

	// Defaulted is row-major and marks the cells the solver force-assigned;
	// DefaultedCells lists the same cells by position.
	Defaulted      []bool       `json:"-"`
	DefaultedCells []grid.Point `json:"defaulted_cells"`

	Rivers      []rivers.River           `json:"rivers"`
	Settlements []settlements.Settlement `json:"settlements"`
	Stats       Stats                    `json:"stats"`
}

// ID derives a stable world identifier from the seed and dimensions.
func ID(seed int64, size grid.Size) uuid.UUID {
	return uuid.NewSHA1(worldNamespace, fmt.Appendf(nil, "%d:%dx%d", seed, size.W, size.H))
}

// Generate creates a complete world with terrain, rivers and settlements.
func Generate(ts *tiles.Set, cfg GenConfig) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if ts == nil || ts.Len() == 0 {
		return nil, fmt.Errorf("generate world: %w", tiles.ErrNoTiles)
	}
	if _, ok := ts.Lookup(cfg.Solver.DefaultTile); !ok {
		return nil, fmt.Errorf("generate world: default tile %q: %w", cfg.Solver.DefaultTile, tiles.ErrUnknownTile)
	}

	seed := cfg.Seed
	for seed == 0 {
		seed = rand.Int63()
	}
	size := grid.Size{W: cfg.Width, H: cfg.Height}

	f := fields.Synthesize(size, cfg.Fields, seed)
	lo, hi := f.Elevation.Bounds()
	slog.Info("fields synthesized", "width", size.W, "height", size.H, "elevation_min", lo, "elevation_max", hi)

	solver := wfc.New(ts, f, cfg.Solver, rand.New(rand.NewSource(seed)))
	res := solver.Solve()
	slog.Info("terrain solved", "state", res.State, "resets", res.Resets, "contradictions", res.Contradictions)
	if n := res.DefaultedCount(); n > 0 {
		slog.Warn("cells defaulted after contradictions", "count", n, "tile", cfg.Solver.DefaultTile)
	}

	defaulted := make([]grid.Point, 0, res.DefaultedCount())
	for i, d := range res.Defaulted {
		if d {
			defaulted = append(defaulted, size.PointAt(i))
		}
	}

	terrain := res.Terrain
	rs := rivers.Generate(f.Elevation, terrain, cfg.Rivers, rand.New(rand.NewSource(seed+riverSeedOffset)))
	slog.Info("rivers carved", "count", len(rs))

	ss := settlements.Place(terrain, cfg.Settlements, rand.New(rand.NewSource(seed+settlementSeedOffset)))
	slog.Info("settlements placed", "count", len(ss))

	return &World{
		ID:             ID(seed, size),
		Seed:           seed,
		Size:           size,
		Fields:         f,
		Terrain:        terrain,
		Defaulted:      res.Defaulted,
		DefaultedCells: defaulted,
		Rivers:         rs,
		Settlements:    ss,
		Stats: Stats{
			SolverState:    res.State.String(),
			Resets:         res.Resets,
			Contradictions: res.Contradictions,
			Defaulted:      res.DefaultedCount(),
			Rivers:         len(rs),
			Settlements:    len(ss),
		},
	}, nil
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(w *World) map[string]int {
	return w.Terrain.Counts()
}
