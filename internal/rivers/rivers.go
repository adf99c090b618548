// Package rivers traces steepest-descent rivers from high ground to water
// and carves them into the elevation field.
package rivers

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/worldforge/internal/grid"
)

// Options holds river generation parameters.
type Options struct {
	MaxRivers    int    // sources sampled per world
	MinLength    int    // shorter traces are dropped
	SourceTile   string // rivers start on this tile
	TerminusTile string // and stop when they reach this one
	RiverTile    string // label applied to river cells

	BedErosion  float64 // elevation multiplier for river cells
	BankErosion float64 // elevation multiplier for cells beside a river
}

// DefaultOptions returns the reference settings.
func DefaultOptions() Options {
	return Options{
		MaxRivers:    5,
		MinLength:    5,
		SourceTile:   "mountain",
		TerminusTile: "water",
		RiverTile:    "river",
		BedErosion:   0.9,
		BankErosion:  0.95,
	}
}

// River is an ordered path from source to terminus.
type River struct {
	Path []grid.Point `json:"path"`
	// Profile holds the elevation of each path cell as seen while tracing,
	// before this river's erosion was applied. It strictly decreases.
	Profile []float64 `json:"profile"`
}

// Len returns the number of cells in the path.
func (r River) Len() int { return len(r.Path) }

// Source returns the first cell of the path.
func (r River) Source() grid.Point { return r.Path[0] }

// Mouth returns the last cell of the path.
func (r River) Mouth() grid.Point { return r.Path[len(r.Path)-1] }

// Generate samples up to MaxRivers source cells, traces each one, and erodes
// the accepted paths into elev while relabeling them in terrain. Rivers are
// carved one at a time, so later rivers flow over the erosion of earlier ones.
func Generate(elev *grid.Field, terrain *grid.TerrainMap, opts Options, rng *rand.Rand) []River {
	sources := terrain.Find(opts.SourceTile)

	// Shuffle and pick.
	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > opts.MaxRivers {
		sources = sources[:max(opts.MaxRivers, 0)]
	}

	var rivers []River
	for _, start := range sources {
		r := Trace(elev, terrain, start, opts.TerminusTile)
		if r.Len() < opts.MinLength {
			slog.Debug("river too short, dropped", "source", start, "length", r.Len())
			continue
		}
		Erode(elev, terrain, r, opts)
		rivers = append(rivers, r)
	}
	return rivers
}

// Trace follows the steepest descent from start: each step moves to the
// lowest unvisited neighbor strictly below the current cell (ties resolved in
// N, E, S, W order). The trace ends when no such neighbor exists or a cell
// labeled terminus is reached.
func Trace(elev *grid.Field, terrain *grid.TerrainMap, start grid.Point, terminus string) River {
	r := River{
		Path:    []grid.Point{start},
		Profile: []float64{elev.At(start)},
	}
	visited := map[grid.Point]bool{start: true}
	current := start

	for {
		best, found := grid.Point{}, false
		bestElev := elev.At(current)
		for _, n := range elev.Neighbors(current) {
			if visited[n] {
				continue
			}
			if e := elev.At(n); e < bestElev {
				best, bestElev, found = n, e, true
			}
		}
		if !found {
			break // no downhill path; a lake would form here
		}

		visited[best] = true
		r.Path = append(r.Path, best)
		r.Profile = append(r.Profile, bestElev)
		current = best

		if terrain.At(current) == terminus {
			break
		}
	}
	return r
}

// Erode lowers the river bed and its banks and relabels the bed. Bank cells
// are the path's neighbors that are not themselves on the path; each is
// eroded once per river. The terminus cell keeps its label.
func Erode(elev *grid.Field, terrain *grid.TerrainMap, r River, opts Options) {
	onPath := make(map[grid.Point]bool, len(r.Path))
	for _, p := range r.Path {
		onPath[p] = true
	}

	banks := make(map[grid.Point]bool)
	for _, p := range r.Path {
		elev.Scale(p, opts.BedErosion)
		if terrain.At(p) != opts.TerminusTile {
			terrain.Set(p, opts.RiverTile)
		}
		for _, n := range elev.Neighbors(p) {
			if onPath[n] || banks[n] {
				continue
			}
			banks[n] = true
			elev.Scale(n, opts.BankErosion)
		}
	}
}
