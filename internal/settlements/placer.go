// Package settlements finds buildable cells with resources nearby and seeds
// a few well-spaced sites on them.
package settlements

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/talgya/worldforge/internal/grid"
)

// Options holds placement parameters.
type Options struct {
	BuildableTile     string   // settlements only go on this tile
	SettlementTile    string   // label applied to accepted sites
	RequiredResources []string // each must appear within SearchRadius
	SearchRadius      int      // Chebyshev radius of the resource scan
	MinDistance       float64  // Euclidean spacing between settlements
	MaxSettlements    int
}

// DefaultOptions returns the reference settings.
func DefaultOptions() Options {
	return Options{
		BuildableTile:     "grass",
		SettlementTile:    "ancient_city",
		RequiredResources: []string{"water", "forest"},
		SearchRadius:      3,
		MinDistance:       8,
		MaxSettlements:    3,
	}
}

// Settlement is a placed site.
type Settlement struct {
	Name      string     `json:"name"`
	At        grid.Point `json:"at"`
	Resources []string   `json:"resources"` // required resources found nearby, sorted
}

// Candidates returns every buildable cell in row-major order whose
// neighborhood holds all required resources.
func Candidates(terrain *grid.TerrainMap, opts Options) []grid.Point {
	var out []grid.Point
	for _, p := range terrain.Find(opts.BuildableTile) {
		if hasResources(terrain, p, opts.RequiredResources, opts.SearchRadius) {
			out = append(out, p)
		}
	}
	return out
}

// Place shuffles the candidates and accepts each one that keeps MinDistance
// from every site already placed, up to MaxSettlements. Accepted cells are
// relabeled in terrain.
func Place(terrain *grid.TerrainMap, opts Options, rng *rand.Rand) []Settlement {
	candidates := Candidates(terrain, opts)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var placed []Settlement
	for _, p := range candidates {
		if len(placed) >= opts.MaxSettlements {
			break
		}
		if tooClose(p, placed, opts.MinDistance) {
			continue
		}
		placed = append(placed, Settlement{
			At:        p,
			Resources: resourcesNear(terrain, p, opts.RequiredResources, opts.SearchRadius),
		})
	}

	names := generateNames(rng, len(placed))
	for i := range placed {
		placed[i].Name = names[i]
		terrain.Set(placed[i].At, opts.SettlementTile)
	}

	slog.Debug("settlements placed", "candidates", len(candidates), "placed", len(placed))
	return placed
}

func tooClose(p grid.Point, existing []Settlement, minDist float64) bool {
	for _, s := range existing {
		if grid.Euclidean(p, s.At) < minDist {
			return true
		}
	}
	return false
}

// resourcesNear lists which of want occur within radius of p.
func resourcesNear(terrain *grid.TerrainMap, p grid.Point, want []string, radius int) []string {
	wanted := make(map[string]bool, len(want))
	for _, name := range want {
		wanted[name] = true
	}

	found := make(map[string]bool)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			q := grid.Point{X: p.X + dx, Y: p.Y + dy}
			if !terrain.InBounds(q) {
				continue
			}
			if name := terrain.At(q); wanted[name] {
				found[name] = true
			}
		}
	}

	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func hasResources(terrain *grid.TerrainMap, p grid.Point, want []string, radius int) bool {
	found := resourcesNear(terrain, p, want, radius)
	distinct := make(map[string]bool, len(want))
	for _, name := range want {
		distinct[name] = true
	}
	return len(found) == len(distinct)
}

// generateNames produces procedural settlement names by combining syllables.
// Once every syllable pair is taken, names repeat with a numeral appended.
func generateNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	suffixes := []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}

	pool := len(prefixes) * len(suffixes)
	used := make(map[string]bool)
	names := make([]string, 0, count)

	for len(names) < count && len(names) < pool {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}
	for i := len(names); i < count; i++ {
		names = append(names, fmt.Sprintf("%s %d", names[i%pool], i/pool+1))
	}

	return names
}
