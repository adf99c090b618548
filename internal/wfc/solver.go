// Package wfc assigns one terrain tile per grid cell with a wave function
// collapse solver: environmental filtering, minimum-entropy selection,
// weighted collapse, constraint propagation and full-grid resets.
package wfc

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/talgya/worldforge/internal/fields"
	"github.com/talgya/worldforge/internal/grid"
	"github.com/talgya/worldforge/internal/tiles"
)

var errContradiction = errors.New("wfc: contradiction")

// State is the solver's global state.
type State uint8

const (
	StateRunning   State = iota
	StateConverged       // every cell collapsed
	StateReset           // contradiction hit, grid reinitialized
	StateExhausted       // finished with unresolved cells set to the default tile
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateReset:
		return "reset"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Options tunes the solver.
type Options struct {
	BacktrackLimit int     // full-grid resets allowed before giving up
	DefaultTile    string  // assigned to cells left without a tile
	PenaltyFactor  float64 // weight multiplier per violated range at collapse
}

// DefaultOptions returns the reference settings.
func DefaultOptions() Options {
	return Options{
		BacktrackLimit: 3,
		DefaultTile:    "grass",
		PenaltyFactor:  0.1,
	}
}

// Result is the solver output. Terrain names every cell.
type Result struct {
	Terrain        *grid.TerrainMap
	Defaulted      []bool // row-major; true where DefaultTile was forced
	State          State
	Resets         int
	Contradictions int
}

// DefaultedCount returns how many cells were force-assigned.
func (r *Result) DefaultedCount() int {
	n := 0
	for _, d := range r.Defaulted {
		if d {
			n++
		}
	}
	return n
}

// Solver owns the grid for one generation pass. It is not safe for
// concurrent use.
type Solver struct {
	tiles  *tiles.Set
	fields *fields.Fields
	opts   Options
	rng    *rand.Rand
	size   grid.Size

	cells  []Cell
	queue  []int
	queued []bool

	state          State
	tolerant       bool
	resets         int
	contradictions int
}

// New creates a solver over the given fields. The rng is owned by the solver
// for the duration of Solve.
func New(ts *tiles.Set, f *fields.Fields, opts Options, rng *rand.Rand) *Solver {
	size := f.Size()
	return &Solver{
		tiles:  ts,
		fields: f,
		opts:   opts,
		rng:    rng,
		size:   size,
		cells:  make([]Cell, size.Cells()),
		queued: make([]bool, size.Cells()),
	}
}

// State returns the current global state.
func (s *Solver) State() State { return s.state }

// Cell returns the cell at p for inspection.
func (s *Solver) Cell(p grid.Point) *Cell { return &s.cells[s.size.Index(p)] }

// Solve runs the solver to completion.
//
// Cells that no tile can fill once environmental filtering and the initial
// propagation are done do not depend on any random choice. They are left
// empty on every pass and defaulted at the end without spending the reset
// budget. Any other contradiction reinitializes the whole grid, up to
// Options.BacktrackLimit times. After that the solver stops resetting and
// finishes the current grid, skipping contradicted cells, which then receive
// Options.DefaultTile.
func (s *Solver) Solve() *Result {
	s.resets, s.contradictions = 0, 0
	s.tolerant = false
	s.state = StateRunning

	if n := s.init(); n > 0 {
		slog.Debug("wfc: unsatisfiable cells after filtering", "cells", n)
		s.contradictions += n
	}

	for {
		err := s.run()
		if err == nil {
			break
		}
		s.contradictions++
		if s.resets >= s.opts.BacktrackLimit {
			slog.Debug("wfc: reset budget exhausted", "resets", s.resets)
			s.tolerant = true
			continue
		}
		s.resets++
		s.state = StateReset
		slog.Debug("wfc: contradiction, resetting grid", "resets", s.resets)
		s.init()
		s.state = StateRunning
	}

	return s.result()
}

// init puts every cell back to the placeable tiles admitted by its field
// values and propagates adjacency requirements to a fixed point. It returns
// the number of cells left empty, which is the same on every call.
func (s *Solver) init() int {
	placeable := s.tiles.Placeable()
	for i := range s.cells {
		p := s.size.PointAt(i)
		e := s.fields.Elevation.At(p)
		t := s.fields.Temperature.At(p)
		h := s.fields.Humidity.At(p)

		possible := make([]int, 0, len(placeable))
		for _, ti := range placeable {
			if s.tiles.At(ti).Admits(e, t, h) {
				possible = append(possible, ti)
			}
		}
		s.cells[i] = Cell{possible: possible}
	}

	s.queue = s.queue[:0]
	for i := range s.queued {
		s.queued[i] = false
	}
	for i := range s.cells {
		s.enqueue(i)
	}

	_, _ = s.propagate(false)
	return s.countEmpty()
}

func (s *Solver) countEmpty() int {
	n := 0
	for i := range s.cells {
		if len(s.cells[i].possible) == 0 {
			n++
		}
	}
	return n
}

// run collapses cells until none is open. It stops at the first
// contradiction unless the solver is tolerant.
func (s *Solver) run() error {
	if err := s.settle(); err != nil {
		return err
	}
	for {
		i := s.nextCell()
		if i < 0 {
			return nil
		}
		if err := s.collapse(i); err != nil {
			return err
		}
		if err := s.settle(); err != nil {
			return err
		}
	}
}

// settle drains the propagation queue, counting the cells it empties.
func (s *Solver) settle() error {
	n, err := s.propagate(!s.tolerant)
	s.contradictions += n
	return err
}

// nextCell returns the open cell with the fewest remaining candidates,
// ignoring contradictions. Ties go to the first cell in row-major order.
// Returns -1 when no open cell remains.
func (s *Solver) nextCell() int {
	best, bestEntropy := -1, 0
	for i := range s.cells {
		c := &s.cells[i]
		if c.collapsed || len(c.possible) == 0 {
			continue
		}
		if best < 0 || len(c.possible) < bestEntropy {
			best, bestEntropy = i, len(c.possible)
			if bestEntropy == 1 {
				break
			}
		}
	}
	return best
}

// collapse draws one tile for cell i and schedules its surroundings.
func (s *Solver) collapse(i int) error {
	c := &s.cells[i]
	if len(c.possible) == 0 {
		return errContradiction
	}
	p := s.size.PointAt(i)

	weights := make([]float64, len(c.possible))
	total := 0.0
	for k, t := range c.possible {
		weights[k] = s.weight(p, t)
		total += weights[k]
	}

	choice := c.possible[len(c.possible)-1]
	if total <= 0 {
		choice = c.possible[s.rng.Intn(len(c.possible))]
	} else {
		r := s.rng.Float64() * total
		for k, w := range weights {
			if r < w {
				choice = c.possible[k]
				break
			}
			r -= w
		}
	}

	c.possible = []int{choice}
	c.collapsed = true
	s.touch(i)
	return nil
}

// weight is the draw weight of tile t at p. Tiles reaching collapse have
// already passed the range filter, so the penalty only applies to grids
// whose fields changed after init.
func (s *Solver) weight(p grid.Point, t int) float64 {
	def := s.tiles.At(t)
	w := def.Weight
	if !def.Elevation.Contains(s.fields.Elevation.At(p)) {
		w *= s.opts.PenaltyFactor
	}
	if !def.Temperature.Contains(s.fields.Temperature.At(p)) {
		w *= s.opts.PenaltyFactor
	}
	if !def.Humidity.Contains(s.fields.Humidity.At(p)) {
		w *= s.opts.PenaltyFactor
	}
	return w
}

func (s *Solver) result() *Result {
	res := &Result{
		Terrain:        grid.NewTerrainMap(s.size, s.opts.DefaultTile),
		Defaulted:      make([]bool, len(s.cells)),
		Resets:         s.resets,
		Contradictions: s.contradictions,
	}
	for i := range s.cells {
		t, ok := s.cells[i].Tile()
		if !ok {
			res.Defaulted[i] = true
			continue
		}
		res.Terrain.Set(s.size.PointAt(i), s.tiles.At(t).Name)
	}

	s.state = StateConverged
	if res.DefaultedCount() > 0 {
		s.state = StateExhausted
	}
	res.State = s.state
	return res
}
