package wfc

import (
	"github.com/talgya/worldforge/internal/grid"
	"github.com/talgya/worldforge/internal/tiles"
)

// reach lists the offsets whose candidates can depend on a cell: its
// neighbors (their own rules count it) and the cells two steps away (they
// share a neighbor whose rules may need this cell's support).
var reach = [12]grid.Point{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// none is a point outside every grid.
var none = grid.Point{X: -1, Y: -1}

func (s *Solver) enqueue(i int) {
	if s.queued[i] {
		return
	}
	s.queued[i] = true
	s.queue = append(s.queue, i)
}

// touch schedules every open cell that may be affected by a change at i.
func (s *Solver) touch(i int) {
	p := s.size.PointAt(i)
	for _, d := range reach {
		n := p.Add(d)
		if !s.size.InBounds(n) {
			continue
		}
		j := s.size.Index(n)
		c := &s.cells[j]
		if !c.collapsed && len(c.possible) > 0 {
			s.enqueue(j)
		}
	}
}

// propagate drains the queue, removing candidates whose adjacency
// requirements can no longer be met. Possible sets only shrink, so the loop
// terminates. With stop set it returns at the first emptied cell; otherwise
// it carries on and reports how many cells it emptied.
func (s *Solver) propagate(stop bool) (emptied int, err error) {
	for len(s.queue) > 0 {
		i := s.queue[0]
		s.queue = s.queue[1:]
		s.queued[i] = false

		c := &s.cells[i]
		if c.collapsed || len(c.possible) == 0 {
			continue
		}

		p := s.size.PointAt(i)
		n := len(c.possible)
		kept := c.possible[:0]
		for _, t := range c.possible {
			if s.supported(p, t) {
				kept = append(kept, t)
			}
		}
		c.possible = kept
		if len(kept) == n {
			continue
		}

		s.touch(i)
		if len(kept) == 0 {
			if stop {
				return emptied, errContradiction
			}
			emptied++
		}
	}
	return emptied, nil
}

// supported reports whether tile t can still sit at p:
//   - each of t's rules can be met by p's neighbors, and
//   - placing t does not starve a collapsed neighbor whose rules t fails.
func (s *Solver) supported(p grid.Point, t int) bool {
	for _, rule := range s.tiles.At(t).Rules {
		if s.support(p, rule, none) < rule.MinCount {
			return false
		}
	}

	for _, d := range grid.Directions4 {
		n := p.Add(d)
		if !s.size.InBounds(n) {
			continue
		}
		nc := &s.cells[s.size.Index(n)]
		if !nc.collapsed {
			continue
		}
		for _, rule := range s.tiles.At(nc.possible[0]).Rules {
			if rule.Accepts(t) {
				continue
			}
			if s.support(n, rule, p) < rule.MinCount {
				return false
			}
		}
	}
	return true
}

// support counts the neighbors of p, other than skip, that hold or may still
// take a tile the rule accepts.
func (s *Solver) support(p grid.Point, rule tiles.Adjacency, skip grid.Point) int {
	count := 0
	for _, d := range grid.Directions4 {
		n := p.Add(d)
		if n == skip || !s.size.InBounds(n) {
			continue
		}
		for _, t := range s.cells[s.size.Index(n)].possible {
			if rule.Accepts(t) {
				count++
				break
			}
		}
	}
	return count
}
