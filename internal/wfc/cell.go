package wfc

// CellState classifies a cell by its possible set.
type CellState uint8

const (
	Open          CellState = iota // one or more candidates, not yet collapsed
	Collapsed                      // exactly one tile assigned
	Contradiction                  // no candidate left
)

func (s CellState) String() string {
	switch s {
	case Open:
		return "open"
	case Collapsed:
		return "collapsed"
	case Contradiction:
		return "contradiction"
	default:
		return "unknown"
	}
}

// Cell tracks the tiles a grid position may still become.
// Invariant: collapsed implies len(possible) == 1.
type Cell struct {
	possible  []int // tile indices, ascending
	collapsed bool
}

// Possible returns a copy of the remaining tile indices.
func (c *Cell) Possible() []int {
	return append([]int(nil), c.possible...)
}

// Entropy is the number of remaining candidates.
func (c *Cell) Entropy() int { return len(c.possible) }

// Tile returns the assigned tile index once collapsed.
func (c *Cell) Tile() (int, bool) {
	if !c.collapsed {
		return -1, false
	}
	return c.possible[0], true
}

// State reports the cell's lifecycle state.
func (c *Cell) State() CellState {
	switch {
	case c.collapsed:
		return Collapsed
	case len(c.possible) == 0:
		return Contradiction
	default:
		return Open
	}
}
