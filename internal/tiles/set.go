package tiles

import (
	"fmt"
	"strings"
)

// RuleAdjacent is the only conditional rule type understood by the solver.
const RuleAdjacent = "adjacent"

// Set is an ordered, validated collection of tile definitions. It is
// read-only after construction and safe to share between generation passes.
type Set struct {
	defs   []*Definition
	byName map[string]int
}

// NewSet validates the records and compiles them into a Set.
//
// It rejects: an empty record list, empty or duplicate names, empty ranges,
// negative weights or counts, unknown rule types, and rules that reference
// undefined tiles. Missing ranges are unconstrained, a missing weight is 1,
// and a missing min_count is 1.
func NewSet(records []Record) (*Set, error) {
	if len(records) == 0 {
		return nil, &ConfigError{Err: ErrNoTiles}
	}

	s := &Set{
		defs:   make([]*Definition, 0, len(records)),
		byName: make(map[string]int, len(records)),
	}

	// Names first, so rules may reference tiles defined later in the file.
	for i, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, &ConfigError{Field: fmt.Sprintf("tiles[%d].name", i), Err: ErrDuplicateTile, Detail: "empty name"}
		}
		if _, dup := s.byName[name]; dup {
			return nil, &ConfigError{Tile: name, Field: "name", Err: ErrDuplicateTile}
		}
		s.byName[name] = i
	}

	for i, r := range records {
		def, err := s.compile(i, r)
		if err != nil {
			return nil, err
		}
		s.defs = append(s.defs, def)
	}
	return s, nil
}

func (s *Set) compile(i int, r Record) (*Definition, error) {
	name := strings.TrimSpace(r.Name)
	def := &Definition{
		Name:        name,
		Symbol:      r.Symbol,
		Elevation:   Unbounded,
		Temperature: Unbounded,
		Humidity:    Unbounded,
		Weight:      1,
		Overlay:     r.Overlay,
		index:       i,
	}
	if def.Symbol == "" {
		def.Symbol = "?"
	}

	for _, rc := range []struct {
		field string
		in    *Range
		out   *Range
	}{
		{"elevation", r.Elevation, &def.Elevation},
		{"temperature", r.Temperature, &def.Temperature},
		{"humidity", r.Humidity, &def.Humidity},
	} {
		if rc.in == nil {
			continue
		}
		if rc.in.Empty() {
			return nil, &ConfigError{Tile: name, Field: rc.field, Err: ErrEmptyRange, Detail: rc.in.String()}
		}
		*rc.out = *rc.in
	}

	if r.Weight != nil {
		if *r.Weight < 0 {
			return nil, &ConfigError{Tile: name, Field: "weight", Err: ErrInvalidValue, Detail: fmt.Sprintf("%g", *r.Weight)}
		}
		def.Weight = *r.Weight
	}

	for j, rule := range r.Rules {
		field := fmt.Sprintf("conditional_rules[%d]", j)
		if rule.Type != RuleAdjacent {
			return nil, &ConfigError{Tile: name, Field: field + ".type", Err: ErrUnknownRule, Detail: rule.Type}
		}
		adj := Adjacency{MinCount: 1, mask: make([]bool, len(s.byName))}
		if rule.MinCount != nil {
			if *rule.MinCount < 0 {
				return nil, &ConfigError{Tile: name, Field: field + ".min_count", Err: ErrInvalidValue, Detail: fmt.Sprintf("%d", *rule.MinCount)}
			}
			adj.MinCount = *rule.MinCount
		}
		for _, req := range rule.Required {
			idx, ok := s.byName[req]
			if !ok {
				return nil, &ConfigError{Tile: name, Field: field + ".required", Err: ErrUnknownTile, Detail: req}
			}
			if !adj.mask[idx] {
				adj.mask[idx] = true
				adj.Required = append(adj.Required, req)
			}
		}
		def.Rules = append(def.Rules, adj)
	}
	return def, nil
}

// Len returns the number of tiles.
func (s *Set) Len() int { return len(s.defs) }

// At returns the tile with index i.
func (s *Set) At(i int) *Definition { return s.defs[i] }

// All returns the definitions in configuration order.
func (s *Set) All() []*Definition {
	return append([]*Definition(nil), s.defs...)
}

// Lookup returns the definition named name.
func (s *Set) Lookup(name string) (*Definition, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.defs[i], true
}

// Placeable returns the indices of the tiles the solver may assign, ascending.
func (s *Set) Placeable() []int {
	out := make([]int, 0, len(s.defs))
	for _, d := range s.defs {
		if !d.Overlay {
			out = append(out, d.index)
		}
	}
	return out
}

// Symbol returns the display symbol for name, or "?" for unknown names.
func (s *Set) Symbol(name string) string {
	if d, ok := s.Lookup(name); ok {
		return d.Symbol
	}
	return "?"
}
