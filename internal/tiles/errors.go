package tiles

import (
	"errors"
	"fmt"
)

// Sentinel errors for tile configuration problems. Every validation failure
// is reported as a *ConfigError wrapping one of these.
var (
	// ErrNoTiles indicates the configuration defines no tiles at all.
	ErrNoTiles = errors.New("tiles: configuration defines no tiles")
	// ErrDuplicateTile indicates two tiles share a name, or a name is empty.
	ErrDuplicateTile = errors.New("tiles: tile names must be unique and non-empty")
	// ErrEmptyRange indicates a range whose min exceeds its max.
	ErrEmptyRange = errors.New("tiles: range is empty (min > max)")
	// ErrUnknownTile indicates a rule references a tile that is not defined.
	ErrUnknownTile = errors.New("tiles: reference to undefined tile")
	// ErrUnknownRule indicates a conditional rule of an unsupported type.
	ErrUnknownRule = errors.New("tiles: unsupported rule type")
	// ErrInvalidValue indicates a negative weight or count.
	ErrInvalidValue = errors.New("tiles: value out of range")
)

// ConfigError describes a malformed or inconsistent tile definition.
type ConfigError struct {
	Tile   string // offending tile name, empty for configuration-wide problems
	Field  string // e.g. "elevation", "conditional_rules[0].required"
	Detail string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Tile != "" {
		msg = fmt.Sprintf("tile %q: %s", e.Tile, msg)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }
