package tiles

import (
	_ "embed"
)

//go:embed default.yaml
var defaultConfig []byte

// DefaultConfig returns the built-in tile configuration.
func DefaultConfig() (*Config, *Set) {
	cfg, set, err := Parse(defaultConfig, FormatYAML)
	if err != nil {
		panic("tiles: built-in configuration is invalid: " + err.Error())
	}
	return cfg, set
}
