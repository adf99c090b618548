package tiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one tile entry as it appears in a configuration file.
type Record struct {
	Name        string   `json:"name" yaml:"name"`
	Symbol      string   `json:"symbol" yaml:"symbol"`
	Elevation   *Range   `json:"elevation,omitempty" yaml:"elevation,omitempty"`
	Temperature *Range   `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Humidity    *Range   `json:"humidity,omitempty" yaml:"humidity,omitempty"`
	Weight      *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Overlay     bool     `json:"overlay,omitempty" yaml:"overlay,omitempty"`
	Rules       []Rule   `json:"conditional_rules,omitempty" yaml:"conditional_rules,omitempty"`
}

// Rule is a conditional placement rule, e.g.
// {"type": "adjacent", "required": ["water"], "min_count": 1}.
type Rule struct {
	Type     string   `json:"type" yaml:"type"`
	Required []string `json:"required" yaml:"required"`
	MinCount *int     `json:"min_count,omitempty" yaml:"min_count,omitempty"`
}

// ContinentShape controls the smoothing applied to the elevation field.
type ContinentShape struct {
	CoreSize *float64 `json:"core_size,omitempty" yaml:"core_size,omitempty"`
}

// GlobalRules holds world-wide generation settings.
type GlobalRules struct {
	ContinentShape ContinentShape `json:"continent_shape" yaml:"continent_shape"`
}

// CivilizationRules configures settlement placement. Unset fields keep the
// generator defaults.
type CivilizationRules struct {
	MinDistance       *float64 `json:"min_distance,omitempty" yaml:"min_distance,omitempty"`
	RequiredResources []string `json:"required_resources,omitempty" yaml:"required_resources,omitempty"`
	MaxSettlements    *int     `json:"max_settlements,omitempty" yaml:"max_settlements,omitempty"`
	SearchRadius      *int     `json:"search_radius,omitempty" yaml:"search_radius,omitempty"`
}

// Config is a complete tile configuration file.
type Config struct {
	Tiles        []Record          `json:"tiles" yaml:"tiles"`
	GlobalRules  GlobalRules       `json:"global_rules" yaml:"global_rules"`
	Civilization CivilizationRules `json:"civilization_rules" yaml:"civilization_rules"`
}

// Set validates the tile records and compiles them.
func (c *Config) Set() (*Set, error) {
	return NewSet(c.Tiles)
}

// Format names a configuration encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension. Anything other than
// .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, *Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read tile config: %w", err)
	}
	return Parse(data, FormatFor(path))
}

// Parse decodes and validates a configuration held in memory.
func Parse(data []byte, format Format) (*Config, *Set, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, nil, fmt.Errorf("parse tile config: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, nil, fmt.Errorf("parse tile config: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("parse tile config: unknown format %q", format)
	}

	set, err := cfg.Set()
	if err != nil {
		return nil, nil, err
	}
	return &cfg, set, nil
}
