package tiles_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/worldforge/internal/tiles"
)

const sampleJSON = `{
	"tiles": [
		{
			"name": "grass",
			"symbol": ",",
			"elevation": {"min": 0, "max": 0.3},
			"temperature": {"min": 10, "max": 35},
			"conditional_rules": [
				{"type": "adjacent", "required": ["water"], "min_count": 1}
			]
		},
		{"name": "water", "symbol": "~", "elevation": {"min": -1, "max": 0}},
		{"name": "mountain", "symbol": "M", "elevation": {"min": 0.3, "max": 1.0}},
		{
			"name": "ancient_city",
			"symbol": "@",
			"overlay": true,
			"placement_rules": {"required_adjacent": ["grass", "mountain"]}
		}
	],
	"civilization_rules": {"min_distance": 8, "required_resources": ["water", "mountain"]},
	"global_rules": {"continent_shape": {"core_size": 5}}
}`

// TestParseJSON verifies records, defaults and rule blocks are decoded.
func TestParseJSON(t *testing.T) {
	cfg, set, err := tiles.Parse([]byte(sampleJSON), tiles.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())

	grass, ok := set.Lookup("grass")
	require.True(t, ok)
	assert.Equal(t, 0, grass.Index())
	assert.Equal(t, 1.0, grass.Weight, "missing weight defaults to 1")
	assert.True(t, grass.Humidity.Contains(42), "missing range is unbounded")
	require.Len(t, grass.Rules, 1)
	assert.Equal(t, 1, grass.Rules[0].MinCount)
	assert.True(t, grass.Rules[0].Accepts(1), "water is required")
	assert.False(t, grass.Rules[0].Accepts(0))

	assert.Equal(t, []int{0, 1, 2}, set.Placeable(), "overlay tiles are not placeable")
	assert.Equal(t, "@", set.Symbol("ancient_city"))
	assert.Equal(t, "?", set.Symbol("swamp"))

	require.NotNil(t, cfg.GlobalRules.ContinentShape.CoreSize)
	assert.Equal(t, 5.0, *cfg.GlobalRules.ContinentShape.CoreSize)
	require.NotNil(t, cfg.Civilization.MinDistance)
	assert.Equal(t, 8.0, *cfg.Civilization.MinDistance)
	assert.Equal(t, []string{"water", "mountain"}, cfg.Civilization.RequiredResources)
	assert.Nil(t, cfg.Civilization.MaxSettlements)
}

func TestParseYAML(t *testing.T) {
	src := `
tiles:
  - name: water
    symbol: "~"
    elevation: {min: -1, max: 0}
  - name: beach
    symbol: "."
    weight: 0.5
    conditional_rules:
      - type: adjacent
        required: [water]
        min_count: 2
`
	_, set, err := tiles.Parse([]byte(src), tiles.FormatYAML)
	require.NoError(t, err)

	beach, ok := set.Lookup("beach")
	require.True(t, ok)
	assert.Equal(t, 0.5, beach.Weight)
	require.Len(t, beach.Rules, 1)
	assert.Equal(t, 2, beach.Rules[0].MinCount)
	assert.Equal(t, []string{"water"}, beach.Rules[0].Required)
}

// TestNewSet_Errors checks every rejection path maps to its sentinel.
func TestNewSet_Errors(t *testing.T) {
	neg := -1
	negWeight := -0.5
	cases := []struct {
		name    string
		records []tiles.Record
		err     error
	}{
		{"NoTiles", nil, tiles.ErrNoTiles},
		{"EmptyName", []tiles.Record{{Name: " "}}, tiles.ErrDuplicateTile},
		{"Duplicate", []tiles.Record{{Name: "a"}, {Name: "a"}}, tiles.ErrDuplicateTile},
		{"EmptyElevation", []tiles.Record{{Name: "a", Elevation: &tiles.Range{Min: 1, Max: 0}}}, tiles.ErrEmptyRange},
		{"EmptyTemperature", []tiles.Record{{Name: "a", Temperature: &tiles.Range{Min: 30, Max: 10}}}, tiles.ErrEmptyRange},
		{"DanglingRule", []tiles.Record{{Name: "a", Rules: []tiles.Rule{{Type: "adjacent", Required: []string{"b"}}}}}, tiles.ErrUnknownTile},
		{"UnknownRuleType", []tiles.Record{{Name: "a", Rules: []tiles.Rule{{Type: "near", Required: []string{"a"}}}}}, tiles.ErrUnknownRule},
		{"NegativeCount", []tiles.Record{{Name: "a", Rules: []tiles.Rule{{Type: "adjacent", Required: []string{"a"}, MinCount: &neg}}}}, tiles.ErrInvalidValue},
		{"NegativeWeight", []tiles.Record{{Name: "a", Weight: &negWeight}}, tiles.ErrInvalidValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tiles.NewSet(tc.records)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "got %v, want %v", err, tc.err)

			var ce *tiles.ConfigError
			assert.True(t, errors.As(err, &ce), "error must be ConfigError")
		})
	}
}

// TestNewSet_ForwardReference allows rules to name tiles defined later.
func TestNewSet_ForwardReference(t *testing.T) {
	set, err := tiles.NewSet([]tiles.Record{
		{Name: "beach", Rules: []tiles.Rule{{Type: "adjacent", Required: []string{"water", "water"}}}},
		{Name: "water"},
	})
	require.NoError(t, err)
	beach, _ := set.Lookup("beach")
	assert.Equal(t, []string{"water"}, beach.Rules[0].Required, "duplicates collapse")
}

func TestConfigErrorMessage(t *testing.T) {
	_, err := tiles.NewSet([]tiles.Record{{Name: "a", Rules: []tiles.Rule{{Type: "adjacent", Required: []string{"ghost"}}}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tile "a"`)
	assert.Contains(t, err.Error(), "ghost")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o644))
	_, set, err := tiles.Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 4, set.Len())

	yamlPath := filepath.Join(dir, "world.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("tiles:\n  - name: grass\n"), 0o644))
	_, set, err = tiles.Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	_, _, err = tiles.Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDefaultConfig(t *testing.T) {
	cfg, set := tiles.DefaultConfig()
	for _, name := range []string{"water", "grass", "mountain", "river", "ancient_city"} {
		_, ok := set.Lookup(name)
		assert.True(t, ok, "default config defines %s", name)
	}
	river, _ := set.Lookup("river")
	assert.True(t, river.Overlay)
	assert.NotNil(t, cfg.GlobalRules.ContinentShape.CoreSize)
}

func TestRange(t *testing.T) {
	r := tiles.Range{Min: -1, Max: 1}
	assert.True(t, r.Contains(-1))
	assert.True(t, r.Contains(1))
	assert.False(t, r.Contains(1.01))
	assert.False(t, r.Empty())
	assert.True(t, tiles.Range{Min: 2, Max: 1}.Empty())
	assert.True(t, tiles.Unbounded.Contains(1e300))
}
