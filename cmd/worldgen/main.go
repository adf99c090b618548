// Command worldgen generates a tile world and prints it as text or JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/talgya/worldforge/internal/tiles"
	"github.com/talgya/worldforge/internal/world"
)

func main() {
	defaults := world.DefaultGenConfig()

	configPath := flag.String("config", envOrDefault("WORLDGEN_CONFIG", ""), "tile configuration file (.json, .yaml); built-in set if empty")
	width := flag.Int("width", envIntOrDefault("WORLDGEN_WIDTH", defaults.Width), "grid width in cells")
	height := flag.Int("height", envIntOrDefault("WORLDGEN_HEIGHT", defaults.Height), "grid height in cells")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	detail := flag.Float64("detail", defaults.Fields.DetailAmplitude, "amplitude of the simplex detail layer (0 = off)")
	asJSON := flag.Bool("json", false, "print the world as JSON instead of a map")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// Logs go to stderr so stdout stays clean for the map or JSON.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Tile configuration ────────────────────────────────────────────
	var (
		rules *tiles.Config
		ts    *tiles.Set
		err   error
	)
	if *configPath == "" {
		rules, ts = tiles.DefaultConfig()
		slog.Info("using built-in tile set", "tiles", ts.Len())
	} else {
		rules, ts, err = tiles.Load(*configPath)
		if err != nil {
			slog.Error("failed to load tile config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		slog.Info("tile config loaded", "path", *configPath, "tiles", ts.Len())
	}

	// ── World ─────────────────────────────────────────────────────────
	cfg := defaults.WithRules(rules)
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	cfg.Fields.DetailAmplitude = *detail

	w, err := world.Generate(ts, cfg)
	if err != nil {
		slog.Error("world generation failed", "error", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(w); err != nil {
			slog.Error("failed to encode world", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := w.Render(os.Stdout, ts); err != nil {
		slog.Error("failed to render world", "error", err)
		os.Exit(1)
	}

	counts := world.TerrainCounts(w)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		slog.Info("terrain", "type", name, "symbol", ts.Symbol(name), "count", humanize.Comma(int64(counts[name])))
	}
	for _, s := range w.Settlements {
		slog.Info("settlement", "name", s.Name, "x", s.At.X, "y", s.At.Y, "resources", s.Resources)
	}

	fmt.Printf("\nWorld %s (seed %d): %s cells, %d rivers, %d settlements, %d defaulted.\n",
		w.ID, w.Seed, humanize.Comma(int64(w.Size.Cells())), w.Stats.Rivers, w.Stats.Settlements, w.Stats.Defaulted)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
