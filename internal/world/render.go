package world

import (
	"bufio"
	"io"
	"strings"

	"github.com/talgya/worldforge/internal/grid"
	"github.com/talgya/worldforge/internal/tiles"
)

// Render draws the terrain with each tile's display symbol, one grid row per
// line, inside a fixed frame. Names missing from ts render as "?".
func (w *World) Render(out io.Writer, ts *tiles.Set) error {
	return RenderTerrain(out, w.Terrain, ts)
}

// RenderTerrain draws any terrain map the same way Render does.
func RenderTerrain(out io.Writer, m *grid.TerrainMap, ts *tiles.Set) error {
	bw := bufio.NewWriter(out)
	border := "+" + strings.Repeat("-", m.W) + "+\n"

	bw.WriteString(border)
	for y := 0; y < m.H; y++ {
		bw.WriteByte('|')
		for x := 0; x < m.W; x++ {
			bw.WriteString(ts.Symbol(m.At(grid.Point{X: x, Y: y})))
		}
		bw.WriteString("|\n")
	}
	bw.WriteString(border)
	return bw.Flush()
}
