package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/wordsphere/pkg/scene"
)

// TerminalCellAspect is the height of a terminal cell relative to its width.
const TerminalCellAspect = 2.0

const (
	boldFontSize = 2.0  // world font size at which words turn bold
	maxDepthFade = 0.55 // blend toward the background for the farthest word
	edgeOnFade   = 0.35 // extra blend for words seen edge-on
)

type cell struct {
	r     rune
	color string
	bold  bool
	cont  bool // right half of a wide rune
}

// Terminal renders frames as a grid of colored characters.
type Terminal struct {
	Width  int
	Height int
}

// Viewport returns the projection viewport for the terminal size.
func (t Terminal) Viewport() scene.Viewport {
	return scene.Viewport{
		Width:      float64(t.Width),
		Height:     float64(t.Height),
		CellAspect: TerminalCellAspect,
	}
}

// Render paints f into Height lines of Width cells. Labels are drawn in
// frame order, so nearer words overwrite farther ones.
func (t Terminal) Render(f scene.Frame) string {
	if t.Width <= 0 || t.Height <= 0 {
		return ""
	}
	grid := make([][]cell, t.Height)
	for y := range grid {
		grid[y] = make([]cell, t.Width)
	}

	bg, err := colorful.Hex(f.Background)
	if err != nil {
		bg = colorful.Color{}
	}
	near, far := depthRange(f.Labels)

	for _, l := range f.Labels {
		row := int(math.Round(l.Y))
		if row < 0 || row >= t.Height {
			continue
		}
		width := runewidth.StringWidth(l.Text)
		col := int(math.Round(l.X - float64(width)/2))

		fade := 0.0
		if far > near {
			fade = maxDepthFade * (l.Depth - near) / (far - near)
		}
		fade += edgeOnFade * (1 - math.Abs(l.Facing))
		fade = math.Min(fade, 0.9)
		color := l.Color.Colorful().BlendRgb(bg, fade).Clamped().Hex()
		bold := l.FontSize >= boldFontSize

		for _, r := range l.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if col >= 0 && col+w <= t.Width {
				put(grid[row], col, w, cell{r: r, color: color, bold: bold})
			}
			col += w
		}
	}

	lines := make([]string, t.Height)
	for y, cells := range grid {
		lines[y] = renderRow(cells)
	}
	return strings.Join(lines, "\n")
}

// put writes c, w cells wide, at col. Wide runes partly covered by the new
// cell are blanked so every row keeps exactly len(row) columns.
func put(row []cell, col, w int, c cell) {
	for x := col; x < col+w; x++ {
		switch {
		case row[x].cont && x > 0:
			row[x-1] = cell{}
		case row[x].r != 0 && runewidth.RuneWidth(row[x].r) == 2 && x+1 < len(row):
			row[x+1] = cell{}
		}
	}
	row[col] = c
	if w == 2 {
		row[col+1] = cell{cont: true}
	}
}

// renderRow groups runs of equally styled cells into one lipgloss span.
func renderRow(cells []cell) string {
	var out, run strings.Builder
	var cur cell
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur.color == "" {
			out.WriteString(run.String())
		} else {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(cur.color)).Bold(cur.bold)
			out.WriteString(style.Render(run.String()))
		}
		run.Reset()
	}

	for _, c := range cells {
		if c.cont {
			continue
		}
		if c.r == 0 {
			c = cell{r: ' '}
		}
		if c.color != cur.color || c.bold != cur.bold {
			flush()
			cur = c
		}
		run.WriteRune(c.r)
	}
	flush()
	return out.String()
}

func depthRange(labels []scene.Label) (near, far float64) {
	if len(labels) == 0 {
		return 0, 0
	}
	near, far = math.Inf(1), math.Inf(-1)
	for _, l := range labels {
		near = math.Min(near, l.Depth)
		far = math.Max(far, l.Depth)
	}
	return near, far
}
