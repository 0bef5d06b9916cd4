package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/scene"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func sampleWords() []cloud.VisualWord {
	return cloud.Layout([]cloud.WordItem{
		{Word: "golang", Weight: 1},
		{Word: "sphere", Weight: 0.5},
		{Word: "cloud", Weight: 0.25},
		{Word: "<tag>&", Weight: 0.1},
	}, cloud.DefaultOptions())
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleWords(), WithSize(1200, 900), WithTitle("Article")))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1200 900"`,
		`<title>Article</title>`,
		`fill="` + scene.DefaultBackground + `"`,
		`&lt;tag&gt;&amp;`,
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "<tag>") {
		t.Error("word text must be escaped")
	}
}

func TestRenderSVGPaintOrder(t *testing.T) {
	words := []cloud.VisualWord{
		{Word: "near", Position: cloud.Vec3{Z: 10}, FontSize: 1, Color: cloud.HSL{H: 250, S: 0.9, L: 0.6}},
		{Word: "far", Position: cloud.Vec3{Z: -10}, FontSize: 1, Color: cloud.HSL{H: 250, S: 0.9, L: 0.6}},
	}
	svg := string(RenderSVG(words))
	iNear, iFar := strings.Index(svg, ">near<"), strings.Index(svg, ">far<")
	if iNear < 0 || iFar < 0 {
		t.Fatalf("both words should be drawn:\n%s", svg)
	}
	if iFar > iNear {
		t.Error("farther words must be painted first")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil))
	if strings.Contains(svg, "<text") {
		t.Error("empty cloud should contain no text elements")
	}
	if !strings.Contains(svg, "<rect") {
		t.Error("empty cloud should still paint the background")
	}
}

func TestRenderSVGCamera(t *testing.T) {
	cam := scene.NewOrbitCamera()
	cam.Azimuth = 1.2
	a := RenderSVG(sampleWords())
	b := RenderSVG(sampleWords(), WithCamera(cam))
	if string(a) == string(b) {
		t.Error("a rotated camera should change the rendering")
	}
}

func TestTerminalRender(t *testing.T) {
	term := Terminal{Width: 40, Height: 20}
	sc := scene.New()
	sc.Load([]cloud.VisualWord{
		{Word: "hello", FontSize: 3, Color: cloud.HSL{H: 110, S: 0.9, L: 0.6}},
	})
	out := term.Render(sc.Frame(term.Viewport()))

	lines := strings.Split(out, "\n")
	if len(lines) != term.Height {
		t.Fatalf("got %d lines, want %d", len(lines), term.Height)
	}
	mid := stripANSI(lines[10])
	if len([]rune(mid)) != term.Width {
		t.Errorf("row width = %d, want %d", len([]rune(mid)), term.Width)
	}
	if got := strings.TrimSpace(mid); got != "hello" {
		t.Errorf("centre row = %q, want hello", got)
	}
	if idx := strings.Index(mid, "hello"); idx < 16 || idx > 18 {
		t.Errorf("word should be centred, starts at column %d", idx)
	}
}

func TestTerminalRenderClipsAndWideRunes(t *testing.T) {
	term := Terminal{Width: 10, Height: 3}
	f := scene.Frame{
		Viewport:   term.Viewport(),
		Background: "#000000",
		Labels: []scene.Label{
			{Text: "offscreen", X: 5, Y: -4, Depth: 40, Facing: 1},
			{Text: "clipped-at-edge", X: 0, Y: 0, Depth: 40, Facing: 1},
			{Text: "語語", X: 5, Y: 2, Depth: 30, Facing: 1},
		},
	}
	lines := strings.Split(stripANSI(term.Render(f)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "at-edge") {
		t.Errorf("partially visible word should be clipped, got %q", lines[0])
	}
	if !strings.Contains(lines[2], "語語") {
		t.Errorf("wide runes should render, got %q", lines[2])
	}
}

func TestTerminalRenderOverlapKeepsRowWidth(t *testing.T) {
	term := Terminal{Width: 10, Height: 1}
	f := scene.Frame{
		Viewport:   term.Viewport(),
		Background: "#000000",
		Labels: []scene.Label{
			{Text: "日本", X: 5, Y: 0, Depth: 40, Facing: 1},
			{Text: "a", X: 4, Y: 0, Depth: 30, Facing: 1},   // right half of 日
			{Text: "b", X: 5.5, Y: 0, Depth: 20, Facing: 1}, // left half of 本
		},
	}
	line := stripANSI(term.Render(f))
	if w := runewidth.StringWidth(line); w != term.Width {
		t.Errorf("row width = %d, want %d (%q)", w, term.Width, line)
	}
	if line != "    ab    " {
		t.Errorf("row = %q, want %q", line, "    ab    ")
	}
}

func TestTerminalRenderEmpty(t *testing.T) {
	if out := (Terminal{}).Render(scene.Frame{}); out != "" {
		t.Errorf("zero-size terminal should render nothing, got %q", out)
	}
	out := Terminal{Width: 4, Height: 2}.Render(scene.Frame{})
	if stripANSI(out) != "    \n    " {
		t.Errorf("empty frame should render blank rows, got %q", out)
	}
}

func TestToPNGWithoutConverter(t *testing.T) {
	if ConverterAvailable() {
		t.Skip("rsvg-convert is installed")
	}
	if _, err := ToPNG([]byte("<svg/>"), 2); err == nil {
		t.Error("ToPNG should fail without rsvg-convert")
	}
	if _, err := ToPDF([]byte("<svg/>")); err == nil {
		t.Error("ToPDF should fail without rsvg-convert")
	}
}
