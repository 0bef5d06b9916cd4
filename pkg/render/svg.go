package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/scene"
)

// Default SVG canvas size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

const fontFamily = "Inter, Helvetica, Arial, sans-serif"

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width      float64
	height     float64
	camera     *scene.OrbitCamera
	background string
	title      string
}

// WithSize sets the canvas size in pixels. Non-positive values are ignored.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.width = w
		}
		if h > 0 {
			r.height = h
		}
	}
}

// WithCamera renders from the given camera instead of the default view.
func WithCamera(c *scene.OrbitCamera) SVGOption {
	return func(r *svgRenderer) {
		if c != nil {
			r.camera = c
		}
	}
}

// WithBackground sets the canvas background color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) {
		if color != "" {
			r.background = color
		}
	}
}

// WithTitle adds an accessible <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		width:      DefaultWidth,
		height:     DefaultHeight,
		camera:     scene.NewOrbitCamera(),
		background: scene.DefaultBackground,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders a still of the word cloud as seen from the camera.
// An empty word list yields a background-only document.
func RenderSVG(words []cloud.VisualWord, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	sc := scene.New(scene.WithCamera(r.camera), scene.WithBackground(r.background))
	sc.Load(words)
	frame := sc.Frame(scene.Viewport{Width: r.width, Height: r.height, CellAspect: 1})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(frame.Background))
	fmt.Fprintf(&buf, `  <g font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n", fontFamily)

	for _, l := range frame.Labels {
		writeLabel(&buf, l)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// writeLabel emits one word. The horizontal scale is the facing cosine, so
// words seen edge-on collapse and words seen from behind are mirrored.
func writeLabel(buf *bytes.Buffer, l scene.Label) {
	size := l.Size()
	if size <= 0 || math.IsNaN(size) {
		return
	}
	facing := l.Facing
	if math.Abs(facing) < 0.05 {
		return
	}
	fmt.Fprintf(buf, `    <text transform="translate(%.2f %.2f) scale(%.3f 1)" font-size="%.2f" fill="%s">%s</text>`+"\n",
		l.X, l.Y, facing, size, l.Color.Hex(), escapeXML(l.Text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
