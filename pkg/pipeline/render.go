package pipeline

import (
	"fmt"
	"math"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/render"
	"github.com/matzehuels/wordsphere/pkg/scene"
)

// Render generates output artifacts in the requested formats.
// PNG and PDF are converted from the SVG, which is rendered at most once.
func Render(snap cloud.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(snap.Words, buildSVGOptions(opts)...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(svgOnce(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svgOnce())
		case FormatJSON:
			data, err = cloud.MarshalSnapshot(snap)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions maps pipeline options onto the SVG sink. A zero polar
// angle means "not set" and keeps the camera level with the equator.
func buildSVGOptions(opts Options) []render.SVGOption {
	cam := scene.NewOrbitCamera()
	cam.Azimuth = opts.Azimuth
	if opts.Polar != 0 {
		cam.Polar = math.Max(1e-3, math.Min(math.Pi-1e-3, opts.Polar))
	}

	svgOpts := []render.SVGOption{
		render.WithSize(opts.Width, opts.Height),
		render.WithCamera(cam),
		render.WithBackground(opts.Background),
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, render.WithTitle(opts.Title))
	}
	return svgOpts
}
