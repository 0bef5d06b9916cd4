// Package render turns a laid-out word cloud into output artifacts.
//
// # Overview
//
// Every sink renders one [scene.Frame]: the scene is projected through its
// orbit camera and labels are painted far to near. Supported outputs:
//
//   - SVG ([RenderSVG]): one <text> element per word, sized by depth
//   - PNG and PDF ([ToPNG], [ToPDF]): SVG converted with rsvg-convert
//   - JSON: the layout snapshot (see package cloud)
//   - Terminal ([Terminal]): a colored character grid for the TUI
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] use the external rsvg-convert tool (from librsvg):
//
//	svg := render.RenderSVG(words, render.WithSize(1200, 900))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Terminal
//
// Terminal cells cannot scale glyphs, so the terminal sink expresses font
// size and depth through weight and brightness instead: near and large
// words are bold, distant words fade toward the background, and words
// seen edge-on are dimmed by how far they face away from the camera.
package render
