// Package pkg provides the core libraries for Wordsphere word cloud
// visualization.
//
// # Overview
//
// Wordsphere turns the weighted keywords of an article into a 3D cloud: words
// sit on a sphere, their size and color follow their weight, and the whole
// cloud spins slowly in front of an orbiting camera. The pkg directory is
// organized into three areas:
//
//  1. Domain logic ([cloud], [scene], [render])
//  2. Orchestration ([pipeline], [analysis])
//  3. Infrastructure ([cache], [config], [errors], [httputil], [io],
//     [observability], [server], [buildinfo])
//
// # Architecture
//
// The typical data flow through Wordsphere:
//
//	Article URL
//	     ↓
//	[analysis] package (ask the keyword service for weighted words)
//	     ↓
//	[cloud] package (Fibonacci-sphere layout, size and color mapping)
//	     ↓
//	[scene] package (spin, bob, orbit camera, projection)
//	     ↓
//	[render] package (terminal cells, SVG, PNG, PDF)
//
// Layout is a pure function of the word list. Animation state lives only in
// the scene, and every per-frame step takes the elapsed time as an argument.
//
// # Quick Start
//
// Lay out a word list and render one frame as SVG:
//
//	import (
//	    "github.com/matzehuels/wordsphere/pkg/cloud"
//	    "github.com/matzehuels/wordsphere/pkg/render"
//	)
//
//	words := []cloud.WordItem{{Word: "sphere", Weight: 0.9}, {Word: "camera", Weight: 0.3}}
//	visual := cloud.Layout(words, cloud.DefaultOptions())
//	svg := render.RenderSVG(visual)
//
// # Main Packages
//
// [cloud] - The layout engine. [cloud.Layout] places N words on the sphere
// and derives font size and HSL color from the normalized weight.
// [cloud.Snapshot] is the serialized layout used by the CLI and HTTP API.
//
// [scene] - Animated primitives (one per word), the orbit camera with
// auto-rotation and drag, and perspective projection into painter-sorted
// labels for any viewport.
//
// [render] - Output sinks for projected frames: a colored terminal grid, SVG,
// and PNG/PDF through rsvg-convert.
//
// [analysis] - HTTP client for the keyword service with retries and response
// caching.
//
// [pipeline] - The analyze → layout → render pipeline shared by the CLI and the
// HTTP server, with artifact caching.
//
// [cache] - File, Redis and null cache backends behind one interface, plus
// deterministic key construction.
//
// [server] - chi-based HTTP API exposing analyze, layout and render.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/cloud/...     # Specific package
//	go test -run Example        # Examples only
//
// [cloud]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/cloud
// [scene]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/pipeline
// [analysis]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/analysis
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/httputil
// [io]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/server
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/wordsphere/pkg/buildinfo
package pkg
