// Package pipeline provides the analyze → layout → render pipeline for
// wordsphere.
//
// This package is shared by the CLI and the HTTP server so that both entry
// points produce identical clouds and share caching behavior.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Analyze: Fetch weighted keywords for an article URL
//  2. Layout: Place every word on the Fibonacci sphere
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Stage 1 is skipped when the caller already has a word list.
//
// # Usage
//
//	runner := pipeline.NewRunner(analysis.NewClient(""), cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    URL:     "https://example.com/article",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = float64(render.DefaultWidth)

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = float64(render.DefaultHeight)

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxDimension bounds width and height in pixels.
	MaxDimension = 8192.0

	// MaxScale bounds the PNG resolution multiplier.
	MaxScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the word cloud pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Analyze options
	URL     string           `json:"url,omitempty"`
	Words   []cloud.WordItem `json:"words,omitempty"`
	Refresh bool             `json:"refresh,omitempty"`

	// Layout options
	Layout *cloud.Options `json:"layout,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Azimuth    float64  `json:"azimuth,omitempty"`
	Polar      float64  `json:"polar,omitempty"`
	Background string   `json:"background,omitempty"`
	Title      string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SessionID identifies this analysis session.
	SessionID string

	// Words is the input word list, in order.
	Words []cloud.WordItem

	// Snapshot holds the computed layout.
	Snapshot cloud.Snapshot

	// LayoutHash is the content hash of the serialized snapshot.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount   int
	AnalyzeTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates while keeping the first-seen order.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForAnalyze checks that either a URL or a word list is present.
// A non-nil empty word list counts as present and yields an empty cloud.
func (o *Options) ValidateForAnalyze() error {
	if o.Words != nil {
		return nil
	}
	if strings.TrimSpace(o.URL) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "url or words is required")
	}
	return errors.ValidateURL(o.URL)
}

// SetLayoutDefaults fills in the stock layout parameters.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == nil {
		def := cloud.DefaultOptions()
		o.Layout = &def
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout options")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"width", o.Width},
		{"height", o.Height},
		{"scale", o.Scale},
		{"azimuth", o.Azimuth},
		{"polar", o.Polar},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a finite number", f.name)
		}
	}
	if o.Width < 0 || o.Height < 0 || o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width, height and scale must not be negative")
	}
	if o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must not exceed %g", MaxDimension)
	}
	if o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not exceed %g", MaxScale)
	}
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Width:      int(o.Width),
		Height:     int(o.Height),
		Azimuth:    o.Azimuth,
		Polar:      o.Polar,
		Background: o.Background,
		Scale:      o.Scale,
		Title:      o.Title,
	}
}

// String describes the input for log output.
func (o *Options) String() string {
	if o.Words != nil {
		return fmt.Sprintf("%d words", len(o.Words))
	}
	return o.URL
}
