package cloud

import (
	"errors"
	"math"
)

// Default layout parameters.
const (
	DefaultRadius     = 18.0
	DefaultBaseSize   = 1.0
	DefaultSizeRange  = 2.0
	DefaultHueHigh    = 250.0
	DefaultHueSpan    = 140.0
	DefaultSaturation = 0.9
	DefaultLightness  = 0.6

	// DefaultEpsilon floors maxWeight so an all-zero set never divides by zero.
	DefaultEpsilon = 1e-4
)

// goldenTurn is the azimuthal increment of the spiral, π(1+√5).
var goldenTurn = math.Pi * (1 + math.Sqrt(5))

// Options configures the layout and visual mapping.
type Options struct {
	Radius     float64 `json:"radius" toml:"radius"`
	BaseSize   float64 `json:"base_size" toml:"base_size"`
	SizeRange  float64 `json:"size_range" toml:"size_range"`
	HueHigh    float64 `json:"hue_high" toml:"hue_high"`
	HueSpan    float64 `json:"hue_span" toml:"hue_span"`
	Saturation float64 `json:"saturation" toml:"saturation"`
	Lightness  float64 `json:"lightness" toml:"lightness"`
	Epsilon    float64 `json:"epsilon" toml:"epsilon"`
}

// DefaultOptions returns the stock layout parameters.
func DefaultOptions() Options {
	return Options{
		Radius:     DefaultRadius,
		BaseSize:   DefaultBaseSize,
		SizeRange:  DefaultSizeRange,
		HueHigh:    DefaultHueHigh,
		HueSpan:    DefaultHueSpan,
		Saturation: DefaultSaturation,
		Lightness:  DefaultLightness,
		Epsilon:    DefaultEpsilon,
	}
}

// Validate reports option values that would produce a meaningless cloud.
// Layout itself accepts any Options; this is for configuration loading.
func (o Options) Validate() error {
	switch {
	case !(o.Radius > 0):
		return errors.New("radius must be positive")
	case !(o.BaseSize > 0):
		return errors.New("base_size must be positive")
	case o.SizeRange < 0:
		return errors.New("size_range must not be negative")
	case !(o.Epsilon > 0):
		return errors.New("epsilon must be positive")
	case o.Saturation < 0 || o.Saturation > 1:
		return errors.New("saturation must be in [0, 1]")
	case o.Lightness < 0 || o.Lightness > 1:
		return errors.New("lightness must be in [0, 1]")
	}
	return nil
}

// Layout assigns a sphere position, font size and color to every word.
//
// The result has exactly len(words) entries in input order. An empty input
// returns an empty, non-nil slice.
func Layout(words []WordItem, opts Options) []VisualWord {
	out := make([]VisualWord, len(words))
	if len(words) == 0 {
		return out
	}

	maxWeight := MaxWeight(words, opts.Epsilon)
	for i, w := range words {
		norm := Normalize(w.Weight, maxWeight)
		out[i] = VisualWord{
			Word:     w.Word,
			Position: SpherePoint(i, len(words), opts.Radius),
			FontSize: opts.BaseSize + norm*opts.SizeRange,
			Color: HSL{
				H: opts.HueHigh - norm*opts.HueSpan,
				S: opts.Saturation,
				L: opts.Lightness,
			},
		}
	}
	return out
}

// SpherePoint returns the i-th of n points of a Fibonacci sphere of radius r.
func SpherePoint(i, n int, r float64) Vec3 {
	k := float64(i) + 0.5
	phi := math.Acos(1 - 2*k/float64(n))
	theta := goldenTurn * k

	sinPhi := math.Sin(phi)
	return Vec3{
		X: r * math.Cos(theta) * sinPhi,
		Y: r * math.Sin(theta) * sinPhi,
		Z: r * math.Cos(phi),
	}
}

// MaxWeight returns the largest clamped weight in words, floored at eps.
func MaxWeight(words []WordItem, eps float64) float64 {
	m := eps
	for _, w := range words {
		if v := ClampWeight(w.Weight); v > m {
			m = v
		}
	}
	return m
}

// Normalize maps weight into [0, 1] relative to maxWeight.
func Normalize(weight, maxWeight float64) float64 {
	if !(maxWeight > 0) {
		return 0
	}
	n := ClampWeight(weight) / maxWeight
	return min(max(n, 0), 1)
}

// ClampWeight turns any float into a usable non-negative weight.
// Negative and NaN weights become 0; +Inf becomes the largest finite float.
func ClampWeight(w float64) float64 {
	switch {
	case math.IsNaN(w), w < 0:
		return 0
	case math.IsInf(w, 1):
		return math.MaxFloat64
	}
	return w
}
