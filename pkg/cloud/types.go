package cloud

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// WordItem is a weighted word as supplied by the analysis service.
type WordItem struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

// VisualWord holds the derived rendering attributes for one WordItem.
type VisualWord struct {
	Word     string  `json:"word"`
	Position Vec3    `json:"position"`
	FontSize float64 `json:"font_size"`
	Color    HSL     `json:"color"`
}

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// HSL is a color in hue/saturation/lightness form.
// H is in degrees, S and L are fractions in [0, 1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// CSS returns the color as a CSS hsl() expression, e.g. "hsl(250, 90%, 60%)".
func (c HSL) CSS() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", trimFloat(c.H), trimFloat(c.S*100), trimFloat(c.L*100))
}

// Colorful converts c to a go-colorful color.
func (c HSL) Colorful() colorful.Color {
	return colorful.Hsl(c.H, c.S, c.L).Clamped()
}

// Hex returns the color as "#rrggbb".
func (c HSL) Hex() string {
	return c.Colorful().Hex()
}

// trimFloat formats f with at most 2 decimals and no trailing zeros.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
