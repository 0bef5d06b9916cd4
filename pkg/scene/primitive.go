package scene

import (
	"math"
	"time"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

// Animation parameters for the floating effect.
const (
	DefaultSpin         = 0.003 // radians per frame
	DefaultBobFrequency = 0.001 // radians per millisecond
	DefaultBobAmplitude = 0.002 // world units per frame
)

// Animation controls how primitives move each frame.
type Animation struct {
	Spin         float64 `json:"spin" toml:"spin"`
	BobFrequency float64 `json:"bob_frequency" toml:"bob_frequency"`
	BobAmplitude float64 `json:"bob_amplitude" toml:"bob_amplitude"`
}

// DefaultAnimation returns the stock floating animation.
func DefaultAnimation() Animation {
	return Animation{
		Spin:         DefaultSpin,
		BobFrequency: DefaultBobFrequency,
		BobAmplitude: DefaultBobAmplitude,
	}
}

// Primitive is the mutable visual state of one word.
type Primitive struct {
	Word      cloud.VisualWord
	Position  cloud.Vec3
	RotationY float64
}

// NewPrimitive places a primitive at the word's layout position.
func NewPrimitive(w cloud.VisualWord) Primitive {
	return Primitive{Word: w, Position: w.Position}
}

// Step advances p by one frame.
//
// Spin grows by a fixed amount per call, so it is frame-rate dependent. The
// vertical drift is keyed off elapsed, the time since the loop started, so all
// primitives bob in phase regardless of frame timing.
func (p Primitive) Step(elapsed time.Duration, a Animation) Primitive {
	ms := float64(elapsed) / float64(time.Millisecond)
	p.RotationY += a.Spin
	p.Position.Y += math.Sin(ms*a.BobFrequency) * a.BobAmplitude
	return p
}

// Drift returns how far p has moved away from its layout position.
func (p Primitive) Drift() cloud.Vec3 {
	return p.Position.Sub(p.Word.Position)
}
