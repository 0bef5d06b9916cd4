package scene

import (
	"time"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

// Scene defaults.
const (
	DefaultAmbient    = 0.7
	DefaultBackground = "#020617"
)

// Scene is the animated word cloud: primitives, one ambient light and one
// orbit camera.
type Scene struct {
	Primitives []Primitive
	Camera     *OrbitCamera
	Animation  Animation
	Ambient    float64
	Background string

	frames int
}

// Option configures a Scene.
type Option func(*Scene)

// WithCamera replaces the default camera.
func WithCamera(c *OrbitCamera) Option { return func(s *Scene) { s.Camera = c } }

// WithAnimation replaces the default animation parameters.
func WithAnimation(a Animation) Option { return func(s *Scene) { s.Animation = a } }

// WithBackground sets the background color.
func WithBackground(color string) Option { return func(s *Scene) { s.Background = color } }

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{
		Camera:     NewOrbitCamera(),
		Animation:  DefaultAnimation(),
		Ambient:    DefaultAmbient,
		Background: DefaultBackground,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the scene's words.
//
// Primitives are keyed by index. An index present before and after keeps its
// spin and moves to its new layout position. Surplus primitives are removed and
// new indices start fresh. The camera is not touched.
func (s *Scene) Load(words []cloud.VisualWord) {
	next := make([]Primitive, len(words))
	for i, w := range words {
		next[i] = NewPrimitive(w)
		if i < len(s.Primitives) {
			next[i].RotationY = s.Primitives[i].RotationY
		}
	}
	s.Primitives = next
}

// Len returns the number of primitives.
func (s *Scene) Len() int { return len(s.Primitives) }

// Tick advances every primitive and the camera by one frame. elapsed is the
// time since the frame loop started.
func (s *Scene) Tick(elapsed time.Duration) {
	for i := range s.Primitives {
		s.Primitives[i] = s.Primitives[i].Step(elapsed, s.Animation)
	}
	s.Camera.Update()
	s.frames++
}

// Frames returns how many ticks the scene has run.
func (s *Scene) Frames() int { return s.frames }
