package scene

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

// Viewport describes the drawing surface. CellAspect is the height of one
// unit divided by its width: 1 for pixels, about 2 for terminal cells.
type Viewport struct {
	Width      float64
	Height     float64
	CellAspect float64
}

// Label is one word projected to screen space.
type Label struct {
	Index    int
	Text     string
	X, Y     float64 // centre, in viewport units
	Depth    float64 // distance in front of the camera
	Scale    float64 // viewport rows per world unit at this depth
	FontSize float64 // world units
	Color    cloud.HSL
	Facing   float64 // cosine between the text normal and the view ray
}

// Size returns the label's height in viewport rows.
func (l Label) Size() float64 { return l.FontSize * l.Scale }

// Frame is a projected scene ready for a sink.
type Frame struct {
	Viewport   Viewport
	Labels     []Label // far to near
	Background string
	Ambient    float64
}

// Frame projects every primitive in front of the camera and sorts the labels
// far to near so later labels paint over earlier ones.
func (s *Scene) Frame(vp Viewport) Frame {
	f := Frame{
		Viewport:   vp,
		Labels:     make([]Label, 0, len(s.Primitives)),
		Background: s.Background,
		Ambient:    s.Ambient,
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return f
	}
	cellAspect := vp.CellAspect
	if cellAspect <= 0 {
		cellAspect = 1
	}

	cam := s.Camera
	focal := cam.FocalLength()
	aspect := vp.Width / (vp.Height * cellAspect)
	eye := cam.Position()

	for i, p := range s.Primitives {
		v := cam.View(p.Position)
		if v.Z <= cam.Near {
			continue
		}
		ndcX := v.X * focal / (v.Z * aspect)
		ndcY := v.Y * focal / v.Z

		normal := cloud.Vec3{X: math.Sin(p.RotationY), Z: math.Cos(p.RotationY)}
		f.Labels = append(f.Labels, Label{
			Index:    i,
			Text:     p.Word.Word,
			X:        (ndcX + 1) / 2 * vp.Width,
			Y:        (1 - ndcY) / 2 * vp.Height,
			Depth:    v.Z,
			Scale:    focal / v.Z * vp.Height / 2,
			FontSize: p.Word.FontSize,
			Color:    p.Word.Color,
			Facing:   normal.Dot(eye.Sub(p.Position).Normalize()),
		})
	}

	slices.SortStableFunc(f.Labels, func(a, b Label) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return f
}
