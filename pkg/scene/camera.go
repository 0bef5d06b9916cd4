package scene

import (
	"math"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

// Camera defaults.
const (
	DefaultDistance        = 45.0
	DefaultFOV             = 55.0 // vertical, degrees
	DefaultAutoRotateSpeed = 0.7
	DefaultMinDistance     = 5.0
	DefaultMaxDistance     = 200.0
	DefaultRotateSpeed     = 0.01 // radians per drag unit
	DefaultNear            = 0.1

	// polarEpsilon keeps the camera off the poles where "up" is undefined.
	polarEpsilon = 1e-3
)

var worldUp = cloud.Vec3{Y: 1}

// OrbitCamera circles a target point. Azimuth is measured around +Y starting
// at +Z, Polar from +Y. At Azimuth 0, Polar π/2 the camera sits on +Z looking
// at the target.
//
// Auto-rotation and user drag share the same angles. While a drag is active
// auto-rotation is suspended; it resumes on release.
type OrbitCamera struct {
	Target   cloud.Vec3
	Distance float64
	Azimuth  float64
	Polar    float64
	FOV      float64

	AutoRotate      bool
	AutoRotateSpeed float64
	RotateSpeed     float64
	EnablePan       bool

	MinDistance float64
	MaxDistance float64
	Near        float64

	dragging bool
}

// NewOrbitCamera returns a camera 45 units out on +Z, auto-rotating, with
// panning disabled.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        DefaultDistance,
		Polar:           math.Pi / 2,
		FOV:             DefaultFOV,
		AutoRotate:      true,
		AutoRotateSpeed: DefaultAutoRotateSpeed,
		RotateSpeed:     DefaultRotateSpeed,
		MinDistance:     DefaultMinDistance,
		MaxDistance:     DefaultMaxDistance,
		Near:            DefaultNear,
	}
}

// AutoRotateAngle is the azimuth change applied per frame by auto-rotation.
// A speed of 2 completes one orbit every 30 seconds at 60 frames per second.
func (c *OrbitCamera) AutoRotateAngle() float64 {
	return 2 * math.Pi / 60 / 60 * c.AutoRotateSpeed
}

// Update advances auto-rotation by one frame.
func (c *OrbitCamera) Update() {
	if c.AutoRotate && !c.dragging {
		c.Azimuth = wrapAngle(c.Azimuth - c.AutoRotateAngle())
	}
}

// BeginDrag starts a user interaction. Auto-rotation pauses until EndDrag.
func (c *OrbitCamera) BeginDrag() { c.dragging = true }

// EndDrag ends a user interaction.
func (c *OrbitCamera) EndDrag() { c.dragging = false }

// Dragging reports whether a user interaction is in progress.
func (c *OrbitCamera) Dragging() bool { return c.dragging }

// Drag orbits the camera by a pointer delta. It is ignored unless a drag is
// active.
func (c *OrbitCamera) Drag(dx, dy float64) {
	if !c.dragging {
		return
	}
	c.Azimuth = wrapAngle(c.Azimuth - dx*c.RotateSpeed)
	c.Polar = clampPolar(c.Polar - dy*c.RotateSpeed)
}

// Pan moves the target. It reports false and does nothing when panning is
// disabled.
func (c *OrbitCamera) Pan(dx, dy float64) bool {
	if !c.EnablePan {
		return false
	}
	right, up, _ := c.basis()
	c.Target = c.Target.Add(right.Scale(dx)).Add(up.Scale(dy))
	return true
}

// Zoom multiplies the distance by factor, clamped to [MinDistance, MaxDistance].
// A factor below 1 moves closer.
func (c *OrbitCamera) Zoom(factor float64) {
	if !(factor > 0) {
		return
	}
	c.Distance = min(max(c.Distance*factor, c.MinDistance), c.MaxDistance)
}

// Position returns the camera's world position.
func (c *OrbitCamera) Position() cloud.Vec3 {
	sinP := math.Sin(c.Polar)
	return c.Target.Add(cloud.Vec3{
		X: c.Distance * sinP * math.Sin(c.Azimuth),
		Y: c.Distance * math.Cos(c.Polar),
		Z: c.Distance * sinP * math.Cos(c.Azimuth),
	})
}

// View transforms a world point into camera space: X right, Y up, Z the
// distance in front of the camera.
func (c *OrbitCamera) View(p cloud.Vec3) cloud.Vec3 {
	right, up, forward := c.basis()
	d := p.Sub(c.Position())
	return cloud.Vec3{X: d.Dot(right), Y: d.Dot(up), Z: d.Dot(forward)}
}

// FocalLength returns 1/tan(FOV/2), the projection scale at unit depth.
func (c *OrbitCamera) FocalLength() float64 {
	return 1 / math.Tan(c.FOV*math.Pi/360)
}

func (c *OrbitCamera) basis() (right, up, forward cloud.Vec3) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(worldUp).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

func clampPolar(p float64) float64 {
	return min(max(p, polarEpsilon), math.Pi-polarEpsilon)
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
