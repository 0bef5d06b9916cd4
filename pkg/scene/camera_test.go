package scene

import (
	"math"
	"testing"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

func TestNewOrbitCameraPosition(t *testing.T) {
	c := NewOrbitCamera()
	p := c.Position()
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y) > 1e-9 || math.Abs(p.Z-DefaultDistance) > 1e-9 {
		t.Errorf("Position() = %+v, want (0, 0, %v)", p, DefaultDistance)
	}
}

func TestCameraAutoRotate(t *testing.T) {
	c := NewOrbitCamera()
	c.Update()
	if want := wrapAngle(-c.AutoRotateAngle()); math.Abs(c.Azimuth-want) > 1e-12 {
		t.Errorf("Azimuth after one frame = %v, want %v", c.Azimuth, want)
	}

	// 3600 frames at speed 1 is one full orbit.
	c = NewOrbitCamera()
	c.AutoRotateSpeed = 1
	for n := 0; n < 3600; n++ {
		c.Update()
	}
	if d := math.Min(c.Azimuth, 2*math.Pi-c.Azimuth); d > 1e-6 {
		t.Errorf("after one orbit Azimuth = %v, want ~0", c.Azimuth)
	}
}

func TestCameraDragSuspendsAutoRotate(t *testing.T) {
	c := NewOrbitCamera()
	c.BeginDrag()
	if !c.Dragging() {
		t.Fatal("Dragging() = false after BeginDrag")
	}
	before := c.Azimuth
	c.Update()
	if c.Azimuth != before {
		t.Errorf("auto-rotate moved camera during drag: %v -> %v", before, c.Azimuth)
	}

	c.Drag(10, 0)
	if c.Azimuth == before {
		t.Error("Drag did not change azimuth")
	}

	c.EndDrag()
	afterDrag := c.Azimuth
	c.Update()
	if c.Azimuth == afterDrag {
		t.Error("auto-rotate did not resume after EndDrag")
	}
}

func TestCameraDragIgnoredWithoutBegin(t *testing.T) {
	c := NewOrbitCamera()
	c.Drag(100, 100)
	if c.Azimuth != 0 || c.Polar != math.Pi/2 {
		t.Errorf("Drag without BeginDrag moved camera: az=%v polar=%v", c.Azimuth, c.Polar)
	}
}

func TestCameraPolarClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.BeginDrag()
	c.Drag(0, 1e6)
	if c.Polar < polarEpsilon || c.Polar > math.Pi-polarEpsilon {
		t.Errorf("Polar = %v escaped clamp", c.Polar)
	}
	c.Drag(0, -1e6)
	if c.Polar < polarEpsilon || c.Polar > math.Pi-polarEpsilon {
		t.Errorf("Polar = %v escaped clamp", c.Polar)
	}
}

func TestCameraPanDisabled(t *testing.T) {
	c := NewOrbitCamera()
	if c.Pan(5, 5) {
		t.Error("Pan() = true with panning disabled")
	}
	if c.Target != (cloud.Vec3{}) {
		t.Errorf("Pan moved target to %+v", c.Target)
	}

	c.EnablePan = true
	if !c.Pan(5, 0) {
		t.Error("Pan() = false with panning enabled")
	}
	if c.Target.X == 0 {
		t.Errorf("Pan did not move target: %+v", c.Target)
	}
}

func TestCameraZoomClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.Zoom(0.5)
	if c.Distance != DefaultDistance*0.5 {
		t.Errorf("Distance = %v, want %v", c.Distance, DefaultDistance*0.5)
	}
	c.Zoom(1e-6)
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want MinDistance %v", c.Distance, c.MinDistance)
	}
	c.Zoom(1e9)
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want MaxDistance %v", c.Distance, c.MaxDistance)
	}
	c.Zoom(-1)
	if c.Distance != c.MaxDistance {
		t.Errorf("negative zoom factor changed distance to %v", c.Distance)
	}
}

func TestCameraView(t *testing.T) {
	c := NewOrbitCamera()
	tests := []struct {
		name  string
		world cloud.Vec3
		want  cloud.Vec3
	}{
		{"target", cloud.Vec3{}, cloud.Vec3{Z: DefaultDistance}},
		{"right", cloud.Vec3{X: 1}, cloud.Vec3{X: 1, Z: DefaultDistance}},
		{"up", cloud.Vec3{Y: 1}, cloud.Vec3{Y: 1, Z: DefaultDistance}},
		{"toward camera", cloud.Vec3{Z: 5}, cloud.Vec3{Z: DefaultDistance - 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.View(tt.world)
			if got.Sub(tt.want).Len() > 1e-9 {
				t.Errorf("View(%+v) = %+v, want %+v", tt.world, got, tt.want)
			}
		})
	}
}

func TestCameraViewAfterOrbit(t *testing.T) {
	c := NewOrbitCamera()
	c.Azimuth = math.Pi / 2 // camera on +X looking toward -X

	got := c.View(cloud.Vec3{Z: -1})
	if math.Abs(got.X-1) > 1e-9 {
		t.Errorf("View(-Z) = %+v, want X=1 when camera sits on +X", got)
	}
}
