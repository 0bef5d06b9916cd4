package scene

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

func TestPrimitiveStepSpin(t *testing.T) {
	p := NewPrimitive(cloud.VisualWord{Word: "spin"})
	a := DefaultAnimation()

	for i := 1; i <= 5; i++ {
		p = p.Step(0, a)
		if want := float64(i) * a.Spin; math.Abs(p.RotationY-want) > 1e-12 {
			t.Fatalf("after %d steps RotationY = %v, want %v", i, p.RotationY, want)
		}
	}
}

func TestPrimitiveStepBob(t *testing.T) {
	a := DefaultAnimation()
	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"at start", 0, 0},
		{"quarter period", time.Duration(math.Pi / 2 / a.BobFrequency * float64(time.Millisecond)), a.BobAmplitude},
		{"three quarter period", time.Duration(3 * math.Pi / 2 / a.BobFrequency * float64(time.Millisecond)), -a.BobAmplitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrimitive(cloud.VisualWord{Position: cloud.Vec3{X: 1, Y: 2, Z: 3}})
			got := p.Step(tt.elapsed, a)
			if d := got.Drift(); math.Abs(d.Y-tt.want) > 1e-9 || d.X != 0 || d.Z != 0 {
				t.Errorf("drift = %+v, want Y=%v", d, tt.want)
			}
		})
	}
}

func TestPrimitiveStepIsPure(t *testing.T) {
	p := NewPrimitive(cloud.VisualWord{Position: cloud.Vec3{Y: 1}})
	elapsed := 1234 * time.Millisecond

	a := p.Step(elapsed, DefaultAnimation())
	b := p.Step(elapsed, DefaultAnimation())
	if a != b {
		t.Errorf("Step not deterministic: %+v vs %+v", a, b)
	}
	if p.RotationY != 0 || p.Position.Y != 1 {
		t.Errorf("Step mutated receiver: %+v", p)
	}
}

func TestPrimitiveStepDoesNotTouchLayout(t *testing.T) {
	w := cloud.VisualWord{Word: "w", Position: cloud.Vec3{X: 4, Y: 5, Z: 6}, FontSize: 2}
	p := NewPrimitive(w)
	for i := 0; i < 100; i++ {
		p = p.Step(time.Duration(i)*16*time.Millisecond, DefaultAnimation())
	}
	if p.Word != w {
		t.Errorf("layout changed: %+v, want %+v", p.Word, w)
	}
}
