package meshpaint

import (
	"math"
	"testing"
)

func pointsClose(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestPointOps(t *testing.T) {
	tests := []struct {
		name string
		got  Point
		want Point
	}{
		{"add", Pt(1, 2).Add(Pt(3, 4)), Pt(4, 6)},
		{"sub", Pt(5, 5).Sub(Pt(2, 3)), Pt(3, 2)},
		{"mul", Pt(1, -2).Mul(3), Pt(3, -6)},
		{"perp", Pt(1, 0).Perp(), Pt(0, 1)},
		{"lerp midpoint", Pt(0, 0).Lerp(Pt(10, 20), 0.5), Pt(5, 10)},
		{"normalize", Pt(3, 4).Normalize(), Pt(0.6, 0.8)},
		{"normalize zero", Pt(0, 0).Normalize(), Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !pointsClose(tt.got, tt.want, 1e-9) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestPointRotate(t *testing.T) {
	tests := []struct {
		name  string
		p     Point
		angle float64
		want  Point
	}{
		{"quarter turn", Pt(1, 0), math.Pi / 2, Pt(0, 1)},
		{"half turn", Pt(1, 0), math.Pi, Pt(-1, 0)},
		{"full turn", Pt(2, 3), 2 * math.Pi, Pt(2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Rotate(tt.angle)
			if !pointsClose(got, tt.want, 1e-9) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestPointMetrics(t *testing.T) {
	if got := Pt(3, 4).Length(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := Pt(1, 1).Distance(Pt(4, 5)); math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Pt(2, 3).Dot(Pt(4, 5)); got != 23 {
		t.Errorf("Dot = %v, want 23", got)
	}
}
