package pick

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/mesh"
)

// quadSnapshot is a unit quad in the z=0 plane facing +z, with surface
// coordinates running left-to-right and top-to-bottom.
func quadSnapshot(t *testing.T) *mesh.Snapshot {
	t.Helper()
	snap, err := mesh.NewSnapshot(
		[]mgl64.Vec3{
			{-1, -1, 0},
			{1, -1, 0},
			{-1, 1, 0},
			{1, 1, 0},
		},
		[]meshpaint.Point{
			meshpaint.Pt(0, 1),
			meshpaint.Pt(1, 1),
			meshpaint.Pt(0, 0),
			meshpaint.Pt(1, 0),
		},
		[][3]int32{{0, 1, 2}, {1, 3, 2}},
	)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func frontCamera() *Camera {
	return NewCamera(CameraConfig{
		Position: mgl64.Vec3{0, 0, 5},
		LookAt:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		VFov:     45,
		Aspect:   1,
	})
}

func TestRayAt(t *testing.T) {
	r := NewRay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, -2})
	p := r.At(3)
	want := mgl64.Vec3{1, 2, 0}
	if p.Sub(want).Len() > 1e-9 {
		t.Errorf("At(3) = %v, want %v", p, want)
	}
	if math.Abs(r.Direction.Len()-1) > 1e-9 {
		t.Errorf("direction not normalized: %v", r.Direction)
	}
}

func TestCameraCenterRay(t *testing.T) {
	cam := frontCamera()
	r := cam.Ray(0.5, 0.5)

	// The center ray points straight down the view axis.
	if r.Direction.Sub(mgl64.Vec3{0, 0, -1}).Len() > 1e-9 {
		t.Errorf("center ray direction = %v, want -z", r.Direction)
	}
	if r.Origin != (mgl64.Vec3{0, 0, 5}) {
		t.Errorf("center ray origin = %v", r.Origin)
	}
}

func TestPickCenter(t *testing.T) {
	p := NewProjector(quadSnapshot(t))
	hit, ok := p.Pick(frontCamera(), 0.5, 0.5)
	if !ok {
		t.Fatal("center pick missed")
	}
	if math.Abs(hit.UV.X-0.5) > 1e-6 || math.Abs(hit.UV.Y-0.5) > 1e-6 {
		t.Errorf("center UV = %v, want (0.5, 0.5)", hit.UV)
	}
	if hit.World.Sub(mgl64.Vec3{0, 0, 0}).Len() > 1e-6 {
		t.Errorf("center world = %v, want origin", hit.World)
	}
	if math.Abs(hit.Distance-5) > 1e-6 {
		t.Errorf("center distance = %v, want 5", hit.Distance)
	}
}

func TestPickMiss(t *testing.T) {
	p := NewProjector(quadSnapshot(t))
	// Screen corner maps past the quad's extent at the z=0 plane.
	if _, ok := p.Pick(frontCamera(), 0.999, 0.999); ok {
		t.Error("corner pick should miss the quad")
	}
	// Ray pointing away from the mesh.
	if _, ok := p.PickRay(NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1})); ok {
		t.Error("backward ray should miss")
	}
}

func TestPickRayUVInterpolation(t *testing.T) {
	p := NewProjector(quadSnapshot(t))

	tests := []struct {
		name   string
		origin mgl64.Vec3
		wantU  float64
		wantV  float64
	}{
		{"bottom left region", mgl64.Vec3{-0.5, -0.5, 5}, 0.25, 0.75},
		{"top right region", mgl64.Vec3{0.5, 0.5, 5}, 0.75, 0.25},
		{"left edge midpoint", mgl64.Vec3{-1, 0, 5}, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := p.PickRay(NewRay(tt.origin, mgl64.Vec3{0, 0, -1}))
			if !ok {
				t.Fatal("pick missed")
			}
			if math.Abs(hit.UV.X-tt.wantU) > 1e-6 || math.Abs(hit.UV.Y-tt.wantV) > 1e-6 {
				t.Errorf("UV = %v, want (%v, %v)", hit.UV, tt.wantU, tt.wantV)
			}
		})
	}
}

func TestPickNearestTriangleWins(t *testing.T) {
	// Two stacked quads; the ray must report the closer one.
	snap, err := mesh.NewSnapshot(
		[]mgl64.Vec3{
			{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}, {1, 1, 0},
			{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
		},
		[]meshpaint.Point{
			meshpaint.Pt(0, 1), meshpaint.Pt(1, 1), meshpaint.Pt(0, 0), meshpaint.Pt(1, 0),
			meshpaint.Pt(0, 1), meshpaint.Pt(1, 1), meshpaint.Pt(0, 0), meshpaint.Pt(1, 0),
		},
		[][3]int32{{0, 1, 2}, {1, 3, 2}, {4, 5, 6}, {5, 7, 6}},
	)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	p := NewProjector(snap)
	hit, ok := p.PickRay(NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1}))
	if !ok {
		t.Fatal("pick missed")
	}
	if math.Abs(hit.Distance-4) > 1e-6 {
		t.Errorf("distance = %v, want 4 (front quad at z=1)", hit.Distance)
	}
}
