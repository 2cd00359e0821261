package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint"
)

func quadSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := NewSnapshot(
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

func TestNewSnapshotValidation(t *testing.T) {
	pos := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	uvs := []meshpaint.Point{meshpaint.Pt(0, 0), meshpaint.Pt(1, 0), meshpaint.Pt(0, 1)}

	tests := []struct {
		name      string
		positions []mgl64.Vec3
		uvs       []meshpaint.Point
		triangles [][3]int32
		wantErr   bool
	}{
		{"valid", pos, uvs, [][3]int32{{0, 1, 2}}, false},
		{"no vertices", nil, nil, nil, true},
		{"uv length mismatch", pos, uvs[:2], nil, true},
		{"index out of range", pos, uvs, [][3]int32{{0, 1, 3}}, true},
		{"negative index", pos, uvs, [][3]int32{{0, -1, 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSnapshot(tt.positions, tt.uvs, tt.triangles)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotClampsUVs(t *testing.T) {
	snap, err := NewSnapshot(
		[]mgl64.Vec3{{0, 0, 0}},
		[]meshpaint.Point{meshpaint.Pt(-0.5, 1.5)},
		nil,
	)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	uv := snap.UV(0)
	if uv.X != 0 || uv.Y != 1 {
		t.Errorf("UV = %v, want clamped to (0, 1)", uv)
	}
}

func TestSnapshotImmutable(t *testing.T) {
	positions := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	uvs := []meshpaint.Point{meshpaint.Pt(0, 0), meshpaint.Pt(1, 0), meshpaint.Pt(0, 1)}
	snap, err := NewSnapshot(positions, uvs, nil)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	positions[0] = mgl64.Vec3{99, 99, 99}
	if snap.Position(0) != (mgl64.Vec3{0, 0, 0}) {
		t.Error("snapshot shares memory with caller slice")
	}
}

func TestSnapshotBounds(t *testing.T) {
	snap := quadSnapshot(t)
	min, max := snap.Bounds()
	if min != (mgl64.Vec3{-1, -1, 0}) || max != (mgl64.Vec3{1, 1, 0}) {
		t.Errorf("Bounds = %v, %v", min, max)
	}
	if snap.VertexCount() != 4 || snap.TriangleCount() != 2 {
		t.Errorf("counts = %d verts, %d tris", snap.VertexCount(), snap.TriangleCount())
	}
}

func TestVertexGridNearest(t *testing.T) {
	snap := quadSnapshot(t)
	grid := NewVertexGrid(snap)

	tests := []struct {
		name  string
		query mgl64.Vec3
		want  int
	}{
		{"exact vertex", mgl64.Vec3{-1, -1, 0}, 0},
		{"near vertex 3", mgl64.Vec3{0.9, 1.1, 0.05}, 3},
		{"far away still resolves", mgl64.Vec3{10, 10, 10}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := grid.Nearest(tt.query, 1)
			if !ok {
				t.Fatal("Nearest returned no result")
			}
			if got != tt.want {
				t.Errorf("Nearest = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVertexGridStride(t *testing.T) {
	// With stride 2 only even-indexed vertices are candidates.
	snap := quadSnapshot(t)
	grid := NewVertexGrid(snap)

	got, ok := grid.Nearest(mgl64.Vec3{1, 1, 0}, 2)
	if !ok {
		t.Fatal("Nearest returned no result")
	}
	if got%2 != 0 {
		t.Errorf("stride 2 returned odd vertex %d", got)
	}
}
