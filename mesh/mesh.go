// Package mesh provides immutable snapshots of renderable mesh data.
//
// Painting operates on a read-only copy of vertex positions and surface
// (UV) coordinates handed in by the scene collaborator, decoupling the
// painting core from the render-graph lifecycle. A snapshot never changes
// after construction; the pick and symmetry packages only read from it.
package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint"
)

// Snapshot is an immutable copy of the paintable mesh surface: vertex
// positions in world space, per-vertex surface coordinates in [0,1]², and
// triangle indices.
type Snapshot struct {
	positions []mgl64.Vec3
	uvs       []meshpaint.Point
	triangles [][3]int32

	min, max mgl64.Vec3
}

// NewSnapshot copies the given mesh data into an immutable snapshot.
// UV coordinates are clamped into [0,1]². Returns an error if the arrays
// disagree in length or a triangle index is out of range.
func NewSnapshot(positions []mgl64.Vec3, uvs []meshpaint.Point, triangles [][3]int32) (*Snapshot, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("mesh: snapshot requires at least one vertex")
	}
	if len(uvs) != len(positions) {
		return nil, fmt.Errorf("mesh: %d positions but %d surface coordinates", len(positions), len(uvs))
	}

	s := &Snapshot{
		positions: make([]mgl64.Vec3, len(positions)),
		uvs:       make([]meshpaint.Point, len(uvs)),
		triangles: make([][3]int32, len(triangles)),
	}
	copy(s.positions, positions)
	for i, uv := range uvs {
		s.uvs[i] = meshpaint.Pt(clamp01(uv.X), clamp01(uv.Y))
	}
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || int(idx) >= len(positions) {
				return nil, fmt.Errorf("mesh: triangle %d references vertex %d of %d", i, idx, len(positions))
			}
		}
		s.triangles[i] = tri
	}

	s.min = positions[0]
	s.max = positions[0]
	for _, p := range positions[1:] {
		for axis := 0; axis < 3; axis++ {
			s.min[axis] = math.Min(s.min[axis], p[axis])
			s.max[axis] = math.Max(s.max[axis], p[axis])
		}
	}

	return s, nil
}

// VertexCount returns the number of vertices in the snapshot.
func (s *Snapshot) VertexCount() int {
	return len(s.positions)
}

// TriangleCount returns the number of triangles in the snapshot.
func (s *Snapshot) TriangleCount() int {
	return len(s.triangles)
}

// Position returns the world-space position of vertex i.
func (s *Snapshot) Position(i int) mgl64.Vec3 {
	return s.positions[i]
}

// UV returns the surface coordinate of vertex i.
func (s *Snapshot) UV(i int) meshpaint.Point {
	return s.uvs[i]
}

// Triangle returns the vertex indices of triangle i.
func (s *Snapshot) Triangle(i int) [3]int32 {
	return s.triangles[i]
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (s *Snapshot) Bounds() (min, max mgl64.Vec3) {
	return s.min, s.max
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
