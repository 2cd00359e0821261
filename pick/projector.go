package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/mesh"
)

// SurfaceHit records one pointer→mesh intersection: the world-space point,
// the barycentrically interpolated surface coordinate, and the triangle
// that was hit.
type SurfaceHit struct {
	World    mgl64.Vec3
	UV       meshpaint.Point
	Triangle int
	Distance float64
}

// Projector intersects pointer rays with a mesh snapshot.
// It is read-only with respect to the snapshot and safe to keep for the
// lifetime of the snapshot.
type Projector struct {
	snap *mesh.Snapshot
	bvh  *triangleBVH
}

// NewProjector builds a projector (and its acceleration structure) for the
// given snapshot.
func NewProjector(snap *mesh.Snapshot) *Projector {
	return &Projector{
		snap: snap,
		bvh:  newTriangleBVH(snap),
	}
}

// Pick converts a normalized screen position into a surface hit using the
// given camera. Returns ok=false when the ray misses the mesh.
func (p *Projector) Pick(cam *Camera, s, t float64) (SurfaceHit, bool) {
	return p.PickRay(cam.Ray(s, t))
}

// PickRay intersects an arbitrary world-space ray with the mesh.
// The surface coordinate is interpolated barycentrically across the hit
// triangle, not snapped to the nearest vertex.
func (p *Projector) PickRay(r Ray) (SurfaceHit, bool) {
	tri, t, u, v, ok := p.bvh.intersect(r, 1e-6, math.Inf(1))
	if !ok {
		return SurfaceHit{}, false
	}

	idx := p.snap.Triangle(tri)
	uv0 := p.snap.UV(int(idx[0]))
	uv1 := p.snap.UV(int(idx[1]))
	uv2 := p.snap.UV(int(idx[2]))

	w := 1 - u - v
	uv := meshpaint.Pt(
		clamp01(uv0.X*w+uv1.X*u+uv2.X*v),
		clamp01(uv0.Y*w+uv1.Y*u+uv2.Y*v),
	)

	return SurfaceHit{
		World:    r.At(t),
		UV:       uv,
		Triangle: tri,
		Distance: t,
	}, true
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
