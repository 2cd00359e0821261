// Package pick converts 2D pointer input into mesh-surface coordinates.
//
// A Camera turns a normalized screen position into a world-space ray; a
// Projector intersects that ray with a mesh snapshot and reports the hit
// as a world position plus an interpolated surface (UV) coordinate. A miss
// is not an error: painting treats it as a no-op.
package pick

import "github.com/go-gl/mathgl/mgl64"

// Ray is a world-space ray with normalized direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay creates a ray, normalizing the direction.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
