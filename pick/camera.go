package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig describes a perspective camera.
type CameraConfig struct {
	Position mgl64.Vec3 // Eye position in world space
	LookAt   mgl64.Vec3 // Point the camera looks at
	Up       mgl64.Vec3 // Up direction hint
	VFov     float64    // Vertical field of view in degrees
	Aspect   float64    // Viewport width / height
}

// Camera generates world-space rays for normalized screen coordinates.
type Camera struct {
	origin          mgl64.Vec3
	lowerLeftCorner mgl64.Vec3
	horizontal      mgl64.Vec3
	vertical        mgl64.Vec3
}

// NewCamera creates a camera from the given configuration.
func NewCamera(cfg CameraConfig) *Camera {
	theta := cfg.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := cfg.Aspect * halfHeight

	w := cfg.Position.Sub(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := cfg.Position
	horizontal := u.Mul(2 * halfWidth)
	vertical := v.Mul(2 * halfHeight)
	lowerLeftCorner := origin.
		Sub(u.Mul(halfWidth)).
		Sub(v.Mul(halfHeight)).
		Sub(w)

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// Ray generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// s runs left to right, t runs bottom to top. Pointer input with a y-down
// origin should pass t = 1 - y/height.
func (c *Camera) Ray(s, t float64) Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Mul(s)).
		Add(c.vertical.Mul(t)).
		Sub(c.origin)
	return NewRay(c.origin, direction)
}
