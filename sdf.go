package meshpaint

import "math"

// sdfAntialiasWidth controls the smoothstep transition width in pixels.
// A value of 0.7 produces smooth anti-aliasing at standard DPI.
const sdfAntialiasWidth = 0.7

// SDFCircle returns the signed distance from (px, py) to a circle of the
// given radius centered at (cx, cy). Negative inside.
func SDFCircle(px, py, cx, cy, radius float64) float64 {
	return math.Hypot(px-cx, py-cy) - radius
}

// SDFBox returns the signed distance to an axis-aligned box with half
// extents (halfW, halfH) centered at (cx, cy).
func SDFBox(px, py, cx, cy, halfW, halfH float64) float64 {
	dx := math.Abs(px-cx) - halfW
	dy := math.Abs(py-cy) - halfH
	ax := math.Max(dx, 0)
	ay := math.Max(dy, 0)
	outside := math.Hypot(ax, ay)
	inside := math.Min(math.Max(dx, dy), 0)
	return outside + inside
}

// SDFDiamond returns the signed distance to a diamond (square rotated 45°)
// with the given half diagonal, centered at (cx, cy). The L1 metric gives
// the diamond its shape; the result is rescaled to approximate Euclidean
// distance near the boundary.
func SDFDiamond(px, py, cx, cy, halfDiag float64) float64 {
	d := math.Abs(px-cx) + math.Abs(py-cy) - halfDiag
	return d * math.Sqrt2 / 2
}

// SDFTriangle returns the signed distance to an upward-pointing equilateral
// triangle inscribed in a circle of the given radius around (cx, cy).
func SDFTriangle(px, py, cx, cy, radius float64) float64 {
	const k = 1.7320508075688772 // sqrt(3)
	x := math.Abs(px-cx) - radius
	y := py - cy + radius/k
	if x+k*y > 0 {
		x, y = (x-k*y)/2, (-k*x-y)/2
	}
	x -= math.Min(math.Max(x, -2*radius), 0)
	sign := 1.0
	if y < 0 {
		sign = -1.0
	}
	return -math.Hypot(x, y) * sign
}

// SmoothstepCoverage converts a signed distance to an anti-aliased
// coverage value in [0, 1], where 1 means fully inside.
func SmoothstepCoverage(sdf float64) float64 {
	if sdf <= -sdfAntialiasWidth {
		return 1
	}
	if sdf >= sdfAntialiasWidth {
		return 0
	}
	t := (sdf + sdfAntialiasWidth) / (2 * sdfAntialiasWidth)
	// smoothstep(1, 0, t)
	return 1 - t*t*(3-2*t)
}
