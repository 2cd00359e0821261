package stroke

import (
	"math"

	"github.com/closset/meshpaint"
)

// stampDistance returns the signed distance from a pixel center to the
// stamp boundary for the given shape. Negative means inside.
func stampDistance(shape StampShape, px, py, cx, cy, radius float64) float64 {
	switch shape {
	case StampSquare:
		return meshpaint.SDFBox(px, py, cx, cy, radius, radius)
	case StampDiamond:
		return meshpaint.SDFDiamond(px, py, cx, cy, radius)
	case StampTriangle:
		return meshpaint.SDFTriangle(px, py, cx, cy, radius)
	case StampCalligraphy:
		// A thin nib held at 45 degrees.
		p := meshpaint.Pt(px-cx, py-cy).Rotate(-math.Pi / 4)
		return meshpaint.SDFBox(p.X, p.Y, 0, 0, radius, radius*0.25)
	default: // StampRound, StampAirbrush
		return meshpaint.SDFCircle(px, py, cx, cy, radius)
	}
}

// stampCoverage computes the stamp's alpha coverage at a pixel, applying
// the hardness falloff: hardness 1 keeps only the anti-aliased edge,
// hardness 0 fades from the center out via a smoothstep gradient.
func stampCoverage(shape StampShape, px, py, cx, cy, radius, hardness float64) float64 {
	sdf := stampDistance(shape, px, py, cx, cy, radius)

	if shape == StampAirbrush {
		// Airbrush ignores hardness: always a full-radius fade, thinned
		// by deterministic grain so repeated passes build up texture.
		if sdf >= 0 {
			return 0
		}
		t := -sdf / radius
		grain := uniformFloats(uint64(int64(px)), uint64(int64(py)))[1]
		return t * t * (0.4 + 0.6*grain)
	}

	band := (1 - hardness) * radius
	if band <= 1 || sdf >= 0 {
		return meshpaint.SmoothstepCoverage(sdf)
	}
	t := -sdf / band
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// stampMark renders one brush stamp into the pixmap. The brush is sampled
// per pixel so gradients resolve at paint time.
func stampMark(pm *meshpaint.Pixmap, shape StampShape, cx, cy, radius, hardness, alpha float64, brush meshpaint.Brush) {
	if radius <= 0 || alpha <= 0 || brush == nil {
		return
	}

	x0 := int(math.Floor(cx - radius - 1))
	x1 := int(math.Ceil(cx + radius + 1))
	y0 := int(math.Floor(cy - radius - 1))
	y1 := int(math.Ceil(cy + radius + 1))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			cov := stampCoverage(shape, px, py, cx, cy, radius, hardness)
			if cov <= 0 {
				continue
			}
			meshpaint.BlendPixel(pm, x, y, brush.ColorAt(px, py), alpha*cov)
		}
	}
}
