package stroke

import (
	"math"

	"github.com/closset/meshpaint"
)

// Procedural embroidery rendering. Each pattern is synthesized between the
// previous and current raster position of the drag, parameterized by
// thread thickness; stitch spacing is a fixed multiple of thickness.
// Irregularity comes from the counter-hash PRNG keyed by stitch index, so
// redrawing the same segment reproduces identical thread texture.

// stitchSpacing returns the along-segment spacing for a stitch type as a
// multiple of thread thickness.
func stitchSpacing(st StitchType, thickness float64) float64 {
	var mult float64
	switch st {
	case StitchCross, StitchHerringbone:
		mult = 3
	case StitchFrenchKnot:
		mult = 4
	case StitchChain:
		mult = 1.5
	case StitchBlanket:
		mult = 2.5
	case StitchFeather, StitchZigzag:
		mult = 2
	default:
		mult = 2.5
	}
	s := mult * thickness
	if s < 1 {
		s = 1
	}
	return s
}

// renderStitch draws one embroidery mark between p0 and p1.
func renderStitch(pm *meshpaint.Pixmap, st StitchType, p0, p1 meshpaint.Point, thickness float64, c meshpaint.RGBA, alpha float64, strokeSeed uint64) {
	if thickness <= 0 {
		thickness = 1
	}
	length := p0.Distance(p1)
	if length == 0 {
		meshpaint.DrawDot(pm, p1, thickness/2, c, alpha)
		return
	}
	dir := p1.Sub(p0).Normalize()
	perp := dir.Perp()

	switch st {
	case StitchStraight:
		meshpaint.DrawSegment(pm, p0, p1, thickness, c, alpha)

	case StitchBack:
		// Overlapping sub-segments, each reaching slightly behind the
		// previous stitch the way a backstitch doubles back.
		spacing := stitchSpacing(st, thickness)
		for d := 0.0; d < length; d += spacing {
			start := p0.Add(dir.Mul(math.Max(d-spacing*0.35, 0)))
			end := p0.Add(dir.Mul(math.Min(d+spacing, length)))
			meshpaint.DrawSegment(pm, start, end, thickness, c, alpha)
		}

	case StitchCross:
		spacing := stitchSpacing(st, thickness)
		arm := thickness * 1.6
		for i, d := 0, spacing/2; d < length; i, d = i+1, d+spacing {
			center := p0.Add(dir.Mul(d))
			a := dir.Add(perp).Normalize().Mul(arm)
			b := dir.Sub(perp).Normalize().Mul(arm)
			rot := jitter(0.2, strokeSeed, uint64(i), 0)
			a = a.Rotate(rot)
			b = b.Rotate(rot)
			meshpaint.DrawSegment(pm, center.Sub(a), center.Add(a), thickness*0.7, c, alpha)
			meshpaint.DrawSegment(pm, center.Sub(b), center.Add(b), thickness*0.7, c, alpha)
		}

	case StitchChain:
		// Connected overlapping loops.
		spacing := stitchSpacing(st, thickness)
		for d := 0.0; d < length; d += spacing {
			center := p0.Add(dir.Mul(d))
			meshpaint.DrawRing(pm, center, thickness, thickness*0.45, c, alpha)
		}

	case StitchFrenchKnot:
		spacing := stitchSpacing(st, thickness)
		highlight := c.Lerp(meshpaint.White, 0.45)
		for i, d := 0, spacing/2; d < length; i, d = i+1, d+spacing {
			center := p0.Add(dir.Mul(d))
			center = center.Add(perp.Mul(jitter(thickness*0.3, strokeSeed, uint64(i), 1)))
			r := thickness * 1.4
			meshpaint.DrawDot(pm, center, r, c, alpha)
			meshpaint.DrawDot(pm, center.Add(meshpaint.Pt(-r*0.3, -r*0.3)), r*0.35, highlight, alpha)
		}

	case StitchFeather:
		spacing := stitchSpacing(st, thickness)
		branch := thickness * 2.2
		meshpaint.DrawSegment(pm, p0, p1, thickness*0.6, c, alpha)
		for i, d := 0, spacing/2; d < length; i, d = i+1, d+spacing {
			base := p0.Add(dir.Mul(d))
			side := 1.0
			if i%2 == 1 {
				side = -1
			}
			angle := math.Pi/3 + jitter(0.15, strokeSeed, uint64(i), 2)
			arm := dir.Rotate(side * angle).Mul(branch)
			meshpaint.DrawSegment(pm, base, base.Add(arm), thickness*0.6, c, alpha)
		}

	case StitchHerringbone:
		spacing := stitchSpacing(st, thickness)
		arm := thickness * 2
		for i, d := 0, spacing/2; d < length; i, d = i+1, d+spacing {
			center := p0.Add(dir.Mul(d))
			a := dir.Mul(arm).Add(perp.Mul(arm * 0.8))
			b := dir.Mul(arm).Sub(perp.Mul(arm * 0.8))
			meshpaint.DrawSegment(pm, center.Sub(a), center.Add(b), thickness*0.65, c, alpha)
			meshpaint.DrawSegment(pm, center.Sub(b), center.Add(a), thickness*0.65, c, alpha)
		}

	case StitchBlanket:
		spacing := stitchSpacing(st, thickness)
		tick := thickness * 2.4
		meshpaint.DrawSegment(pm, p0, p1, thickness*0.7, c, alpha)
		for d := spacing / 2; d < length; d += spacing {
			base := p0.Add(dir.Mul(d))
			meshpaint.DrawSegment(pm, base, base.Add(perp.Mul(tick)), thickness*0.6, c, alpha)
		}

	case StitchZigzag:
		spacing := stitchSpacing(st, thickness)
		amp := thickness * 2
		prev := p0
		side := 1.0
		for d := spacing; d < length; d += spacing {
			next := p0.Add(dir.Mul(d)).Add(perp.Mul(side * amp))
			meshpaint.DrawSegment(pm, prev, next, thickness*0.7, c, alpha)
			prev = next
			side = -side
		}
		meshpaint.DrawSegment(pm, prev, p1, thickness*0.7, c, alpha)

	case StitchSatin, StitchFill:
		// Dense parallel coverage reads as a solid band; a thin lighter
		// stroke on top carries the thread sheen.
		meshpaint.DrawSegment(pm, p0, p1, thickness*2, c, alpha)
		sheen := c.Lerp(meshpaint.White, 0.35)
		offset := perp.Mul(thickness * 0.4)
		meshpaint.DrawSegment(pm, p0.Add(offset), p1.Add(offset), thickness*0.5, sheen, alpha*0.8)

	default:
		meshpaint.DrawSegment(pm, p0, p1, thickness, c, alpha)
	}
}
