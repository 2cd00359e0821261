package meshpaint

import "math"

// Raster drawing primitives shared by the stroke and composite packages.
// All writes clip silently at buffer bounds.

// BlendPixel composites a source color over the pixmap pixel at (x, y)
// with an extra alpha factor, in non-premultiplied byte space.
func BlendPixel(pm *Pixmap, x, y int, src RGBA, alpha float64) {
	if !pm.InBounds(x, y) {
		return
	}
	sa := src.A * alpha
	if sa <= 0 {
		return
	}
	if sa > 1 {
		sa = 1
	}

	i := pm.Offset(x, y)
	data := pm.Data()
	da := float64(data[i+3]) / 255

	outA := sa + da*(1-sa)
	if outA <= 0 {
		return
	}

	blendChannel := func(s float64, d uint8) uint8 {
		v := (s*sa + float64(d)/255*da*(1-sa)) / outA * 255
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(v + 0.5)
	}

	data[i+0] = blendChannel(src.R, data[i+0])
	data[i+1] = blendChannel(src.G, data[i+1])
	data[i+2] = blendChannel(src.B, data[i+2])
	a := outA * 255
	if a > 255 {
		a = 255
	}
	data[i+3] = uint8(a + 0.5)
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// DrawSegment renders an anti-aliased thick line segment.
func DrawSegment(pm *Pixmap, p0, p1 Point, thickness float64, c RGBA, alpha float64) {
	half := thickness / 2
	if half <= 0 {
		half = 0.5
	}

	minX := int(math.Floor(math.Min(p0.X, p1.X) - half - 1))
	maxX := int(math.Ceil(math.Max(p0.X, p1.X) + half + 1))
	minY := int(math.Floor(math.Min(p0.Y, p1.Y) - half - 1))
	maxY := int(math.Ceil(math.Max(p0.Y, p1.Y) + half + 1))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := Pt(float64(x)+0.5, float64(y)+0.5)
			cov := SmoothstepCoverage(SegmentDistance(p, p0, p1) - half)
			if cov <= 0 {
				continue
			}
			BlendPixel(pm, x, y, c, alpha*cov)
		}
	}
}

// DrawDot renders a filled anti-aliased disc.
func DrawDot(pm *Pixmap, center Point, radius float64, c RGBA, alpha float64) {
	x0 := int(math.Floor(center.X - radius - 1))
	x1 := int(math.Ceil(center.X + radius + 1))
	y0 := int(math.Floor(center.Y - radius - 1))
	y1 := int(math.Ceil(center.Y + radius + 1))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := Pt(float64(x)+0.5, float64(y)+0.5)
			cov := SmoothstepCoverage(SDFCircle(p.X, p.Y, center.X, center.Y, radius))
			if cov <= 0 {
				continue
			}
			BlendPixel(pm, x, y, c, alpha*cov)
		}
	}
}

// DrawRing renders a stroked anti-aliased circle outline.
func DrawRing(pm *Pixmap, center Point, radius, strokeWidth float64, c RGBA, alpha float64) {
	half := strokeWidth / 2
	x0 := int(math.Floor(center.X - radius - half - 1))
	x1 := int(math.Ceil(center.X + radius + half + 1))
	y0 := int(math.Floor(center.Y - radius - half - 1))
	y1 := int(math.Ceil(center.Y + radius + half + 1))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := Pt(float64(x)+0.5, float64(y)+0.5)
			sdf := math.Abs(p.Distance(center)-radius) - half
			cov := SmoothstepCoverage(sdf)
			if cov <= 0 {
				continue
			}
			BlendPixel(pm, x, y, c, alpha*cov)
		}
	}
}
