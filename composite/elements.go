package composite

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/layer"
)

// rasterElements flattens structured elements into dst in list order.
// Unknown element types are skipped.
func rasterElements(dst *meshpaint.Pixmap, elems []layer.Element, face font.Face) {
	for _, e := range elems {
		switch el := e.(type) {
		case *layer.VectorElement:
			rasterVector(dst, el)
		case *layer.ShapeElement:
			rasterShape(dst, el)
		case *layer.TextElement:
			rasterText(dst, el, face)
		case *layer.ImageElement:
			rasterImage(dst, el)
		}
	}
}

func rasterVector(dst *meshpaint.Pixmap, el *layer.VectorElement) {
	if len(el.Points) < 2 || el.Width <= 0 || el.Opacity <= 0 {
		return
	}
	for i := 1; i < len(el.Points); i++ {
		meshpaint.DrawSegment(dst, el.Points[i-1], el.Points[i], el.Width, el.Color, el.Opacity)
	}
	if el.Closed {
		meshpaint.DrawSegment(dst, el.Points[len(el.Points)-1], el.Points[0], el.Width, el.Color, el.Opacity)
	}
}

// shapeDistance returns the signed distance from a point in the shape's
// local frame to its outline. Non-square shapes are evaluated in a frame
// scaled to the smaller half-extent, so the distance is approximate for
// strongly anisotropic shapes but still adequate for edge anti-aliasing.
func shapeDistance(kind layer.ShapeKind, local meshpaint.Point, halfW, halfH float64) float64 {
	switch kind {
	case layer.ShapeEllipse:
		f := math.Sqrt(local.X*local.X/(halfW*halfW) + local.Y*local.Y/(halfH*halfH))
		return (f - 1) * min(halfW, halfH)
	case layer.ShapeTriangle:
		m := min(halfW, halfH)
		return meshpaint.SDFTriangle(local.X*m/halfW, local.Y*m/halfH, 0, 0, m)
	case layer.ShapeDiamond:
		m := min(halfW, halfH)
		return meshpaint.SDFDiamond(local.X*m/halfW, local.Y*m/halfH, 0, 0, m)
	default:
		return meshpaint.SDFBox(local.X, local.Y, 0, 0, halfW, halfH)
	}
}

func rasterShape(dst *meshpaint.Pixmap, el *layer.ShapeElement) {
	if el.W <= 0 || el.H <= 0 || el.Opacity <= 0 || el.Fill == nil {
		return
	}
	halfW, halfH := el.W/2, el.H/2

	// The rotated shape fits inside a circle of the diagonal half-extent.
	reach := math.Hypot(halfW, halfH) + 1
	x0 := int(math.Floor(el.Center.X - reach))
	x1 := int(math.Ceil(el.Center.X + reach))
	y0 := int(math.Floor(el.Center.Y - reach))
	y1 := int(math.Ceil(el.Center.Y + reach))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			local := meshpaint.Pt(px, py).Sub(el.Center).Rotate(-el.Rotation)
			cov := meshpaint.SmoothstepCoverage(shapeDistance(el.Shape, local, halfW, halfH))
			if cov <= 0 {
				continue
			}
			meshpaint.BlendPixel(dst, x, y, el.Fill.ColorAt(px, py), el.Opacity*cov)
		}
	}
}

func rasterText(dst *meshpaint.Pixmap, el *layer.TextElement, face font.Face) {
	if el.Text == "" || el.Opacity <= 0 || face == nil {
		return
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()
	width := font.MeasureString(face, el.Text).Ceil()
	if width <= 0 || lineHeight <= 0 {
		return
	}

	// Glyph coverage is drawn at the face's native size and resampled
	// into raster space through the element's scale and rotation.
	mask := image.NewRGBA(image.Rect(0, 0, width, lineHeight))
	drawer := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	drawer.DrawString(el.Text)

	scale := 1.0
	if el.Size > 0 {
		scale = el.Size / float64(lineHeight)
	}

	reach := math.Hypot(float64(width), float64(lineHeight)) * scale
	x0 := int(math.Floor(el.Origin.X - reach))
	x1 := int(math.Ceil(el.Origin.X + reach))
	y0 := int(math.Floor(el.Origin.Y - reach))
	y1 := int(math.Ceil(el.Origin.Y + reach))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := meshpaint.Pt(float64(x)+0.5, float64(y)+0.5)
			local := p.Sub(el.Origin).Rotate(-el.Rotation).Mul(1 / scale)
			tx := int(math.Floor(local.X))
			ty := int(math.Floor(local.Y)) + ascent
			if tx < 0 || tx >= width || ty < 0 || ty >= lineHeight {
				continue
			}
			cov := float64(mask.Pix[mask.PixOffset(tx, ty)+3]) / 255
			if cov <= 0 {
				continue
			}
			meshpaint.BlendPixel(dst, x, y, el.Color, el.Opacity*cov)
		}
	}
}

func rasterImage(dst *meshpaint.Pixmap, el *layer.ImageElement) {
	if el.Source == nil || el.W <= 0 || el.H <= 0 || el.Opacity <= 0 {
		return
	}

	if el.Rotation == 0 {
		rasterImageAxisAligned(dst, el)
		return
	}

	srcW := el.Source.Width()
	srcH := el.Source.Height()
	halfW, halfH := el.W/2, el.H/2

	reach := math.Hypot(halfW, halfH) + 1
	x0 := int(math.Floor(el.Center.X - reach))
	x1 := int(math.Ceil(el.Center.X + reach))
	y0 := int(math.Floor(el.Center.Y - reach))
	y1 := int(math.Ceil(el.Center.Y + reach))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := meshpaint.Pt(float64(x)+0.5, float64(y)+0.5)
			local := p.Sub(el.Center).Rotate(-el.Rotation)
			if local.X < -halfW || local.X >= halfW || local.Y < -halfH || local.Y >= halfH {
				continue
			}
			sx := int((local.X/el.W + 0.5) * float64(srcW))
			sy := int((local.Y/el.H + 0.5) * float64(srcH))
			if sx < 0 || sx >= srcW || sy < 0 || sy >= srcH {
				continue
			}
			meshpaint.BlendPixel(dst, x, y, el.Source.GetPixel(sx, sy), el.Opacity)
		}
	}
}

// rasterImageAxisAligned is the unrotated fast path: the source is
// resampled bilinearly in one pass, then blended.
func rasterImageAxisAligned(dst *meshpaint.Pixmap, el *layer.ImageElement) {
	w := int(math.Round(el.W))
	h := int(math.Round(el.H))
	if w <= 0 || h <= 0 {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), el.Source.ToImage(), el.Source.Bounds(), draw.Src, nil)

	ox := int(math.Round(el.Center.X - el.W/2))
	oy := int(math.Round(el.Center.Y - el.H/2))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := scaled.PixOffset(x, y)
			a := scaled.Pix[i+3]
			if a == 0 {
				continue
			}
			// Undo the premultiplication x/image/draw applies.
			af := float64(a)
			c := meshpaint.RGBA{
				R: float64(scaled.Pix[i]) / af,
				G: float64(scaled.Pix[i+1]) / af,
				B: float64(scaled.Pix[i+2]) / af,
				A: af / 255,
			}
			meshpaint.BlendPixel(dst, ox+x, oy+y, c, el.Opacity)
		}
	}
}
