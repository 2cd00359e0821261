// Package relief derives displacement and normal maps from a puff layer's
// alpha channel.
//
// Both syntheses are pure functions of the alpha field. Displacement is
// one-directional: the neutral byte is 128 and painted relief only raises
// it toward 255, never below. Flat (zero-alpha) regions yield the neutral
// displacement byte and the pointing-up normal (128, 128, 255).
package relief

import (
	"math"

	"github.com/closset/meshpaint"
)

const (
	// Neutral is the displacement byte meaning no outward displacement.
	Neutral = 128

	// displacementRange spans neutral to maximum outward displacement.
	displacementRange = 127

	// Curvature scales the displacement between a soft, flat-topped bulge
	// (0.3 at curvature 0) and a fully domed one (1.0 at curvature 1).
	minCurvatureFactor = 0.3
)

// DisplacementByte converts one puff alpha byte to a displacement byte.
// height and curvature are in [0, 1]. Alpha 0 maps to exactly Neutral.
func DisplacementByte(alpha uint8, height, curvature float64) uint8 {
	if alpha == 0 {
		return Neutral
	}
	factor := minCurvatureFactor + (1.0-minCurvatureFactor)*clamp01(curvature)
	v := Neutral + float64(alpha)/255*clamp01(height)*factor*displacementRange
	if v < Neutral {
		v = Neutral
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// DisplacementMap fills dst with displacement bytes derived from the puff
// pixmap's alpha channel. dst must match the pixmap's dimensions; a
// mismatch leaves dst untouched.
func DisplacementMap(puff *meshpaint.Pixmap, height, curvature float64, dst *meshpaint.Graymap) {
	if puff == nil || dst == nil || dst.Width() != puff.Width() || dst.Height() != puff.Height() {
		return
	}
	w, h := puff.Width(), puff.Height()
	src := puff.Data()
	out := dst.Data()
	for i := 0; i < w*h; i++ {
		out[i] = DisplacementByte(src[i*4+3], height, curvature)
	}
}

// NewDisplacementMap allocates a neutral graymap and fills it from the
// puff pixmap. With a nil pixmap it returns the all-neutral map, so
// requesting relief before any puff content exists is not an error.
func NewDisplacementMap(puff *meshpaint.Pixmap, width, height int, heightScale, curvature float64) *meshpaint.Graymap {
	dst := meshpaint.NewGraymap(width, height, Neutral)
	if puff != nil {
		DisplacementMap(puff, heightScale, curvature, dst)
	}
	return dst
}

// NormalMap fills dst with an RGB-encoded normal map derived from the
// central-difference gradient of the puff alpha field. Flat regions yield
// (128, 128, 255). dst must match the pixmap's dimensions.
func NormalMap(puff *meshpaint.Pixmap, strength float64, dst *meshpaint.Pixmap) {
	if puff == nil || dst == nil || dst.Width() != puff.Width() || dst.Height() != puff.Height() {
		return
	}
	w, h := puff.Width(), puff.Height()
	src := puff.Data()
	out := dst.Data()

	alphaAt := func(x, y int) float64 {
		if x < 0 {
			x = 0
		}
		if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= h {
			y = h - 1
		}
		return float64(src[(y*w+x)*4+3]) / 255
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (alphaAt(x+1, y) - alphaAt(x-1, y)) / 2 * strength
			dy := (alphaAt(x, y+1) - alphaAt(x, y-1)) / 2 * strength

			// Keep the tangent components inside the unit disc so the z
			// reconstruction stays real.
			lenSq := dx*dx + dy*dy
			if lenSq > 1 {
				inv := 1 / math.Sqrt(lenSq)
				dx *= inv
				dy *= inv
				lenSq = 1
			}
			dz := math.Sqrt(1 - lenSq)

			i := (y*w + x) * 4
			out[i+0] = encodeNormal(dx)
			out[i+1] = encodeNormal(dy)
			out[i+2] = encodeNormal(dz)
			out[i+3] = 255
		}
	}
}

// NewNormalMap allocates and fills a normal map from the puff pixmap.
// With a nil pixmap it returns the all-flat (128, 128, 255) map.
func NewNormalMap(puff *meshpaint.Pixmap, width, height int, strength float64) *meshpaint.Pixmap {
	dst := meshpaint.NewPixmap(width, height)
	if puff == nil {
		fillFlatNormal(dst)
		return dst
	}
	NormalMap(puff, strength, dst)
	return dst
}

// encodeNormal maps a component in [-1, 1] to a byte via (n+1)*127.5,
// rounded so that the zero component encodes to exactly 128.
func encodeNormal(n float64) uint8 {
	v := math.Round((n + 1) * 127.5)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func fillFlatNormal(dst *meshpaint.Pixmap) {
	data := dst.Data()
	for i := 0; i < len(data); i += 4 {
		data[i+0] = 128
		data[i+1] = 128
		data[i+2] = 255
		data[i+3] = 255
	}
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
