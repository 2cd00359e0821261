// Package composite flattens the layer stack into a single texture.
//
// Composition is pure: it reads layer state and produces a pixmap without
// mutating any layer, so composing twice in a row yields identical bytes.
// Structured element layers are rasterized into a scratch buffer first and
// blended like any raster layer.
package composite

import (
	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/layer"
)

// blendChannel applies the separable blend function B(cb, cs) for one
// color channel, with both inputs un-premultiplied in [0, 1].
func blendChannel(mode layer.BlendMode, cb, cs float64) float64 {
	switch mode {
	case layer.BlendMultiply:
		return cb * cs
	case layer.BlendScreen:
		return cb + cs - cb*cs
	case layer.BlendOverlay:
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	case layer.BlendDarken:
		return min(cb, cs)
	case layer.BlendLighten:
		return max(cb, cs)
	default:
		return cs
	}
}

// blendRows composites rows [y0, y1) of src over dst in place using the
// given blend mode and layer opacity. Both pixmaps must share the same
// resolution; disjoint row bands may be blended concurrently.
func blendRows(dst, src *meshpaint.Pixmap, mode layer.BlendMode, opacity float64, y0, y1 int) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	db := dst.Data()
	sb := src.Data()
	start := y0 * dst.Width() * 4
	end := y1 * dst.Width() * 4
	if end > len(db) {
		end = len(db)
	}
	for i := start; i+3 < end && i+3 < len(sb); i += 4 {
		as := float64(sb[i+3]) / 255 * opacity
		if as <= 0 {
			continue
		}
		ab := float64(db[i+3]) / 255
		ao := as + ab*(1-as)
		if ao <= 0 {
			continue
		}

		for c := 0; c < 3; c++ {
			cs := float64(sb[i+c]) / 255
			cb := float64(db[i+c]) / 255
			// Source over with the separable blend function applied
			// only where source and backdrop overlap.
			co := as*(1-ab)*cs + as*ab*blendChannel(mode, cb, cs) + (1-as)*ab*cb
			db[i+c] = uint8(co/ao*255 + 0.5)
		}
		db[i+3] = uint8(ao*255 + 0.5)
	}
}
