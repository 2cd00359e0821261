// Package render pushes composited textures to a display backend.
//
// The painting core stays backend-agnostic behind the Target interface;
// the raylib binding in this package is the stock implementation used by
// the interactive viewer.
package render

import "github.com/closset/meshpaint"

// Target receives freshly composited texture data. Implementations decide
// how uploads reach the screen; calls always carry complete buffers at the
// document resolution.
type Target interface {
	// UpdateColorTexture replaces the albedo texture with the flattened
	// layer stack.
	UpdateColorTexture(pm *meshpaint.Pixmap) error

	// UpdateReliefTextures replaces the displacement and normal maps
	// derived from puff layers. heightScale and curvatureScale are the
	// material parameters the shader applies on top of the maps.
	UpdateReliefTextures(disp *meshpaint.Graymap, normal *meshpaint.Pixmap, heightScale, curvatureScale float64) error
}

// NopTarget discards all uploads. Useful for headless composition and in
// tests.
type NopTarget struct{}

func (NopTarget) UpdateColorTexture(*meshpaint.Pixmap) error { return nil }

func (NopTarget) UpdateReliefTextures(*meshpaint.Graymap, *meshpaint.Pixmap, float64, float64) error {
	return nil
}
