// Package layer implements the ordered collection of paintable strata that
// make up one document.
//
// Each layer owns a fixed-resolution pixel buffer at the document texture
// resolution. Puff layers additionally own a displacement sub-buffer whose
// neutral value is 128. Vector, text, shape and image layers carry
// structured element lists that are rasterized only at composition time.
package layer

import "github.com/closset/meshpaint"

// Kind identifies the semantic purpose of a layer. Each kind maps to
// exactly one purpose; puff layers exclusively feed relief synthesis.
type Kind uint8

const (
	Paint Kind = iota
	Puff
	Embroidery
	Vector
	Text
	Shape
	Image
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Paint:
		return "Paint"
	case Puff:
		return "Puff"
	case Embroidery:
		return "Embroidery"
	case Vector:
		return "Vector"
	case Text:
		return "Text"
	case Shape:
		return "Shape"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// NeutralDisplacement is the displacement byte meaning "no relief".
// Displacement is one-directional: bytes run 128..255, never below.
const NeutralDisplacement = 128

// Layer is one paintable stratum.
type Layer struct {
	ID      int
	Name    string
	Kind    Kind
	Visible bool
	Opacity float64 // [0, 1]
	Blend   BlendMode

	// Pixels is the layer's raster buffer at document resolution.
	Pixels *meshpaint.Pixmap

	// Displacement is the puff displacement sub-buffer; nil for all other
	// kinds. It is always mutated together with Pixels so that erasing or
	// reducing opacity invalidates both consistently.
	Displacement *meshpaint.Graymap

	// Elements holds the structured elements of vector/text/shape/image
	// layers, flattened only at composition time.
	Elements []Element
}

// newLayer allocates a layer with its buffers for the given resolution.
func newLayer(id int, kind Kind, name string, width, height int) *Layer {
	l := &Layer{
		ID:      id,
		Name:    name,
		Kind:    kind,
		Visible: true,
		Opacity: 1.0,
		Blend:   BlendNormal,
		Pixels:  meshpaint.NewPixmap(width, height),
	}
	if kind == Puff {
		l.Displacement = meshpaint.NewGraymap(width, height, NeutralDisplacement)
	}
	return l
}
