package layer

import "github.com/closset/meshpaint"

// Element is one structured, non-destructively editable item on a vector,
// text, shape or image layer. Elements are stored as parameters and
// rasterized only when the document is composited, so later edits never
// lose information. This is a sealed interface.
type Element interface {
	elementMarker()
}

// VectorElement is a stroked polyline in raster space.
type VectorElement struct {
	Points  []meshpaint.Point
	Width   float64
	Color   meshpaint.RGBA
	Opacity float64
	Closed  bool
}

func (*VectorElement) elementMarker() {}

// ShapeKind selects the outline of a ShapeElement.
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeEllipse
	ShapeTriangle
	ShapeDiamond
)

// ShapeElement is a filled primitive with its own transform.
type ShapeElement struct {
	Shape    ShapeKind
	Center   meshpaint.Point
	W, H     float64
	Rotation float64 // radians
	Fill     meshpaint.Brush
	Opacity  float64
}

func (*ShapeElement) elementMarker() {}

// TextElement is a run of text drawn at composition time. The font face is
// supplied by the collaborator when compositing; the element stores only
// layout parameters.
type TextElement struct {
	Text     string
	Origin   meshpaint.Point // baseline origin in raster space
	Size     float64         // pixel height hint for the face
	Rotation float64         // radians
	Color    meshpaint.RGBA
	Opacity  float64
}

func (*TextElement) elementMarker() {}

// ImageElement places a source pixmap with scaling and rotation.
type ImageElement struct {
	Source   *meshpaint.Pixmap
	Center   meshpaint.Point
	W, H     float64
	Rotation float64 // radians
	Opacity  float64
}

func (*ImageElement) elementMarker() {}
