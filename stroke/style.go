package stroke

import "github.com/closset/meshpaint"

// Tool identifies the active painting tool.
type Tool uint8

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolFill
	ToolEmbroidery
	ToolPuff
)

// String returns a human-readable name for the tool.
func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "Brush"
	case ToolEraser:
		return "Eraser"
	case ToolFill:
		return "Fill"
	case ToolEmbroidery:
		return "Embroidery"
	case ToolPuff:
		return "Puff"
	default:
		return "Unknown"
	}
}

// StampShape selects the footprint of a brush stamp.
type StampShape uint8

const (
	StampRound StampShape = iota
	StampSquare
	StampDiamond
	StampTriangle
	StampAirbrush
	StampCalligraphy
)

// StitchType selects the procedural embroidery pattern.
type StitchType uint8

const (
	StitchStraight StitchType = iota
	StitchBack
	StitchCross
	StitchChain
	StitchFrenchKnot
	StitchFeather
	StitchHerringbone
	StitchBlanket
	StitchZigzag
	StitchSatin
	StitchFill
)

// Style is the immutable tool-parameter snapshot taken at stroke start.
// The engine copies it on Begin and never reads shared mutable settings
// mid-stroke, so a single stroke is internally consistent even while the
// user drags sliders.
type Style struct {
	// Brush supplies the paint color, solid or gradient, sampled per pixel.
	Brush meshpaint.Brush

	Size     float64 // stamp diameter in raster pixels
	Opacity  float64 // [0, 1]
	Flow     float64 // [0, 1]; effective alpha is Flow × Opacity
	Hardness float64 // 0 = very soft radial falloff, 1 = hard edge
	Shape    StampShape

	// Flood fill parameters.
	FillTolerance  float64 // Euclidean RGBA distance over bytes, 0..510
	FillContiguous bool

	// Puff print parameters.
	PuffHeight    float64 // [0, 1]
	PuffCurvature float64 // [0, 1]

	// Embroidery parameters.
	Stitch          StitchType
	ThreadThickness float64 // raster pixels
	ThreadColor     meshpaint.RGBA
}

// DefaultStyle returns a usable opaque round brush style.
func DefaultStyle() Style {
	return Style{
		Brush:           meshpaint.Solid(meshpaint.Black),
		Size:            16,
		Opacity:         1,
		Flow:            1,
		Hardness:        0.8,
		Shape:           StampRound,
		FillTolerance:   32,
		FillContiguous:  true,
		PuffHeight:      0.75,
		PuffCurvature:   0.5,
		Stitch:          StitchStraight,
		ThreadThickness: 3,
		ThreadColor:     meshpaint.Black,
	}
}
