package meshpaint

// Brush represents what to paint with: a solid color or a gradient sampled
// at paint time. This is a sealed interface; only types in this package
// implement it.
//
// Brushes are immutable for the duration of one stroke: the stroke engine
// snapshots the brush at stroke start and samples it per pixel.
type Brush interface {
	// brushMarker is an unexported method that seals this interface.
	brushMarker()

	// ColorAt returns the color at the given raster coordinates.
	// Solid brushes return the same color regardless of position.
	ColorAt(x, y float64) RGBA
}

// SolidBrush is a single-color brush.
type SolidBrush struct {
	Color RGBA
}

func (SolidBrush) brushMarker() {}

// ColorAt implements Brush. Returns the solid color regardless of position.
func (b SolidBrush) ColorAt(_, _ float64) RGBA {
	return b.Color
}

// Solid creates a SolidBrush from an RGBA color.
func Solid(c RGBA) SolidBrush {
	return SolidBrush{Color: c}
}

// SolidHex creates a SolidBrush from a hex color string.
func SolidHex(hex string) SolidBrush {
	return SolidBrush{Color: Hex(hex)}
}

// LinearGradientBrush is a multi-stop linear color transition between two
// raster-space points.
type LinearGradientBrush struct {
	Start  Point
	End    Point
	Stops  []ColorStop
	Extend ExtendMode
}

// NewLinearGradientBrush creates a linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradientBrush(x0, y0, x1, y1 float64) *LinearGradientBrush {
	return &LinearGradientBrush{
		Start:  Point{X: x0, Y: y0},
		End:    Point{X: x1, Y: y1},
		Extend: ExtendPad,
	}
}

// AddColorStop adds a color stop at the specified offset in [0, 1].
// Returns the gradient for method chaining.
func (g *LinearGradientBrush) AddColorStop(offset float64, c RGBA) *LinearGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

func (*LinearGradientBrush) brushMarker() {}

// ColorAt implements Brush by projecting the point onto the gradient line.
func (g *LinearGradientBrush) ColorAt(x, y float64) RGBA {
	dx := g.End.X - g.Start.X
	dy := g.End.Y - g.Start.Y
	lengthSq := dx*dx + dy*dy

	if lengthSq == 0 {
		return firstStopColor(g.Stops)
	}

	px := x - g.Start.X
	py := y - g.Start.Y
	t := (px*dx + py*dy) / lengthSq

	return colorAtOffset(g.Stops, t, g.Extend)
}

// RadialGradientBrush is a multi-stop radial color transition around a
// center point.
type RadialGradientBrush struct {
	Center Point
	Radius float64
	Stops  []ColorStop
	Extend ExtendMode
}

// NewRadialGradientBrush creates a radial gradient centered at (cx, cy).
func NewRadialGradientBrush(cx, cy, radius float64) *RadialGradientBrush {
	return &RadialGradientBrush{
		Center: Point{X: cx, Y: cy},
		Radius: radius,
		Extend: ExtendPad,
	}
}

// AddColorStop adds a color stop at the specified offset in [0, 1].
// Returns the gradient for method chaining.
func (g *RadialGradientBrush) AddColorStop(offset float64, c RGBA) *RadialGradientBrush {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

func (*RadialGradientBrush) brushMarker() {}

// ColorAt implements Brush using the normalized distance from the center.
func (g *RadialGradientBrush) ColorAt(x, y float64) RGBA {
	if g.Radius <= 0 {
		return firstStopColor(g.Stops)
	}
	t := Pt(x, y).Distance(g.Center) / g.Radius
	return colorAtOffset(g.Stops, t, g.Extend)
}
