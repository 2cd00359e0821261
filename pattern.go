package meshpaint

import "math"

// ColorFunc returns a color for a raster position. Used by PatternBrush
// to define procedural fabric patterns.
type ColorFunc func(x, y float64) RGBA

// PatternBrush paints with a user-defined color function, which makes
// procedural textile patterns usable anywhere a Brush is accepted.
type PatternBrush struct {
	Func ColorFunc

	// Name identifies the pattern in logs.
	Name string
}

func (PatternBrush) brushMarker() {}

// ColorAt implements Brush.
func (b PatternBrush) ColorAt(x, y float64) RGBA {
	if b.Func == nil {
		return Transparent
	}
	return b.Func(x, y)
}

// NewPatternBrush wraps a color function as a brush.
func NewPatternBrush(fn ColorFunc) PatternBrush {
	return PatternBrush{Func: fn}
}

// WithName returns a copy carrying the given pattern name.
func (b PatternBrush) WithName(name string) PatternBrush {
	b.Name = name
	return b
}

// Checkerboard alternates two colors in squares of the given size.
func Checkerboard(c0, c1 RGBA, size float64) PatternBrush {
	if size <= 0 {
		size = 1
	}
	return PatternBrush{
		Func: func(x, y float64) RGBA {
			xi := int(math.Floor(x / size))
			yi := int(math.Floor(y / size))
			if (xi+yi)%2 == 0 {
				return c0
			}
			return c1
		},
		Name: "checkerboard",
	}
}

// Stripes alternates two colors in bands of the given width, rotated by
// angle radians.
func Stripes(c0, c1 RGBA, width, angle float64) PatternBrush {
	if width <= 0 {
		width = 1
	}
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return PatternBrush{
		Func: func(x, y float64) RGBA {
			rx := x*cos + y*sin
			if int(math.Floor(rx/width))%2 == 0 {
				return c0
			}
			return c1
		},
		Name: "stripes",
	}
}

// Plaid crosses horizontal and vertical bands of band color over a ground
// color, darkening where the bands overlap.
func Plaid(ground, band RGBA, size float64) PatternBrush {
	if size <= 0 {
		size = 1
	}
	return PatternBrush{
		Func: func(x, y float64) RGBA {
			h := int(math.Floor(y/size))%2 == 0
			v := int(math.Floor(x/size))%2 == 0
			switch {
			case h && v:
				return band.Lerp(Black, 0.25)
			case h || v:
				return ground.Lerp(band, 0.6)
			default:
				return ground
			}
		},
		Name: "plaid",
	}
}

// PolkaDot places round dots of dot color on a ground color. spacing is
// the center-to-center distance, radius the dot radius.
func PolkaDot(ground, dot RGBA, spacing, radius float64) PatternBrush {
	if spacing <= 0 {
		spacing = 1
	}
	return PatternBrush{
		Func: func(x, y float64) RGBA {
			// Offset every other row by half a cell.
			row := math.Floor(y / spacing)
			ox := x
			if int(row)%2 != 0 {
				ox += spacing / 2
			}
			cx := (math.Floor(ox/spacing) + 0.5) * spacing
			cy := (row + 0.5) * spacing
			dx := ox - cx
			dy := y - cy
			if dx*dx+dy*dy <= radius*radius {
				return dot
			}
			return ground
		},
		Name: "polkadot",
	}
}
