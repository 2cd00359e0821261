package meshpaint

import "testing"

func TestSolidBrush(t *testing.T) {
	b := Solid(Red)
	if got := b.ColorAt(0, 0); got != Red {
		t.Errorf("ColorAt = %v, want red", got)
	}
	// Position independent.
	if got := b.ColorAt(1e6, -1e6); got != Red {
		t.Errorf("ColorAt far away = %v, want red", got)
	}
}

func TestSolidHex(t *testing.T) {
	b := SolidHex("#00ff00")
	if got := b.ColorAt(0, 0); !colorsClose(got, Green, colorTolerance) {
		t.Errorf("SolidHex = %v, want green", got)
	}
}

func TestBrushInterface(t *testing.T) {
	// All brush types satisfy the sealed interface.
	brushes := []Brush{
		Solid(Black),
		NewLinearGradientBrush(0, 0, 1, 0),
		NewRadialGradientBrush(0, 0, 1),
		NewPatternBrush(func(x, y float64) RGBA { return White }),
	}
	for _, b := range brushes {
		_ = b.ColorAt(0, 0)
	}
}

func TestGradientBrushNoStops(t *testing.T) {
	g := NewLinearGradientBrush(0, 0, 10, 0)
	if got := g.ColorAt(5, 0); got != Transparent {
		t.Errorf("gradient without stops = %v, want transparent", got)
	}
}
