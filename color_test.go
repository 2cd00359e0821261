package meshpaint

import (
	"math"
	"testing"
)

const colorTolerance = 1.0 / 255

func colorsClose(a, b RGBA, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol &&
		math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol &&
		math.Abs(a.A-b.A) <= tol
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want RGBA
	}{
		{"short rgb", "f00", RGBA{1, 0, 0, 1}},
		{"short rgba", "0f08", RGBA{0, 1, 0, 136.0 / 255}},
		{"full rgb", "0000ff", RGBA{0, 0, 1, 1}},
		{"full rgba", "ffffff80", RGBA{1, 1, 1, 128.0 / 255}},
		{"hash prefix", "#ff0000", RGBA{1, 0, 0, 1}},
		{"uppercase", "FF8000", RGBA{1, 128.0 / 255, 0, 1}},
		{"invalid length", "zzzzz", RGBA{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if !colorsClose(got, tt.want, colorTolerance) {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name string
		a, b RGBA
		t    float64
		want RGBA
	}{
		{"at start", Black, White, 0, Black},
		{"at end", Black, White, 1, White},
		{"midpoint", Black, White, 0.5, RGBA{0.5, 0.5, 0.5, 1}},
		{"alpha interpolates", Transparent, White, 0.5, RGBA{0.5, 0.5, 0.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Lerp(tt.b, tt.t)
			if !colorsClose(got, tt.want, 1e-9) {
				t.Errorf("Lerp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.25)
	if c.R != 1 || c.A != 0.25 {
		t.Errorf("WithAlpha = %v, want red at alpha 0.25", c)
	}
}

func TestColorRoundTrip(t *testing.T) {
	orig := RGBA{0.2, 0.4, 0.6, 1}
	got := FromColor(orig.Color())
	if !colorsClose(got, orig, colorTolerance) {
		t.Errorf("FromColor(Color()) = %v, want %v", got, orig)
	}
}

func TestRGB(t *testing.T) {
	c := RGB(0.1, 0.2, 0.3)
	if c.A != 1 {
		t.Errorf("RGB alpha = %v, want 1", c.A)
	}
}
