package meshpaint

import "bytes"

// Graymap represents a single-channel byte buffer, used for displacement
// maps where 128 is the neutral (no displacement) value and 255 is maximum
// outward displacement. Displacement is one-directional: values below 128
// are never produced.
type Graymap struct {
	width  int
	height int
	data   []uint8
}

// NewGraymap creates a graymap filled with the given value.
func NewGraymap(width, height int, fill uint8) *Graymap {
	g := &Graymap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
	if fill != 0 {
		g.Fill(fill)
	}
	return g
}

// Width returns the width of the graymap.
func (g *Graymap) Width() int {
	return g.width
}

// Height returns the height of the graymap.
func (g *Graymap) Height() int {
	return g.height
}

// Data returns the raw byte data.
func (g *Graymap) Data() []uint8 {
	return g.data
}

// InBounds reports whether (x, y) addresses a value inside the buffer.
func (g *Graymap) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the value at (x, y), or 0 out of bounds.
func (g *Graymap) Get(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.data[y*g.width+x]
}

// Set writes the value at (x, y). Out-of-bounds writes are clipped silently.
func (g *Graymap) Set(x, y int, v uint8) {
	if !g.InBounds(x, y) {
		return
	}
	g.data[y*g.width+x] = v
}

// Fill sets every value in the graymap.
func (g *Graymap) Fill(v uint8) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the graymap.
func (g *Graymap) Clone() *Graymap {
	c := NewGraymap(g.width, g.height, 0)
	copy(c.data, g.data)
	return c
}

// Equal reports whether two graymaps have identical dimensions and bytes.
func (g *Graymap) Equal(o *Graymap) bool {
	if o == nil {
		return false
	}
	return g.width == o.width && g.height == o.height && bytes.Equal(g.data, o.data)
}
