package layer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/closset/meshpaint"
)

// Snapshot serialization for the persistence collaborator. The format
// captures every layer's metadata, pixel buffer, displacement sub-buffer
// and element list, in z-order, so that a restored document reproduces
// order, visibility, opacity and blend modes exactly.
//
// Format (little endian):
//
//	magic "MPDOC" | version u8 | width u32 | height u32 | layerCount u32
//	per layer: id u32, kind u8, visible u8, blend u8, opacity f64,
//	           name (u32 len + bytes), pixels (w*h*4 raw),
//	           hasDisp u8 [+ w*h raw], elementCount u32 + elements
const (
	snapshotMagic   = "MPDOC"
	snapshotVersion = 1
)

// Element type tags.
const (
	elemVector uint8 = iota
	elemShape
	elemText
	elemImage
)

// Brush type tags.
const (
	brushSolid uint8 = iota
	brushLinear
	brushRadial
)

// EncodeSnapshot writes a full serialized snapshot of the store to w.
func (s *Store) EncodeSnapshot(w io.Writer) error {
	bw := &snapWriter{w: w}
	bw.bytes([]byte(snapshotMagic))
	bw.u8(snapshotVersion)
	bw.u32(uint32(s.width))
	bw.u32(uint32(s.height))
	bw.u32(uint32(len(s.order)))

	for _, id := range s.order {
		l := s.layers[id]
		bw.u32(uint32(l.ID))
		bw.u8(uint8(l.Kind))
		bw.bool(l.Visible)
		bw.u8(uint8(l.Blend))
		bw.f64(l.Opacity)
		bw.str(l.Name)
		bw.bytes(l.Pixels.Data())
		if l.Displacement != nil {
			bw.u8(1)
			bw.bytes(l.Displacement.Data())
		} else {
			bw.u8(0)
		}
		bw.u32(uint32(len(l.Elements)))
		for _, e := range l.Elements {
			encodeElement(bw, e)
		}
	}
	return bw.err
}

// Snapshot returns the serialized document as a byte slice.
func (s *Store) Snapshot() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.EncodeSnapshot(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RestoreSnapshot reads a serialized snapshot and returns the restored
// store. Layer ids, order, visibility, opacity and blend metadata survive
// the round trip unchanged.
func RestoreSnapshot(r io.Reader) (*Store, error) {
	br := &snapReader{r: r}

	magic := make([]byte, len(snapshotMagic))
	br.bytes(magic)
	if br.err == nil && string(magic) != snapshotMagic {
		return nil, fmt.Errorf("layer: bad snapshot magic %q", magic)
	}
	version := br.u8()
	if br.err == nil && version != snapshotVersion {
		return nil, fmt.Errorf("layer: unsupported snapshot version %d", version)
	}

	width := int(br.u32())
	height := int(br.u32())
	count := int(br.u32())
	if br.err != nil {
		return nil, br.err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("layer: invalid snapshot resolution %dx%d", width, height)
	}

	s := NewStore(width, height)
	maxID := 0
	for i := 0; i < count; i++ {
		id := int(br.u32())
		kind := Kind(br.u8())
		visible := br.bool()
		blend := BlendMode(br.u8())
		opacity := br.f64()
		name := br.str()

		l := newLayer(id, kind, name, width, height)
		l.Visible = visible
		l.Blend = blend
		l.Opacity = opacity
		br.bytes(l.Pixels.Data())
		if br.u8() == 1 {
			if l.Displacement == nil {
				l.Displacement = meshpaint.NewGraymap(width, height, NeutralDisplacement)
			}
			br.bytes(l.Displacement.Data())
		}

		elemCount := int(br.u32())
		for j := 0; j < elemCount; j++ {
			e, err := decodeElement(br)
			if err != nil {
				return nil, err
			}
			l.Elements = append(l.Elements, e)
		}

		if br.err != nil {
			return nil, br.err
		}
		s.layers[id] = l
		s.order = append(s.order, id)
		if id > maxID {
			maxID = id
		}
	}
	s.nextID = maxID + 1
	return s, nil
}

func encodeElement(bw *snapWriter, e Element) {
	switch el := e.(type) {
	case *VectorElement:
		bw.u8(elemVector)
		bw.u32(uint32(len(el.Points)))
		for _, p := range el.Points {
			bw.f64(p.X)
			bw.f64(p.Y)
		}
		bw.f64(el.Width)
		bw.rgba(el.Color)
		bw.f64(el.Opacity)
		bw.bool(el.Closed)
	case *ShapeElement:
		bw.u8(elemShape)
		bw.u8(uint8(el.Shape))
		bw.f64(el.Center.X)
		bw.f64(el.Center.Y)
		bw.f64(el.W)
		bw.f64(el.H)
		bw.f64(el.Rotation)
		bw.f64(el.Opacity)
		encodeBrush(bw, el.Fill)
	case *TextElement:
		bw.u8(elemText)
		bw.str(el.Text)
		bw.f64(el.Origin.X)
		bw.f64(el.Origin.Y)
		bw.f64(el.Size)
		bw.f64(el.Rotation)
		bw.rgba(el.Color)
		bw.f64(el.Opacity)
	case *ImageElement:
		bw.u8(elemImage)
		bw.u32(uint32(el.Source.Width()))
		bw.u32(uint32(el.Source.Height()))
		bw.bytes(el.Source.Data())
		bw.f64(el.Center.X)
		bw.f64(el.Center.Y)
		bw.f64(el.W)
		bw.f64(el.H)
		bw.f64(el.Rotation)
		bw.f64(el.Opacity)
	}
}

func decodeElement(br *snapReader) (Element, error) {
	switch tag := br.u8(); tag {
	case elemVector:
		el := &VectorElement{}
		n := int(br.u32())
		el.Points = make([]meshpaint.Point, n)
		for i := 0; i < n; i++ {
			el.Points[i] = meshpaint.Pt(br.f64(), br.f64())
		}
		el.Width = br.f64()
		el.Color = br.rgba()
		el.Opacity = br.f64()
		el.Closed = br.bool()
		return el, br.err
	case elemShape:
		el := &ShapeElement{}
		el.Shape = ShapeKind(br.u8())
		el.Center = meshpaint.Pt(br.f64(), br.f64())
		el.W = br.f64()
		el.H = br.f64()
		el.Rotation = br.f64()
		el.Opacity = br.f64()
		el.Fill = decodeBrush(br)
		return el, br.err
	case elemText:
		el := &TextElement{}
		el.Text = br.str()
		el.Origin = meshpaint.Pt(br.f64(), br.f64())
		el.Size = br.f64()
		el.Rotation = br.f64()
		el.Color = br.rgba()
		el.Opacity = br.f64()
		return el, br.err
	case elemImage:
		el := &ImageElement{}
		w := int(br.u32())
		h := int(br.u32())
		if br.err != nil {
			return nil, br.err
		}
		el.Source = meshpaint.NewPixmap(w, h)
		br.bytes(el.Source.Data())
		el.Center = meshpaint.Pt(br.f64(), br.f64())
		el.W = br.f64()
		el.H = br.f64()
		el.Rotation = br.f64()
		el.Opacity = br.f64()
		return el, br.err
	default:
		return nil, fmt.Errorf("layer: unknown element tag %d", tag)
	}
}

func encodeBrush(bw *snapWriter, b meshpaint.Brush) {
	switch br := b.(type) {
	case *meshpaint.LinearGradientBrush:
		bw.u8(brushLinear)
		bw.f64(br.Start.X)
		bw.f64(br.Start.Y)
		bw.f64(br.End.X)
		bw.f64(br.End.Y)
		encodeStops(bw, br.Stops)
	case *meshpaint.RadialGradientBrush:
		bw.u8(brushRadial)
		bw.f64(br.Center.X)
		bw.f64(br.Center.Y)
		bw.f64(br.Radius)
		encodeStops(bw, br.Stops)
	case meshpaint.SolidBrush:
		bw.u8(brushSolid)
		bw.rgba(br.Color)
	default:
		// Unknown brushes degrade to transparent solid.
		bw.u8(brushSolid)
		bw.rgba(meshpaint.Transparent)
	}
}

func decodeBrush(br *snapReader) meshpaint.Brush {
	switch br.u8() {
	case brushLinear:
		g := meshpaint.NewLinearGradientBrush(br.f64(), br.f64(), br.f64(), br.f64())
		g.Stops = decodeStops(br)
		return g
	case brushRadial:
		g := meshpaint.NewRadialGradientBrush(br.f64(), br.f64(), br.f64())
		g.Stops = decodeStops(br)
		return g
	default:
		return meshpaint.Solid(br.rgba())
	}
}

func encodeStops(bw *snapWriter, stops []meshpaint.ColorStop) {
	bw.u32(uint32(len(stops)))
	for _, s := range stops {
		bw.f64(s.Offset)
		bw.rgba(s.Color)
	}
}

func decodeStops(br *snapReader) []meshpaint.ColorStop {
	n := int(br.u32())
	if br.err != nil || n < 0 {
		return nil
	}
	stops := make([]meshpaint.ColorStop, n)
	for i := range stops {
		stops[i] = meshpaint.ColorStop{Offset: br.f64(), Color: br.rgba()}
	}
	return stops
}

// snapWriter accumulates the first write error so encode paths stay linear.
type snapWriter struct {
	w   io.Writer
	err error
}

func (w *snapWriter) bytes(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

func (w *snapWriter) u8(v uint8)   { w.bytes([]byte{v}) }
func (w *snapWriter) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *snapWriter) u32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.bytes(buf[:])
}

func (w *snapWriter) f64(v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	w.bytes(buf[:])
}

func (w *snapWriter) str(s string) {
	w.u32(uint32(len(s)))
	w.bytes([]byte(s))
}

func (w *snapWriter) rgba(c meshpaint.RGBA) {
	w.f64(c.R)
	w.f64(c.G)
	w.f64(c.B)
	w.f64(c.A)
}

// snapReader mirrors snapWriter for decoding.
type snapReader struct {
	r   io.Reader
	err error
}

func (r *snapReader) bytes(b []byte) {
	if r.err != nil {
		return
	}
	_, r.err = io.ReadFull(r.r, b)
}

func (r *snapReader) u8() uint8 {
	var buf [1]byte
	r.bytes(buf[:])
	return buf[0]
}

func (r *snapReader) bool() bool { return r.u8() == 1 }

func (r *snapReader) u32() uint32 {
	var buf [4]byte
	r.bytes(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

func (r *snapReader) f64() float64 {
	var buf [8]byte
	r.bytes(buf[:])
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
}

func (r *snapReader) str() string {
	n := r.u32()
	if r.err != nil {
		return ""
	}
	if n > 1<<24 {
		r.err = fmt.Errorf("layer: string length %d out of range", n)
		return ""
	}
	b := make([]byte, n)
	r.bytes(b)
	return string(b)
}

func (r *snapReader) rgba() meshpaint.RGBA {
	return meshpaint.RGBA{R: r.f64(), G: r.f64(), B: r.f64(), A: r.f64()}
}
