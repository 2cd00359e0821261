package stroke

import (
	"testing"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/layer"
)

// fakeNotifier records update triggers for assertions.
type fakeNotifier struct {
	dirty  int
	relief int
}

func (n *fakeNotifier) MarkDirty()       { n.dirty++ }
func (n *fakeNotifier) MarkReliefDirty() { n.relief++ }

func countPaintedPixels(pm *meshpaint.Pixmap) int {
	n := 0
	data := pm.Data()
	for i := 3; i < len(data); i += 4 {
		if data[i] > 0 {
			n++
		}
	}
	return n
}

func newTestEngine() (*Engine, *layer.Store, *fakeNotifier) {
	store := layer.NewStore(64, 64)
	notify := &fakeNotifier{}
	return NewEngine(store, notify), store, notify
}

func hardBrushStyle() Style {
	s := DefaultStyle()
	s.Brush = meshpaint.Solid(meshpaint.Red)
	s.Hardness = 1
	return s
}

func TestEngineBrushStamp(t *testing.T) {
	e, store, notify := newTestEngine()
	other := store.Create(layer.Puff, "puff")

	e.Begin(ToolBrush, hardBrushStyle())
	if !e.Active() {
		t.Fatal("engine not active after Begin")
	}
	e.Stamp(32, 32, 1)
	e.End()

	l := store.ActiveFor(layer.Paint)
	if a := l.Pixels.Alpha(32, 32); a != 255 {
		t.Errorf("stamp center alpha = %d, want 255", a)
	}
	if c := l.Pixels.GetPixel(32, 32); c != meshpaint.Red {
		t.Errorf("stamp center color = %v, want red", c)
	}
	if notify.dirty == 0 {
		t.Error("brush stamp did not mark the composite dirty")
	}
	if notify.relief != 0 {
		t.Error("brush stamp marked relief dirty")
	}
	// Painting a brush stroke leaves every other layer's buffer alone.
	if countPaintedPixels(other.Pixels) != 0 {
		t.Error("brush stamp wrote into another layer")
	}
	if e.Active() {
		t.Error("engine still active after End")
	}
}

func TestEngineLazyLayerCreation(t *testing.T) {
	e, store, _ := newTestEngine()

	if store.Count() != 0 {
		t.Fatal("store not empty at start")
	}
	e.Begin(ToolPuff, hardBrushStyle())
	if store.Count() != 1 {
		t.Fatalf("Begin created %d layers, want 1", store.Count())
	}
	if got := store.Layers()[0].Kind; got != layer.Puff {
		t.Errorf("created layer kind = %v, want Puff", got)
	}

	// The eraser targets every layer and must not create one.
	e.End()
	e.Begin(ToolEraser, hardBrushStyle())
	if store.Count() != 1 {
		t.Errorf("eraser Begin changed layer count to %d", store.Count())
	}
}

func TestEnginePuffStampRaisesDisplacement(t *testing.T) {
	e, store, notify := newTestEngine()

	e.Begin(ToolPuff, hardBrushStyle())
	e.Stamp(32, 32, 1)
	e.End()

	l := store.ActiveFor(layer.Puff)
	if l.Displacement == nil {
		t.Fatal("puff layer has no displacement buffer")
	}
	if d := l.Displacement.Get(32, 32); d <= layer.NeutralDisplacement {
		t.Errorf("displacement at stamp center = %d, want above %d", d, layer.NeutralDisplacement)
	}
	if d := l.Displacement.Get(2, 2); d != layer.NeutralDisplacement {
		t.Errorf("displacement outside stamp = %d, want neutral", d)
	}
	if notify.relief == 0 {
		t.Error("puff stamp did not mark relief dirty")
	}
}

func TestEngineEraserClearsAllLayers(t *testing.T) {
	e, store, notify := newTestEngine()

	e.Begin(ToolBrush, hardBrushStyle())
	e.Stamp(32, 32, 1)
	e.End()
	e.Begin(ToolPuff, hardBrushStyle())
	e.Stamp(32, 32, 1)
	e.End()

	notify.dirty, notify.relief = 0, 0
	style := hardBrushStyle()
	style.Size = 40
	e.Begin(ToolEraser, style)
	e.Stamp(32, 32, 1)
	e.End()

	paint := store.ActiveFor(layer.Paint)
	if a := paint.Pixels.Alpha(32, 32); a != 0 {
		t.Errorf("paint alpha after erase = %d, want 0", a)
	}
	puff := store.ActiveFor(layer.Puff)
	if a := puff.Pixels.Alpha(32, 32); a != 0 {
		t.Errorf("puff alpha after erase = %d, want 0", a)
	}
	// Displacement returns to exactly neutral, not near it.
	if d := puff.Displacement.Get(32, 32); d != layer.NeutralDisplacement {
		t.Errorf("displacement after erase = %d, want exactly %d", d, layer.NeutralDisplacement)
	}
	if notify.dirty == 0 {
		t.Error("erase did not mark the composite dirty")
	}
	if notify.relief == 0 {
		t.Error("erasing a puff layer did not mark relief dirty")
	}
}

func TestEngineSegmentInterpolatesStamps(t *testing.T) {
	e, store, _ := newTestEngine()

	e.Begin(ToolBrush, hardBrushStyle())
	e.Stamp(10, 32, 1)
	e.Segment(10, 32, 50, 32, 1)
	e.End()

	// A fast drag still paints a solid track between the endpoints.
	l := store.ActiveFor(layer.Paint)
	for x := 10; x <= 50; x++ {
		if a := l.Pixels.Alpha(x, 32); a == 0 {
			t.Fatalf("gap in stroke track at x=%d", x)
		}
	}
}

func TestEngineDeletedLayerDropsStroke(t *testing.T) {
	e, store, notify := newTestEngine()

	e.Begin(ToolBrush, hardBrushStyle())
	id := store.Layers()[0].ID
	store.Delete(id)

	e.Stamp(32, 32, 1)
	if e.Active() {
		t.Error("stroke still active after its layer was deleted")
	}
	if notify.dirty != 0 {
		t.Error("dropped stroke marked the composite dirty")
	}

	// Later marks of the dead stroke are ignored too.
	e.Segment(32, 32, 40, 40, 1)
	if notify.dirty != 0 {
		t.Error("segment on dropped stroke marked the composite dirty")
	}
}

func TestEngineFloodFill(t *testing.T) {
	e, store, notify := newTestEngine()

	style := hardBrushStyle()
	style.FillTolerance = 0
	style.FillContiguous = false
	e.Begin(ToolFill, style)
	n := e.FloodFill(5, 5)
	e.End()

	if n != 64*64 {
		t.Errorf("fill on blank layer wrote %d pixels, want %d", n, 64*64)
	}
	l := store.ActiveFor(layer.Paint)
	if c := l.Pixels.GetPixel(0, 63); c != meshpaint.Red {
		t.Errorf("filled pixel = %v, want red", c)
	}
	if notify.dirty == 0 {
		t.Error("fill did not mark the composite dirty")
	}
}

func TestEngineRecordsMonotonicPoints(t *testing.T) {
	e, _, _ := newTestEngine()

	e.Begin(ToolBrush, hardBrushStyle())
	e.Stamp(1, 1, 0.5)
	e.Stamp(2, 2, 0.7)
	e.Segment(2, 2, 3, 3, 1)

	pts := e.Points()
	if len(pts) != 3 {
		t.Fatalf("recorded %d points, want 3", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if !pts[i].Time.After(pts[i-1].Time) {
			t.Errorf("point %d time not after point %d", i, i-1)
		}
	}
	if pts[1].Pressure != 0.7 {
		t.Errorf("pressure = %v, want 0.7", pts[1].Pressure)
	}

	// A new stroke starts a fresh point list.
	e.End()
	e.Begin(ToolBrush, hardBrushStyle())
	if len(e.Points()) != 0 {
		t.Error("points carried over into a new stroke")
	}
}

func TestEngineStitchSegment(t *testing.T) {
	e, store, notify := newTestEngine()

	style := DefaultStyle()
	style.Stitch = StitchStraight
	style.ThreadColor = meshpaint.Blue
	e.Begin(ToolEmbroidery, style)
	e.Segment(8, 32, 56, 32, 1)
	e.End()

	l := store.ActiveFor(layer.Embroidery)
	if countPaintedPixels(l.Pixels) == 0 {
		t.Error("stitch segment painted nothing")
	}
	if notify.dirty == 0 {
		t.Error("stitch segment did not mark the composite dirty")
	}
}

func TestEngineStampInactive(t *testing.T) {
	e, store, notify := newTestEngine()

	// Marks without Begin are ignored.
	e.Stamp(10, 10, 1)
	e.Segment(10, 10, 20, 20, 1)
	if store.Count() != 0 || notify.dirty != 0 {
		t.Error("inactive engine produced marks")
	}
}
