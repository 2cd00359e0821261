// Package stroke renders tool-specific marks into layer buffers.
//
// An Engine owns the lifecycle of one continuous drag: Begin snapshots the
// tool style, Stamp/Segment/FloodFill mutate the active layer at resolved
// raster targets, End closes the stroke. All failure modes are absorbed
// locally: a deleted active layer drops the stroke silently and raster
// writes outside buffer bounds clip, so painting never aborts the session.
package stroke

import (
	"log/slog"
	"time"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/layer"
	"github.com/closset/meshpaint/relief"
)

// Notifier receives explicit update triggers from the engine. The update
// scheduler implements it; tests may pass a recording fake.
type Notifier interface {
	// MarkDirty signals that the composite texture needs re-upload.
	MarkDirty()
	// MarkReliefDirty signals that a puff layer changed and the relief
	// maps must be recomputed as well.
	MarkReliefDirty()
}

// Point is one sampled input position of a stroke, in raster space.
type Point struct {
	X, Y     int
	Pressure float64
	Time     time.Time
}

// Engine renders strokes into the layer store.
type Engine struct {
	store  *layer.Store
	notify Notifier
	log    *slog.Logger

	active  bool
	tool    Tool
	style   Style
	layerID int
	seed    uint64
	points  []Point
}

// NewEngine creates a stroke engine over the given store.
func NewEngine(store *layer.Store, notify Notifier) *Engine {
	return &Engine{
		store:  store,
		notify: notify,
		log:    meshpaint.Logger(),
	}
}

// Begin starts a stroke with an immutable copy of the given style.
// The active layer for the tool is resolved once, here; the eraser has no
// single target since it clears across all layers.
func (e *Engine) Begin(tool Tool, style Style) {
	e.active = true
	e.tool = tool
	e.style = style
	e.seed++
	e.points = e.points[:0]
	e.layerID = 0

	if tool != ToolEraser {
		l := e.store.ActiveFor(kindFor(tool))
		e.layerID = l.ID
	}
}

// Active reports whether a stroke is in progress.
func (e *Engine) Active() bool {
	return e.active
}

// End closes the current stroke. Releasing the pointer or switching tools
// both land here; there is no mid-stroke cancellation because marks are
// not preemptible.
func (e *Engine) End() {
	e.active = false
	e.layerID = 0
}

// Points returns the recorded input points of the current stroke.
func (e *Engine) Points() []Point {
	return e.points
}

// kindFor maps a tool to the layer kind it draws on.
func kindFor(tool Tool) layer.Kind {
	switch tool {
	case ToolPuff:
		return layer.Puff
	case ToolEmbroidery:
		return layer.Embroidery
	default:
		return layer.Paint
	}
}

// record appends an input point, enforcing monotonically increasing
// timestamps within the stroke.
func (e *Engine) record(x, y int, pressure float64) {
	now := time.Now()
	if n := len(e.points); n > 0 && !now.After(e.points[n-1].Time) {
		now = e.points[n-1].Time.Add(time.Nanosecond)
	}
	e.points = append(e.points, Point{X: x, Y: y, Pressure: pressure, Time: now})
}

// target returns the stroke's layer, or ok=false when the stroke is not
// active or the layer has been deleted mid-stroke.
func (e *Engine) target() (*layer.Layer, bool) {
	if !e.active {
		return nil, false
	}
	if e.tool == ToolEraser {
		return nil, true
	}
	l, ok := e.store.Get(e.layerID)
	if !ok {
		e.log.Debug("stroke target layer deleted, dropping stroke", "id", e.layerID)
		e.active = false
		return nil, false
	}
	return l, true
}

// Stamp renders one mark of the active tool at a raster position.
// Pressure scales the stamp radius; pass 1 for non-pressure devices.
func (e *Engine) Stamp(x, y int, pressure float64) {
	l, ok := e.target()
	if !ok {
		return
	}
	e.record(x, y, pressure)

	radius := e.style.Size / 2
	if pressure > 0 {
		radius *= pressure
	}
	cx := float64(x) + 0.5
	cy := float64(y) + 0.5
	alpha := e.style.Flow * e.style.Opacity

	switch e.tool {
	case ToolBrush:
		stampMark(l.Pixels, e.style.Shape, cx, cy, radius, e.style.Hardness, alpha, e.style.Brush)
		e.notify.MarkDirty()

	case ToolEraser:
		e.eraseAll(cx, cy, radius)

	case ToolPuff:
		e.puffStamp(l, cx, cy, radius, alpha)

	case ToolEmbroidery:
		// A stationary embroidery mark is a single knot.
		meshpaint.DrawDot(l.Pixels, meshpaint.Pt(cx, cy), e.style.ThreadThickness, e.style.ThreadColor, alpha)
		e.notify.MarkDirty()

	case ToolFill:
		e.FloodFill(x, y)
	}
}

// Segment renders the tool between the previous and current raster
// position of a drag. Brushes interpolate stamps along the segment so
// fast pointer moves stay solid; embroidery synthesizes its stitch
// pattern over the segment.
func (e *Engine) Segment(x0, y0, x1, y1 int, pressure float64) {
	l, ok := e.target()
	if !ok {
		return
	}
	e.record(x1, y1, pressure)

	p0 := meshpaint.Pt(float64(x0)+0.5, float64(y0)+0.5)
	p1 := meshpaint.Pt(float64(x1)+0.5, float64(y1)+0.5)
	radius := e.style.Size / 2
	if pressure > 0 {
		radius *= pressure
	}
	alpha := e.style.Flow * e.style.Opacity

	switch e.tool {
	case ToolEmbroidery:
		renderStitch(l.Pixels, e.style.Stitch, p0, p1, e.style.ThreadThickness, e.style.ThreadColor, alpha, e.seed)
		e.notify.MarkDirty()

	case ToolEraser, ToolBrush, ToolPuff:
		// Space stamps at a fraction of the radius for a solid track.
		step := radius / 2
		if step < 1 {
			step = 1
		}
		length := p0.Distance(p1)
		n := int(length/step) + 1
		for i := 1; i <= n; i++ {
			p := p0.Lerp(p1, float64(i)/float64(n))
			switch e.tool {
			case ToolBrush:
				stampMark(l.Pixels, e.style.Shape, p.X, p.Y, radius, e.style.Hardness, alpha, e.style.Brush)
			case ToolEraser:
				e.eraseAll(p.X, p.Y, radius)
			case ToolPuff:
				e.puffStamp(l, p.X, p.Y, radius, alpha)
			}
		}
		if e.tool == ToolBrush {
			e.notify.MarkDirty()
		}
	}
}

// FloodFill runs the fill tool at a raster position using the stroke
// style's tolerance and contiguity.
func (e *Engine) FloodFill(x, y int) int {
	l, ok := e.target()
	if !ok || l == nil {
		return 0
	}

	fill := meshpaint.Transparent
	if e.style.Brush != nil {
		fill = e.style.Brush.ColorAt(float64(x), float64(y))
	}
	n := floodFill(l.Pixels, x, y, fill, e.style.FillTolerance, e.style.FillContiguous)
	if n > 0 {
		e.notify.MarkDirty()
		if l.Kind == layer.Puff {
			e.syncDisplacement(l, 0, 0, l.Pixels.Width()-1, l.Pixels.Height()-1)
			e.notify.MarkReliefDirty()
		}
	}
	return n
}

// eraseAll clears alpha in the stamp footprint across every layer kind at
// once. Paint-like buffers fade to transparent; puff displacement fades to
// the neutral 128 because it encodes a physical height, not a color.
func (e *Engine) eraseAll(cx, cy, radius float64) {
	touchedPuff := false
	for _, l := range e.store.Layers() {
		erasePixels(l, cx, cy, radius, e.style.Shape, e.style.Hardness, e.style.Flow*e.style.Opacity)
		if l.Kind == layer.Puff {
			touchedPuff = true
		}
	}
	e.notify.MarkDirty()
	if touchedPuff {
		e.notify.MarkReliefDirty()
	}
}

// erasePixels applies the eraser stamp to one layer.
func erasePixels(l *layer.Layer, cx, cy, radius float64, shape StampShape, hardness, strength float64) {
	pm := l.Pixels
	x0 := int(cx - radius - 1)
	x1 := int(cx + radius + 1)
	y0 := int(cy - radius - 1)
	y1 := int(cy + radius + 1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !pm.InBounds(x, y) {
				continue
			}
			cov := stampCoverage(shape, float64(x)+0.5, float64(y)+0.5, cx, cy, radius, hardness) * strength
			if cov <= 0 {
				continue
			}
			keep := 1 - cov
			a := pm.Alpha(x, y)
			pm.SetAlpha(x, y, uint8(float64(a)*keep))

			if l.Displacement != nil {
				// Fade toward neutral, landing exactly on 128 at full
				// coverage.
				d := float64(l.Displacement.Get(x, y)) - layer.NeutralDisplacement
				l.Displacement.Set(x, y, uint8(layer.NeutralDisplacement+d*keep))
			}
		}
	}
}

// puffStamp writes the puff stamp's color and its displacement together so
// the two buffers never drift apart.
func (e *Engine) puffStamp(l *layer.Layer, cx, cy, radius, alpha float64) {
	if l.Displacement == nil {
		// ActiveFor(Puff) always allocates the sub-buffer; a layer without
		// one is not a valid puff target.
		return
	}

	// Puff is always a soft radial gradient regardless of brush shape.
	stampMark(l.Pixels, StampRound, cx, cy, radius, 0, alpha, e.style.Brush)

	x0 := int(cx - radius - 1)
	x1 := int(cx + radius + 1)
	y0 := int(cy - radius - 1)
	y1 := int(cy + radius + 1)
	e.syncDisplacement(l, x0, y0, x1, y1)

	e.notify.MarkDirty()
	e.notify.MarkReliefDirty()
}

// syncDisplacement rederives the displacement sub-buffer from the puff
// alpha channel over the given raster rectangle.
func (e *Engine) syncDisplacement(l *layer.Layer, x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !l.Pixels.InBounds(x, y) {
				continue
			}
			b := relief.DisplacementByte(l.Pixels.Alpha(x, y), e.style.PuffHeight, e.style.PuffCurvature)
			l.Displacement.Set(x, y, b)
		}
	}
}
