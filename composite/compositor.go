package composite

import (
	"log/slog"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/internal/parallel"
	"github.com/closset/meshpaint/layer"
)

// Compositor flattens a layer store into a single RGBA texture.
// It owns reusable output and scratch buffers sized to the store's
// resolution, so repeated composition does not allocate.
type Compositor struct {
	store   *layer.Store
	out     *meshpaint.Pixmap
	scratch *meshpaint.Pixmap
	face    font.Face
	pool    *parallel.Pool
	log     *slog.Logger
}

// NewCompositor builds a compositor over the given store. Text elements
// use basicfont until SetFontFace supplies a real face.
func NewCompositor(store *layer.Store) *Compositor {
	w, h := store.Resolution()
	return &Compositor{
		store:   store,
		out:     meshpaint.NewPixmap(w, h),
		scratch: meshpaint.NewPixmap(w, h),
		face:    basicfont.Face7x13,
		pool:    parallel.NewPool(0),
		log:     meshpaint.Logger(),
	}
}

// Close releases the worker pool. Compose keeps working afterwards, just
// single-threaded.
func (c *Compositor) Close() {
	c.pool.Close()
}

// SetFontFace replaces the face used to rasterize text elements.
func (c *Compositor) SetFontFace(face font.Face) {
	if face != nil {
		c.face = face
	}
}

// Compose flattens the stack bottom to top and returns the result. The
// returned pixmap is owned by the compositor and valid until the next
// Compose call. Layers are never mutated, so composing an unchanged
// document twice yields identical bytes.
func (c *Compositor) Compose() *meshpaint.Pixmap {
	c.out.Clear(meshpaint.RGBA{})

	for _, l := range c.store.Layers() {
		if !l.Visible || l.Opacity <= 0 {
			continue
		}
		src := l.Pixels
		if len(l.Elements) > 0 {
			c.scratch.CopyFrom(l.Pixels)
			rasterElements(c.scratch, l.Elements, c.face)
			src = c.scratch
		}
		c.pool.Rows(c.out.Height(), func(y0, y1 int) {
			blendRows(c.out, src, l.Blend, l.Opacity, y0, y1)
		})
	}

	c.log.Debug("composited layer stack", "layers", c.store.Count())
	return c.out
}
