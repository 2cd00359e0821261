// Package update coalesces paint edits into throttled texture uploads.
//
// Stroke increments mark the document dirty; the scheduler recomposites and
// pushes textures at most once per interval, with Flush available for the
// pointer-release path where the final state must reach the screen now.
package update

import (
	"log/slog"
	"time"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/composite"
	"github.com/closset/meshpaint/layer"
	"github.com/closset/meshpaint/relief"
	"github.com/closset/meshpaint/render"
)

// Options configures scheduler throttling and relief material parameters.
type Options struct {
	// MinInterval is the shortest time between texture uploads.
	MinInterval time.Duration

	// HeightScale and Curvature feed displacement synthesis and are
	// forwarded to the render target for shader scaling. Both in [0, 1].
	HeightScale float64
	Curvature   float64

	// NormalStrength scales the gradient when deriving the normal map.
	NormalStrength float64
}

// DefaultOptions targets 30 uploads per second with full-height relief.
func DefaultOptions() Options {
	return Options{
		MinInterval:    33 * time.Millisecond,
		HeightScale:    1.0,
		Curvature:      0.5,
		NormalStrength: 1.0,
	}
}

// Scheduler tracks dirty state and drives composition and texture uploads.
// It is not safe for concurrent use; drive it from the frame loop that owns
// the stroke engine.
type Scheduler struct {
	store  *layer.Store
	comp   *composite.Compositor
	target render.Target
	opts   Options

	dirty       bool
	reliefDirty bool
	lastUpload  time.Time

	// Scratch buffers for merged puff alpha and the derived maps.
	puff   *meshpaint.Pixmap
	disp   *meshpaint.Graymap
	normal *meshpaint.Pixmap

	log *slog.Logger
}

// NewScheduler builds a scheduler over the store, compositing through comp
// and uploading to target.
func NewScheduler(store *layer.Store, comp *composite.Compositor, target render.Target, opts Options) *Scheduler {
	w, h := store.Resolution()
	return &Scheduler{
		store:  store,
		comp:   comp,
		target: target,
		opts:   opts,
		puff:   meshpaint.NewPixmap(w, h),
		disp:   meshpaint.NewGraymap(w, h, relief.Neutral),
		normal: meshpaint.NewPixmap(w, h),
		log:    meshpaint.Logger(),
	}
}

// MarkDirty requests a recomposite on the next eligible tick.
func (s *Scheduler) MarkDirty() {
	s.dirty = true
}

// MarkReliefDirty additionally requests displacement and normal map
// recomputation. Relief implies a color update since puff pixels are part
// of the composite.
func (s *Scheduler) MarkReliefDirty() {
	s.dirty = true
	s.reliefDirty = true
}

// Dirty reports whether an upload is pending.
func (s *Scheduler) Dirty() bool {
	return s.dirty
}

// Tick uploads pending changes if the throttle interval has elapsed.
// It reports whether an upload happened.
func (s *Scheduler) Tick(now time.Time) bool {
	if !s.dirty {
		return false
	}
	if now.Sub(s.lastUpload) < s.opts.MinInterval {
		return false
	}
	s.run(now)
	return true
}

// Flush uploads pending changes immediately, bypassing the throttle.
// Call on pointer release so the final stroke state always lands.
func (s *Scheduler) Flush() {
	if !s.dirty {
		return
	}
	s.run(time.Now())
}

func (s *Scheduler) run(now time.Time) {
	frame := s.comp.Compose()
	if err := s.target.UpdateColorTexture(frame); err != nil {
		s.log.Warn("color texture upload failed", "err", err)
	}

	if s.reliefDirty {
		s.mergePuffAlpha()
		relief.DisplacementMap(s.puff, s.opts.HeightScale, s.opts.Curvature, s.disp)
		relief.NormalMap(s.puff, s.opts.NormalStrength, s.normal)
		if err := s.target.UpdateReliefTextures(s.disp, s.normal, s.opts.HeightScale, s.opts.Curvature); err != nil {
			s.log.Warn("relief texture upload failed", "err", err)
		}
	}

	s.dirty = false
	s.reliefDirty = false
	s.lastUpload = now
}

// mergePuffAlpha folds all visible puff layers into one alpha field,
// keeping the maximum per pixel so overlapping puff regions do not cancel.
func (s *Scheduler) mergePuffAlpha() {
	s.puff.Clear(meshpaint.RGBA{})
	dst := s.puff.Data()
	for _, l := range s.store.Layers() {
		if l.Kind != layer.Puff || !l.Visible || l.Opacity <= 0 {
			continue
		}
		src := l.Pixels.Data()
		for i := 3; i < len(dst) && i < len(src); i += 4 {
			a := uint8(float64(src[i]) * l.Opacity)
			if a > dst[i] {
				dst[i] = a
			}
		}
	}
}
