// Package symmetry mirrors stroke targets across user-selected coordinate
// planes.
//
// Given one surface hit and the set of enabled axes, the resolver reflects
// the hit's world position across every combination of enabled planes and
// maps each reflected point back onto the surface via nearest-vertex
// search. Enabling axes is purely additive: it only ever adds targets, and
// combined axes never double-draw a pixel already produced by a single
// reflection.
package symmetry

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/mesh"
	"github.com/closset/meshpaint/pick"
)

// Config holds the per-document mirroring toggles.
type Config struct {
	X, Y, Z bool
}

// enabled returns the enabled axis indices.
func (c Config) enabled() []int {
	var axes []int
	if c.X {
		axes = append(axes, 0)
	}
	if c.Y {
		axes = append(axes, 1)
	}
	if c.Z {
		axes = append(axes, 2)
	}
	return axes
}

// Target is one raster position a stroke mark should be drawn at.
type Target struct {
	UV       meshpaint.Point
	X, Y     int  // raster pixel at document resolution
	Mirrored bool // false for the original hit
}

// Options configures a Resolver.
type Options struct {
	// Stride samples only every Stride-th vertex during nearest-vertex
	// search. Values above 1 speed up resolution on dense meshes at the
	// cost of mapping accuracy; on sparse meshes keep it at 1.
	Stride int

	// MaxCacheEntries bounds the world→surface lookup cache.
	// Zero selects DefaultMaxEntries.
	MaxCacheEntries int
}

// Resolver maps mirrored world positions back to surface coordinates.
type Resolver struct {
	snap   *mesh.Snapshot
	grid   *mesh.VertexGrid
	cache  *lookupCache
	stride int
	width  int
	height int
	log    *slog.Logger
}

// NewResolver creates a resolver for the given snapshot and document
// raster resolution.
func NewResolver(snap *mesh.Snapshot, width, height int, opts Options) *Resolver {
	stride := opts.Stride
	if stride < 1 {
		stride = 1
	}
	return &Resolver{
		snap:   snap,
		grid:   mesh.NewVertexGrid(snap),
		cache:  newLookupCache(opts.MaxCacheEntries),
		stride: stride,
		width:  width,
		height: height,
		log:    meshpaint.Logger(),
	}
}

// Resolve returns the full set of raster targets for one surface hit:
// the original target plus one per distinct reflection. Targets whose
// raster pixel coincides with an already scheduled target are dropped.
func (r *Resolver) Resolve(hit pick.SurfaceHit, cfg Config) []Target {
	targets := make([]Target, 0, 8)
	seen := make(map[[2]int]struct{}, 8)

	add := func(uv meshpaint.Point, mirrored bool) {
		px, py := r.rasterPixel(uv)
		key := [2]int{px, py}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		targets = append(targets, Target{UV: uv, X: px, Y: py, Mirrored: mirrored})
	}

	add(hit.UV, false)

	axes := cfg.enabled()
	// Every non-empty subset of enabled axes yields one reflection, so
	// n axes produce at most 2^n targets including the original.
	for mask := 1; mask < 1<<len(axes); mask++ {
		p := hit.World
		for bit, axis := range axes {
			if mask&(1<<bit) != 0 {
				p[axis] = -p[axis]
			}
		}
		if uv, ok := r.surfaceAt(p); ok {
			add(uv, true)
		}
	}

	return targets
}

// surfaceAt maps a world position to the surface coordinate of the nearest
// mesh vertex, using the bounded lookup cache.
func (r *Resolver) surfaceAt(p mgl64.Vec3) (meshpaint.Point, bool) {
	key := keyFor(p)
	if uv, ok, cached := r.cache.get(key); cached {
		return uv, ok
	}

	idx, found := r.grid.Nearest(p, r.stride)
	var uv meshpaint.Point
	if found {
		uv = r.snap.UV(idx)
	}
	r.cache.put(key, uv, found)

	if !found {
		r.log.Warn("symmetry: no vertex near reflected point",
			"x", p[0], "y", p[1], "z", p[2])
	}
	return uv, found
}

// rasterPixel converts a surface coordinate to a document raster pixel.
func (r *Resolver) rasterPixel(uv meshpaint.Point) (int, int) {
	px := int(uv.X * float64(r.width-1))
	py := int(uv.Y * float64(r.height-1))
	return px, py
}

// Stats returns lookup cache statistics.
func (r *Resolver) Stats() CacheStats {
	return r.cache.stats()
}
