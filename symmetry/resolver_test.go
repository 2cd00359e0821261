package symmetry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint"
	"github.com/closset/meshpaint/mesh"
	"github.com/closset/meshpaint/pick"
)

// gridSnapshot builds a flat 3x3 vertex grid spanning [-1,1]² in the z=0
// plane, symmetric about both the X and Y planes.
func gridSnapshot(t *testing.T) *mesh.Snapshot {
	t.Helper()

	var positions []mgl64.Vec3
	var uvs []meshpaint.Point
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			x := float64(col) - 1
			y := 1 - float64(row)
			positions = append(positions, mgl64.Vec3{x, y, 0})
			uvs = append(uvs, meshpaint.Pt(float64(col)/2, float64(row)/2))
		}
	}

	var triangles [][3]int32
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			i := int32(row*3 + col)
			triangles = append(triangles,
				[3]int32{i, i + 1, i + 3},
				[3]int32{i + 1, i + 4, i + 3},
			)
		}
	}

	snap, err := mesh.NewSnapshot(positions, uvs, triangles)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

// hitAt builds a surface hit at the given grid vertex.
func hitAt(snap *mesh.Snapshot, vertex int) pick.SurfaceHit {
	return pick.SurfaceHit{
		World: snap.Position(vertex),
		UV:    snap.UV(vertex),
	}
}

func TestResolveNoAxes(t *testing.T) {
	snap := gridSnapshot(t)
	r := NewResolver(snap, 256, 256, Options{})

	hit := hitAt(snap, 2) // top-right corner, UV (1, 0)
	targets := r.Resolve(hit, Config{})

	if len(targets) != 1 {
		t.Fatalf("Resolve with no axes returned %d targets, want 1", len(targets))
	}
	got := targets[0]
	if got.Mirrored {
		t.Error("original target marked as mirrored")
	}
	if got.UV != hit.UV {
		t.Errorf("target UV = %v, want %v", got.UV, hit.UV)
	}
	wantX := int(hit.UV.X * 255)
	wantY := int(hit.UV.Y * 255)
	if got.X != wantX || got.Y != wantY {
		t.Errorf("raster pixel = (%d, %d), want (%d, %d)", got.X, got.Y, wantX, wantY)
	}
}

func TestResolveTwoAxes(t *testing.T) {
	snap := gridSnapshot(t)
	r := NewResolver(snap, 256, 256, Options{})

	// Corner vertex: every reflection lands exactly on another corner.
	hit := hitAt(snap, 2) // world (1, 1, 0), UV (1, 0)
	targets := r.Resolve(hit, Config{X: true, Y: true})

	if len(targets) != 4 {
		t.Fatalf("Resolve with X+Y returned %d targets, want 4", len(targets))
	}
	if targets[0].Mirrored {
		t.Error("first target must be the unmirrored original")
	}
	for i, tgt := range targets[1:] {
		if !tgt.Mirrored {
			t.Errorf("target %d not marked as mirrored", i+1)
		}
	}

	wantUVs := map[meshpaint.Point]bool{
		meshpaint.Pt(1, 0): true, // original
		meshpaint.Pt(0, 0): true, // X reflection
		meshpaint.Pt(1, 1): true, // Y reflection
		meshpaint.Pt(0, 1): true, // X+Y reflection
	}
	for _, tgt := range targets {
		if !wantUVs[tgt.UV] {
			t.Errorf("unexpected target UV %v", tgt.UV)
		}
		delete(wantUVs, tgt.UV)
	}
	for uv := range wantUVs {
		t.Errorf("missing target UV %v", uv)
	}
}

func TestResolveSubsetProperty(t *testing.T) {
	snap := gridSnapshot(t)
	r := NewResolver(snap, 256, 256, Options{})
	hit := hitAt(snap, 2)

	// Enabling an extra axis only ever adds targets.
	single := r.Resolve(hit, Config{X: true})
	both := r.Resolve(hit, Config{X: true, Y: true})

	pixels := make(map[[2]int]bool, len(both))
	for _, tgt := range both {
		pixels[[2]int{tgt.X, tgt.Y}] = true
	}
	for _, tgt := range single {
		if !pixels[[2]int{tgt.X, tgt.Y}] {
			t.Errorf("pixel (%d, %d) from X-only config missing with X+Y", tgt.X, tgt.Y)
		}
	}
	if len(both) < len(single) {
		t.Errorf("X+Y produced %d targets, fewer than X alone (%d)", len(both), len(single))
	}
}

func TestResolveDedupesCoincidentPixels(t *testing.T) {
	snap := gridSnapshot(t)
	r := NewResolver(snap, 256, 256, Options{})

	// A hit on the X mirror plane reflects onto itself.
	hit := hitAt(snap, 1) // world (0, 1, 0)
	targets := r.Resolve(hit, Config{X: true})

	if len(targets) != 1 {
		t.Fatalf("on-plane hit returned %d targets, want 1", len(targets))
	}
	if targets[0].Mirrored {
		t.Error("surviving target should be the original")
	}
}

func TestResolveCacheStats(t *testing.T) {
	snap := gridSnapshot(t)
	r := NewResolver(snap, 256, 256, Options{})
	hit := hitAt(snap, 2)

	r.Resolve(hit, Config{X: true, Y: true})
	first := r.Stats()
	if first.Hits != 0 {
		t.Errorf("first resolve: %d cache hits, want 0", first.Hits)
	}
	if first.Misses != 3 {
		t.Errorf("first resolve: %d cache misses, want 3", first.Misses)
	}

	r.Resolve(hit, Config{X: true, Y: true})
	second := r.Stats()
	if second.Hits != 3 {
		t.Errorf("second resolve: %d cache hits, want 3", second.Hits)
	}
	if second.Misses != first.Misses {
		t.Errorf("second resolve added misses: %d, want %d", second.Misses, first.Misses)
	}
	if second.HitRate <= 0 {
		t.Errorf("hit rate = %v, want > 0", second.HitRate)
	}
	if second.Entries != 3 {
		t.Errorf("cache entries = %d, want 3", second.Entries)
	}
}

func TestCacheEviction(t *testing.T) {
	c := newLookupCache(2)
	c.put(cacheKey{1, 0, 0}, meshpaint.Pt(0.1, 0), true)
	c.put(cacheKey{2, 0, 0}, meshpaint.Pt(0.2, 0), true)
	c.put(cacheKey{3, 0, 0}, meshpaint.Pt(0.3, 0), true)

	if _, _, cached := c.get(cacheKey{1, 0, 0}); cached {
		t.Error("oldest entry survived eviction")
	}
	if uv, ok, cached := c.get(cacheKey{3, 0, 0}); !cached || !ok || uv != meshpaint.Pt(0.3, 0) {
		t.Errorf("newest entry = (%v, %v, %v), want cached", uv, ok, cached)
	}
}
