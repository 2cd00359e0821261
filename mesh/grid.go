package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// VertexGrid is a uniform spatial hash over snapshot vertices, used to
// answer nearest-vertex queries at interactive rates. It replaces a
// per-call linear scan over the whole mesh; for a roughly uniform vertex
// distribution a query touches only the cells around the query point.
type VertexGrid struct {
	snap     *Snapshot
	cellSize float64
	origin   mgl64.Vec3
	cells    map[[3]int32][]int32
}

// NewVertexGrid builds a grid over all vertices of the snapshot. The cell
// size is chosen so that an average cell holds a handful of vertices.
func NewVertexGrid(snap *Snapshot) *VertexGrid {
	min, max := snap.Bounds()
	diag := max.Sub(min)
	extent := math.Max(diag[0], math.Max(diag[1], diag[2]))
	if extent <= 0 {
		extent = 1
	}

	// Aim for roughly cube-root-of-n cells per axis.
	perAxis := math.Cbrt(float64(snap.VertexCount()))
	if perAxis < 1 {
		perAxis = 1
	}
	cellSize := extent / perAxis

	g := &VertexGrid{
		snap:     snap,
		cellSize: cellSize,
		origin:   min,
		cells:    make(map[[3]int32][]int32),
	}
	for i := 0; i < snap.VertexCount(); i++ {
		key := g.cellOf(snap.Position(i))
		g.cells[key] = append(g.cells[key], int32(i))
	}
	return g
}

// cellOf maps a world position to its grid cell key.
func (g *VertexGrid) cellOf(p mgl64.Vec3) [3]int32 {
	return [3]int32{
		int32(math.Floor((p[0] - g.origin[0]) / g.cellSize)),
		int32(math.Floor((p[1] - g.origin[1]) / g.cellSize)),
		int32(math.Floor((p[2] - g.origin[2]) / g.cellSize)),
	}
}

// Nearest returns the index of the vertex closest to p, searching grid
// cells in expanding shells around p's cell.
//
// stride > 1 samples only every stride-th vertex, trading accuracy for
// speed on dense meshes. On sparse meshes a large stride can map a point
// to a visibly wrong vertex, so callers should keep stride at 1 unless
// the mesh is dense enough to hide the error.
func (g *VertexGrid) Nearest(p mgl64.Vec3, stride int) (int, bool) {
	if stride < 1 {
		stride = 1
	}

	center := g.cellOf(p)
	best := -1
	bestDistSq := math.Inf(1)

	// Expand shell by shell. Once a candidate is found, one extra shell
	// guarantees no closer vertex hides in a neighboring cell.
	maxShell := int32(64)
	foundAt := int32(-1)
	for shell := int32(0); shell <= maxShell; shell++ {
		if foundAt >= 0 && shell > foundAt+1 {
			break
		}
		g.scanShell(center, shell, p, stride, &best, &bestDistSq)
		if best >= 0 && foundAt < 0 {
			foundAt = shell
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// scanShell scans all cells at Chebyshev distance exactly shell from center.
func (g *VertexGrid) scanShell(center [3]int32, shell int32, p mgl64.Vec3, stride int, best *int, bestDistSq *float64) {
	for dx := -shell; dx <= shell; dx++ {
		for dy := -shell; dy <= shell; dy++ {
			for dz := -shell; dz <= shell; dz++ {
				if maxAbs3(dx, dy, dz) != shell {
					continue
				}
				key := [3]int32{center[0] + dx, center[1] + dy, center[2] + dz}
				for _, idx := range g.cells[key] {
					if int(idx)%stride != 0 {
						continue
					}
					d := g.snap.Position(int(idx)).Sub(p)
					distSq := d.Dot(d)
					if distSq < *bestDistSq {
						*bestDistSq = distSq
						*best = int(idx)
					}
				}
			}
		}
	}
}

func maxAbs3(a, b, c int32) int32 {
	m := a
	if m < 0 {
		m = -m
	}
	if b < 0 {
		b = -b
	}
	if b > m {
		m = b
	}
	if c < 0 {
		c = -c
	}
	if c > m {
		m = c
	}
	return m
}
