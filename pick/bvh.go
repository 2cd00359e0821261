package pick

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/closset/meshpaint/mesh"
)

// aabb is an axis-aligned bounding box.
type aabb struct {
	min, max mgl64.Vec3
}

func (b aabb) union(o aabb) aabb {
	return aabb{
		min: mgl64.Vec3{math.Min(b.min[0], o.min[0]), math.Min(b.min[1], o.min[1]), math.Min(b.min[2], o.min[2])},
		max: mgl64.Vec3{math.Max(b.max[0], o.max[0]), math.Max(b.max[1], o.max[1]), math.Max(b.max[2], o.max[2])},
	}
}

func (b aabb) center(axis int) float64 {
	return (b.min[axis] + b.max[axis]) / 2
}

// hit performs the slab test against the ray over (tMin, tMax).
func (b aabb) hit(r Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Direction[axis]
		t0 := (b.min[axis] - r.Origin[axis]) * invD
		t1 := (b.max[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}
	return true
}

// bvhNode is a node in the triangle bounding volume hierarchy.
// Leaf nodes carry triangle indices; internal nodes carry children.
type bvhNode struct {
	bounds    aabb
	left      *bvhNode
	right     *bvhNode
	triangles []int32 // nil for internal nodes
}

// leafThreshold is the maximum number of triangles stored per leaf.
const leafThreshold = 8

// triangleBVH accelerates ray/mesh intersection queries.
type triangleBVH struct {
	snap *mesh.Snapshot
	root *bvhNode
}

// newTriangleBVH builds a BVH over all triangles of the snapshot using
// median splitting along the widest axis.
func newTriangleBVH(snap *mesh.Snapshot) *triangleBVH {
	n := snap.TriangleCount()
	if n == 0 {
		return &triangleBVH{snap: snap}
	}

	indices := make([]int32, n)
	boxes := make([]aabb, n)
	for i := 0; i < n; i++ {
		indices[i] = int32(i)
		boxes[i] = triangleBounds(snap, i)
	}

	b := &triangleBVH{snap: snap}
	b.root = b.build(indices, boxes)
	return b
}

// boundsPad inflates triangle boxes so axis-aligned (zero-thickness)
// triangles still pass the strict slab test.
const boundsPad = 1e-8

func triangleBounds(snap *mesh.Snapshot, tri int) aabb {
	idx := snap.Triangle(tri)
	p0 := snap.Position(int(idx[0]))
	box := aabb{min: p0, max: p0}
	for _, vi := range idx[1:] {
		p := snap.Position(int(vi))
		box = box.union(aabb{min: p, max: p})
	}
	for axis := 0; axis < 3; axis++ {
		box.min[axis] -= boundsPad
		box.max[axis] += boundsPad
	}
	return box
}

func (b *triangleBVH) build(indices []int32, boxes []aabb) *bvhNode {
	bounds := boxes[indices[0]]
	for _, i := range indices[1:] {
		bounds = bounds.union(boxes[i])
	}

	if len(indices) <= leafThreshold {
		leaf := make([]int32, len(indices))
		copy(leaf, indices)
		return &bvhNode{bounds: bounds, triangles: leaf}
	}

	// Split along the widest axis at the median centroid.
	axis := 0
	extent := bounds.max.Sub(bounds.min)
	if extent[1] > extent[axis] {
		axis = 1
	}
	if extent[2] > extent[axis] {
		axis = 2
	}

	sort.Slice(indices, func(i, j int) bool {
		return boxes[indices[i]].center(axis) < boxes[indices[j]].center(axis)
	})
	mid := len(indices) / 2

	return &bvhNode{
		bounds: bounds,
		left:   b.build(indices[:mid], boxes),
		right:  b.build(indices[mid:], boxes),
	}
}

// intersect finds the closest triangle intersection along the ray.
// Returns the triangle index, ray parameter and barycentric u, v.
func (b *triangleBVH) intersect(r Ray, tMin, tMax float64) (tri int, t, u, v float64, ok bool) {
	if b.root == nil {
		return 0, 0, 0, 0, false
	}
	tri = -1
	t = tMax
	b.intersectNode(b.root, r, tMin, &t, &tri, &u, &v)
	return tri, t, u, v, tri >= 0
}

func (b *triangleBVH) intersectNode(node *bvhNode, r Ray, tMin float64, tBest *float64, tri *int, u, v *float64) {
	if !node.bounds.hit(r, tMin, *tBest) {
		return
	}

	if node.triangles != nil {
		for _, ti := range node.triangles {
			if t, tu, tv, ok := b.intersectTriangle(int(ti), r, tMin, *tBest); ok {
				*tBest = t
				*tri = int(ti)
				*u = tu
				*v = tv
			}
		}
		return
	}

	b.intersectNode(node.left, r, tMin, tBest, tri, u, v)
	b.intersectNode(node.right, r, tMin, tBest, tri, u, v)
}

// intersectTriangle runs the Möller-Trumbore test against one triangle.
func (b *triangleBVH) intersectTriangle(tri int, r Ray, tMin, tMax float64) (t, u, v float64, ok bool) {
	const epsilon = 1e-9

	idx := b.snap.Triangle(tri)
	v0 := b.snap.Position(int(idx[0]))
	v1 := b.snap.Position(int(idx[1]))
	v2 := b.snap.Position(int(idx[2]))

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Near-zero determinant: ray parallel to the triangle plane.
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := r.Origin.Sub(v0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
