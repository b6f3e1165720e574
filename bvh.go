package pathtracer

import (
	"math"
	"sort"
)

const bvhLeafThreshold = 4
const bvhBucketCount = 12

// bvhNode is one entry of the BVH's contiguous node array:
// either internal ({Bounds, Left, Right}) or a leaf ({Bounds, First,
// Count}), distinguished by Count == 0 meaning internal. Indices keep
// the layout cache-friendly, the way own BVH-free code
// never needed to but every other node-array data structure in this
// package (the scene graph, the primitive list) already favors flat
// slices over pointer chasing.
type bvhNode struct {
	Bounds      Box
	Left, Right int
	First, Count int
}

// BVH is a surface-area-heuristic bounding volume hierarchy over a
// scene's flattened world primitives. New: no repo in the
// retrieval pack builds an acceleration structure (the prior implementation is a
// rasterizer; BVHs only matter for ray tracing).
type BVH struct {
	nodes      []bvhNode
	primitives []*Primitive // reordered in place during build
}

// BuildBVH constructs the hierarchy top-down over prims, partitioning
// the slice in place.
func BuildBVH(prims []*Primitive) *BVH {
	b := &BVH{primitives: prims}
	if len(prims) == 0 {
		// no nodes: Intersect and AnyHit report a miss on an empty tree
		return b
	}
	b.nodes = make([]bvhNode, 0, 2*len(prims))
	b.build(0, len(prims))
	return b
}

func (b *BVH) boundsOf(lo, hi int) (box, centroidBox Box) {
	box, centroidBox = EmptyBox, EmptyBox
	for i := lo; i < hi; i++ {
		box = box.Extend(b.primitives[i].WorldBounds)
		c := b.primitives[i].WorldBounds.Center()
		centroidBox = centroidBox.Extend(Box{c, c})
	}
	return
}

// build recursively partitions primitives[lo:hi], appending nodes to
// b.nodes, and returns the index of the node it created.
func (b *BVH) build(lo, hi int) int {
	bounds, centroidBounds := b.boundsOf(lo, hi)
	n := hi - lo

	idx := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{Bounds: bounds, First: lo, Count: n})
	if n <= bvhLeafThreshold {
		return idx
	}

	axis, ok := longestAxis(centroidBounds)
	if !ok {
		return idx
	}

	mid, split := b.sahSplit(lo, hi, axis, centroidBounds)
	if !split {
		return idx
	}

	left := b.build(lo, mid)
	right := b.build(mid, hi)
	b.nodes[idx].Count = 0
	b.nodes[idx].Left = left
	b.nodes[idx].Right = right
	return idx
}

func longestAxis(box Box) (int, bool) {
	size := box.Size()
	if size.X <= 0 && size.Y <= 0 && size.Z <= 0 {
		return 0, false
	}
	switch {
	case size.X >= size.Y && size.X >= size.Z:
		return 0, true
	case size.Y >= size.Z:
		return 1, true
	default:
		return 2, true
	}
}

func axisComponent(v Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// sahSplit buckets primitives[lo:hi]'s centroids into bvhBucketCount
// bins along axis, evaluates the surface-area-heuristic cost of each of
// the bvhBucketCount-1 possible splits, and partitions in place at the
// minimum-cost split. Returns split=false when no split
// improves on the unsplit cost (callers then fall back to a leaf).
func (b *BVH) sahSplit(lo, hi, axis int, centroidBounds Box) (mid int, split bool) {
	cMin := axisComponent(centroidBounds.Min, axis)
	cMax := axisComponent(centroidBounds.Max, axis)
	if cMax-cMin < 1e-12 {
		return lo, false
	}

	type bucket struct {
		count int
		box   Box
	}
	var buckets [bvhBucketCount]bucket
	for i := range buckets {
		buckets[i].box = EmptyBox
	}
	bucketOf := func(p *Primitive) int {
		c := axisComponent(p.WorldBounds.Center(), axis)
		f := (c - cMin) / (cMax - cMin)
		idx := int(f * float64(bvhBucketCount))
		if idx < 0 {
			idx = 0
		}
		if idx >= bvhBucketCount {
			idx = bvhBucketCount - 1
		}
		return idx
	}
	for i := lo; i < hi; i++ {
		k := bucketOf(b.primitives[i])
		buckets[k].count++
		buckets[k].box = buckets[k].box.Extend(b.primitives[i].WorldBounds)
	}

	var leftBox [bvhBucketCount - 1]Box
	var leftCount [bvhBucketCount - 1]int
	running := EmptyBox
	runningCount := 0
	for i := 0; i < bvhBucketCount-1; i++ {
		if buckets[i].count > 0 {
			running = running.Extend(buckets[i].box)
		}
		runningCount += buckets[i].count
		leftBox[i] = running
		leftCount[i] = runningCount
	}
	var rightBox [bvhBucketCount - 1]Box
	var rightCount [bvhBucketCount - 1]int
	running = EmptyBox
	runningCount = 0
	for i := bvhBucketCount - 1; i >= 1; i-- {
		if buckets[i].count > 0 {
			running = running.Extend(buckets[i].box)
		}
		runningCount += buckets[i].count
		rightBox[i-1] = running
		rightCount[i-1] = runningCount
	}

	bestCost := math.Inf(1)
	bestSplit := -1
	for i := 0; i < bvhBucketCount-1; i++ {
		if leftCount[i] == 0 || rightCount[i] == 0 {
			continue
		}
		cost := leftBox[i].SurfaceArea()*float64(leftCount[i]) + rightBox[i].SurfaceArea()*float64(rightCount[i])
		if cost < bestCost {
			bestCost = cost
			bestSplit = i
		}
	}
	unsplitCost := leftBox[0].Extend(rightBox[0]).SurfaceArea() * float64(hi-lo)
	if bestSplit < 0 || bestCost >= unsplitCost {
		return lo, false
	}

	prims := b.primitives[lo:hi]
	sort.SliceStable(prims, func(i, j int) bool {
		return bucketOf(prims[i]) < bucketOf(prims[j])
	})
	mid = lo
	for i := lo; i < hi; i++ {
		if bucketOf(b.primitives[i]) <= bestSplit {
			mid++
		} else {
			break
		}
	}
	if mid == lo || mid == hi {
		return lo, false
	}
	return mid, true
}

// Hit is the result of a closest-hit BVH query.
type Hit struct {
	ShadingRecord
	Primitive *Primitive
}

// Intersect walks the BVH for the closest primitive hit along ray within
// [ray.TMin, tMax).
func (b *BVH) Intersect(ray Ray, tMax float64) (Hit, bool) {
	if len(b.nodes) == 0 {
		return Hit{}, false
	}
	stack := make([]int, 0, 64)
	stack = append(stack, 0)
	best := tMax
	var bestHit Hit
	found := false

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[i]
		if _, _, hit := node.Bounds.IntersectRay(ray, best); !hit {
			continue
		}
		if node.Count > 0 {
			for k := node.First; k < node.First+node.Count; k++ {
				prim := b.primitives[k]
				if rec, ok := prim.Intersect(ray, best); ok {
					best = rec.T
					bestHit = Hit{ShadingRecord: rec, Primitive: prim}
					found = true
				}
			}
			continue
		}
		leftNode, rightNode := &b.nodes[node.Left], &b.nodes[node.Right]
		lNear, _, lHit := leftNode.Bounds.IntersectRay(ray, best)
		rNear, _, rHit := rightNode.Bounds.IntersectRay(ray, best)
		switch {
		case lHit && rHit:
			if lNear < rNear {
				stack = append(stack, node.Right, node.Left)
			} else {
				stack = append(stack, node.Left, node.Right)
			}
		case lHit:
			stack = append(stack, node.Left)
		case rHit:
			stack = append(stack, node.Right)
		}
	}
	return bestHit, found
}

// AnyHit walks the BVH and returns true as soon as any primitive is hit
// within [ray.TMin, maxDistance) — used for shadow/occlusion rays,
// short-circuiting on the first hit found.
func (b *BVH) AnyHit(ray Ray, maxDistance float64) bool {
	if len(b.nodes) == 0 {
		return false
	}
	stack := make([]int, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[i]
		if _, _, hit := node.Bounds.IntersectRay(ray, maxDistance); !hit {
			continue
		}
		if node.Count > 0 {
			for k := node.First; k < node.First+node.Count; k++ {
				if _, ok := b.primitives[k].Intersect(ray, maxDistance); ok {
					return true
				}
			}
			continue
		}
		stack = append(stack, node.Left, node.Right)
	}
	return false
}
