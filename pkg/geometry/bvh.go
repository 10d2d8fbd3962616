package geometry

import (
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is a node in the Bounding Volume Hierarchy.
// Each child is either another *BVHNode or a leaf primitive; a node built
// from a single object points both children at that same object.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// NewBVH constructs a BVH from a slice of hittables.
// The axis for each level is drawn from random; the caller's slice is not
// reordered. NewBVH panics when objects is empty: an empty scene has to be
// rejected before the hierarchy is built.
func NewBVH(objects []Hittable, random *rand.Rand) *BVHNode {
	if len(objects) == 0 {
		panic("geometry: NewBVH called with no objects")
	}

	// Work on a copy so callers can keep using their own ordering
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, random)
}

// buildBVH recursively partitions objects along a random axis
func buildBVH(objects []Hittable, random *rand.Rand) *BVHNode {
	axis := random.Intn(3)
	node := &BVHNode{}

	switch span := len(objects); span {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		if boxCompare(objects[0], objects[1], axis) {
			node.Left, node.Right = objects[0], objects[1]
		} else {
			node.Left, node.Right = objects[1], objects[0]
		}
	default:
		sort.SliceStable(objects, func(i, j int) bool {
			return boxCompare(objects[i], objects[j], axis)
		})
		mid := span / 2
		node.Left = buildBVH(objects[:mid], random)
		node.Right = buildBVH(objects[mid:], random)
	}

	node.bbox = core.NewAABBFromBoxes(node.Left.BoundingBox(), node.Right.BoundingBox())
	return node
}

// boxCompare orders two hittables by the lower bound of their boxes on axis
func boxCompare(a, b Hittable, axis int) bool {
	return a.BoundingBox().Axis(axis).Min < b.BoundingBox().Axis(axis).Min
}

// Hit returns the nearest intersection in the subtree.
// A left hit shrinks the range before the right subtree is searched, so a
// right hit is only reported when it is strictly closer.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT)

	rightRange := rayT
	if hitLeft {
		rightRange.Max = leftHit.T
	}
	if rightHit, hitRight := n.Right.Hit(ray, rightRange); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the union of both children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes    int // Internal nodes
	Leaves   int // Distinct leaf references (an aliased single leaf counts once)
	MaxDepth int
}

// Stats walks the tree and returns its statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []Hittable{n.Left}
	if n.Right != n.Left {
		children = append(children, n.Right)
	}

	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.Leaves++
		}
	}
}
