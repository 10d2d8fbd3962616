package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect and a box can bound.
// Primitives, collections and BVH nodes all implement it, so they compose.
type Hittable interface {
	// Hit returns the nearest intersection with t inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
