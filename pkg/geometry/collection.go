package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Collection is a flat list of hittables intersected by linear scan.
// It is also the arena that owns the scene's objects: the lights view is a
// list of indices into it and a BVH built from Objects shares the same values.
type Collection struct {
	objects []Hittable
	lights  []int
	bbox    core.AABB
}

// NewCollection creates an empty collection
func NewCollection(objects ...Hittable) *Collection {
	c := &Collection{bbox: core.EmptyAABB()}
	for _, object := range objects {
		c.Add(object)
	}
	return c
}

// Add appends an object and returns its index
func (c *Collection) Add(object Hittable) int {
	c.objects = append(c.objects, object)
	c.bbox = core.NewAABBFromBoxes(c.bbox, object.BoundingBox())
	return len(c.objects) - 1
}

// AddLight appends an emissive object and records it in the lights view
func (c *Collection) AddLight(object Hittable) int {
	index := c.Add(object)
	c.lights = append(c.lights, index)
	return index
}

// Objects returns the objects in insertion order.
// The slice is shared; callers must not modify it.
func (c *Collection) Objects() []Hittable {
	return c.objects
}

// Len returns the number of objects
func (c *Collection) Len() int {
	return len(c.objects)
}

// LightIndices returns the arena indices of objects added with AddLight
func (c *Collection) LightIndices() []int {
	return c.lights
}

// Lights resolves the lights view to the objects it refers to
func (c *Collection) Lights() []Hittable {
	lights := make([]Hittable, len(c.lights))
	for i, index := range c.lights {
		lights[i] = c.objects[index]
	}
	return lights
}

// Hit tests every object and returns the closest hit within rayT
func (c *Collection) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range c.objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all object boxes (empty for an empty collection)
func (c *Collection) BoundingBox() core.AABB {
	return c.bbox
}
