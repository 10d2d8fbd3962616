package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box is a closed axis-aligned box made of six outward-facing quads
type Box struct {
	Min, Max core.Vec3
	faces    *Collection
}

// NewBox creates the box spanning the two opposite corners a and b
func NewBox(a, b core.Vec3, material material.Material) *Box {
	lo := core.NewVec3(min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z))
	hi := core.NewVec3(max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z))

	dx := core.NewVec3(hi.X-lo.X, 0, 0)
	dy := core.NewVec3(0, hi.Y-lo.Y, 0)
	dz := core.NewVec3(0, 0, hi.Z-lo.Z)

	faces := NewCollection(
		NewQuad(core.NewVec3(lo.X, lo.Y, hi.Z), dx, dy, material),         // front (Z+)
		NewQuad(core.NewVec3(hi.X, lo.Y, hi.Z), dz.Negate(), dy, material), // right (X+)
		NewQuad(core.NewVec3(hi.X, lo.Y, lo.Z), dx.Negate(), dy, material), // back (Z-)
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dz, dy, material),          // left (X-)
		NewQuad(core.NewVec3(lo.X, hi.Y, hi.Z), dx, dz.Negate(), material), // top (Y+)
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dx, dz, material),          // bottom (Y-)
	)

	return &Box{Min: lo, Max: hi, faces: faces}
}

// Faces returns the six quads of the box
func (b *Box) Faces() []Hittable {
	return b.faces.Objects()
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, rayT)
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.faces.BoundingBox()
}
