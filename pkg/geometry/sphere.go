package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape, optionally moving linearly over the
// shutter interval [0, 1]
type Sphere struct {
	Center   core.Vec3 // Center at time 0
	Motion   core.Vec3 // Displacement from time 0 to time 1 (zero when stationary)
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere whose center moves from start (time 0) to end (time 1)
func NewMovingSphere(start, end core.Vec3, radius float64, material material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	startBox := core.NewAABBFromPoints(start.Subtract(rvec), start.Add(rvec))
	endBox := core.NewAABBFromPoints(end.Subtract(rvec), end.Add(rvec))
	return &Sphere{
		Center:   start,
		Motion:   end.Subtract(start),
		Radius:   radius,
		Material: material,
		bbox:     core.NewAABBFromBoxes(startBox, endBox),
	}
}

// CenterAt returns the sphere center at the given time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	return s.Center.Add(s.Motion.Multiply(time))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	// A degenerate sphere has no surface normal
	if s.Radius == 0 {
		return nil, false
	}

	center := s.CenterAt(ray.Time)
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2ht + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// The nearer root wins whenever it is in range
	root := (-halfB - sqrtD) / a
	if !rayT.Contains(root) {
		root = (-halfB + sqrtD) / a
		if !rayT.Contains(root) {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(center).Multiply(1.0 / s.Radius)
	u, v := sphereUV(outwardNormal)

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    point,
		U:        u,
		V:        v,
		Material: s.Material,
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// sphereUV maps a point on the unit sphere to texture coordinates:
// u runs around the Y axis from X=-1, v runs from Y=-1 to Y=+1
func sphereUV(p core.Vec3) (float64, float64) {
	theta := math.Acos(max(-1, min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}
