package core

import "math"

// padDelta is the minimum extent of any AABB axis after Pad
const padDelta = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB returns an inverted box that every real box dominates under union
func EmptyAABB() AABB {
	return AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
}

// NewAABB creates an AABB from three axis intervals
func NewAABB(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}
}

// NewAABBFromPoints creates the minimal AABB containing the two corner points
func NewAABBFromPoints(a, b Vec3) AABB {
	return AABB{
		X: Interval{Min: math.Min(a.X, b.X), Max: math.Max(a.X, b.X)},
		Y: Interval{Min: math.Min(a.Y, b.Y), Max: math.Max(a.Y, b.Y)},
		Z: Interval{Min: math.Min(a.Z, b.Z), Max: math.Max(a.Z, b.Z)},
	}
}

// NewAABBFromBoxes returns the union of two boxes
func NewAABBFromBoxes(a, b AABB) AABB {
	return AABB{
		X: NewIntervalFromIntervals(a.X, b.X),
		Y: NewIntervalFromIntervals(a.Y, b.Y),
		Z: NewIntervalFromIntervals(a.Z, b.Z),
	}
}

// Axis returns the interval for axis 0=X, 1=Y, 2=Z
func (aabb AABB) Axis(axis int) Interval {
	switch axis {
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		return aabb.X
	}
}

// Pad widens any axis narrower than padDelta so that flat shapes
// still produce a box the slab test can hit reliably
func (aabb AABB) Pad() AABB {
	padded := aabb
	if padded.X.Size() < padDelta {
		padded.X = padded.X.Expand(padDelta)
	}
	if padded.Y.Size() < padDelta {
		padded.Y = padded.Y.Expand(padDelta)
	}
	if padded.Z.Size() < padDelta {
		padded.Z = padded.Z.Expand(padDelta)
	}
	return padded
}

// Hit tests if a ray intersects this AABB within rayT using the slab method.
// Every axis narrows the running interval and the test fails as soon as it
// becomes empty.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		invDirection := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection

		// Keep t0 <= t1 for rays travelling in the negative direction
		if invDirection < 0 {
			t0, t1 = t1, t0
		}

		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max < rayT.Min {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return NewAABBFromBoxes(aabb, other)
}

// IsEmpty reports whether any axis is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min().Add(aabb.Max()).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return NewVec3(aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size())
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}
