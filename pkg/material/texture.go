package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns the color at surface coordinates (u, v) and 3D point.
	// UV is used by image textures, the point by solid (procedural) textures.
	Value(u, v float64, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3D grid of cubes
type CheckerTexture struct {
	InverseScale float64
	Even         Texture
	Odd          Texture
}

// NewCheckerTexture creates a checker pattern with cubes of side scale
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	return &CheckerTexture{InverseScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerTextureFromColors creates a checker pattern from two solid colors
func NewCheckerTextureFromColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Value picks the even or odd texture from the parity of the cube containing point
func (c *CheckerTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.InverseScale * point.X))
	y := int(math.Floor(c.InverseScale * point.Y))
	z := int(math.Floor(c.InverseScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Value(u, v, point)
	}
	return c.Odd.Value(u, v, point)
}
