package integrator

import "github.com/df07/go-pathtracer/pkg/core"

// Background supplies the radiance of rays that escape the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// GradientBackground blends from Bottom (looking down) to Top (looking up)
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewSkyGradient returns the white-to-blue sky used by most scenes
func NewSkyGradient() GradientBackground {
	return GradientBackground{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns a gradient color based on ray direction
func (g GradientBackground) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Multiply(1.0 - a).Add(g.Top.Multiply(a))
}

// SolidBackground returns the same radiance in every direction.
// A black SolidBackground gives a closed room lit only by its emitters.
type SolidBackground struct {
	Radiance core.Vec3
}

// Color implements Background
func (s SolidBackground) Color(ray core.Ray) core.Vec3 {
	return s.Radiance
}
