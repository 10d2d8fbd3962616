package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace computes the color carried back along ray from the world.
	// The world and background are shared read-only; sampler is owned by the caller.
	Trace(ray core.Ray, world geometry.Hittable, background Background, sampler core.Sampler) core.Vec3
}
