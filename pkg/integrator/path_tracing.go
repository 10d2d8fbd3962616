package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// minHitDistance keeps scattered rays from re-hitting the surface they left
const minHitDistance = 0.001

// PathTracingIntegrator implements unidirectional path tracing with
// recursion bounded by MaxDepth
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// Trace implements Integrator
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world geometry.Hittable, background Background, sampler core.Sampler) core.Vec3 {
	return pt.RayColor(ray, world, background, sampler, pt.MaxDepth)
}

// RayColor computes the color for a single ray.
// Paths still bouncing when depth runs out contribute black, which biases
// deep interreflection slightly dark.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, background Background, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(minHitDistance, math.Inf(1)))
	if !isHit {
		return background.Color(ray)
	}

	colorEmitted := material.Emitted(hit.Material, *hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	incoming := pt.RayColor(scatter.Scattered, world, background, sampler, depth-1)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
