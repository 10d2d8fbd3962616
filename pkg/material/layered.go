package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Layered represents a material with two layers - an outer and inner material.
// Light hits the outer layer first; if it scatters inward it reaches the inner
// layer at the same point. Coatings such as varnish over paint work this way.
type Layered struct {
	Outer Material // Outer layer material (e.g., coating, surface treatment)
	Inner Material // Inner layer material (e.g., base material)
}

// NewLayered creates a new layered material
func NewLayered(outer, inner Material) *Layered {
	return &Layered{
		Outer: outer,
		Inner: inner,
	}
}

// Scatter implements the Material interface for layered scattering
func (l *Layered) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	outerHit := hit
	outerHit.Material = l.Outer

	outerResult, outerScatters := l.Outer.Scatter(rayIn, outerHit, sampler)
	if !outerScatters {
		return ScatterResult{}, false
	}

	// Outward scattering never reaches the inner layer
	scatteredDirection := outerResult.Scattered.Direction.Normalize()
	if scatteredDirection.Dot(hit.Normal) >= 0 {
		return outerResult, true
	}

	innerRay := core.NewRayAtTime(hit.Point, scatteredDirection, rayIn.Time)
	innerHit := hit
	innerHit.Material = l.Inner

	innerResult, innerScatters := l.Inner.Scatter(innerRay, innerHit, sampler)
	if !innerScatters {
		// Inner material absorbs - return outer result only
		return outerResult, true
	}

	// Light is filtered by both layers
	return ScatterResult{
		Scattered:   innerResult.Scattered,
		Attenuation: outerResult.Attenuation.MultiplyVec(innerResult.Attenuation),
	}, true
}
