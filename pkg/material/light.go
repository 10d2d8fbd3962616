package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Light is an emissive material. It never scatters: a path that reaches it
// ends there and picks up its emission.
type Light struct {
	Texture    Texture
	Luminosity float64 // Multiplier applied to the texture color
}

// NewLight creates a light emitting texture * luminosity
func NewLight(texture Texture, luminosity float64) *Light {
	return &Light{Texture: texture, Luminosity: luminosity}
}

// NewDiffuseLight creates a solid-color light with unit luminosity
func NewDiffuseLight(emission core.Vec3) *Light {
	return NewLight(NewSolidColor(emission), 1.0)
}

// Scatter implements the Material interface; lights absorb all incoming rays
func (l *Light) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emitted light at the given surface point
func (l *Light) Emit(u, v float64, point core.Vec3) core.Vec3 {
	return l.Texture.Value(u, v, point).Multiply(l.Luminosity)
}
