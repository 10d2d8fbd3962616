package integrator

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mockSampler returns a fixed value for every dimension
type mockSampler struct {
	value float64
}

func (m mockSampler) Get1D() float64   { return m.value }
func (m mockSampler) Get2D() core.Vec2 { return core.NewVec2(m.value, m.value) }
func (m mockSampler) Get3D() core.Vec3 { return core.NewVec3(m.value, m.value, m.value) }

// absorber neither scatters nor emits
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

var white = core.NewVec3(1, 1, 1)

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	world := geometry.NewCollection(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
	)
	sampler := core.NewSeededSampler(42)
	integrator := NewPathTracingIntegrator(10)

	tests := []struct {
		name  string
		ray   core.Ray
		depth int
	}{
		{"depth 0 at sphere", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0},
		{"depth 0 at sky", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0},
		{"negative depth", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), -3},
		{"depth 1 at diffuse sphere", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := integrator.RayColor(tt.ray, world, NewSkyGradient(), sampler, tt.depth)
			if color != (core.Vec3{}) {
				t.Errorf("Expected black, got %v", color)
			}
		})
	}

	// With bounces left, the sky is seen through the sphere
	color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, NewSkyGradient(), sampler, 3)
	if color == (core.Vec3{}) {
		t.Error("Expected non-black color for positive depth")
	}
}

func TestPathTracingBackground(t *testing.T) {
	world := geometry.NewCollection()
	integrator := NewPathTracingIntegrator(10)
	sampler := mockSampler{value: 0.5}

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight down is white", core.NewVec3(0, -1, 0), white},
		{"straight up is sky blue", core.NewVec3(0, 2, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"horizon is the midpoint", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := integrator.Trace(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), world, NewSkyGradient(), sampler)
			if !color.Equals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestPathTracingEmissionAndAbsorption(t *testing.T) {
	integrator := NewPathTracingIntegrator(10)
	sampler := mockSampler{value: 0.5}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	sky := NewSkyGradient()

	light := geometry.NewQuad(core.NewVec3(-1, -1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.NewLight(material.NewSolidColor(core.NewVec3(1, 0.5, 0.25)), 4))
	color := integrator.Trace(ray, geometry.NewCollection(light), sky, sampler)
	if !color.Equals(core.NewVec3(4, 2, 1), 1e-12) {
		t.Errorf("Expected emitted radiance (4,2,1), got %v", color)
	}

	wall := geometry.NewQuad(core.NewVec3(-1, -1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), absorber{})
	color = integrator.Trace(ray, geometry.NewCollection(wall), sky, sampler)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black from an absorber, got %v", color)
	}
}

func TestPathTracingDiffuseUnderUniformLight(t *testing.T) {
	// A convex diffuse object under a uniform white background reflects exactly its albedo
	albedo := core.NewVec3(0.5, 0.25, 1.0)
	world := geometry.NewCollection(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(albedo)))
	background := SolidBackground{Radiance: white}
	integrator := NewPathTracingIntegrator(5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(9)))

	for i := 0; i < 200; i++ {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
		color := integrator.Trace(ray, world, background, sampler)
		if !color.Equals(albedo, 1e-12) {
			t.Fatalf("Expected %v, got %v", albedo, color)
		}
	}
}

func TestPathTracingMirror(t *testing.T) {
	// A floor mirror reflects a downward ray up into the sky
	mirror := geometry.NewQuad(core.NewVec3(-5, 0, -5), core.NewVec3(0, 0, 10), core.NewVec3(10, 0, 0),
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0))
	integrator := NewPathTracingIntegrator(10)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	color := integrator.Trace(ray, geometry.NewCollection(mirror), NewSkyGradient(), mockSampler{value: 0.5})

	expected := core.NewVec3(0.4, 0.56, 0.8)
	if !color.Equals(expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestPathTracingIndexMatchedGlassIsInvisible(t *testing.T) {
	// With an index of 1 the sphere bends nothing, so the light behind it shows through
	glass := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewDielectric(1.0))
	light := geometry.NewQuad(core.NewVec3(-1, -1, -6), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.NewDiffuseLight(core.NewVec3(4, 4, 4)))
	world := geometry.NewCollection(glass, light)

	integrator := NewPathTracingIntegrator(10)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := integrator.Trace(ray, world, SolidBackground{}, mockSampler{value: 0.5})

	if !color.Equals(core.NewVec3(4, 4, 4), 1e-9) {
		t.Errorf("Expected the light's radiance through the glass, got %v", color)
	}
}
