package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// constantSampler returns the same value for every dimension
type constantSampler struct {
	value float64
}

func (s constantSampler) Get1D() float64 { return s.value }
func (s constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value, s.value)
}
func (s constantSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.value, s.value, s.value)
}

func TestLambertian_ScatterAboveSurface(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: normal,
	}
	ray := core.NewRayAtTime(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), 0.5)

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		// normal + unit vector never points below the tangent plane
		if scatter.Scattered.Direction.Dot(normal) < -1e-12 {
			t.Fatalf("Scattered direction %v below surface", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
		if scatter.Scattered.Time != ray.Time {
			t.Fatalf("Scattered ray should keep time %f, got %f", ray.Time, scatter.Scattered.Time)
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	// Sample (0, 0) maps to the unit vector (0, 0, 1); with normal (0, 0, -1)
	// the sum cancels exactly.
	normal := core.NewVec3(0, 0, -1)
	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: normal}
	ray := core.NewRay(core.NewVec3(1, 2, 4), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(ray, hit, constantSampler{value: 0})
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback to normal %v, got %v", normal, scatter.Scattered.Direction)
	}
}

func TestLambertian_TextureLookup(t *testing.T) {
	checker := NewCheckerTextureFromColors(1.0, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	lambertian := NewTexturedLambertian(checker)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	even := HitRecord{Point: core.NewVec3(0.5, 0, 0.5), Normal: core.NewVec3(0, 1, 0)}
	odd := HitRecord{Point: core.NewVec3(1.5, 0, 0.5), Normal: core.NewVec3(0, 1, 0)}

	scatter, _ := lambertian.Scatter(ray, even, sampler)
	if scatter.Attenuation != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected even color, got %v", scatter.Attenuation)
	}
	scatter, _ = lambertian.Scatter(ray, odd, sampler)
	if scatter.Attenuation != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected odd color, got %v", scatter.Attenuation)
	}
}

func TestLambertian_CosineDistribution(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Normal: normal}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// For a cosine-weighted hemisphere E[cos θ] = 2/3
	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		scatter, _ := lambertian.Scatter(ray, hit, sampler)
		sum += scatter.Scattered.Direction.Normalize().Dot(normal)
	}
	mean := sum / n
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine ≈ 0.667, got %f", mean)
	}
}
