package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1000.0))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_ZeroRadius(t *testing.T) {
	tests := []struct {
		name   string
		sphere *Sphere
	}{
		{"zero radius", NewSphere(core.NewVec3(0, 0, -2), 0, testMaterial)},
		{"negative radius clamped", NewSphere(core.NewVec3(0, 0, -2), -1, testMaterial)},
		{"moving zero radius", NewMovingSphere(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, -2), 0, testMaterial)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Aimed straight through the center, where the quadratic has a double root
			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
			hit, isHit := tt.sphere.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
			if isHit {
				t.Errorf("Expected miss, got hit at t=%f with normal %v", hit.T, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1000.0))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != testMaterial {
				t.Error("Expected hit record to carry the sphere material")
			}
		})
	}
}

func TestSphere_Hit_PrefersNearerRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		rayT      core.Interval
		expectHit bool
		expectedT float64
	}{
		{"both roots in range", core.NewInterval(0.001, 100), true, 4},
		{"near root excluded", core.NewInterval(4.5, 100), true, 6},
		{"both roots excluded", core.NewInterval(6.5, 100), false, 0},
		{"range ends before sphere", core.NewInterval(0.001, 3), false, 0},
		{"max is exclusive", core.NewInterval(0.001, 4), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.rayT)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_UV(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		u, v      float64
	}{
		{"positive x", core.NewVec3(3, 0, 0), core.NewVec3(-1, 0, 0), 0.5, 0.5},
		{"negative z", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), 0.75, 0.5},
		{"positive z", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1), 0.25, 0.5},
		{"bottom pole", core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0), -1, 0},
		{"top pole", core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0), -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.direction), core.NewInterval(0.001, 100))
			if !isHit {
				t.Fatal("Expected hit")
			}
			// u is undefined at the poles
			if tt.u >= 0 && math.Abs(hit.U-tt.u) > 1e-9 {
				t.Errorf("Expected u=%f, got %f", tt.u, hit.U)
			}
			if math.Abs(hit.V-tt.v) > 1e-9 {
				t.Errorf("Expected v=%f, got %f", tt.v, hit.V)
			}
		})
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5, testMaterial)

	bbox := sphere.BoundingBox()
	if bbox.Y.Min != -0.5 || bbox.Y.Max != 2.5 {
		t.Errorf("Expected box to cover the motion in Y [-0.5, 2.5], got %v", bbox.Y)
	}

	// A ray along X at y=2 only hits once the sphere has arrived
	origin := core.NewVec3(-5, 2, 0)
	direction := core.NewVec3(1, 0, 0)

	if _, isHit := sphere.Hit(core.NewRayAtTime(origin, direction, 0), core.NewInterval(0.001, 100)); isHit {
		t.Error("Expected miss at time 0")
	}
	hit, isHit := sphere.Hit(core.NewRayAtTime(origin, direction, 1), core.NewInterval(0.001, 100))
	if !isHit {
		t.Fatal("Expected hit at time 1")
	}
	if math.Abs(hit.T-4.5) > 1e-9 {
		t.Errorf("Expected t=4.5, got %f", hit.T)
	}
	if !hit.Normal.Equals(core.NewVec3(-1, 0, 0), 1e-9) {
		t.Errorf("Expected normal (-1,0,0), got %v", hit.Normal)
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2.0, testMaterial)
	bbox := sphere.BoundingBox()

	if !bbox.Min().Equals(core.NewVec3(-1, 0, 1), 1e-12) || !bbox.Max().Equals(core.NewVec3(3, 4, 5), 1e-12) {
		t.Errorf("Unexpected bounding box %v", bbox)
	}
}

// Every reported hit lies inside the query range and on the sphere surface
func TestSphere_HitWithinRangeAndOnSurface(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	sphere := NewSphere(core.NewVec3(0.3, -0.2, 0.1), 1.5, testMaterial)
	rayT := core.NewInterval(0.001, 50)

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := randomPoint(random, 4)
		direction := randomPoint(random, 1)
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, rayT)
		if !isHit {
			continue
		}
		hits++

		if !rayT.Contains(hit.T) {
			t.Fatalf("Hit t=%f outside range %v", hit.T, rayT)
		}
		distance := hit.Point.Subtract(sphere.Center).Length()
		if math.Abs(distance-sphere.Radius) > 1e-6 {
			t.Fatalf("Hit point %v is %f from center, expected %f", hit.Point, distance, sphere.Radius)
		}
		if hit.Normal.Dot(ray.Direction) > 0 {
			t.Fatalf("Normal %v does not oppose ray direction %v", hit.Normal, ray.Direction)
		}
	}

	if hits == 0 {
		t.Fatal("Expected at least some rays to hit the sphere")
	}
}

// randomPoint returns a point with each coordinate uniform in [-extent, extent)
func randomPoint(random *rand.Rand, extent float64) core.Vec3 {
	return core.NewVec3(
		(random.Float64()*2-1)*extent,
		(random.Float64()*2-1)*extent,
		(random.Float64()*2-1)*extent,
	)
}
