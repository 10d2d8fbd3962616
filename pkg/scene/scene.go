package scene

import (
	"errors"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrEmptyScene is returned by Preprocess when there is nothing to render
var ErrEmptyScene = errors.New("scene has no objects")

// Scene contains all the elements needed for rendering
type Scene struct {
	Objects        *geometry.Collection // Owns every object; lights are indices into it
	Background     integrator.Background
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	UseBVH         bool // Accelerate intersection with a BVH (otherwise scan Objects)

	world geometry.Hittable // Set by Preprocess
}

// NewScene creates an empty scene with the sky gradient, default camera and
// default sampling, accelerated by a BVH
func NewScene() *Scene {
	return &Scene{
		Objects:        geometry.NewCollection(),
		Background:     integrator.NewSkyGradient(),
		CameraConfig:   renderer.DefaultCameraConfig(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
		UseBVH:         true,
	}
}

// Add adds objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, object := range objects {
		s.Objects.Add(object)
	}
}

// AddLight adds an emissive object and records it as a light
func (s *Scene) AddLight(object geometry.Hittable) {
	s.Objects.AddLight(object)
}

// AddSphereLight adds a spherical diffuse light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.AddLight(geometry.NewSphere(center, radius, material.NewDiffuseLight(emission)))
}

// AddQuadLight adds a rectangular area light to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	s.AddLight(geometry.NewQuad(corner, u, v, material.NewDiffuseLight(emission)))
}

// NewGroundQuad creates a large quad to stand in for an infinite ground plane.
// The quad is horizontal, centered at the given point, with normal (0,1,0).
func NewGroundQuad(center core.Vec3, size float64, material material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, material)
}

// Preprocess finalizes the scene for rendering: with UseBVH the objects are
// built into a BVH whose split axes are drawn from the sampling seed.
// It must be called after the last Add and before rendering.
func (s *Scene) Preprocess() error {
	if s.Objects == nil || s.Objects.Len() == 0 {
		return ErrEmptyScene
	}

	if s.UseBVH {
		random := rand.New(rand.NewSource(s.SamplingConfig.Seed))
		s.world = geometry.NewBVH(s.Objects.Objects(), random)
	} else {
		s.world = s.Objects
	}
	return nil
}

// GetWorld returns the hittable the renderer intersects rays with.
// Before Preprocess it is the flat object collection.
func (s *Scene) GetWorld() geometry.Hittable {
	if s.world == nil {
		return s.Objects
	}
	return s.world
}

// GetBackground returns the radiance seen by escaping rays
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects.Objects() {
		switch obj := object.(type) {
		case *geometry.Box:
			count += len(obj.Faces())
		default:
			count++
		}
	}
	return count
}

// BVHStats reports the shape of the hierarchy built by Preprocess
func (s *Scene) BVHStats() (geometry.BVHStats, bool) {
	if node, ok := s.world.(*geometry.BVHNode); ok {
		return node.Stats(), true
	}
	return geometry.BVHStats{}, false
}

// NewRaytracer creates a raytracer for this scene with its camera and sampling settings
func (s *Scene) NewRaytracer(logger core.Logger) *renderer.Raytracer {
	return renderer.NewRaytracer(s, renderer.NewCamera(s.CameraConfig), s.SamplingConfig, logger)
}
