package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		LookFrom:      core.NewVec3(0, 0.75, 2), // Higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Center sphere
		VUp:           core.NewVec3(0, 1, 0),
		DefocusAngle:  1.0,
		FocusDistance: 3.0,
		ShutterOpen:   0,
		ShutterClose:  1,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene()
	s.CameraConfig = cameraConfig
	s.SamplingConfig.SamplesPerPixel = 200

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	// Glass coating over a red base
	coatedRed := material.NewLayered(materialGlass, lambertianRed)

	// Satin blue: mostly diffuse with a 30% chance of a glossy bounce
	blue := core.NewVec3(0.2, 0.3, 0.7)
	satinBlue := material.NewMix(material.NewLambertian(blue), material.NewMetal(blue, 0.1), 0.3)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, coatedRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.2, -0.4), 0.2, satinBlue),
		// Ground quad instead of infinite plane (large but finite for proper bounds)
		NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen),
	)

	// Warm sun high behind the camera
	s.AddSphereLight(core.NewVec3(30, 30.5, 15), 10, core.NewVec3(15.0, 14.0, 13.0))

	return s
}
