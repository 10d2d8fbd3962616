package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewCheckerScene creates two large checkered spheres stacked above and below the horizon
func NewCheckerScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := ballsCameraConfig()
	cameraConfig.DefocusAngle = 0
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene()
	s.CameraConfig = cameraConfig

	checker := material.NewTexturedLambertian(
		material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return s
}
