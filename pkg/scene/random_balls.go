package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ballsCameraConfig frames the random balls field from a low angle
func ballsCameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		VUp:           core.NewVec3(0, 1, 0),
		DefocusAngle:  0.6,
		FocusDistance: 10,
		ShutterOpen:   0,
		ShutterClose:  1,
	}
}

// NewRandomBallsScene creates the field of small random spheres around three
// large ones. The layout is fixed by seed; with moving set, the small diffuse
// spheres bounce upward during the shutter interval.
func NewRandomBallsScene(seed int64, moving bool, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := ballsCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene()
	s.CameraConfig = cameraConfig
	s.SamplingConfig.Seed = seed

	random := rand.New(rand.NewSource(seed))
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	checker := material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	glass := material.NewDielectric(1.5)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep clear of the big metal sphere
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				diffuse := material.NewLambertian(albedo)
				if moving {
					end := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
					s.Add(geometry.NewMovingSphere(center, end, 0.2, diffuse))
				} else {
					s.Add(geometry.NewSphere(center, 0.2, diffuse))
				}
			case chooseMaterial < 0.95:
				albedo := randomColor(0.5, 1)
				fuzz := 0.5 * random.Float64()
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, glass))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
