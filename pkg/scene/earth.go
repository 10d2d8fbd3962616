package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrTextureRequired is returned when a textured scene is built without an image path
var ErrTextureRequired = errors.New("scene requires a texture image path")

// NewEarthScene creates a globe wrapped in the equirectangular image at
// texturePath. The image is loaded eagerly so a bad path fails before
// rendering starts; no image ships with the repository.
func NewEarthScene(texturePath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if texturePath == "" {
		return nil, ErrTextureRequired
	}

	texture, err := loaders.LoadImageTexture(texturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load earth texture: %w", err)
	}

	cameraConfig := renderer.CameraConfig{
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          45,
		LookFrom:      core.NewVec3(3, 2, -1),
		LookAt:        core.NewVec3(0, 1, 0),
		VUp:           core.NewVec3(0, 1, 0),
		DefocusAngle:  0,
		FocusDistance: 10,
		ShutterOpen:   0,
		ShutterClose:  1,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene()
	s.CameraConfig = cameraConfig
	s.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewTexturedLambertian(texture)))

	return s, nil
}
