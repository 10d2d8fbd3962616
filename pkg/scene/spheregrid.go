package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to nonlinear LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc = lc * lc * lc
	mc = mc * mc * mc
	sc = sc * sc * sc

	// LMS to linear RGB
	r := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	blue := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a grid of rainbow-colored metal spheres on a gray ground
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,                        // Slightly narrower field of view for better framing
		LookFrom:      core.NewVec3(4.5, 6, 18),    // Farther back and slightly raised
		LookAt:        core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		VUp:           core.NewVec3(0, 1, 0),
		DefocusAngle:  0.1, // Small depth of field for some focus variation
		FocusDistance: 14.5,
		ShutterOpen:   0,
		ShutterClose:  1,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene()
	s.CameraConfig = cameraConfig
	s.SamplingConfig.MaxDepth = 40

	// A bright sun-like light high and to the side
	s.AddSphereLight(
		core.NewVec3(20, 25, 20),
		8,
		core.NewVec3(12.0, 11.5, 10.0), // warm white emission
	)

	s.Add(NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 200, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	gridSize := 20

	// Fit the grid into roughly 9x9 units regardless of gridSize
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)

	sphereRadius := spacing * 0.35
	minRadius := 0.02
	maxRadius := 0.35
	sphereRadius = math.Max(minRadius, math.Min(maxRadius, sphereRadius))

	baseLightness := 0.65
	minChroma := 0.05 // near gray
	maxChroma := 0.25 // vivid

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue varies across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			color := oklchToRGB(lightness, chroma, hue)
			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0

			s.Add(geometry.NewSphere(position, sphereRadius, material.NewMetal(color, fuzz)))
		}
	}

	return s
}
