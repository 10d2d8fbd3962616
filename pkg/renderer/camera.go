package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RayGenerator produces primary rays for pixel (i, j), with j = 0 the top row
type RayGenerator interface {
	GetRay(i, j int, sampler core.Sampler) core.Ray
	ImageSize() (width, height int)
}

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	VUp           core.Vec3 // Up direction
	DefocusAngle  float64   // Cone angle in degrees through each pixel; 0 for a pinhole
	FocusDistance float64   // Distance from LookFrom to the plane of perfect focus
	ShutterOpen   float64   // Ray times are drawn from [ShutterOpen, ShutterClose)
	ShutterClose  float64
}

// DefaultCameraConfig returns a 400 pixel wide 16:9 camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          90,
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		VUp:           core.NewVec3(0, 1, 0),
		DefocusAngle:  0,
		FocusDistance: 10,
		ShutterOpen:   0,
		ShutterClose:  1,
	}
}

// Camera generates rays through a viewport placed on the focus plane
type Camera struct {
	config       CameraConfig
	width        int
	height       int
	center       core.Vec3
	pixel00      core.Vec3 // Center of the top-left pixel
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	width := max(1, config.Width)
	height := max(1, int(float64(width)/config.AspectRatio))

	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * float64(width) / float64(height)

	// Orthonormal camera basis
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight) // Image rows run downward

	pixelDeltaU := viewportU.Multiply(1 / float64(width))
	pixelDeltaV := viewportV.Multiply(1 / float64(height))

	viewportUpperLeft := config.LookFrom.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(config.DefocusAngle/2*math.Pi/180)

	return &Camera{
		config:       config,
		width:        width,
		height:       height,
		center:       config.LookFrom,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}
}

// ImageSize returns the image dimensions in pixels
func (c *Camera) ImageSize() (int, int) {
	return c.width, c.height
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns a ray through a random point of pixel (i, j).
// The origin is sampled on the defocus disk when DefocusAngle > 0.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		p := core.RandomInUnitDisk(sampler)
		origin = c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
	}

	time := c.config.ShutterOpen + sampler.Get1D()*(c.config.ShutterClose-c.config.ShutterOpen)
	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), time)
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.VUp != (core.Vec3{}) {
		result.VUp = override.VUp
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.ShutterOpen != 0 {
		result.ShutterOpen = override.ShutterOpen
	}
	if override.ShutterClose != 0 {
		result.ShutterClose = override.ShutterClose
	}
	return result
}
