package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for an id that is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Options carries the per-request knobs a scene builder may use
type Options struct {
	Seed        int64                 // Layout seed for randomized scenes
	TexturePath string                // Image for textured scenes; required by earth
	Camera      renderer.CameraConfig // Non-zero fields override the scene camera
}

type builder func(opts Options) (*Scene, error)

type registryEntry struct {
	info  SceneInfo
	build builder
}

var registry = []registryEntry{
	{
		info: SceneInfo{ID: "default", Name: "Default Scene", Description: "Glass, metal and coated spheres on a ground quad"},
		build: func(opts Options) (*Scene, error) {
			return NewDefaultScene(opts.Camera), nil
		},
	},
	{
		info: SceneInfo{ID: "random-balls", Name: "Random Balls", Description: "Field of random small spheres around three large ones"},
		build: func(opts Options) (*Scene, error) {
			return NewRandomBallsScene(opts.Seed, false, opts.Camera), nil
		},
	},
	{
		info: SceneInfo{ID: "motion", Name: "Motion Blur", Description: "Random balls with bouncing diffuse spheres"},
		build: func(opts Options) (*Scene, error) {
			return NewRandomBallsScene(opts.Seed, true, opts.Camera), nil
		},
	},
	{
		info: SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Cornell box with a tall block and a glass sphere"},
		build: func(opts Options) (*Scene, error) {
			return NewCornellScene(opts.Camera), nil
		},
	},
	{
		info: SceneInfo{ID: "checker", Name: "Checkered Spheres", Description: "Two large spheres with a checker texture"},
		build: func(opts Options) (*Scene, error) {
			return NewCheckerScene(opts.Camera), nil
		},
	},
	{
		info: SceneInfo{ID: "earth", Name: "Earth", Description: "Globe wrapped in an image texture (requires a texture path)"},
		build: func(opts Options) (*Scene, error) {
			return NewEarthScene(opts.TexturePath, opts.Camera)
		},
	},
	{
		info: SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "Grid of rainbow-colored metallic spheres"},
		build: func(opts Options) (*Scene, error) {
			return NewSphereGridScene(opts.Camera), nil
		},
	},
}

// ListScenes returns the built-in scenes in display order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(registry))
	for i, entry := range registry {
		scenes[i] = entry.info
	}
	return scenes
}

// Create builds the scene registered under id
func Create(id string, opts Options) (*Scene, error) {
	for _, entry := range registry {
		if entry.info.ID == id {
			s, err := entry.build(opts)
			if err != nil {
				return nil, fmt.Errorf("failed to create scene %q: %w", id, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}
