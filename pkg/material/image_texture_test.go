package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestImageTexture_Value(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), // Row 0 (top in image coords)
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"bottom-left", 0.1, 0.1, black},
		{"bottom-right", 0.9, 0.1, white},
		{"top-left", 0.1, 0.9, white},
		{"top-right", 0.9, 0.9, black},
		{"u=1 edge stays in bounds", 1.0, 0.9, black},
		{"clamped below zero", -3, -3, black},
		{"clamped above one", 5, 5, black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := texture.Value(tt.u, tt.v, core.Vec3{})
			if !result.Equals(tt.expected, 0) {
				t.Errorf("UV(%g,%g): expected %v, got %v", tt.u, tt.v, tt.expected, result)
			}
		})
	}
}

func TestImageTexture_MissingData(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	result := texture.Value(0.5, 0.5, core.Vec3{})
	if result != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected debug cyan for empty texture, got %v", result)
	}
}

func TestCheckerTexture_Value(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerTextureFromColors(1.0, even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"origin cube", core.NewVec3(0.5, 0.5, 0.5), even},
		{"step in x", core.NewVec3(1.5, 0.5, 0.5), odd},
		{"step in x and z", core.NewVec3(1.5, 0.5, 1.5), even},
		{"negative cube", core.NewVec3(-0.5, 0.5, 0.5), odd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checker.Value(0, 0, tt.point)
			if result != tt.expected {
				t.Errorf("Expected %v at %v, got %v", tt.expected, tt.point, result)
			}
		})
	}
}

func TestSolidColor_Value(t *testing.T) {
	color := core.NewVec3(0.2, 0.4, 0.6)
	solid := NewSolidColor(color)
	if solid.Value(0.3, 0.7, core.NewVec3(9, 9, 9)) != color {
		t.Error("Solid color should ignore UV and position")
	}
}
