package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestBox_Hit(t *testing.T) {
	box := NewBox(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1), testMaterial)

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{"front face", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 4, true, core.NewVec3(0, 0, 1)},
		{"back face", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 4, true, core.NewVec3(0, 0, -1)},
		{"right face", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), 4, true, core.NewVec3(1, 0, 0)},
		{"left face", core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), 4, true, core.NewVec3(-1, 0, 0)},
		{"top face", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), 4, true, core.NewVec3(0, 1, 0)},
		{"bottom face", core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), 4, true, core.NewVec3(0, -1, 0)},
		{"from inside", core.NewVec3(0.2, 0.1, 0), core.NewVec3(0, 0, 1), 1, false, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.Hit(core.NewRay(tt.origin, tt.direction), core.NewInterval(0.001, 100))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestBox_CornersAndBounds(t *testing.T) {
	box := NewBox(core.NewVec3(2, 0, 3), core.NewVec3(0, 1, -1), testMaterial)

	if !box.Min.Equals(core.NewVec3(0, 0, -1), 0) || !box.Max.Equals(core.NewVec3(2, 1, 3), 0) {
		t.Errorf("Expected corners (0,0,-1)-(2,1,3), got %v-%v", box.Min, box.Max)
	}
	if len(box.Faces()) != 6 {
		t.Errorf("Expected 6 faces, got %d", len(box.Faces()))
	}

	bbox := box.BoundingBox()
	if bbox.X.Min > 0 || bbox.X.Max < 2 || bbox.Y.Min > 0 || bbox.Y.Max < 1 || bbox.Z.Min > -1 || bbox.Z.Max < 3 {
		t.Errorf("Bounding box %v does not enclose the box", bbox)
	}

	ray := core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(1, 0, 0))
	if _, isHit := box.Hit(ray, core.NewInterval(0.001, 100)); isHit {
		t.Error("Expected miss for a ray passing beside the box")
	}
}
