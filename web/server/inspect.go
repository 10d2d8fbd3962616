package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// centerSampler aims every camera ray at the pixel center through the lens center
type centerSampler struct{}

func (centerSampler) Get1D() float64 { return 0.5 }
func (centerSampler) Get2D() core.Vec2 {
	return core.NewVec2(0.5, 0.5)
}
func (centerSampler) Get3D() core.Vec3 {
	return core.NewVec3(0.5, 0.5, 0.5)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractTextureInfo describes a texture, sampling solid colors directly
func extractTextureInfo(tex material.Texture, properties map[string]interface{}) {
	switch t := tex.(type) {
	case *material.SolidColor:
		properties["albedo"] = vecArray(t.Color)
		properties["color"] = hexColor(t.Color)
	case *material.CheckerTexture:
		properties["texture"] = "checker"
		properties["scale"] = 1 / t.InverseScale
	case *material.ImageTexture:
		properties["texture"] = "image"
		properties["size"] = [2]int{t.Width, t.Height}
	default:
		properties["texture"] = "unknown"
	}
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		extractTextureInfo(m.Albedo, properties)
		return "lambertian", properties

	case *material.Metal:
		extractTextureInfo(m.Albedo, properties)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.Light:
		emission := m.Emit(0, 0, core.Vec3{})
		properties["emission"] = vecArray(emission)
		properties["luminosity"] = m.Luminosity
		properties["color"] = hexColor(emission)
		return "light", properties

	case *material.Layered:
		outerType, outerProps := s.extractMaterialInfo(m.Outer)
		innerType, innerProps := s.extractMaterialInfo(m.Inner)
		properties["outer"] = map[string]interface{}{
			"type":       outerType,
			"properties": outerProps,
		}
		properties["inner"] = map[string]interface{}{
			"type":       innerType,
			"properties": innerProps,
		}
		return "layered", properties

	case *material.Mix:
		material1Type, material1Props := s.extractMaterialInfo(m.Material1)
		material2Type, material2Props := s.extractMaterialInfo(m.Material2)
		properties["material1"] = map[string]interface{}{
			"type":       material1Type,
			"properties": material1Props,
		}
		properties["material2"] = map[string]interface{}{
			"type":       material2Type,
			"properties": material2Props,
		}
		properties["ratio"] = m.Ratio
		properties["description"] = fmt.Sprintf("%.0f%% %s, %.0f%% %s",
			(1-m.Ratio)*100, material1Type, m.Ratio*100, material2Type)
		return "mixed", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains rich information about an object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Object    geometry.Hittable // The top-level scene object that was hit
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY) and
// returns the first object hit. The scene must already be preprocessed.
func inspectPixel(sceneObj *scene.Scene, camera renderer.RayGenerator, pixelX, pixelY int) InspectResult {
	ray := camera.GetRay(pixelX, pixelY, centerSampler{})

	rayT := core.NewInterval(0.001, math.Inf(1))
	hit, isHit := sceneObj.GetWorld().Hit(ray, rayT)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The BVH returns only the hit record; find the object it came from
	for _, object := range sceneObj.Objects.Objects() {
		if objectHit, ok := object.Hit(ray, core.NewInterval(0.001, hit.T+0.001)); ok && objectHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Object: object}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		if !geom.Motion.NearZero() {
			properties["motion"] = vecArray(geom.Motion)
			return "moving_sphere", properties
		}
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vecArray(geom.Corner)
		properties["u"] = vecArray(geom.U)
		properties["v"] = vecArray(geom.V)
		properties["normal"] = vecArray(geom.Normal)
		return "quad", properties

	case *geometry.Box:
		properties["min"] = vecArray(geom.Min)
		properties["max"] = vecArray(geom.Max)
		return "box", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req.Scene, scene.Options{
		Seed:   int64(req.Seed),
		Camera: renderer.CameraConfig{Width: req.Width, VFov: req.VFov},
	})
	if err != nil {
		s.writeSceneError(w, req.Scene, err)
		return
	}

	applyRenderRequest(sceneObj, req)
	if err := sceneObj.Preprocess(); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to prepare scene: %v", err))
		return
	}

	camera := renderer.NewCamera(sceneObj.CameraConfig)
	width, height := camera.ImageSize()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, camera, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Object)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}

	writeJSON(w, http.StatusOK, response)
}
