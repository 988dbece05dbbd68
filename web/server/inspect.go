package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectID     int                    `json:"objectId"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	ExitIndex    float64                `json:"exitIndex"`
	EnterIndex   float64                `json:"enterIndex"`
	Colour       [3]float64             `json:"colour"` // Shaded colour before gamma
	Properties   map[string]interface{} `json:"properties"`
}

// inspectPixel casts the centre ray of a pixel and returns the first visible hit, or nil
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (*scene.Intersection, error) {
	camera, err := renderer.NewCamera(sceneObj.Camera, width, height)
	if err != nil {
		return nil, err
	}
	ray := camera.GetRay(float64(pixelX)+0.5, float64(pixelY)+0.5, nil)
	hits := sceneObj.Intersections(ray, math.Inf(-1), math.Inf(1))
	return scene.FirstVisible(hits), nil
}

// extractMaterialInfo lists the Phong coefficients and pattern of a material
func extractMaterialInfo(m *material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"colour":          vec3Array(m.Colour),
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
	}

	switch m.Pattern.(type) {
	case nil:
	case *material.Stripes:
		properties["pattern"] = "stripes"
	case *material.Gradient:
		properties["pattern"] = "gradient"
	case *material.Rings:
		properties["pattern"] = "rings"
	case *material.Checkers:
		properties["pattern"] = "checkers"
	default:
		properties["pattern"] = "unknown"
	}
	return properties
}

// extractGeometryInfo names the primitive and its object-space extents
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		return "sphere", properties
	case *geometry.Plane:
		return "plane", properties
	case *geometry.Disc:
		return "disc", properties
	case *geometry.Box:
		return "box", properties
	case *geometry.Cylinder:
		addExtents(properties, geom.Min, geom.Max, geom.Capped)
		return "cylinder", properties
	case *geometry.Cone:
		addExtents(properties, geom.Min, geom.Max, geom.Capped)
		return "cone", properties
	default:
		return "unknown", properties
	}
}

// addExtents reports infinite bounds as null, since JSON has no infinity
func addExtents(properties map[string]interface{}, min, max float64, capped bool) {
	properties["min"] = finiteOrNil(min)
	properties["max"] = finiteOrNil(max)
	properties["capped"] = capped
}

func finiteOrNil(v float64) interface{} {
	if math.IsInf(v, 0) {
		return nil
	}
	return v
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	defaults := renderer.DefaultConfig()

	width, err := parseIntParam(query, "width", defaults.Width, minDimension, maxDimension)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	height, err := parseIntParam(query, "height", defaults.Height, minDimension, maxDimension)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "spheres"
	}
	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	hit, err := inspectPixel(sceneObj, width, height, pixelX, pixelY)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if hit == nil {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ObjectID: -1})
		return
	}

	obj := sceneObj.Objects[hit.ObjectID]
	geometryType, geometryProps := extractGeometryInfo(obj.Shape)
	colour := integrator.NewWhittedIntegrator().ShadeHit(sceneObj, hit, defaults.Sampling.MaxDepth)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectID:     hit.ObjectID,
		GeometryType: geometryType,
		Point:        vec3Array(hit.Point),
		Normal:       vec3Array(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		ExitIndex:    hit.ExitIndex,
		EnterIndex:   hit.EnterIndex,
		Colour:       vec3Array(colour),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Material),
			"geometry": geometryProps,
		},
	})
}
