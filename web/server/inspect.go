package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeIndex   int                    `json:"shapeIndex"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Material     map[string]interface{} `json:"material,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// handleInspect reports the first object seen through pixel (x, y)
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req SceneRequest
	if err := s.parseCommonSceneParams(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pixelY, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(&req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY))
}

// inspectPixel casts the camera ray of pixel (pixelX, pixelY) into the scene
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	camera := renderer.NewCamera(width, height, renderer.DefaultConfig().FOV)
	ray := camera.GetRay(pixelX, pixelY)

	index, hit := sceneObj.CastRay(ray.Origin, ray.Direction)
	if index < 0 {
		return InspectResponse{Hit: false, ShapeIndex: -1}
	}

	shape := sceneObj.GetShapes()[index]
	geometryType, properties := extractGeometryInfo(shape)
	return InspectResponse{
		Hit:          true,
		ShapeIndex:   index,
		GeometryType: geometryType,
		Point:        toArray(hit.Point),
		Normal:       toArray(hit.Normal),
		Distance:     hit.Distance,
		Material:     extractMaterialInfo(shape.GetMaterial()),
		Properties:   properties,
	}
}

// extractMaterialInfo lists the shading parameters of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"color": fmt.Sprintf("#%02x%02x%02x",
			clampByte(mat.Color.X), clampByte(mat.Color.Y), clampByte(mat.Color.Z)),
		"mirror":          mat.Mirror,
		"transparency":    mat.Transparency,
		"refractiveIndex": mat.RefractiveIndex,
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
		properties["inverted"] = geom.ReverseNormal
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{toArray(geom.P0), toArray(geom.P1), toArray(geom.P2)}
		properties["normal"] = toArray(geom.GetNormal())
		return "triangle", properties

	case *geometry.TriangleMesh:
		bounds := geom.GetBounds()
		properties["triangleCount"] = geom.GetTriangleCount()
		properties["boundsMin"] = toArray(bounds.Min)
		properties["boundsMax"] = toArray(bounds.Max)
		properties["size"] = toArray(bounds.Size())
		return "triangle_mesh", properties

	default:
		return "unknown", properties
	}
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func clampByte(c float64) int {
	return int(max(0, min(255, c)))
}
