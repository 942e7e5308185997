package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Unclamped shaded color
	Properties   map[string]interface{} `json:"properties"`
}

// inspectPixel traces the primary ray of one pixel through the same raycaster
// that renders the image
func inspectPixel(sceneObj *scene.Scene, req *RenderRequest, pixelX, pixelY int) (renderer.PixelSample, error) {
	raycaster, err := renderer.NewRaycaster(sceneObj, req.Width, req.Height, req.renderConfig(), nil)
	if err != nil {
		return renderer.PixelSample{}, err
	}
	return raycaster.InspectPixel(pixelX, pixelY), nil
}

// extractMaterialInfo extracts material colors
func (s *Server) extractMaterialInfo(mat core.Material) map[string]interface{} {
	return map[string]interface{}{
		"diffuse":  vecArray(mat.Diffuse),
		"specular": vecArray(mat.Specular),
		"color": fmt.Sprintf("#%02x%02x%02x",
			int(clamp01(mat.Diffuse.X)*255), int(clamp01(mat.Diffuse.Y)*255), int(clamp01(mat.Diffuse.Z)*255)),
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape core.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, statusFor(r), "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene: "+err.Error())
		return
	}

	result, err := inspectPixel(sceneObj, inspectReq, pixelX, pixelY)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !result.IsHit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, ObjectIndex: integrator.NoExclusion})
		return
	}

	shape := result.Hit.Shape
	geometryType, geometryProps := s.extractGeometryInfo(shape)

	response := InspectResponse{
		Hit:          true,
		ObjectIndex:  result.Hit.Index,
		GeometryType: geometryType,
		Point:        vecArray(result.Point),
		Normal:       vecArray(shape.NormalAt(result.Point)),
		Distance:     result.Hit.T,
		Color:        vecArray(result.Color),
		Properties: map[string]interface{}{
			"material": s.extractMaterialInfo(shape.GetMaterial()),
			"geometry": geometryProps,
		},
	}

	// Encode before writing the status so a bad value still yields an error response
	data, err := json.Marshal(response)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to encode inspection: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
