package loaders

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/scene"
)

// SceneFileConfig controls scene file loading
type SceneFileConfig struct {
	MaxObjects int // Maximum number of objects per scene (0 = unlimited)
}

// DefaultSceneFileConfig returns the default scene file settings
func DefaultSceneFileConfig() SceneFileConfig {
	return SceneFileConfig{
		MaxObjects: scene.DefaultMaxObjects,
	}
}

// SceneStatement is one parsed object line: a kind followed by named values
type SceneStatement struct {
	Line   int
	Kind   string
	Params map[string]string
}

// ParseSceneFile parses scene text from an io.Reader and validates the result
func ParseSceneFile(reader io.Reader, config SceneFileConfig) (*scene.Scene, error) {
	s := scene.NewScene(scene.Config{MaxObjects: config.MaxObjects})

	lineNum := 0
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineNum++

		stmt, ok, err := parseStatement(scanner.Text(), lineNum)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		obj, err := stmt.build()
		if err != nil {
			return nil, err
		}
		if err := s.Add(obj); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// LoadSceneFile loads and parses a scene file
func LoadSceneFile(filename string, config SceneFileConfig) (*scene.Scene, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return ParseSceneFile(file, config)
}

// parseStatement splits a line into its kind and key/value pairs.
// Blank lines and comments report ok=false.
func parseStatement(line string, lineNum int) (SceneStatement, bool, error) {
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return SceneStatement{}, false, nil
	}

	fields, err := splitTopLevel(line)
	if err != nil {
		return SceneStatement{}, false, fmt.Errorf("line %d: %w", lineNum, err)
	}

	stmt := SceneStatement{
		Line:   lineNum,
		Kind:   strings.ToLower(strings.TrimSpace(fields[0])),
		Params: make(map[string]string),
	}

	for _, field := range fields[1:] {
		if strings.TrimSpace(field) == "" {
			continue
		}
		key, value, found := strings.Cut(field, ":")
		if !found {
			return SceneStatement{}, false, fmt.Errorf("line %d: expected key: value, got %q", lineNum, strings.TrimSpace(field))
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, dup := stmt.Params[key]; dup {
			return SceneStatement{}, false, fmt.Errorf("line %d: duplicate key %q", lineNum, key)
		}
		stmt.Params[key] = strings.TrimSpace(value)
	}

	return stmt, true, nil
}

// splitTopLevel splits on commas that are not inside brackets
func splitTopLevel(line string) ([]string, error) {
	var fields []string
	depth := 0
	start := 0

	for i, r := range line {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ']'")
			}
		case ',':
			if depth == 0 {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '['")
	}

	fields = append(fields, line[start:])
	return fields, nil
}

// build converts a statement into a scene object
func (st SceneStatement) build() (core.Object, error) {
	switch st.Kind {
	case "camera":
		return st.buildCamera()
	case "sphere":
		return st.buildSphere()
	case "plane":
		return st.buildPlane()
	case "light":
		return st.buildLight()
	default:
		return nil, fmt.Errorf("line %d: unknown object kind %q", st.Line, st.Kind)
	}
}

func (st SceneStatement) buildCamera() (core.Object, error) {
	if err := st.checkKeys("width", "height"); err != nil {
		return nil, err
	}
	width, err := st.getFloat("width", 0)
	if err != nil {
		return nil, err
	}
	height, err := st.getFloat("height", 0)
	if err != nil {
		return nil, err
	}
	return geometry.NewCamera(width, height), nil
}

func (st SceneStatement) buildSphere() (core.Object, error) {
	if err := st.checkKeys("color", "diffuse_color", "specular_color", "position", "radius"); err != nil {
		return nil, err
	}
	mat, err := st.getMaterial()
	if err != nil {
		return nil, err
	}
	position, err := st.getVec3("position", core.Vec3{})
	if err != nil {
		return nil, err
	}
	radius, err := st.getFloat("radius", 0)
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(position, radius, mat), nil
}

func (st SceneStatement) buildPlane() (core.Object, error) {
	if err := st.checkKeys("color", "diffuse_color", "specular_color", "position", "normal"); err != nil {
		return nil, err
	}
	mat, err := st.getMaterial()
	if err != nil {
		return nil, err
	}
	position, err := st.getVec3("position", core.Vec3{})
	if err != nil {
		return nil, err
	}
	normal, err := st.getVec3("normal", core.Vec3{})
	if err != nil {
		return nil, err
	}
	return geometry.NewPlane(position, normal, mat), nil
}

func (st SceneStatement) buildLight() (core.Object, error) {
	if err := st.checkKeys("color", "theta", "radial-a0", "radial-a1", "radial-a2",
		"position", "direction", "angular-a0"); err != nil {
		return nil, err
	}

	light := &lights.PointLight{}
	var err error
	if light.Color, err = st.getVec3("color", core.Vec3{}); err != nil {
		return nil, err
	}
	if light.Position, err = st.getVec3("position", core.Vec3{}); err != nil {
		return nil, err
	}
	if light.SpotDirection, err = st.getVec3("direction", core.Vec3{}); err != nil {
		return nil, err
	}
	if light.Theta, err = st.getFloat("theta", 0); err != nil {
		return nil, err
	}
	if light.RadialA0, err = st.getFloat("radial-a0", 0); err != nil {
		return nil, err
	}
	if light.RadialA1, err = st.getFloat("radial-a1", 0); err != nil {
		return nil, err
	}
	if light.RadialA2, err = st.getFloat("radial-a2", 0); err != nil {
		return nil, err
	}
	if light.AngularA0, err = st.getFloat("angular-a0", 0); err != nil {
		return nil, err
	}
	return light, nil
}

// getMaterial reads the surface colors. diffuse_color defaults to color.
func (st SceneStatement) getMaterial() (core.Material, error) {
	base, err := st.getVec3("color", core.Vec3{})
	if err != nil {
		return core.Material{}, err
	}
	diffuse, err := st.getVec3("diffuse_color", base)
	if err != nil {
		return core.Material{}, err
	}
	specular, err := st.getVec3("specular_color", core.Vec3{})
	if err != nil {
		return core.Material{}, err
	}
	return core.Material{Diffuse: diffuse, Specular: specular}, nil
}

// checkKeys rejects any parameter not in allowed
func (st SceneStatement) checkKeys(allowed ...string) error {
	for key := range st.Params {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("line %d: unknown %s property %q", st.Line, st.Kind, key)
		}
	}
	return nil
}

// getFloat gets a float parameter value with default fallback
func (st SceneStatement) getFloat(key string, defaultValue float64) (float64, error) {
	raw, ok := st.Params[key]
	if !ok {
		return defaultValue, nil
	}
	value, err := parseFinite(raw)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid number for %s: %q", st.Line, key, raw)
	}
	return value, nil
}

// parseFinite parses a float, rejecting NaN and infinities
func parseFinite(raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return value, nil
}

// getVec3 gets a bracketed three component vector with default fallback
func (st SceneStatement) getVec3(key string, defaultValue core.Vec3) (core.Vec3, error) {
	raw, ok := st.Params[key]
	if !ok {
		return defaultValue, nil
	}

	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return core.Vec3{}, fmt.Errorf("line %d: %s must be a vector like [x, y, z], got %q", st.Line, key, raw)
	}
	parts := strings.Split(raw[1:len(raw)-1], ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("line %d: %s needs 3 components, got %d", st.Line, key, len(parts))
	}

	var components [3]float64
	for i, part := range parts {
		value, err := parseFinite(strings.TrimSpace(part))
		if err != nil {
			return core.Vec3{}, fmt.Errorf("line %d: invalid %s component %q", st.Line, key, strings.TrimSpace(part))
		}
		components[i] = value
	}
	return core.NewVec3(components[0], components[1], components[2]), nil
}
