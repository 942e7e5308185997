package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// DefaultMaxObjects is the object capacity of a scene file
const DefaultMaxObjects = 128

// Config contains scene construction limits
type Config struct {
	MaxObjects int // Maximum number of objects (0 = unlimited)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxObjects: DefaultMaxObjects,
	}
}

// Scene is an ordered collection of cameras, shapes and lights.
// A scene must not be modified once rendering has started.
type Scene struct {
	Objects []core.Object
	config  Config
}

// NewScene creates an empty scene
func NewScene(config Config) *Scene {
	return &Scene{
		Objects: make([]core.Object, 0),
		config:  config,
	}
}

// Add appends an object to the scene, enforcing the configured object limit
func (s *Scene) Add(obj core.Object) error {
	if obj == nil {
		return fmt.Errorf("cannot add nil object")
	}
	if s.config.MaxObjects > 0 && len(s.Objects) >= s.config.MaxObjects {
		return fmt.Errorf("scene is full: limit of %d objects reached", s.config.MaxObjects)
	}
	s.Objects = append(s.Objects, obj)
	return nil
}

// MustAdd appends objects and panics if the limit is exceeded. Intended for
// built-in scenes whose size is known at compile time.
func (s *Scene) MustAdd(objs ...core.Object) *Scene {
	for _, obj := range objs {
		if err := s.Add(obj); err != nil {
			panic(err)
		}
	}
	return s
}

// Len returns the number of objects in the scene
func (s *Scene) Len() int {
	return len(s.Objects)
}

// GetCamera returns the first camera in the scene, or nil if there is none
func (s *Scene) GetCamera() *geometry.Camera {
	for _, obj := range s.Objects {
		if camera, ok := obj.(*geometry.Camera); ok {
			return camera
		}
	}
	return nil
}

// GetLights returns the lights in scene order
func (s *Scene) GetLights() []lights.Light {
	var result []lights.Light
	for _, obj := range s.Objects {
		if light, ok := obj.(lights.Light); ok {
			result = append(result, light)
		}
	}
	return result
}

// CountKind returns how many objects of the given kind the scene holds
func (s *Scene) CountKind(kind core.Kind) int {
	count := 0
	for _, obj := range s.Objects {
		if obj.Kind() == kind {
			count++
		}
	}
	return count
}

// Validate checks the invariants the renderer relies on: exactly one camera
// with a positive view plane, spheres with positive radius, planes with a
// usable normal and finite values everywhere.
func (s *Scene) Validate() error {
	if s.config.MaxObjects > 0 && len(s.Objects) > s.config.MaxObjects {
		return fmt.Errorf("scene has %d objects, limit is %d", len(s.Objects), s.config.MaxObjects)
	}

	cameras := 0
	for i, obj := range s.Objects {
		switch o := obj.(type) {
		case *geometry.Camera:
			cameras++
			if !(o.Width > 0 && o.Height > 0) || math.IsInf(o.Width, 0) || math.IsInf(o.Height, 0) {
				return fmt.Errorf("object %d: camera width and height must be positive, got %gx%g", i+1, o.Width, o.Height)
			}
		case *geometry.Sphere:
			if !(o.Radius > 0) || math.IsInf(o.Radius, 0) {
				return fmt.Errorf("object %d: sphere radius must be positive, got %g", i+1, o.Radius)
			}
			if !o.Center.IsFinite() || !finiteMaterial(o.Material) {
				return fmt.Errorf("object %d: sphere has non-finite values", i+1)
			}
		case *geometry.Plane:
			if o.Normal.LengthSquared() == 0 {
				return fmt.Errorf("object %d: plane normal must be nonzero", i+1)
			}
			if !o.Normal.IsFinite() || !o.Point.IsFinite() || !finiteMaterial(o.Material) {
				return fmt.Errorf("object %d: plane has non-finite values", i+1)
			}
		case *lights.PointLight:
			// A zero attenuation denominator is skipped while shading
			coefficients := core.NewVec3(o.RadialA0, o.RadialA1, o.RadialA2)
			if !o.Position.IsFinite() || !o.Color.IsFinite() || !coefficients.IsFinite() {
				return fmt.Errorf("object %d: light has non-finite values", i+1)
			}
		default:
			return fmt.Errorf("object %d: unsupported object type %T", i+1, obj)
		}
	}

	if cameras != 1 {
		return fmt.Errorf("scene must contain exactly one camera, found %d", cameras)
	}
	return nil
}

func finiteMaterial(m core.Material) bool {
	return m.Diffuse.IsFinite() && m.Specular.IsFinite()
}
