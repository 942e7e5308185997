package core

// Logger interface for raycaster logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Kind identifies which variant of scene object a value is
type Kind int

const (
	KindCamera Kind = iota + 1
	KindSphere
	KindPlane
	KindLight
)

// String returns the lowercase name used in scene files
func (k Kind) String() string {
	switch k {
	case KindCamera:
		return "camera"
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindLight:
		return "light"
	default:
		return "unknown"
	}
}

// Object is anything that can be placed in a scene: a camera, a shape or a
// light. Scene validation and the renderer only accept the concrete types
// in geometry and lights and switch on them.
type Object interface {
	Kind() Kind
}

// Material holds the surface colors used by the shading model
type Material struct {
	Diffuse  Vec3 // Diffuse reflectance, components nominally in [0,1]
	Specular Vec3 // Specular reflectance, components nominally in [0,1]
}

// Shape is an Object that rays can hit
type Shape interface {
	Object
	// Intersect returns the nearest positive distance along the ray, or false on a miss
	Intersect(ray Ray) (float64, bool)
	// NormalAt returns the unit surface normal at a point on the shape
	NormalAt(point Vec3) Vec3
	GetMaterial() Material
}
