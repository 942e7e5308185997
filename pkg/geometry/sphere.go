package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Kind implements core.Object
func (s *Sphere) Kind() core.Kind {
	return core.KindSphere
}

// GetMaterial returns the sphere's surface colors
func (s *Sphere) GetMaterial() core.Material {
	return s.Material
}

// Intersect returns the distance along the ray to the sphere, or false on a miss.
// The ray direction must be unit length.
//
// When the ray starts inside the sphere the far root is the only positive one
// and is returned; when both roots are positive the nearer one wins.
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0 with a = 1
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / 2
	t1 := (-b + sqrtD) / 2

	switch {
	case t0 <= 0 && t1 <= 0:
		// Sphere is entirely behind the ray origin
		return 0, false
	case t0 <= 0:
		return t1, true
	case t1 <= 0:
		return t0, true
	default:
		return math.Min(t0, t1), true
	}
}

// NormalAt returns the outward unit normal at a point on the sphere
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
