package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// parallelEpsilon is the smallest |N·D| treated as a real intersection
const parallelEpsilon = 1e-8

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3     // A point on the plane
	Normal   core.Vec3     // Unit normal vector
	Material core.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Material: material,
	}
}

// Kind implements core.Object
func (p *Plane) Kind() core.Kind {
	return core.KindPlane
}

// GetMaterial returns the plane's surface colors
func (p *Plane) GetMaterial() core.Material {
	return p.Material
}

// Intersect returns the distance along the ray to the plane, or false when the
// plane is behind or at the ray origin or the ray runs parallel to it.
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	normal := p.Normal.Normalize()

	denominator := normal.Dot(ray.Direction)
	if math.Abs(denominator) < parallelEpsilon {
		return 0, false
	}

	// Plane equation N·X + d = 0
	d := -normal.Dot(p.Point)
	t := -(normal.Dot(ray.Origin) + d) / denominator
	if t <= 0 {
		return 0, false
	}

	return t, true
}

// NormalAt returns the plane normal, which is the same everywhere
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal.Normalize()
}
