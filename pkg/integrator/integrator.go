package integrator

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Integrator defines the interface for shading algorithms
type Integrator interface {
	// RayColor computes the unclamped color seen along a primary ray and
	// reports whether the ray hit a shape
	RayColor(ray core.Ray, s *scene.Scene) (core.Vec3, bool)
}
