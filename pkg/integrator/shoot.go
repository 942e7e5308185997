package integrator

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// NoExclusion disables object exclusion in Shoot
const NoExclusion = -1

// Hit describes the nearest intersection along a ray
type Hit struct {
	T     float64    // Distance along the ray
	Index int        // Index of the hit object in the scene
	Shape core.Shape // The hit object
}

// Shoot finds the nearest shape hit by the ray, skipping cameras, lights and
// the object at index exclude. Pass NoExclusion to consider every shape.
//
// Shapes are tested with a brute-force linear scan. The nearest positive
// distance wins; on an exact tie the shape that comes first in the scene wins.
func Shoot(s *scene.Scene, ray core.Ray, exclude int) (Hit, bool) {
	closest := Hit{T: math.Inf(1), Index: NoExclusion}
	found := false

	for i, obj := range s.Objects {
		if i == exclude {
			continue
		}

		shape, ok := obj.(core.Shape)
		if !ok {
			// Cameras and lights are not hittable
			continue
		}

		t, isHit := shape.Intersect(ray)
		if isHit && t > 0 && t < closest.T {
			closest = Hit{T: t, Index: i, Shape: shape}
			found = true
		}
	}

	if !found {
		return Hit{}, false
	}
	return closest, true
}
