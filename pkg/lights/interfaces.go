package lights

import "github.com/df07/go-raycaster/pkg/core"

// Light interface for objects that illuminate shapes in the scene
type Light interface {
	core.Object

	// Sample returns the direction and distance FROM point TO the light
	Sample(point core.Vec3) LightSample

	// Attenuation returns the intensity falloff factor at the given distance.
	// Returns false when the light cannot contribute at that distance.
	Attenuation(distance float64) (float64, bool)
}

// LightSample contains information about a light as seen from a shading point
type LightSample struct {
	Point     core.Vec3 // Light position
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Emitted light color
}
