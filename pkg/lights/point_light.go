package lights

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// PointLight is a positional light with quadratic radial falloff.
//
// The spot fields (SpotDirection, Theta, AngularA0) are carried
// from the scene description so they can be inspected and printed, but no
// angular attenuation is applied: every point light radiates uniformly.
type PointLight struct {
	Position      core.Vec3
	Color         core.Vec3
	SpotDirection core.Vec3
	Theta         float64
	RadialA0      float64
	RadialA1      float64
	RadialA2      float64
	AngularA0     float64
}

// NewPointLight creates a point light with radial attenuation coefficients a0, a1, a2
func NewPointLight(position, color core.Vec3, a0, a1, a2 float64) *PointLight {
	return &PointLight{
		Position: position,
		Color:    color,
		RadialA0: a0,
		RadialA1: a1,
		RadialA2: a2,
	}
}

// Kind implements core.Object
func (pl *PointLight) Kind() core.Kind {
	return core.KindLight
}

// Sample implements the Light interface
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	return LightSample{
		Point:     pl.Position,
		Direction: toLight.Normalize(),
		Distance:  toLight.Length(),
		Emission:  pl.Color,
	}
}

// Attenuation returns 1 / (a0 + a1·d + (a2·d)²).
// A zero or non-finite denominator means the light contributes nothing.
func (pl *PointLight) Attenuation(distance float64) (float64, bool) {
	a2d := pl.RadialA2 * distance
	denominator := pl.RadialA0 + pl.RadialA1*distance + a2d*a2d
	if denominator == 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return 0, false
	}
	return 1 / denominator, true
}
