package integrator

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// DefaultPhongExponent controls highlight tightness
const DefaultPhongExponent = 20.0

// ShadingConfig contains illumination settings
type ShadingConfig struct {
	IncludeSpecular bool    // Add the Phong specular term to the result
	PhongExponent   float64 // Specular exponent
}

// DefaultShadingConfig returns diffuse-only shading, which reproduces the
// classic output of this raycaster
func DefaultShadingConfig() ShadingConfig {
	return ShadingConfig{
		IncludeSpecular: false,
		PhongExponent:   DefaultPhongExponent,
	}
}

// PhongIntegrator shades hits with per-light diffuse and specular terms,
// hard shadows and radial attenuation. There is no ambient term and no
// secondary bounce.
type PhongIntegrator struct {
	config ShadingConfig
}

// NewPhongIntegrator creates a new Phong integrator
func NewPhongIntegrator(config ShadingConfig) *PhongIntegrator {
	return &PhongIntegrator{
		config: config,
	}
}

// RayColor implements Integrator. Misses are black.
func (pi *PhongIntegrator) RayColor(ray core.Ray, s *scene.Scene) (core.Vec3, bool) {
	hit, isHit := Shoot(s, ray, NoExclusion)
	if !isHit {
		return core.Vec3{X: 0, Y: 0, Z: 0}, false
	}
	return pi.Illuminate(s, ray.At(hit.T), hit.Index), true
}

// Illuminate sums the contribution of every unoccluded light at point, which
// lies on the object at hitIndex.
func (pi *PhongIntegrator) Illuminate(s *scene.Scene, point core.Vec3, hitIndex int) core.Vec3 {
	color := core.Vec3{X: 0, Y: 0, Z: 0}
	if hitIndex < 0 || hitIndex >= len(s.Objects) {
		return color
	}

	shape, ok := s.Objects[hitIndex].(core.Shape)
	if !ok {
		return color
	}
	normal := shape.NormalAt(point)
	material := shape.GetMaterial()

	for _, light := range s.GetLights() {
		sample := light.Sample(point)

		// Shadow ray toward the light, ignoring the surface itself
		shadowRay := core.NewRay(point, sample.Direction)
		if blocker, blocked := Shoot(s, shadowRay, hitIndex); blocked && blocker.T < sample.Distance {
			continue
		}

		attenuation, ok := light.Attenuation(sample.Distance)
		if !ok {
			continue
		}

		contribution := pi.diffuse(normal, sample.Direction, material.Diffuse, sample.Emission)
		if pi.config.IncludeSpecular {
			contribution = contribution.Add(pi.specular(point, normal, sample.Direction, material.Specular, sample.Emission))
		}

		color = color.Add(contribution.Multiply(attenuation))
	}

	return color
}

// diffuse returns max(N·L, 0) * diffuseColor * lightColor
func (pi *PhongIntegrator) diffuse(normal, toLight, diffuseColor, lightColor core.Vec3) core.Vec3 {
	nDotL := normal.Dot(toLight)
	if nDotL <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return diffuseColor.MultiplyVec(lightColor).Multiply(nDotL)
}

// specular returns specularColor * lightColor * (V·R)^n where R is the light
// direction reflected about the normal and V is the unit view direction from
// the eye at the origin to the shaded point. Both point away from the viewer,
// so V·R equals the usual Phong cosine.
func (pi *PhongIntegrator) specular(point, normal, toLight, specularColor, lightColor core.Vec3) core.Vec3 {
	nDotL := normal.Dot(toLight)
	reflected := toLight.Reflect(normal)
	vDotR := point.Normalize().Dot(reflected)
	if vDotR <= 0 || nDotL <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return specularColor.MultiplyVec(lightColor).Multiply(math.Pow(vDotR, pi.config.PhongExponent))
}
