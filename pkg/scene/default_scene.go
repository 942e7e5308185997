package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// NewDefaultScene creates a red sphere resting above a gray floor in front of
// a blue back wall, lit by a single white light
func NewDefaultScene() *Scene {
	red := core.Material{
		Diffuse:  core.NewVec3(1, 0, 0),
		Specular: core.NewVec3(1, 1, 1),
	}
	gray := core.Material{
		Diffuse: core.NewVec3(0.6, 0.6, 0.6),
	}
	blue := core.Material{
		Diffuse: core.NewVec3(0, 0, 1),
	}

	light := lights.NewPointLight(core.NewVec3(1, 3, 0), core.NewVec3(2, 2, 2), 0.125, 0.125, 0.125)

	return NewScene(DefaultConfig()).MustAdd(
		geometry.NewCamera(0.5, 0.5),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, red),
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), gray),
		geometry.NewPlane(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1), blue),
		light,
	)
}

// NewShadowScene creates a small sphere floating between a light and a larger
// sphere so that the larger sphere and the floor both receive a hard shadow
func NewShadowScene() *Scene {
	white := core.Material{Diffuse: core.NewVec3(0.9, 0.9, 0.9)}
	green := core.Material{
		Diffuse:  core.NewVec3(0.1, 0.8, 0.2),
		Specular: core.NewVec3(0.5, 0.5, 0.5),
	}
	yellow := core.Material{Diffuse: core.NewVec3(0.9, 0.8, 0.1)}

	return NewScene(DefaultConfig()).MustAdd(
		geometry.NewCamera(1, 1),
		geometry.NewSphere(core.NewVec3(0, -0.5, -6), 1.5, green),
		geometry.NewSphere(core.NewVec3(0.8, 1.6, -4.5), 0.4, yellow),
		geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), white),
		lights.NewPointLight(core.NewVec3(2, 5, -2), core.NewVec3(1, 1, 1), 1, 0, 0),
	)
}

// NewTwoLightScene lights three spheres with a warm and a cool light whose
// contributions add where they overlap
func NewTwoLightScene() *Scene {
	white := core.Material{
		Diffuse:  core.NewVec3(0.8, 0.8, 0.8),
		Specular: core.NewVec3(1, 1, 1),
	}
	floor := core.Material{Diffuse: core.NewVec3(0.5, 0.5, 0.5)}

	warm := lights.NewPointLight(core.NewVec3(-4, 4, -2), core.NewVec3(1, 0.6, 0.3), 0.5, 0.05, 0.05)
	cool := lights.NewPointLight(core.NewVec3(4, 4, -2), core.NewVec3(0.3, 0.6, 1), 0.5, 0.05, 0.05)

	return NewScene(DefaultConfig()).MustAdd(
		geometry.NewCamera(1.6, 0.9),
		geometry.NewSphere(core.NewVec3(-2.2, 0, -7), 1, white),
		geometry.NewSphere(core.NewVec3(0, 0, -7), 1, white),
		geometry.NewSphere(core.NewVec3(2.2, 0, -7), 1, white),
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor),
		warm,
		cool,
	)
}
