package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/scene"
)

// createShootScene lines up two spheres and a back wall along -Z.
// Indices: 0 camera, 1 far sphere, 2 near sphere, 3 light, 4 wall.
func createShootScene() *scene.Scene {
	return scene.NewScene(scene.DefaultConfig()).MustAdd(
		geometry.NewCamera(1, 1),
		geometry.NewSphere(core.NewVec3(0, 0, -8), 1, core.Material{}),
		geometry.NewSphere(core.NewVec3(0, 0, -4), 1, core.Material{}),
		lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1, 0, 0),
		geometry.NewPlane(core.NewVec3(0, 0, -20), core.NewVec3(0, 0, 1), core.Material{}),
	)
}

func TestShoot_NearestHit(t *testing.T) {
	s := createShootScene()
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	tests := []struct {
		name          string
		exclude       int
		expectedIndex int
		expectedT     float64
	}{
		{"no exclusion finds nearest sphere", NoExclusion, 2, 3},
		{"excluding nearest finds farther sphere", 2, 1, 7},
		{"excluding camera has no effect", 0, 2, 3},
		{"out of range exclusion has no effect", 99, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := Shoot(s, ray, tt.exclude)
			if !isHit {
				t.Fatal("Expected hit, got miss")
			}
			if hit.Index != tt.expectedIndex {
				t.Errorf("Expected index %d, got %d", tt.expectedIndex, hit.Index)
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Shape != s.Objects[hit.Index] {
				t.Errorf("Hit shape does not match object at index %d", hit.Index)
			}
		})
	}
}

func TestShoot_Miss(t *testing.T) {
	s := createShootScene()

	// Looking away from every shape
	hit, isHit := Shoot(s, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), NoExclusion)
	if isHit {
		t.Errorf("Expected miss, got hit on object %d at t=%f", hit.Index, hit.T)
	}
}

func TestShoot_CameraOnlyScene(t *testing.T) {
	s := scene.NewScene(scene.DefaultConfig()).MustAdd(
		geometry.NewCamera(1, 1),
		lights.NewPointLight(core.NewVec3(0, 0, -1), core.NewVec3(1, 1, 1), 1, 0, 0),
	)

	if _, isHit := Shoot(s, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), NoExclusion); isHit {
		t.Error("Cameras and lights must never be hit")
	}
}

func TestShoot_NeverReturnsExcludedOrCamera(t *testing.T) {
	s := createShootScene()

	directions := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(0.05, 0.05, -1).Normalize(),
		core.NewVec3(0.2, -0.1, -1).Normalize(),
		core.NewVec3(-0.3, 0.3, -1).Normalize(),
	}

	for exclude := NoExclusion; exclude < len(s.Objects); exclude++ {
		for _, dir := range directions {
			hit, isHit := Shoot(s, core.NewRay(core.Vec3{}, dir), exclude)
			if !isHit {
				continue
			}
			if hit.Index == exclude {
				t.Errorf("Exclude %d, dir %v: returned excluded object", exclude, dir)
			}
			if s.Objects[hit.Index].Kind() == core.KindCamera {
				t.Errorf("Exclude %d, dir %v: returned camera", exclude, dir)
			}
			if hit.T <= 0 {
				t.Errorf("Exclude %d, dir %v: non-positive t=%f", exclude, dir, hit.T)
			}
		}
	}
}

func TestShoot_TieGoesToFirstObject(t *testing.T) {
	s := scene.NewScene(scene.DefaultConfig()).MustAdd(
		geometry.NewCamera(1, 1),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, core.Material{}),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, core.Material{}),
	)

	hit, isHit := Shoot(s, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), NoExclusion)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Index != 1 {
		t.Errorf("Expected first of two coincident spheres (index 1), got %d", hit.Index)
	}
}

func TestShoot_InsideSphere(t *testing.T) {
	s := scene.NewScene(scene.DefaultConfig()).MustAdd(
		geometry.NewCamera(1, 1),
		geometry.NewSphere(core.Vec3{}, 2, core.Material{}),
	)

	hit, isHit := Shoot(s, core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), NoExclusion)
	if !isHit {
		t.Fatal("Expected hit on the enclosing sphere")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
}
