package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// Describe writes a numbered inventory of every object in the scene
func (s *Scene) Describe(w io.Writer) error {
	var b strings.Builder

	for i, obj := range s.Objects {
		fmt.Fprintf(&b, "%d) %s:\n", i+1, strings.ToUpper(obj.Kind().String()))

		switch o := obj.(type) {
		case *geometry.Camera:
			fmt.Fprintf(&b, "   Width: %f\n", o.Width)
			fmt.Fprintf(&b, "   Height: %f\n", o.Height)
		case *geometry.Sphere:
			fmt.Fprintf(&b, "   Position: %s\n", formatVec(o.Center))
			writeMaterial(&b, o.Material)
			fmt.Fprintf(&b, "   Radius: %f\n", o.Radius)
		case *geometry.Plane:
			fmt.Fprintf(&b, "   Position: %s\n", formatVec(o.Point))
			writeMaterial(&b, o.Material)
			fmt.Fprintf(&b, "   Normal: %s\n", formatVec(o.Normal))
		case *lights.PointLight:
			fmt.Fprintf(&b, "   Position: %s\n", formatVec(o.Position))
			fmt.Fprintf(&b, "   Color: %s\n", formatVec(o.Color))
			fmt.Fprintf(&b, "   Spot Direction: %s\n", formatVec(o.SpotDirection))
			fmt.Fprintf(&b, "   Radial-a0: %f\n", o.RadialA0)
			fmt.Fprintf(&b, "   Radial-a1: %f\n", o.RadialA1)
			fmt.Fprintf(&b, "   Radial-a2: %f\n", o.RadialA2)
			fmt.Fprintf(&b, "   Angular-a0: %f\n", o.AngularA0)
			fmt.Fprintf(&b, "   Theta: %f\n", o.Theta)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMaterial(b *strings.Builder, m core.Material) {
	fmt.Fprintf(b, "   Diffuse Color: %s\n", formatVec(m.Diffuse))
	fmt.Fprintf(b, "   Specular Color: %s\n", formatVec(m.Specular))
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("[%f, %f, %f]", v.X, v.Y, v.Z)
}
