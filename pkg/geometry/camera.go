package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// viewPlaneZ is the distance of the view plane in front of the eye
const viewPlaneZ = -1.0

// Camera is a pinhole camera fixed at the origin looking down -Z through a
// view plane of the given world-space extent.
type Camera struct {
	Width  float64 // View plane width in world units
	Height float64 // View plane height in world units
}

// NewCamera creates a camera with the given view plane extent
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Width:  width,
		Height: height,
	}
}

// Kind implements core.Object
func (c *Camera) Kind() core.Kind {
	return core.KindCamera
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return core.Vec3{}
}

// ViewPlanePoint returns the center of pixel (x, y) on the view plane.
// x counts from the left edge and y from the bottom edge of the image.
func (c *Camera) ViewPlanePoint(x, y, imageWidth, imageHeight int) core.Vec3 {
	pixelWidth := c.Width / float64(imageWidth)
	pixelHeight := c.Height / float64(imageHeight)

	return core.NewVec3(
		-c.Width/2+pixelWidth*(float64(x)+0.5),
		-c.Height/2+pixelHeight*(float64(y)+0.5),
		viewPlaneZ,
	)
}

// GetRay returns the unit-direction primary ray through pixel (x, y)
func (c *Camera) GetRay(x, y, imageWidth, imageHeight int) core.Ray {
	origin := c.Origin()
	direction := c.ViewPlanePoint(x, y, imageWidth, imageHeight).Subtract(origin).Normalize()
	return core.NewRay(origin, direction)
}
