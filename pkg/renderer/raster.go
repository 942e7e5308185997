package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Raster is an 8-bit RGB pixel buffer stored row-major, top row first.
// It implements image.Image so it can be handed to standard encoders.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // Width*Height*3 bytes, R G B per pixel
}

// NewRaster creates a black raster
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// PixOffset returns the index of the red byte of pixel (x, y)
func (r *Raster) PixOffset(x, y int) int {
	return (y*r.Width + x) * 3
}

// Set quantizes a linear color and stores it at (x, y)
func (r *Raster) Set(x, y int, c core.Vec3) {
	i := r.PixOffset(x, y)
	r.Pix[i+0] = quantize(c.X)
	r.Pix[i+1] = quantize(c.Y)
	r.Pix[i+2] = quantize(c.Z)
}

// RGB returns the stored channel values at (x, y)
func (r *Raster) RGB(x, y int) (uint8, uint8, uint8) {
	i := r.PixOffset(x, y)
	return r.Pix[i+0], r.Pix[i+1], r.Pix[i+2]
}

// ColorModel implements image.Image
func (r *Raster) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// At implements image.Image
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.RGBA{}
	}
	red, green, blue := r.RGB(x, y)
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

// quantize clamps a channel to [0,1] and truncates it to 8 bits.
// NaN and infinities render as 0.
func quantize(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = max(0.0, min(1.0, v))
	return uint8(255 * v)
}
