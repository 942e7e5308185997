package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected uint8
	}{
		{"zero", 0, 0},
		{"one", 1, 255},
		{"half truncates", 0.5, 127},
		{"above one clamps", 3.7, 255},
		{"negative clamps", -0.2, 0},
		{"NaN is black", math.NaN(), 0},
		{"positive infinity is black", math.Inf(1), 0},
		{"negative infinity is black", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantize(tt.value); got != tt.expected {
				t.Errorf("quantize(%f) = %d, want %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestRaster_SetAndRGB(t *testing.T) {
	raster := NewRaster(3, 2)
	if len(raster.Pix) != 3*2*3 {
		t.Fatalf("Expected %d bytes, got %d", 18, len(raster.Pix))
	}

	raster.Set(2, 1, core.NewVec3(1, 0.5, 0))

	r, g, b := raster.RGB(2, 1)
	if r != 255 || g != 127 || b != 0 {
		t.Errorf("Expected (255,127,0), got (%d,%d,%d)", r, g, b)
	}

	// Row-major, last pixel occupies the last three bytes
	if raster.PixOffset(2, 1) != 15 {
		t.Errorf("Expected offset 15, got %d", raster.PixOffset(2, 1))
	}
	for i := 0; i < 15; i++ {
		if raster.Pix[i] != 0 {
			t.Errorf("Expected untouched byte %d to be zero, got %d", i, raster.Pix[i])
		}
	}
}

func TestRaster_ImplementsImage(t *testing.T) {
	raster := NewRaster(2, 2)
	raster.Set(1, 0, core.NewVec3(0, 1, 0))

	var img image.Image = raster
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}

	got := color.RGBAModel.Convert(img.At(1, 0)).(color.RGBA)
	if got != (color.RGBA{R: 0, G: 255, B: 0, A: 255}) {
		t.Errorf("Expected opaque green, got %v", got)
	}

	if outside := img.At(5, 5); outside != (color.RGBA{}) {
		t.Errorf("Expected transparent black outside bounds, got %v", outside)
	}
}
