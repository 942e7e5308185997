package loaders

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-raycaster/pkg/renderer"
)

// WritePPM writes the raster as a plain-text P3 PPM, top row first
func WritePPM(w io.Writer, raster *renderer.Raster) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", raster.Width, raster.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			r, g, b := raster.RGB(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("failed to write PPM pixel data: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM pixel data: %w", err)
	}
	return nil
}

// WritePNG encodes the raster as a PNG
func WritePNG(w io.Writer, raster *renderer.Raster) error {
	if err := png.Encode(w, raster); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveRaster writes the raster to filename, choosing PNG for a .png
// extension and PPM otherwise
func SaveRaster(filename string, raster *renderer.Raster) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".png") {
		err = WritePNG(file, raster)
	} else {
		err = WritePPM(file, raster)
	}

	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	return err
}

// LoadImage loads a PNG or JPEG image into a raster
func LoadImage(filename string) (*renderer.Raster, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return DecodeImage(file)
}

// DecodeImage decodes a PNG or JPEG stream into a raster
func DecodeImage(r io.Reader) (*renderer.Raster, error) {
	// Auto-detects PNG/JPEG from the stream header
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	raster := renderer.NewRaster(bounds.Dx(), bounds.Dy())

	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			// RGBA returns uint32 in [0, 65535]
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			i := raster.PixOffset(x, y)
			raster.Pix[i+0] = uint8(r >> 8)
			raster.Pix[i+1] = uint8(g >> 8)
			raster.Pix[i+2] = uint8(b >> 8)
		}
	}

	return raster, nil
}
