package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose primary ray hit a shape
	Tiles       int           // Number of tiles rendered
	Workers     int           // Number of parallel workers used
	Elapsed     time.Duration // Wall-clock render time
}

// TileStats contains per-tile pixel counts
type TileStats struct {
	Pixels int // Pixels rendered in the tile
	Hits   int // Pixels whose primary ray hit a shape
}

// Add merges tile statistics into the render totals
func (rs *RenderStats) Add(tile TileStats) {
	rs.TotalPixels += tile.Pixels
	rs.HitPixels += tile.Hits
	rs.Tiles++
}

// HitRatio returns the fraction of pixels that hit a shape
func (rs *RenderStats) HitRatio() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.HitPixels) / float64(rs.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(pixels)
}
