package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/scene"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	TileSize   int                      // Size of each square tile in pixels (0 = whole image)
	NumWorkers int                      // Number of parallel workers (0 = use CPU count)
	Shading    integrator.ShadingConfig // Illumination settings
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
		Shading:    integrator.DefaultShadingConfig(),
	}
}

// Raycaster renders a scene by casting one primary ray per pixel
type Raycaster struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	width      int
	height     int
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaycaster validates the scene and image size and creates a raycaster
func NewRaycaster(s *scene.Scene, width, height int, config RenderConfig, logger core.Logger) (*Raycaster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", width, height)
	}
	if s == nil {
		return nil, fmt.Errorf("scene is nil")
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	if logger == nil {
		logger = NewNopLogger()
	}

	return &Raycaster{
		scene:      s,
		camera:     s.GetCamera(),
		width:      width,
		height:     height,
		config:     config,
		integrator: integrator.NewPhongIntegrator(config.Shading),
		logger:     logger,
	}, nil
}

// Render renders the whole image in parallel tiles and returns the raster.
// Output is identical for any worker count or tile size.
func (rc *Raycaster) Render(ctx context.Context) (*Raster, RenderStats, error) {
	startTime := time.Now()
	raster := NewRaster(rc.width, rc.height)
	tiles := NewTileGrid(rc.width, rc.height, rc.config.TileSize)

	pool := NewWorkerPool(rc, len(tiles), rc.config.NumWorkers)
	stats := RenderStats{Workers: pool.GetNumWorkers()}

	rc.logger.Printf("Rendering %dx%d (%d tiles, %d workers)...\n",
		rc.width, rc.height, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Raster: raster,
		})
	}

	// Collect every result before shutting the pool down
	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Add(result.Stats)
	}
	pool.Stop()

	if renderErr != nil {
		rc.logger.Printf("Render aborted: %v\n", renderErr)
		return nil, RenderStats{}, renderErr
	}

	stats.Elapsed = time.Since(startTime)
	rc.logger.Printf("Render completed in %v (%d of %d pixels hit)\n",
		stats.Elapsed, stats.HitPixels, stats.TotalPixels)

	return raster, stats, nil
}

// RenderBounds renders the pixels within bounds into raster
func (rc *Raycaster) RenderBounds(bounds image.Rectangle, raster *Raster) TileStats {
	stats := TileStats{}

	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for col := bounds.Min.X; col < bounds.Max.X; col++ {
			color, hit := rc.PixelColor(col, row)
			raster.Set(col, row, color)

			stats.Pixels++
			if hit {
				stats.Hits++
			}
		}
	}

	return stats
}

// PrimaryRay returns the camera ray through the pixel at column col and image
// row row (row 0 is the top of the image)
func (rc *Raycaster) PrimaryRay(col, row int) core.Ray {
	// The camera counts rows up from the bottom of the view plane
	return rc.camera.GetRay(col, rc.height-1-row, rc.width, rc.height)
}

// PixelColor returns the unclamped color of a pixel and whether its ray hit a shape
func (rc *Raycaster) PixelColor(col, row int) (core.Vec3, bool) {
	return rc.integrator.RayColor(rc.PrimaryRay(col, row), rc.scene)
}

// PixelSample describes what the primary ray of one pixel sees
type PixelSample struct {
	Ray   core.Ray
	Hit   integrator.Hit // Valid only when IsHit is set
	IsHit bool
	Point core.Vec3 // Hit point on the shape
	Color core.Vec3 // Unclamped shaded color, black on a miss
}

// InspectPixel traces the primary ray of a pixel and reports the nearest shape
// it hits together with the shaded color written for that pixel
func (rc *Raycaster) InspectPixel(col, row int) PixelSample {
	ray := rc.PrimaryRay(col, row)
	sample := PixelSample{Ray: ray}

	sample.Hit, sample.IsHit = integrator.Shoot(rc.scene, ray, integrator.NoExclusion)
	if !sample.IsHit {
		return sample
	}
	sample.Point = ray.At(sample.Hit.T)
	sample.Color, _ = rc.integrator.RayColor(ray, rc.scene)
	return sample
}
