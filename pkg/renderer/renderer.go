package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Frame is a row-major buffer of linear colors, one per pixel
type Frame struct {
	Width, Height int
	Pixels        []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (i, j)
func (f *Frame) At(i, j int) core.Vec3 {
	return f.Pixels[j*f.Width+i]
}

// Set stores the color of pixel (i, j)
func (f *Frame) Set(i, j int, c core.Vec3) {
	f.Pixels[j*f.Width+i] = c
}

// ToImage quantizes the frame into an RGBA image
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			img.SetRGBA(i, j, f.At(i, j).ToRGBA())
		}
	}
	return img
}

// Band is a contiguous range of image rows [StartRow, EndRow)
type Band struct {
	Index    int
	StartRow int
	EndRow   int
}

// SplitBands partitions height rows into at most numBands contiguous bands of
// equal size, the last one possibly shorter. Every row belongs to exactly one band.
func SplitBands(height, numBands int) []Band {
	if height <= 0 || numBands <= 0 {
		return nil
	}

	rowsPerBand := (height + numBands - 1) / numBands // Ceiling division
	var bands []Band
	for start := 0; start < height; start += rowsPerBand {
		bands = append(bands, Band{
			Index:    len(bands),
			StartRow: start,
			EndRow:   min(start+rowsPerBand, height),
		})
	}
	return bands
}

// Renderer renders a scene into a frame using a pool of band workers
type Renderer struct {
	scene         Scene
	width, height int
	config        Config
	camera        *Camera
	logger        core.Logger
}

// NewRenderer creates a new renderer
func NewRenderer(scene Scene, width, height int, config Config, logger core.Logger) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		scene:  scene,
		width:  width,
		height: height,
		config: config,
		camera: NewCamera(width, height, config.FOV),
		logger: logger,
	}, nil
}

// Render traces every pixel and returns the frame with merged statistics.
// The call blocks until all bands are finished.
func (r *Renderer) Render() (*Frame, RenderStats) {
	start := time.Now()
	frame := NewFrame(r.width, r.height)
	bands := SplitBands(r.height, r.config.NumBands)

	numWorkers := r.config.NumWorkers
	if numWorkers == 0 {
		numWorkers = len(bands)
	}

	pool := NewWorkerPool(r.scene, r.camera, r.config, numWorkers, len(bands))
	r.logger.Printf("Rendering %dx%d in %d bands using %d workers...\n",
		r.width, r.height, len(bands), pool.GetNumWorkers())

	pool.Start()
	for _, band := range bands {
		pool.SubmitTask(BandTask{Band: band, TaskID: band.Index, Frame: frame})
	}

	stats := RenderStats{BandDurations: make([]time.Duration, len(bands))}
	for range bands {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
		stats.BandDurations[result.TaskID] = result.Duration
	}
	pool.Stop()

	stats.TotalDuration = time.Since(start)
	r.logger.Printf("Render completed in %v (%d rays, max depth %d)\n",
		stats.TotalDuration, stats.TotalRays(), stats.MaxDepthReached)

	return frame, stats
}

// RenderImage renders and quantizes the result into an RGBA image
func (r *Renderer) RenderImage() (*image.RGBA, RenderStats) {
	frame, stats := r.Render()
	return frame.ToImage(), stats
}
