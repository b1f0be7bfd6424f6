package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestSplitBands(t *testing.T) {
	tests := []struct {
		height        int
		numBands      int
		expectedBands int
	}{
		{100, 4, 4},
		{101, 4, 4},
		{5, 4, 3},
		{3, 4, 3},
		{1, 4, 1},
		{7, 1, 1},
		{0, 4, 0},
	}

	for _, tt := range tests {
		bands := SplitBands(tt.height, tt.numBands)
		if len(bands) != tt.expectedBands {
			t.Errorf("SplitBands(%d, %d): expected %d bands, got %d", tt.height, tt.numBands, tt.expectedBands, len(bands))
		}

		// Every row exactly once, in order
		covered := make([]int, tt.height)
		for i, band := range bands {
			if band.Index != i {
				t.Errorf("SplitBands(%d, %d): band %d has index %d", tt.height, tt.numBands, i, band.Index)
			}
			for row := band.StartRow; row < band.EndRow; row++ {
				covered[row]++
			}
		}
		for row, count := range covered {
			if count != 1 {
				t.Errorf("SplitBands(%d, %d): row %d covered %d times", tt.height, tt.numBands, row, count)
			}
		}
	}
}

func TestRender_EveryPixelOnce(t *testing.T) {
	config := DefaultConfig()
	config.NumBands = 3
	config.NumWorkers = 2

	r, err := NewRenderer(scene.NewSphereScene(), 17, 11, config, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	_, stats := r.Render()

	if stats.Pixels != 17*11 {
		t.Errorf("Expected %d pixels, got %d", 17*11, stats.Pixels)
	}
	if stats.CameraRays != 17*11 {
		t.Errorf("Expected %d camera rays, got %d", 17*11, stats.CameraRays)
	}
	if len(stats.BandDurations) != 3 {
		t.Errorf("Expected 3 band durations, got %d", len(stats.BandDurations))
	}
}

func TestRender_SingleRedSphere(t *testing.T) {
	r, err := NewRenderer(scene.NewSphereScene(), 64, 64, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	img, _ := r.RenderImage()

	center := img.RGBAAt(32, 32)
	if center.R == 0 || center.R <= center.G || center.R <= center.B {
		t.Errorf("Expected red-dominant center pixel, got %v", center)
	}

	black := color.RGBA{0, 0, 0, 255}
	for _, p := range [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}} {
		if got := img.RGBAAt(p[0], p[1]); got != black {
			t.Errorf("Expected black at %v, got %v", p, got)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	config := DefaultConfig()
	config.MaxDepth = 4

	render := func(numWorkers int) *Frame {
		config.NumWorkers = numWorkers
		r, err := NewRenderer(scene.NewRoomScene(), 40, 30, config, nil)
		if err != nil {
			t.Fatalf("NewRenderer failed: %v", err)
		}
		frame, _ := r.Render()
		return frame
	}

	first := render(0)
	for _, workers := range []int{0, 1, 3} {
		second := render(workers)
		for k := range first.Pixels {
			a, b := first.Pixels[k], second.Pixels[k]
			if !sameBits(a, b) {
				t.Fatalf("Workers %d: pixel %d differs: %v vs %v", workers, k, a, b)
			}
		}
	}
}

// sameBits compares channels bit for bit, so NaN matches NaN
func sameBits(a, b core.Vec3) bool {
	return math.Float64bits(a.X) == math.Float64bits(b.X) &&
		math.Float64bits(a.Y) == math.Float64bits(b.Y) &&
		math.Float64bits(a.Z) == math.Float64bits(b.Z)
}

func TestSameBits(t *testing.T) {
	nan := math.NaN()
	if !sameBits(core.NewVec3(nan, 1, 2), core.NewVec3(nan, 1, 2)) {
		t.Error("Expected identical NaN pixels to match")
	}
	if sameBits(core.NewVec3(100, 0, 0), core.NewVec3(math.Nextafter(100, 101), 0, 0)) {
		t.Error("Expected pixels differing below quantization to differ")
	}
}

func TestRender_MaxDepthBound(t *testing.T) {
	config := DefaultConfig()
	config.MaxDepth = 3

	r, err := NewRenderer(scene.NewRingsScene(), 20, 20, config, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	_, stats := r.Render()

	if stats.MaxDepthReached > config.MaxDepth {
		t.Errorf("Recursion reached depth %d, limit is %d", stats.MaxDepthReached, config.MaxDepth)
	}
	if stats.ReflectionRays == 0 {
		t.Error("Expected reflection rays in a mirrored scene")
	}
}

func TestNewRenderer_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		mutate        func(*Config)
	}{
		{"zero width", 0, 10, func(*Config) {}},
		{"negative height", 10, -1, func(*Config) {}},
		{"zero bands", 10, 10, func(c *Config) { c.NumBands = 0 }},
		{"negative depth", 10, 10, func(c *Config) { c.MaxDepth = -1 }},
		{"negative workers", 10, 10, func(c *Config) { c.NumWorkers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			if _, err := NewRenderer(scene.NewSphereScene(), tt.width, tt.height, config, nil); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestFrame_ToImage(t *testing.T) {
	frame := NewFrame(2, 1)
	frame.Set(0, 0, core.NewVec3(300, 128.9, -5))
	frame.Set(1, 0, core.NewVec3(1, 2, 3))

	img := frame.ToImage()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 128, 0, 255}) {
		t.Errorf("Expected clamped and truncated pixel, got %v", got)
	}
	if frame.At(1, 0) != core.NewVec3(1, 2, 3) {
		t.Errorf("Unexpected pixel %v", frame.At(1, 0))
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(100, 50, DefaultConfig().FOV)

	center := camera.GetRay(50, 25)
	if !vecNear(center.Direction, core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected center ray along +Z, got %v", center.Direction)
	}
	if center.Origin != (core.Vec3{}) {
		t.Errorf("Expected origin at zero, got %v", center.Origin)
	}

	// Left columns look toward -X, top rows toward -Y
	corner := camera.GetRay(0, 0)
	if corner.Direction.X >= 0 || corner.Direction.Y >= 0 {
		t.Errorf("Expected top-left ray toward -X and -Y, got %v", corner.Direction)
	}
}

func TestRenderStats_Merge(t *testing.T) {
	total := RenderStats{Pixels: 10, ShadowRays: 4, MaxDepthReached: 2}
	total.Merge(RenderStats{Pixels: 5, CameraRays: 5, ReflectionRays: 3, RefractionRays: 1, MaxDepthReached: 7})

	if total.Pixels != 15 || total.CameraRays != 5 || total.MaxDepthReached != 7 {
		t.Errorf("Unexpected merge result %+v", total)
	}
	if total.TotalRays() != 5+4+3+1 {
		t.Errorf("Expected 13 total rays, got %d", total.TotalRays())
	}
}
