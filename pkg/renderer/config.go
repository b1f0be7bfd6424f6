package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Config contains the shading constants and the parallel layout of a render
type Config struct {
	Ka         float64   // Ambient reflection coefficient
	Ia         float64   // Ambient light intensity
	Kd         float64   // Diffuse coefficient
	Ks         float64   // Specular coefficient
	Shininess  float64   // Specular exponent
	MaxDepth   int       // Maximum recursion depth for reflection and refraction rays
	FOV        float64   // Angular field of view in radians
	Background core.Vec3 // Color of rays that hit nothing
	NumBands   int       // Number of horizontal row bands rendered in parallel
	NumWorkers int       // Number of parallel workers (0 = one per band)
}

// DefaultConfig returns the standard shading constants
func DefaultConfig() Config {
	return Config{
		Ka:         1,
		Ia:         0.1,
		Kd:         1,
		Ks:         0.3,
		Shininess:  80,
		MaxDepth:   10,
		FOV:        math.Pi / 1.5,
		Background: core.NewVec3(0, 0, 0),
		NumBands:   4,
		NumWorkers: 0,
	}
}

// Validate reports configurations that cannot be rendered
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be non-negative, got %d", c.MaxDepth)
	}
	if c.NumBands <= 0 {
		return fmt.Errorf("number of bands must be positive, got %d", c.NumBands)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("number of workers must be non-negative, got %d", c.NumWorkers)
	}
	return nil
}
