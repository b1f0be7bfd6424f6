package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole at the origin looking down +Z.
// Pixel columns sweep an angle around the Y axis; pixel rows offset the ray's
// Y component linearly, so image rows grow along +Y.
type Camera struct {
	width, height int
	fov           float64
}

// NewCamera creates a camera for a width x height raster
func NewCamera(width, height int, fov float64) *Camera {
	return &Camera{width: width, height: height, fov: fov}
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return core.NewVec3(0, 0, 0)
}

// GetRay returns the primary ray for pixel column i and row j.
// The direction is (sin x, y, cos x) with x and y the pixel's offset from the
// image center as a fraction of the image size, scaled by the field of view.
func (c *Camera) GetRay(i, j int) core.Ray {
	x := (float64(i) - float64(c.width)/2) / float64(c.width) * c.fov
	y := (float64(j) - float64(c.height)/2) / float64(c.height) * c.fov
	return core.NewRay(c.Origin(), core.NewVec3(math.Sin(x), y, math.Cos(x)))
}
