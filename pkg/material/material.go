package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface is shaded. Color channels are in the 0-255 range.
//
// Mirror and Transparency are blend weights for the reflected and refracted
// contributions. They are not bounded: values outside [0, 1] are blended
// linearly and over- or under-saturate the result.
type Material struct {
	Color           core.Vec3
	Mirror          float64 // Weight of the reflected ray
	Transparency    float64 // Weight of the refracted ray
	RefractiveIndex float64 // Bend of the refracted ray (1 = no bend)
}

// NewMaterial creates an opaque, non-reflective material
func NewMaterial(color core.Vec3) Material {
	return Material{Color: color, RefractiveIndex: 1}
}

// NewMirror creates a material that blends in a reflection with the given weight
func NewMirror(color core.Vec3, mirror float64) Material {
	return Material{Color: color, Mirror: mirror, RefractiveIndex: 1}
}

// NewTransparent creates a material with both a reflection and a refraction weight
func NewTransparent(color core.Vec3, mirror, transparency, refractiveIndex float64) Material {
	return Material{
		Color:           color,
		Mirror:          mirror,
		Transparency:    transparency,
		RefractiveIndex: refractiveIndex,
	}
}

// IsReflective reports whether the material spawns a reflection ray
func (m Material) IsReflective() bool {
	return m.Mirror > 0
}

// IsTransparent reports whether the material spawns a refraction ray
func (m Material) IsTransparent() bool {
	return m.Transparency > 0
}

func (m Material) String() string {
	return fmt.Sprintf("Material{color=(%g, %g, %g) mirror=%g transparency=%g index=%g}",
		m.Color.X, m.Color.Y, m.Color.Z, m.Mirror, m.Transparency, m.RefractiveIndex)
}
