package material

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Named colors used by the built-in scenes (0-255 channels)
var (
	Black     = core.NewVec3(0, 0, 0)
	White     = core.NewVec3(255, 255, 255)
	Red       = core.NewVec3(255, 0, 0)
	Green     = core.NewVec3(0, 128, 0)
	DarkGreen = core.NewVec3(0, 100, 0)
	Blue      = core.NewVec3(0, 0, 255)
	Aqua      = core.NewVec3(0, 255, 255)
	Cyan      = core.NewVec3(0, 255, 255)
	Orange    = core.NewVec3(255, 165, 0)
	Purple    = core.NewVec3(128, 0, 128)
	Brown     = core.NewVec3(165, 42, 42)
	Moccasin  = core.NewVec3(255, 228, 181)
	Gold      = core.NewVec3(255, 215, 0)
	Magenta   = core.NewVec3(255, 0, 255)
	Silver    = core.NewVec3(192, 192, 192)
)

var namedColors = map[string]core.Vec3{
	"black":     Black,
	"white":     White,
	"red":       Red,
	"green":     Green,
	"darkgreen": DarkGreen,
	"blue":      Blue,
	"aqua":      Aqua,
	"cyan":      Cyan,
	"orange":    Orange,
	"purple":    Purple,
	"brown":     Brown,
	"moccasin":  Moccasin,
	"gold":      Gold,
	"magenta":   Magenta,
	"silver":    Silver,
}

// ParseColor resolves a color name ("gold") or a hex triplet ("#ffd700")
func ParseColor(s string) (core.Vec3, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return core.NewVec3(float64(r), float64(g), float64(b)), nil
		}
	}
	return core.Vec3{}, fmt.Errorf("unknown color %q", s)
}
