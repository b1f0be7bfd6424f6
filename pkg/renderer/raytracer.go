package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene interface to avoid circular imports
type Scene interface {
	CastRay(origin, direction core.Vec3) (int, geometry.HitRecord)
	GetShapes() []geometry.Shape
	GetLights() []core.Vec3
}

// Raytracer traces rays through a scene. A Raytracer is not safe for
// concurrent use; each worker owns one.
type Raytracer struct {
	scene  Scene
	camera *Camera
	config Config
	stats  RenderStats
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, camera *Camera, config Config) *Raytracer {
	return &Raytracer{
		scene:  scene,
		camera: camera,
		config: config,
	}
}

// Stats returns the counters accumulated since the last ResetStats
func (rt *Raytracer) Stats() RenderStats {
	return rt.stats
}

// ResetStats clears the accumulated counters
func (rt *Raytracer) ResetStats() {
	rt.stats = RenderStats{}
}

// RenderBand traces every pixel of the rows in band into frame.
// Only the band's slots of the frame are written.
func (rt *Raytracer) RenderBand(band Band, frame *Frame) {
	for j := band.StartRow; j < band.EndRow; j++ {
		for i := 0; i < frame.Width; i++ {
			ray := rt.camera.GetRay(i, j)
			rt.stats.CameraRays++
			frame.Set(i, j, rt.Trace(ray.Origin, ray.Direction, 0))
			rt.stats.Pixels++
		}
	}
}

// Trace returns the color seen along a ray.
// depth is the recursion level; reflection and refraction rays are only
// spawned while depth < MaxDepth.
func (rt *Raytracer) Trace(origin, direction core.Vec3, depth int) core.Vec3 {
	rt.stats.MaxDepthReached = max(rt.stats.MaxDepthReached, depth)

	index, hit := rt.scene.CastRay(origin, direction)
	if index < 0 {
		return rt.config.Background
	}

	mat := rt.scene.GetShapes()[index].GetMaterial()
	color := mat.Color.Multiply(rt.shade(hit))

	if depth >= rt.config.MaxDepth {
		return color
	}

	if mat.IsReflective() {
		rt.stats.ReflectionRays++
		mirrored := rt.Trace(hit.Point, reflect(direction, hit.Normal), depth+1)
		color = color.Multiply(1 - mat.Mirror).Add(mirrored.Multiply(mat.Mirror))
	}

	if mat.IsTransparent() {
		rt.stats.RefractionRays++
		through := rt.Trace(hit.Point, refract(direction, hit.Normal, mat.RefractiveIndex), depth+1)
		color = color.Multiply(1 - mat.Transparency).Add(through.Multiply(mat.Transparency))
	}

	return color
}

// shade returns the lighting factor at a hit, averaged over all lights.
// An occluded light contributes only the ambient term. Diffuse is not clamped,
// so surfaces facing away from a light are darkened by it.
func (rt *Raytracer) shade(hit geometry.HitRecord) float64 {
	lights := rt.scene.GetLights()
	if len(lights) == 0 {
		return 0
	}

	ambient := rt.config.Ka * rt.config.Ia
	total := 0.0
	for _, light := range lights {
		toLight := light.Subtract(hit.Point)

		rt.stats.ShadowRays++
		if _, blocker := rt.scene.CastRay(hit.Point, toLight); blocker.Distance < toLight.Length() {
			total += ambient
			continue
		}

		l := toLight.Normalize()
		diffuse := rt.config.Kd * hit.Normal.Dot(l)
		specular := rt.config.Ks * math.Pow(hit.Normal.Dot(reflect(l, hit.Normal)), rt.config.Shininess)
		total += ambient + diffuse + specular
	}

	return total / float64(len(lights))
}

// reflect mirrors v about the plane with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * n.Dot(v)))
}

// refract bends v at a surface with normal n and refractive index k.
// The incoming ray is taken to travel in a medium of index 1, so a single
// index describes both entering and leaving the surface.
func refract(v, n core.Vec3, k float64) core.Vec3 {
	v = v.Normalize()
	n1 := v.Length()
	n2 := k
	vn := v.Dot(n)
	return v.Add(n.Multiply((math.Sqrt((n2*n2-n1*n1)/(vn*vn)+1) - 1) * vn))
}
