package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// RayBias moves every cast ray's origin a small step along its direction so
// rays leaving a surface do not immediately hit it again.
const RayBias = 1e-5

// Scene contains all the elements needed for rendering.
// A scene is built once and must not be modified while a render is running.
type Scene struct {
	Name   string
	Shapes []geometry.Shape // Objects in the scene, in intersection order
	Lights []core.Vec3      // Point light positions
}

// NewScene creates an empty scene
func NewScene(name string) *Scene {
	return &Scene{
		Name:   name,
		Shapes: make([]geometry.Shape, 0),
		Lights: make([]core.Vec3, 0),
	}
}

// CastRay finds the nearest surface along a ray.
// It returns the index of the surface in Shapes and its hit record, or -1 and
// a record with Distance = +Inf when nothing is hit. Surfaces are tested in
// insertion order and only a strictly nearer hit replaces the current one.
func (s *Scene) CastRay(origin, direction core.Vec3) (int, geometry.HitRecord) {
	ray := core.NewRay(origin.Add(direction.Multiply(RayBias)), direction)

	closestIndex := -1
	closest := geometry.HitRecord{Distance: math.Inf(1)}
	for i, shape := range s.Shapes {
		if hit, ok := shape.Intersect(ray); ok && hit.Distance < closest.Distance {
			closest = hit
			closestIndex = i
		}
	}
	return closestIndex, closest
}

// AddShape appends a surface to the scene
func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// AddShapes appends several surfaces, keeping their order
func (s *Scene) AddShapes(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLight adds a point light
func (s *Scene) AddLight(position core.Vec3) {
	s.Lights = append(s.Lights, position)
}

// AddTriangles appends each triangle as its own surface
func (s *Scene) AddTriangles(triangles []*geometry.Triangle) {
	for _, t := range triangles {
		s.Shapes = append(s.Shapes, t)
	}
}

// AddBox adds the 12 triangles of an axis-aligned box, one material per face
func (s *Scene) AddBox(corner0, corner1 core.Vec3, materials [6]material.Material, reverse bool) {
	s.AddTriangles(geometry.NewBox(corner0, corner1, materials, reverse))
}

// AddMesh imports a mesh file and adds it as a single surface.
// The scene is left unchanged when the import fails.
func (s *Scene) AddMesh(path string, transform loaders.Transform, mat material.Material) (*geometry.TriangleMesh, error) {
	data, err := loaders.LoadMesh(path, transform)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}

	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh from %s: %w", path, err)
	}

	s.AddShape(mesh)
	return mesh, nil
}

// GetShapes returns the surfaces in intersection order
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// GetLights returns the point light positions
func (s *Scene) GetLights() []core.Vec3 {
	return s.Lights
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += s.countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, handling complex objects
func (s *Scene) countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.TriangleMesh:
		// Triangle meshes contain multiple triangles
		return obj.GetTriangleCount()
	default:
		// Regular shapes count as 1 primitive each
		return 1
	}
}
