package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleMesh represents a collection of triangles sharing one material.
// Intersection is a linear scan; ties between equally distant triangles go to
// the first one in order.
type TriangleMesh struct {
	triangles []*Triangle
	material  material.Material
	bounds    core.AABB
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// material: material for all triangles
func NewTriangleMesh(vertices []core.Vec3, faces []int, material material.Material) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	numTriangles := len(faces) / 3
	triangles := make([]*Triangle, numTriangles)

	for i := 0; i < numTriangles; i++ {
		i0 := faces[i*3]
		i1 := faces[i*3+1]
		i2 := faces[i*3+2]

		// Bounds check
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i, idx, len(vertices))
			}
		}

		triangles[i] = NewTriangle(vertices[i0], vertices[i1], vertices[i2], material, false)
	}

	return NewTriangleMeshFromTriangles(triangles, material), nil
}

// NewTriangleMeshFromTriangles groups already built triangles into a mesh
func NewTriangleMeshFromTriangles(triangles []*Triangle, material material.Material) *TriangleMesh {
	points := make([]core.Vec3, 0, 3*len(triangles))
	for _, t := range triangles {
		points = append(points, t.P0, t.P1, t.P2)
	}
	return &TriangleMesh{
		triangles: triangles,
		material:  material,
		bounds:    core.NewAABBFromPoints(points...),
	}
}

// Intersect tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Intersect(ray core.Ray) (HitRecord, bool) {
	closest := HitRecord{Distance: math.Inf(1)}
	hitAnything := false

	for _, triangle := range tm.triangles {
		if hit, ok := triangle.Intersect(ray); ok && hit.Distance < closest.Distance {
			closest = hit
			hitAnything = true
		}
	}

	return closest, hitAnything
}

// GetMaterial returns the material shared by the whole mesh
func (tm *TriangleMesh) GetMaterial() material.Material {
	return tm.material
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}

// GetBounds returns the box enclosing every triangle vertex
func (tm *TriangleMesh) GetBounds() core.AABB {
	return tm.bounds
}

// GetTriangles returns the individual triangles (for debugging or special operations)
func (tm *TriangleMesh) GetTriangles() []*Triangle {
	return tm.triangles
}
