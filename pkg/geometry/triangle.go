package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	// parallelEpsilon rejects rays (nearly) parallel to the triangle plane
	parallelEpsilon = 1e-6
	// edgeTolerance admits hit points lying on a triangle edge
	edgeTolerance = 1e-4
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	P0, P1, P2 core.Vec3         // The three vertices, after any reordering
	Material   material.Material // Material of the triangle
	A, B, C, D float64           // Plane coefficients: Ax + By + Cz + D = 0
	normal     core.Vec3         // Cached unit normal
}

// NewTriangle creates a new triangle from three vertices.
// The face normal follows the winding (p1-p0)×(p2-p0); reverse swaps p0 and p2
// so the winding and the normal flip.
func NewTriangle(p0, p1, p2 core.Vec3, material material.Material, reverse bool) *Triangle {
	if reverse {
		p0, p2 = p2, p0
	}
	t := &Triangle{
		P0:       p0,
		P1:       p1,
		P2:       p2,
		Material: material,
	}

	// Precompute plane and normal
	t.computePlane()

	return t
}

// computePlane calculates and caches the plane coefficients and the unit normal
func (t *Triangle) computePlane() {
	n := t.P1.Subtract(t.P0).Cross(t.P2.Subtract(t.P0))
	t.A, t.B, t.C = n.X, n.Y, n.Z
	t.D = -n.Dot(t.P0)
	t.normal = n.Normalize()
}

// Intersect tests if a ray intersects with the triangle
func (t *Triangle) Intersect(ray core.Ray) (HitRecord, bool) {
	coef := t.A*ray.Direction.X + t.B*ray.Direction.Y + t.C*ray.Direction.Z
	free := t.A*ray.Origin.X + t.B*ray.Origin.Y + t.C*ray.Origin.Z + t.D
	if math.Abs(coef) < parallelEpsilon {
		return HitRecord{}, false
	}

	param := -free / coef
	if param < 0 {
		return HitRecord{}, false
	}

	point := ray.At(param)
	if !inAngle(t.P0, t.P1, t.P2, point) ||
		!inAngle(t.P1, t.P2, t.P0, point) ||
		!inAngle(t.P2, t.P0, t.P1, point) {
		return HitRecord{}, false
	}

	return HitRecord{
		Point:    point,
		Normal:   t.normal,
		Distance: point.Subtract(ray.Origin).Length(),
	}, true
}

// inAngle reports whether point lies inside the angle at vertex middle that is
// spanned by the edges toward left and right. Both projections are taken onto
// the middle->left edge, so comparing them compares the angles from that edge.
func inAngle(left, middle, right, point core.Vec3) bool {
	leftVec := left.Subtract(middle)
	rightVec := right.Subtract(middle)
	pointVec := point.Subtract(middle)

	rightAngleCos := rightVec.Dot(leftVec) / rightVec.Length()
	pointAngleCos := pointVec.Dot(leftVec) / pointVec.Length()

	return pointAngleCos >= rightAngleCos-edgeTolerance
}

// GetNormal returns the triangle's unit normal vector
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() material.Material {
	return t.Material
}
