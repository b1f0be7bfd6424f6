package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center        core.Vec3
	Radius        float64
	Material      material.Material
	ReverseNormal bool // Normals point toward the center (for enclosing spheres)
}

// NewSphere creates a new sphere with outward normals
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// NewInvertedSphere creates a sphere whose normals point toward its center
func NewInvertedSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	s := NewSphere(center, radius, material)
	s.ReverseNormal = true
	return s
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (HitRecord, bool) {
	// Work in sphere space
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	// Roots behind the origin are discarded
	if t1 < 0 {
		t1 = math.Inf(1)
	}
	if t2 < 0 {
		t2 = math.Inf(1)
	}
	root := math.Min(t1, t2)
	if math.IsInf(root, 1) {
		return HitRecord{}, false
	}

	delta := ray.Direction.Multiply(root)
	point := s.Center.Add(oc).Add(delta)

	return HitRecord{
		Point:    point,
		Normal:   s.normalAt(point),
		Distance: delta.Length(),
	}, true
}

func (s *Sphere) normalAt(point core.Vec3) core.Vec3 {
	if s.ReverseNormal {
		return s.Center.Subtract(point).Normalize()
	}
	return point.Subtract(s.Center).Normalize()
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() material.Material {
	return s.Material
}
