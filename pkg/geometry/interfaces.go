package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal at intersection
	Distance float64   // Euclidean distance from the ray origin to Point
}

// Shape interface for objects that can be hit by rays.
//
// Distance in the returned HitRecord is the true distance from the ray origin,
// not the ray parameter, so hits of rays with different direction lengths
// can be compared directly.
type Shape interface {
	Intersect(ray core.Ray) (HitRecord, bool)
	GetMaterial() material.Material
}
