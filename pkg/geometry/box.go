package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Box face indices, used to pick per-face materials
const (
	FaceNegX = iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
)

// NewBox creates the 12 triangles of an axis-aligned box spanning two opposite corners.
// materials holds one material per face in the order -X, +X, -Y, +Y, -Z, +Z.
// Normals point out of the box, or into it when reverse is set (for enclosing walls).
func NewBox(corner0, corner1 core.Vec3, materials [6]material.Material, reverse bool) []*Triangle {
	lo := core.NewVec3(math.Min(corner0.X, corner1.X), math.Min(corner0.Y, corner1.Y), math.Min(corner0.Z, corner1.Z))
	hi := core.NewVec3(math.Max(corner0.X, corner1.X), math.Max(corner0.Y, corner1.Y), math.Max(corner0.Z, corner1.Z))

	// pXYZ: 0 takes the low coordinate on that axis, 1 the high one
	p000 := lo
	p111 := hi
	p001 := core.NewVec3(lo.X, lo.Y, hi.Z)
	p010 := core.NewVec3(lo.X, hi.Y, lo.Z)
	p100 := core.NewVec3(hi.X, lo.Y, lo.Z)
	p011 := core.NewVec3(lo.X, hi.Y, hi.Z)
	p101 := core.NewVec3(hi.X, lo.Y, hi.Z)
	p110 := core.NewVec3(hi.X, hi.Y, lo.Z)

	// Windings are counter-clockwise seen from outside the box
	faces := [6][2][3]core.Vec3{
		FaceNegX: {{p000, p001, p010}, {p001, p011, p010}},
		FacePosX: {{p100, p110, p101}, {p110, p111, p101}},
		FaceNegY: {{p000, p100, p001}, {p100, p101, p001}},
		FacePosY: {{p010, p011, p110}, {p011, p111, p110}},
		FaceNegZ: {{p000, p010, p100}, {p010, p110, p100}},
		FacePosZ: {{p001, p101, p011}, {p101, p111, p011}},
	}

	triangles := make([]*Triangle, 0, 12)
	for face, pair := range faces {
		for _, v := range pair {
			triangles = append(triangles, NewTriangle(v[0], v[1], v[2], materials[face], reverse))
		}
	}
	return triangles
}

// NewUniformBox creates a box with the same material on every face
func NewUniformBox(corner0, corner1 core.Vec3, mat material.Material, reverse bool) []*Triangle {
	return NewBox(corner0, corner1, [6]material.Material{mat, mat, mat, mat, mat, mat}, reverse)
}

// NewRelativeBox creates an outward-facing box from a corner and its size along each axis
func NewRelativeBox(start, size core.Vec3, mat material.Material) []*Triangle {
	return NewUniformBox(start, start.Add(size), mat, false)
}
