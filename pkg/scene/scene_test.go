package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func testMaterial() material.Material {
	return material.NewMaterial(material.White)
}

func TestCastRay_NearestSurface(t *testing.T) {
	s := NewScene("test")
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 10), 1, testMaterial())) // far
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, testMaterial()))  // near

	index, hit := s.CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if index != 1 {
		t.Fatalf("Expected nearer sphere (index 1), got %d", index)
	}
	if math.Abs(hit.Distance-4) > 1e-4 {
		t.Errorf("Expected distance ~4, got %f", hit.Distance)
	}
}

func TestCastRay_TieGoesToFirstInserted(t *testing.T) {
	s := NewScene("test")
	first := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewMaterial(material.Red))
	second := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewMaterial(material.Blue))
	s.AddShapes(first, second)

	index, _ := s.CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if index != 0 {
		t.Errorf("Expected first inserted surface on a tie, got index %d", index)
	}
}

func TestCastRay_Miss(t *testing.T) {
	s := NewScene("test")
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, testMaterial()))

	index, hit := s.CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if index != -1 {
		t.Errorf("Expected -1 on miss, got %d", index)
	}
	if !math.IsInf(hit.Distance, 1) {
		t.Errorf("Expected +Inf distance on miss, got %f", hit.Distance)
	}

	empty := NewScene("empty")
	if index, _ := empty.CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)); index != -1 {
		t.Errorf("Expected -1 for empty scene, got %d", index)
	}
}

func TestCastRay_BiasSkipsOriginSurface(t *testing.T) {
	s := NewScene("test")
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial()))

	// Leaving the sphere from a point on its surface
	index, _ := s.CastRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	if index != -1 {
		t.Errorf("Expected ray leaving the surface to miss it, got index %d", index)
	}

	// Without the bias the same ray touches the surface at t=0
	if _, ok := s.Shapes[0].Intersect(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))); !ok {
		t.Errorf("Expected unbiased ray to touch the surface")
	}
}

func TestCastRay_ShadowDistanceComparison(t *testing.T) {
	s := NewScene("test")
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, testMaterial()))

	origin := core.NewVec3(0, 0, 0)
	light := core.NewVec3(0, 0, 10)
	toLight := light.Subtract(origin)

	_, hit := s.CastRay(origin, toLight)
	if !(hit.Distance < toLight.Length()) {
		t.Errorf("Expected blocker distance %f to be less than light distance %f", hit.Distance, toLight.Length())
	}
}

func TestScene_AddBoxAndPrimitiveCount(t *testing.T) {
	s := NewScene("test")
	var mats [6]material.Material
	for i := range mats {
		mats[i] = testMaterial()
	}
	s.AddBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), mats, false)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, testMaterial()))
	s.AddLight(core.NewVec3(1, 2, 3))

	if len(s.GetShapes()) != 13 {
		t.Errorf("Expected 13 shapes, got %d", len(s.GetShapes()))
	}
	if s.GetPrimitiveCount() != 13 {
		t.Errorf("Expected 13 primitives, got %d", s.GetPrimitiveCount())
	}
	if len(s.GetLights()) != 1 || s.GetLights()[0] != core.NewVec3(1, 2, 3) {
		t.Errorf("Unexpected lights %v", s.GetLights())
	}
}

func TestScene_AddMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	content := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write mesh: %v", err)
	}

	s := NewScene("test")
	mesh, err := s.AddMesh(path, loaders.IdentityTransform(), testMaterial())
	if err != nil {
		t.Fatalf("AddMesh failed: %v", err)
	}
	if mesh.GetTriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.GetTriangleCount())
	}
	if len(s.Shapes) != 1 || s.GetPrimitiveCount() != 2 {
		t.Errorf("Expected 1 shape with 2 primitives, got %d shapes and %d primitives", len(s.Shapes), s.GetPrimitiveCount())
	}
}

func TestScene_AddMeshFailureLeavesSceneUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatalf("Failed to write mesh: %v", err)
	}

	s := NewScene("test")
	if _, err := s.AddMesh(path, loaders.IdentityTransform(), testMaterial()); err == nil {
		t.Fatal("Expected error for out-of-range face index")
	}
	if len(s.Shapes) != 0 {
		t.Errorf("Expected no shapes after failed import, got %d", len(s.Shapes))
	}
}
