package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestCreate_BuiltinScenes(t *testing.T) {
	tests := []struct {
		name           string
		expectedShapes int
		expectedLights int
	}{
		{"room", 56, 2},  // 12 walls + 3 boxes + 8 spheres
		{"rings", 25, 2}, // enclosing sphere + 2 rings of 12
		{"sphere", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.name, DefaultSceneOptions())
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.name, err)
			}
			if len(s.Shapes) != tt.expectedShapes {
				t.Errorf("Expected %d shapes, got %d", tt.expectedShapes, len(s.Shapes))
			}
			if len(s.Lights) != tt.expectedLights {
				t.Errorf("Expected %d lights, got %d", tt.expectedLights, len(s.Lights))
			}
		})
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	if _, err := Create("cornell", DefaultSceneOptions()); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestCreate_MeshScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v -1 -1 0\nv 1 -1 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatalf("Failed to write mesh: %v", err)
	}

	options := DefaultSceneOptions()
	options.MeshPath = path
	s, err := Create("mesh", options)
	if err != nil {
		t.Fatalf("Create(mesh) failed: %v", err)
	}

	// 12 wall triangles + 1 mesh
	if len(s.Shapes) != 13 {
		t.Errorf("Expected 13 shapes, got %d", len(s.Shapes))
	}
	if s.GetPrimitiveCount() != 13 {
		t.Errorf("Expected 13 primitives, got %d", s.GetPrimitiveCount())
	}

	// The model sits at z=10 in front of the camera
	index, hit := s.CastRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if index != 12 {
		t.Errorf("Expected camera ray to hit the model, got index %d", index)
	}
	if hit.Distance < 9.9 || hit.Distance > 10.1 {
		t.Errorf("Expected model hit at ~10, got %f", hit.Distance)
	}
}

func TestCreate_MeshSceneErrors(t *testing.T) {
	if _, err := Create("mesh", DefaultSceneOptions()); err == nil {
		t.Error("Expected error when no model path is given")
	}

	options := DefaultSceneOptions()
	options.MeshPath = filepath.Join(t.TempDir(), "missing.obj")
	if _, err := Create("mesh", options); err == nil {
		t.Error("Expected error for missing model file")
	}
}

func TestRoomScene_CameraIsEnclosed(t *testing.T) {
	s := NewRoomScene()

	// Every direction from the camera hits something
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	for _, dir := range directions {
		if index, _ := s.CastRay(core.NewVec3(0, 0, 0), dir); index == -1 {
			t.Errorf("Expected ray %v to hit the room", dir)
		}
	}
}

func TestBuiltinSceneNames(t *testing.T) {
	expected := []string{"mesh", "rings", "room", "sphere"}
	names := BuiltinSceneNames()
	if len(names) != len(expected) {
		t.Fatalf("Expected %d names, got %v", len(expected), names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Name %d: expected %q, got %q", i, name, names[i])
		}
	}
}

func TestRingsScene_RingOrder(t *testing.T) {
	shapes := NewRingsScene().GetShapes()

	// Enclosing sphere, then the 12 red spheres, then the 12 blue spheres
	for i, shape := range shapes[1:] {
		expected := material.Red
		if i >= 12 {
			expected = material.Blue
		}
		if got := shape.GetMaterial().Color; got != expected {
			t.Errorf("Shape %d: expected color %v, got %v", i+1, expected, got)
		}
	}
}
