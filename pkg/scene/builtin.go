package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// SceneOptions carries the inputs a built-in scene may need beyond its name
type SceneOptions struct {
	MeshPath  string            // Model file for the "mesh" scene
	Transform loaders.Transform // Applied to every model vertex
	Material  material.Material // Material of the imported model
}

// DefaultSceneOptions places an imported model in the middle of the room
func DefaultSceneOptions() SceneOptions {
	return SceneOptions{
		Transform: loaders.Transform{Scale: 1, Offset: core.NewVec3(0, 0, 10)},
		Material:  material.NewMirror(material.Silver, 0.3),
	}
}

type builtinScene struct {
	description string
	create      func(options SceneOptions) (*Scene, error)
}

var builtinScenes = map[string]builtinScene{
	"room": {
		description: "Colored room with cubes, a glass slab, glass and gold spheres and a row of mirrored spheres",
		create:      func(SceneOptions) (*Scene, error) { return NewRoomScene(), nil },
	},
	"rings": {
		description: "Mirrored enclosing sphere with two rings of small spheres",
		create:      func(SceneOptions) (*Scene, error) { return NewRingsScene(), nil },
	},
	"sphere": {
		description: "Single red sphere lit from the camera side",
		create:      func(SceneOptions) (*Scene, error) { return NewSphereScene(), nil },
	},
	"mesh": {
		description: "Imported OBJ, PLY or STL model inside the colored room",
		create:      NewMeshScene,
	},
}

// BuiltinSceneNames returns the names accepted by Create, sorted
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the named built-in scene
func Create(name string, options SceneOptions) (*Scene, error) {
	builtin, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, BuiltinSceneNames())
	}

	s, err := builtin.create(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene %q: %w", name, err)
	}
	return s, nil
}

// addRoomWalls adds the enclosing room: a box seen from inside, with mirrored
// right and back walls
func addRoomWalls(s *Scene) {
	walls := [6]material.Material{
		geometry.FaceNegX: material.NewMaterial(material.White),
		geometry.FacePosX: material.NewMirror(material.Green, 0.5),
		geometry.FaceNegY: material.NewMaterial(material.White),
		geometry.FacePosY: material.NewMaterial(material.Orange),
		geometry.FaceNegZ: material.NewMaterial(material.Blue),
		geometry.FacePosZ: material.NewMirror(material.Purple, 0.5),
	}
	s.AddBox(core.NewVec3(-10, -10, -1), core.NewVec3(10, 10, 20), walls, true)
}

func addRoomLights(s *Scene) {
	s.AddLight(core.NewVec3(5, -7, 13))
	s.AddLight(core.NewVec3(-5, -5, 1))
}

// NewRoomScene creates the default scene: a colored room holding two cubes,
// a glass slab over the floor, a glass sphere, a large gold sphere and a row
// of magenta spheres with increasing mirror weight
func NewRoomScene() *Scene {
	s := NewScene("room")

	addRoomWalls(s)

	// Cubes
	s.AddTriangles(geometry.NewRelativeBox(core.NewVec3(-6, 1, 7), core.NewVec3(4, 9, 4), material.NewMirror(material.Red, 0.5)))
	s.AddTriangles(geometry.NewRelativeBox(core.NewVec3(0, 3, 12), core.NewVec3(2, 7, 2), material.NewMaterial(material.Brown)))

	// Glass slab filling the lower part of the room
	s.AddTriangles(geometry.NewUniformBox(core.NewVec3(-10, 5, -1), core.NewVec3(10, 10, 20),
		material.NewTransparent(material.Cyan, 0.1, 0.5, 1.33), false))

	// Spheres
	s.AddShape(geometry.NewSphere(core.NewVec3(-4, -2, 9), 3, material.NewTransparent(material.DarkGreen, 0, 0.7, 1.33)))
	s.AddShape(geometry.NewSphere(core.NewVec3(1, 2.5, 13), 0.5, material.NewMaterial(material.Moccasin)))
	s.AddShape(geometry.NewSphere(core.NewVec3(15, 5, 14), 10, material.NewMirror(material.Gold, 0.3)))
	for i := 0; i < 5; i++ {
		center := core.NewVec3(-8+4*float64(i), -8, 18)
		s.AddShape(geometry.NewSphere(center, 2, material.NewMirror(material.Magenta, float64(i)/5)))
	}

	addRoomLights(s)
	return s
}

// NewRingsScene creates a mirrored sphere enclosing two perpendicular rings of
// twelve small mirrored spheres each
func NewRingsScene() *Scene {
	s := NewScene("rings")

	s.AddShape(geometry.NewInvertedSphere(core.NewVec3(0, 0, 0), 50, material.NewMirror(material.Aqua, 0.5)))

	const ringSize = 12
	ringAngle := func(k int) (float64, float64) {
		return math.Sincos(-math.Pi + float64(k)*2*math.Pi/ringSize)
	}

	// Horizontal ring in front of the camera
	for k := 0; k < ringSize; k++ {
		sin, cos := ringAngle(k)
		s.AddShape(geometry.NewSphere(core.NewVec3(sin*20, 0, cos*20-10), 3, material.NewMirror(material.Red, 0.5)))
	}
	// Vertical ring further back
	for k := 0; k < ringSize; k++ {
		sin, cos := ringAngle(k)
		s.AddShape(geometry.NewSphere(core.NewVec3(0, sin*15, cos*15+5), 1.5, material.NewMirror(material.Blue, 0.5)))
	}

	// Same lights as the room
	addRoomLights(s)
	return s
}

// NewSphereScene creates a single red sphere in front of the camera with one
// light behind the camera
func NewSphereScene() *Scene {
	s := NewScene("sphere")
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewMaterial(material.Red)))
	s.AddLight(core.NewVec3(0, 0, -100))
	return s
}

// NewMeshScene places an imported model inside the colored room
func NewMeshScene(options SceneOptions) (*Scene, error) {
	if options.MeshPath == "" {
		return nil, fmt.Errorf("mesh scene requires a model path")
	}

	s := NewScene("mesh")
	addRoomWalls(s)
	if _, err := s.AddMesh(options.MeshPath, options.Transform, options.Material); err != nil {
		return nil, err
	}
	addRoomLights(s)
	return s, nil
}
