package loaders

import (
	"fmt"
	"io"

	"github.com/hschendel/stl"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LoadSTL loads an ascii or binary STL file.
// STL stores unindexed triangles, so every triangle gets its own three vertices.
func LoadSTL(filename string, transform Transform) (*MeshData, error) {
	solid, err := stl.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL file %s: %w", filename, err)
	}
	return stlToMesh(solid, transform), nil
}

// ParseSTL reads an ascii or binary STL stream
func ParseSTL(r io.ReadSeeker, transform Transform) (*MeshData, error) {
	solid, err := stl.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}
	return stlToMesh(solid, transform), nil
}

func stlToMesh(solid *stl.Solid, transform Transform) *MeshData {
	data := &MeshData{
		Vertices: make([]core.Vec3, 0, len(solid.Triangles)*3),
		Faces:    make([]int, 0, len(solid.Triangles)*3),
	}

	for _, triangle := range solid.Triangles {
		for _, v := range triangle.Vertices {
			data.Faces = append(data.Faces, len(data.Vertices))
			vertex := core.NewVec3(float64(v[0]), float64(v[1]), float64(v[2]))
			data.Vertices = append(data.Vertices, transform.Apply(vertex))
		}
	}
	return data
}
