package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Transform is applied to every imported vertex: scaled first, then offset
type Transform struct {
	Scale  float64
	Offset core.Vec3
}

// IdentityTransform leaves vertices unchanged
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Apply transforms a single vertex
func (t Transform) Apply(v core.Vec3) core.Vec3 {
	return v.Multiply(t.Scale).Add(t.Offset)
}

// MeshData contains the vertex pool and triangle indices of an imported mesh
type MeshData struct {
	Vertices []core.Vec3 // Transformed vertex positions
	Faces    []int       // Triangle indices into Vertices (3 per triangle)
}

// TriangleCount returns the number of triangles in the mesh
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// addFan fan-triangulates a polygon around its first vertex
func (m *MeshData) addFan(indices []int) {
	for i := 1; i < len(indices)-1; i++ {
		m.Faces = append(m.Faces, indices[0], indices[i], indices[i+1])
	}
}

// ParseError describes malformed mesh data. The whole load fails on the first one.
type ParseError struct {
	Path string // File being parsed, empty for readers
	Line int    // 1-based line number, 0 when not line oriented
	Msg  string
	Err  error // Underlying cause, if any
}

func (e *ParseError) Error() string {
	location := e.Path
	if location == "" {
		location = "<input>"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", location, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", location, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SupportedMeshExtensions lists the file extensions LoadMesh understands
var SupportedMeshExtensions = []string{".obj", ".ply", ".stl"}

// IsMeshFile reports whether the path has a supported mesh extension
func IsMeshFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedMeshExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// LoadMesh loads a mesh file, picking the format from its extension
func LoadMesh(filename string, transform Transform) (*MeshData, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return LoadOBJ(filename, transform)
	case ".ply":
		return LoadPLY(filename, transform)
	case ".stl":
		return LoadSTL(filename, transform)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", filename)
	}
}
