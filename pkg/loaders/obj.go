package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LoadOBJ loads the vertex and face records of a Wavefront OBJ file
func LoadOBJ(filename string, transform Transform) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := parseOBJ(file, filename, transform)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ParseOBJ reads OBJ records from r.
//
// Only "v" and "f" records are used. Face indices are 1-based; a negative
// index is read as its absolute value. Anything after a '/' in an index
// token is ignored. Polygons are fan-triangulated around their first vertex.
func ParseOBJ(r io.Reader, transform Transform) (*MeshData, error) {
	return parseOBJ(r, "", transform)
}

func parseOBJ(r io.Reader, path string, transform Transform) (*MeshData, error) {
	data := &MeshData{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			vertex, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineNumber, Msg: "invalid vertex", Err: err}
			}
			data.Vertices = append(data.Vertices, transform.Apply(vertex))
		case "f":
			indices, err := parseOBJFace(fields[1:], len(data.Vertices))
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineNumber, Msg: "invalid face", Err: err}
			}
			data.addFan(indices)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ data: %w", err)
	}

	return data, nil
}

func parseOBJVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}

	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseOBJFace returns 0-based vertex indices for one face record.
// Faces with fewer than 3 vertices are accepted and produce no triangles.
func parseOBJFace(fields []string, vertexCount int) ([]int, error) {
	indices := make([]int, 0, len(fields))
	for _, field := range fields {
		token, _, _ := strings.Cut(field, "/")
		index, err := strconv.Atoi(token)
		if err != nil {
			return nil, err
		}
		if index < 0 {
			index = -index
		}
		index--

		if index < 0 || index >= vertexCount {
			return nil, fmt.Errorf("vertex index %s out of range (%d vertices declared)", token, vertexCount)
		}
		indices = append(indices, index)
	}
	return indices, nil
}
