package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// LoadPLY loads the vertex positions and faces of a PLY file
func LoadPLY(filename string, transform Transform) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ParsePLY(file, transform)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParsePLY reads a PLY stream. Polygons are fan-triangulated.
func ParsePLY(r io.Reader, transform Transform) (*MeshData, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var elements plyElementReader
	switch header.Format {
	case "ascii":
		elements = &asciiPLYReader{reader: reader}
	case "binary_little_endian":
		elements = &binaryPLYReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		elements = &binaryPLYReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data, err := readPLYElements(header, elements, transform)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return data, nil
}

// parsePLYHeader parses the PLY header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, &ParseError{Line: 1, Msg: "missing ply magic number"}
	}

	for lineNumber := 2; ; lineNumber++ {
		raw, err := reader.ReadString('\n')
		if err != nil {
			return nil, &ParseError{Line: lineNumber, Msg: "unexpected end of header", Err: err}
		}

		line := strings.TrimSpace(raw)
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, &ParseError{Line: lineNumber, Msg: "invalid element definition"}
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, &ParseError{Line: lineNumber, Msg: "invalid element count", Err: err}
			}
			if count < 0 {
				return nil, &ParseError{Line: lineNumber, Msg: fmt.Sprintf("negative element count %d", count)}
			}

			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, &ParseError{Line: lineNumber, Msg: fmt.Sprintf("unsupported element %q", currentElement)}
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, &ParseError{Line: lineNumber, Msg: "failed to parse property", Err: err}
			}

			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	return prop, nil
}

// plyElementReader reads scalar values in the file's encoding
type plyElementReader interface {
	readScalar(dataType string) (float64, error)
	endElement() error
}

// maxPLYListCount bounds face list lengths so corrupt counts fail instead of allocating
const maxPLYListCount = 1 << 16

// maxPLYPrealloc caps how much is reserved up front from header counts
const maxPLYPrealloc = 1 << 20

func readPLYElements(header *PLYHeader, r plyElementReader, transform Transform) (*MeshData, error) {
	data := &MeshData{
		Vertices: make([]core.Vec3, 0, min(header.VertexCount, maxPLYPrealloc)),
		Faces:    make([]int, 0, 3*min(header.FaceCount, maxPLYPrealloc)),
	}

	for i := 0; i < header.VertexCount; i++ {
		var position [3]float64
		for _, prop := range header.VertexProps {
			if prop.IsList {
				return nil, fmt.Errorf("list property %q on vertex is not supported", prop.Name)
			}
			value, err := r.readScalar(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}
			switch prop.Name {
			case "x":
				position[0] = value
			case "y":
				position[1] = value
			case "z":
				position[2] = value
			}
		}
		if err := r.endElement(); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		data.Vertices = append(data.Vertices, transform.Apply(core.NewVec3(position[0], position[1], position[2])))
	}

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := r.readScalar(prop.Type); err != nil {
					return nil, fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
				}
				continue
			}

			count, err := r.readScalar(prop.ListType)
			if err != nil {
				return nil, fmt.Errorf("face %d list count: %w", i, err)
			}
			if count < 0 || count > maxPLYListCount || count != math.Trunc(count) {
				return nil, &ParseError{Msg: fmt.Sprintf("face %d: invalid list count %v", i, count)}
			}
			indices := make([]int, int(count))
			for j := range indices {
				value, err := r.readScalar(prop.DataType)
				if err != nil {
					return nil, fmt.Errorf("face %d index %d: %w", i, j, err)
				}
				indices[j] = int(value)
			}

			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			for _, index := range indices {
				if index < 0 || index >= len(data.Vertices) {
					return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i, index, len(data.Vertices))
				}
			}
			data.addFan(indices)
		}
		if err := r.endElement(); err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
	}

	return data, nil
}

// binaryPLYReader decodes binary_little_endian and binary_big_endian bodies
type binaryPLYReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
}

func (b *binaryPLYReader) readScalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}

	var buf [8]byte
	if _, err := io.ReadFull(b.reader, buf[:size]); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf[:4]))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(buf[:8])), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf[:4]))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf[:4])), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf[:2]))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf[:2])), nil
	case "char", "int8":
		return float64(int8(buf[0])), nil
	default: // uchar, uint8
		return float64(buf[0]), nil
	}
}

func (b *binaryPLYReader) endElement() error { return nil }

// asciiPLYReader decodes whitespace separated ascii bodies, one element per line
type asciiPLYReader struct {
	reader *bufio.Reader
	fields []string
}

func (a *asciiPLYReader) readScalar(dataType string) (float64, error) {
	for len(a.fields) == 0 {
		line, err := a.reader.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
			if err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		a.fields = strings.Fields(line)
	}

	token := a.fields[0]
	a.fields = a.fields[1:]
	if getTypeSize(dataType) == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	return strconv.ParseFloat(token, 64)
}

func (a *asciiPLYReader) endElement() error {
	if len(a.fields) > 0 {
		return fmt.Errorf("unexpected trailing values %v", a.fields)
	}
	return nil
}

// getTypeSize returns the size in bytes of a PLY data type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "double", "float64":
		return 8
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}
