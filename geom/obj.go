package geom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Errors returned by the OBJ loader.
var (
	ErrMalformedVertex = errors.New("geom: malformed vertex record")
	ErrMalformedFace   = errors.New("geom: malformed face record")
	ErrVertexIndex     = errors.New("geom: face references unknown vertex")
)

// LoadOBJ reads triangles from a Wavefront OBJ stream. Only vertex (v) and
// face (f) records are interpreted; faces with more than three vertices are
// fan-triangulated. Every triangle is tagged with defaultMaterial.
func LoadOBJ(r io.Reader, defaultMaterial string) ([]Triangle, error) {
	var (
		vertices  []Vec3
		triangles []Triangle
	)

	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}

			vertices = append(vertices, v)

		case "f":
			tris, err := parseFace(fields, vertices, defaultMaterial)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}

			triangles = append(triangles, tris...)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("geom: read obj: %w", err)
	}

	return triangles, nil
}

func parseVertex(fields []string) (Vec3, error) {
	if len(fields) < 4 {
		return Vec3{}, ErrMalformedVertex
	}

	var coords [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("%w: %q", ErrMalformedVertex, fields[i+1])
		}
		coords[i] = v
	}

	return Vec3{coords[0], coords[1], coords[2]}, nil
}

func parseFace(fields []string, vertices []Vec3, material string) ([]Triangle, error) {
	if len(fields) < 4 {
		return nil, ErrMalformedFace
	}

	indices := make([]int, 0, len(fields)-1)
	for _, f := range fields[1:] {
		// Face elements may carry texture/normal references (v/vt/vn);
		// only the vertex index is used.
		idxStr, _, _ := strings.Cut(f, "/")

		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedFace, f)
		}

		// OBJ indices are 1-based; negative indices count from the end.
		if idx < 0 {
			idx += len(vertices)
		} else {
			idx--
		}

		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("%w: index %s", ErrVertexIndex, idxStr)
		}

		indices = append(indices, idx)
	}

	triangles := make([]Triangle, 0, len(indices)-2)
	for i := 1; i+1 < len(indices); i++ {
		triangles = append(triangles, Triangle{
			V0:       vertices[indices[0]],
			V1:       vertices[indices[i]],
			V2:       vertices[indices[i+1]],
			Material: material,
		})
	}

	return triangles, nil
}
