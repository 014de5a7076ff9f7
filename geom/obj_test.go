package geom

import (
	"errors"
	"strings"
	"testing"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func TestLoadOBJ(t *testing.T) {
	tris, err := LoadOBJ(strings.NewReader(quadOBJ), "oak")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A quad fan-triangulates into two triangles.
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, expected 2", len(tris))
	}

	for _, tri := range tris {
		if tri.Material != "oak" {
			t.Errorf("material = %q, expected oak", tri.Material)
		}
	}

	if tris[0].V0 != V(0, 0, 0) || tris[0].V1 != V(1, 0, 0) || tris[0].V2 != V(1, 1, 0) {
		t.Errorf("first triangle = %+v", tris[0])
	}
}

func TestLoadOBJFaceReferences(t *testing.T) {
	// Slash-separated face elements and negative indices are both valid OBJ.
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1 2/2/2 -1\n"

	tris, err := LoadOBJ(strings.NewReader(src), "concrete")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tris) != 1 {
		t.Fatalf("got %d triangles, expected 1", len(tris))
	}

	if tris[0].V2 != V(0, 1, 0) {
		t.Errorf("negative index resolved to %v", tris[0].V2)
	}
}

func TestLoadOBJErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{"short vertex", "v 1 2\n", ErrMalformedVertex},
		{"bad coordinate", "v a b c\n", ErrMalformedVertex},
		{"short face", "v 0 0 0\nf 1 1\n", ErrMalformedFace},
		{"index out of range", "v 0 0 0\nf 1 2 3\n", ErrVertexIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOBJ(strings.NewReader(tt.src), "concrete")
			if !errors.Is(err, tt.expected) {
				t.Errorf("error = %v, expected %v", err, tt.expected)
			}
		})
	}
}
