package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

const quadOBJ = `# a unit quad
o quad
v 0 0 0
v 0 1 0
v 1 1 0
v 1 0 0
vt 0 0
vt 0 1
vt 1 1
vt 1 0
vn 0 0 -1
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuadSplit(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ), render.ColorBlue)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}

	a, b := mesh.GetTriangle(0), mesh.GetTriangle(1)
	wantA := [3]math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math3d.V3(1, 1, 0)}
	wantB := [3]math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 1, 0), math3d.V3(1, 0, 0)}
	if a.P != wantA {
		t.Errorf("first triangle = %v, want %v", a.P, wantA)
	}
	if b.P != wantB {
		t.Errorf("second triangle = %v, want %v", b.P, wantB)
	}
	if a.Color != render.ColorBlue {
		t.Errorf("Color = %v, want blue", a.Color)
	}

	// v is flipped so the top of the image is row 0.
	if a.T[0] != math3d.V2(0, 1) || a.T[1] != math3d.V2(0, 0) {
		t.Errorf("texels = %v, want flipped v", a.T)
	}
}

func TestParseOBJFaceFormats(t *testing.T) {
	tests := []struct {
		name  string
		faces string
		tris  int
	}{
		{"plain", "f 1 2 3", 1},
		{"texcoords", "f 1/1 2/2 3/3", 1},
		{"normals only", "f 1//1 2//1 3//1", 1},
		{"negative", "f -3 -2 -1", 1},
		{"pentagon fan", "f 1 2 3 1 2", 3},
		{"extra spaces", "f   1  2   3", 1},
	}

	header := "v 0 0 0\nv 0 1 0\nv 1 1 0\nvt 0 0\nvt 1 0\nvt 1 1\n"
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := ParseOBJ(strings.NewReader(header+tc.faces+"\n"), render.ColorRed)
			if err != nil {
				t.Fatalf("ParseOBJ: %v", err)
			}
			if mesh.TriangleCount() != tc.tris {
				t.Errorf("TriangleCount = %d, want %d", mesh.TriangleCount(), tc.tris)
			}
		})
	}
}

func TestParseOBJMissingTexcoordsDefaultToZero(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3\n"), render.ColorRed)
	if err != nil {
		t.Fatal(err)
	}
	for i, tx := range mesh.GetTriangle(0).T {
		if tx != math3d.V2(0, 0) {
			t.Errorf("T[%d] = %v, want zero", i, tx)
		}
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad float", "v 0 zero 0\n"},
		{"short vertex", "v 1 2\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"zero index", "v 0 0 0\nv 0 1 0\nv 1 1 0\nf 0 1 2\n"},
		{"short face", "v 0 0 0\nv 0 1 0\nf 1 2\n"},
		{"bad texcoord ref", "v 0 0 0\nv 0 1 0\nv 1 1 0\nf 1/9 2 3\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tc.input), render.ColorRed); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseOBJNoGeometry(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("# nothing here\nv 0 0 0\n"), render.ColorRed)
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.Name != "quad.obj" {
		t.Errorf("Name = %q, want quad.obj", mesh.Name)
	}
	if mesh.GetTriangle(0).Color != render.ColorRed {
		t.Errorf("default color = %v, want red", mesh.GetTriangle(0).Color)
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Quad.OBJ")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}

	if _, err := Load(filepath.Join(dir, "model.stl")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}
