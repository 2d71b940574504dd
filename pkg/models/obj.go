package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// LoadOBJ loads a Wavefront .obj file. Triangles get the default color
// render.ColorRed until a texture or SetColor overrides it.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, render.ColorRed)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads `v`, `vt` and `f` statements. Faces with more than three
// vertices are split into a triangle fan. Indices may be negative (relative
// to the end of the list). Everything else is ignored.
//
// OBJ texture coordinates have v=0 at the bottom; they are flipped to the
// top-row-first convention of render.Texture.
func ParseOBJ(r io.Reader, c render.Color) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		texels    []math3d.Vec2
	)
	mesh := NewMesh("obj")

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, math3d.V3(p[0], p[1], p[2]))

		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			texels = append(texels, math3d.V2(p[0], 1-p[1]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			verts := make([]objVertex, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				v, err := parseFaceRef(ref, len(positions), len(texels))
				if err != nil {
					return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
				}
				verts = append(verts, v)
			}

			for i := 1; i+1 < len(verts); i++ {
				a, b, d := verts[0], verts[i], verts[i+1]
				tri := render.Triangle{
					P:     [3]math3d.Vec3{positions[a.pos], positions[b.pos], positions[d.pos]},
					T:     [3]math3d.Vec2{math3d.V2(0, 0), math3d.V2(0, 0), math3d.V2(0, 0)},
					Color: c,
				}
				for j, v := range [3]objVertex{a, b, d} {
					if v.tex >= 0 {
						tri.T[j] = texels[v.tex]
					}
				}
				mesh.AddTriangle(tri)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if len(mesh.Triangles) == 0 {
		return nil, ErrNoGeometry
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// objVertex holds zero-based indices; tex is -1 when absent.
type objVertex struct {
	pos, tex int
}

// parseFaceRef parses "v", "v/vt", "v//vn" or "v/vt/vn".
func parseFaceRef(ref string, nPos, nTex int) (objVertex, error) {
	parts := strings.Split(ref, "/")

	pos, err := resolveIndex(parts[0], nPos)
	if err != nil {
		return objVertex{}, fmt.Errorf("vertex index %q: %w", ref, err)
	}

	v := objVertex{pos: pos, tex: -1}
	if len(parts) > 1 && parts[1] != "" {
		v.tex, err = resolveIndex(parts[1], nTex)
		if err != nil {
			return objVertex{}, fmt.Errorf("texcoord index %q: %w", ref, err)
		}
	}
	return v, nil
}

// resolveIndex converts a one-based (or negative, relative) OBJ index into
// a zero-based slice index.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("out of range (have %d)", n)
	}
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
