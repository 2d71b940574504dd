package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Color is the flat color given to every triangle.
	Color render.Color

	// LoadTexture decodes the first usable image in the document and
	// attaches it to the mesh.
	LoadTexture bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Color:       render.ColorWhite,
		LoadTexture: true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file, including its first embedded
// texture if there is one.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
//
// Positions are used as-is. glTF is right-handed with counter-clockwise
// front faces; read into the left-handed pipeline the mirror turns those
// into clockwise faces, which is what the culler keeps. Texture coordinates
// already have v=0 at the top row.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			tris, err := l.primitiveTriangles(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
			mesh.AddTriangles(tris...)
		}
	}

	if len(mesh.Triangles) == 0 {
		return nil, ErrNoGeometry
	}
	mesh.CalculateBounds()

	if l.LoadTexture {
		tex, err := firstTexture(doc, filepath.Dir(path))
		if err != nil {
			render.Logger().Warn("skipping embedded texture", "model", mesh.Name, "error", err)
		}
		mesh.Texture = tex
	}

	return mesh, nil
}

// primitiveTriangles turns one primitive into flat-colored triangles. Only
// triangle lists are drawn; strips, fans, lines and points yield nothing.
// A primitive without indices is read as consecutive vertex triples.
func (l *GLTFLoader) primitiveTriangles(doc *gltf.Document, prim *gltf.Primitive) ([]render.Triangle, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if (prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0) || !ok {
		return nil, nil
	}

	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var uvs []math3d.Vec2
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readVec2Accessor(doc, uvIdx); err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
	}

	vertex := func(i int) int { return i }
	count := len(positions)
	if prim.Indices != nil {
		indices, err := readIndices(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		vertex = func(i int) int { return indices[i] }
		count = len(indices)
	}

	tris := make([]render.Triangle, 0, count/3)
	for i := 0; i+2 < count; i += 3 {
		tri := render.Triangle{Color: l.Color}
		for k := range 3 {
			v := vertex(i + k)
			if v < 0 || v >= len(positions) {
				return nil, fmt.Errorf("vertex index %d out of range (%d vertices)", v, len(positions))
			}
			tri.P[k] = positions[v]
			if v < len(uvs) {
				tri.T[k] = uvs[v]
			} else {
				tri.T[k] = math3d.V2(0, 0)
			}
		}
		tris = append(tris, tri)
	}
	return tris, nil
}

// accessorView is a bounds-checked window onto the bytes behind one accessor.
type accessorView struct {
	acc    *gltf.Accessor
	data   []byte
	start  int
	stride int
}

// openAccessor resolves accessor idx down to its buffer bytes and checks that
// every element lies inside the buffer. Buffers referenced by URI are
// accepted as long as gltf.Open has already read them into memory.
func openAccessor(doc *gltf.Document, idx int, want gltf.AccessorType) (accessorView, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return accessorView{}, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != want {
		return accessorView{}, fmt.Errorf("accessor %d: expected %v, got %v", idx, want, acc.Type)
	}
	if acc.BufferView == nil {
		return accessorView{}, fmt.Errorf("accessor %d has no buffer view", idx)
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return accessorView{}, fmt.Errorf("accessor %d: buffer view %d out of range", idx, *acc.BufferView)
	}
	bv := doc.BufferViews[*acc.BufferView]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) || doc.Buffers[bv.Buffer].Data == nil {
		return accessorView{}, fmt.Errorf("accessor %d: buffer %d has no data", idx, bv.Buffer)
	}

	v := accessorView{
		acc:    acc,
		data:   doc.Buffers[bv.Buffer].Data,
		start:  bv.ByteOffset + acc.ByteOffset,
		stride: bv.ByteStride,
	}
	elem := elementSize(acc)
	if v.stride == 0 {
		v.stride = elem
	}
	if acc.Count > 0 {
		if end := v.start + (acc.Count-1)*v.stride + elem; end > len(v.data) {
			return accessorView{}, fmt.Errorf("accessor %d reads past end of buffer (%d > %d)", idx, end, len(v.data))
		}
	}
	return v, nil
}

// elementSize is the packed byte size of one accessor element.
func elementSize(acc *gltf.Accessor) int {
	comp := 4
	switch acc.ComponentType {
	case gltf.ComponentByte, gltf.ComponentUbyte:
		comp = 1
	case gltf.ComponentShort, gltf.ComponentUshort:
		comp = 2
	}
	n := 1
	switch acc.Type {
	case gltf.AccessorVec2:
		n = 2
	case gltf.AccessorVec3:
		n = 3
	case gltf.AccessorVec4, gltf.AccessorMat2:
		n = 4
	case gltf.AccessorMat3:
		n = 9
	case gltf.AccessorMat4:
		n = 16
	}
	return comp * n
}

func (v accessorView) elem(i int) []byte {
	return v.data[v.start+i*v.stride:]
}

// component returns a decoder for component j of an element. Integer
// components are read as normalized values in [0, 1].
func (v accessorView) component() (func(b []byte, j int) float64, error) {
	le := binary.LittleEndian
	switch v.acc.ComponentType {
	case gltf.ComponentFloat:
		return func(b []byte, j int) float64 {
			return float64(math.Float32frombits(le.Uint32(b[j*4:])))
		}, nil
	case gltf.ComponentUbyte:
		return func(b []byte, j int) float64 { return float64(b[j]) / 255 }, nil
	case gltf.ComponentUshort:
		return func(b []byte, j int) float64 { return float64(le.Uint16(b[j*2:])) / 65535 }, nil
	}
	return nil, fmt.Errorf("unsupported component type %v", v.acc.ComponentType)
}

// readVec3Accessor reads FLOAT VEC3 data such as positions.
func readVec3Accessor(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	v, err := openAccessor(doc, idx, gltf.AccessorVec3)
	if err != nil {
		return nil, err
	}
	if v.acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: positions must be FLOAT, got %v", idx, v.acc.ComponentType)
	}
	at, _ := v.component()

	out := make([]math3d.Vec3, v.acc.Count)
	for i := range out {
		b := v.elem(i)
		out[i] = math3d.V3(at(b, 0), at(b, 1), at(b, 2))
	}
	return out, nil
}

// readVec2Accessor reads VEC2 texture coordinates.
func readVec2Accessor(doc *gltf.Document, idx int) ([]math3d.Vec2, error) {
	v, err := openAccessor(doc, idx, gltf.AccessorVec2)
	if err != nil {
		return nil, err
	}
	at, err := v.component()
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", idx, err)
	}

	out := make([]math3d.Vec2, v.acc.Count)
	for i := range out {
		b := v.elem(i)
		out[i] = math3d.V2(at(b, 0), at(b, 1))
	}
	return out, nil
}

// readIndices reads a SCALAR accessor of unsigned byte, short or int indices.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	v, err := openAccessor(doc, idx, gltf.AccessorScalar)
	if err != nil {
		return nil, err
	}

	le := binary.LittleEndian
	var decode func(b []byte) int
	switch v.acc.ComponentType {
	case gltf.ComponentUbyte:
		decode = func(b []byte) int { return int(b[0]) }
	case gltf.ComponentUshort:
		decode = func(b []byte) int { return int(le.Uint16(b)) }
	case gltf.ComponentUint:
		decode = func(b []byte) int { return int(le.Uint32(b)) }
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index type %v", idx, v.acc.ComponentType)
	}

	out := make([]int, v.acc.Count)
	for i := range out {
		out[i] = decode(v.elem(i))
	}
	return out, nil
}

// firstTexture decodes the first image in the document that can be read,
// either from an embedded buffer view or from a file next to the model.
// It returns nil without error when the document has no images.
func firstTexture(doc *gltf.Document, dir string) (*render.Texture, error) {
	var lastErr error
	for i, img := range doc.Images {
		data, err := imageData(doc, img, dir)
		if err != nil {
			lastErr = fmt.Errorf("image %d: %w", i, err)
			continue
		}

		tex, err := render.DecodeTexture(bytes.NewReader(data))
		if err != nil {
			lastErr = fmt.Errorf("decode image %d: %w", i, err)
			continue
		}
		tex.Name = img.Name
		return tex, nil
	}
	return nil, lastErr
}

func imageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	if img.BufferView != nil {
		if *img.BufferView < 0 || *img.BufferView >= len(doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range", *img.BufferView)
		}
		bv := doc.BufferViews[*img.BufferView]
		if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
			return nil, fmt.Errorf("buffer %d out of range", bv.Buffer)
		}
		data := doc.Buffers[bv.Buffer].Data
		end := bv.ByteOffset + bv.ByteLength
		if end > len(data) {
			return nil, fmt.Errorf("buffer view %d past end of buffer", *img.BufferView)
		}
		return data[bv.ByteOffset:end], nil
	}
	if img.URI != "" {
		return os.ReadFile(filepath.Join(dir, img.URI))
	}
	return nil, fmt.Errorf("image has no data")
}
