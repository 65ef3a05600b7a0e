package asset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/udhos/gwob"

	"stairwalk/internal/scene"
)

// ErrEmptyModel is returned for model files without any triangles.
var ErrEmptyModel = errors.New("model has no triangles")

// DefaultModelColor is used for groups without a material.
var DefaultModelColor = mgl32.Vec4{0.85, 0.85, 0.85, 1}

// Group is a named run of triangles sharing a material.
type Group struct {
	Name     string
	Material string
	First    int // first index
	Count    int // index count
}

// Model is an imported mesh, expanded to one vertex per index so every
// group can carry its own diffuse colour.
type Model struct {
	Path   string
	Mesh   scene.Mesh
	Groups []Group
	Min    mgl32.Vec3
	Max    mgl32.Vec3
}

// Fit returns the transform that normalizes the model to unit height.
func (m *Model) Fit() mgl32.Mat4 {
	return scene.FitTransform(m.Min, m.Max)
}

// LoadModel imports dir/file. The material library referenced by the OBJ is
// read from the same directory; a missing library only costs the colours.
func LoadModel(dir, file string) (*Model, error) {
	path := filepath.Join(dir, file)
	if err := sniffModel(path); err != nil {
		return nil, err
	}

	opts := &gwob.ObjParserOptions{
		Logger: func(msg string) { slog.Debug("obj parser", "file", file, "msg", msg) },
	}
	obj, err := gwob.NewObjFromFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}

	var mtl gwob.MaterialLib
	if obj.Mtllib != "" {
		lib, err := gwob.ReadMaterialLibFromFile(filepath.Join(dir, obj.Mtllib), opts)
		if err != nil {
			slog.Warn("material library unavailable", "model", path, "mtllib", obj.Mtllib, "err", err)
		} else {
			mtl = lib
		}
	}

	m, err := buildModel(obj, mtl)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

func buildModel(obj *gwob.Obj, mtl gwob.MaterialLib) (*Model, error) {
	if len(obj.Indices) < 3 || obj.StrideSize <= 0 {
		return nil, ErrEmptyModel
	}
	stride := obj.StrideSize / 4
	posOff := obj.StrideOffsetPosition / 4
	texOff := obj.StrideOffsetTexture / 4
	normOff := obj.StrideOffsetNormal / 4

	vertexAt := func(idx int) scene.Vertex {
		base := idx * stride
		c := obj.Coord
		v := scene.Vertex{Pos: mgl32.Vec3{c[base+posOff], c[base+posOff+1], c[base+posOff+2]}}
		if obj.TextCoordFound {
			v.UV = mgl32.Vec2{c[base+texOff], c[base+texOff+1]}
		}
		if obj.NormCoordFound {
			v.Normal = mgl32.Vec3{c[base+normOff], c[base+normOff+1], c[base+normOff+2]}
		}
		return v
	}

	groups := obj.Groups
	if len(groups) == 0 {
		groups = []*gwob.Group{{Name: "default", IndexBegin: 0, IndexCount: len(obj.Indices)}}
	}

	m := &Model{}
	for _, g := range groups {
		color := DefaultModelColor
		if mat, ok := mtl.Lib[g.Usemtl]; ok && mat != nil {
			color = mgl32.Vec4{mat.Kd[0], mat.Kd[1], mat.Kd[2], 1}
		}
		first := len(m.Mesh.Indices)
		end := min(g.IndexBegin+g.IndexCount, len(obj.Indices))
		for i := g.IndexBegin; i+2 < end; i += 3 {
			tri := [3]scene.Vertex{vertexAt(obj.Indices[i]), vertexAt(obj.Indices[i+1]), vertexAt(obj.Indices[i+2])}
			if !obj.NormCoordFound {
				n := tri[1].Pos.Sub(tri[0].Pos).Cross(tri[2].Pos.Sub(tri[0].Pos))
				if n.Len() > 0 {
					n = n.Normalize()
				}
				tri[0].Normal, tri[1].Normal, tri[2].Normal = n, n, n
			}
			for _, v := range tri {
				v.Color = color
				m.Mesh.Indices = append(m.Mesh.Indices, uint32(len(m.Mesh.Vertices)))
				m.Mesh.Vertices = append(m.Mesh.Vertices, v)
			}
		}
		if n := len(m.Mesh.Indices) - first; n > 0 {
			m.Groups = append(m.Groups, Group{Name: g.Name, Material: g.Usemtl, First: first, Count: n})
		}
	}
	if len(m.Mesh.Indices) == 0 {
		return nil, ErrEmptyModel
	}
	m.Min, m.Max = m.Mesh.Bounds()
	return m, nil
}

// sniffModel rejects missing files and binary content up front, so a
// mistaken pick in the file dialog gives a clear error.
func sniffModel(path string) error {
	head, err := readHead(path)
	if err != nil {
		return fmt.Errorf("open model: %w", err)
	}
	if isKnownBinary(head) {
		return fmt.Errorf("model %s: %w", path, ErrUnsupportedModel)
	}
	return nil
}

// ErrUnsupportedModel is returned for files that are not a text mesh format.
var ErrUnsupportedModel = errors.New("unsupported model format")

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	head := make([]byte, 261)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return head[:n], nil
}
