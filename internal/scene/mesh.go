package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the interleaved layout: pos(3) normal(3) uv(2) color(4).
const FloatsPerVertex = 12

type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	UV     mgl32.Vec2
	Color  mgl32.Vec4
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Interleave packs the vertices for a single VBO.
func (m *Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out,
			v.Pos[0], v.Pos[1], v.Pos[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
			v.Color[0], v.Color[1], v.Color[2], v.Color[3],
		)
	}
	return out
}

// Bounds returns the axis-aligned box of the vertex positions.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0].Pos, m.Vertices[0].Pos
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			min[k] = math32.Min(min[k], v.Pos[k])
			max[k] = math32.Max(max[k], v.Pos[k])
		}
	}
	return min, max
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

var white = mgl32.Vec4{1, 1, 1, 1}

// Floor quad.
const (
	FloorHalfWidth = 10.0
	FloorY         = -1.0
	FloorNear      = -16.85
	FloorFar       = 17.0
	FloorTiles     = 10.0
)

// FloorNormal is the normal every floor vertex carries.
var FloorNormal = mgl32.Vec3{0, -1, 0}

// FloorColor tints the ceramic texture.
var FloorColor = mgl32.Vec4{0.8, 1, 0.8, 1}

// Floor builds the floor quad, CCW when seen from above, with the texture
// repeated FloorTiles times along each side.
func Floor() Mesh {
	corners := [4]mgl32.Vec3{
		{FloorHalfWidth, FloorY, FloorNear},
		{-FloorHalfWidth, FloorY, FloorNear},
		{-FloorHalfWidth, FloorY, FloorFar},
		{FloorHalfWidth, FloorY, FloorFar},
	}
	uvs := [4]mgl32.Vec2{{FloorTiles, 0}, {0, 0}, {0, FloorTiles}, {FloorTiles, FloorTiles}}
	m := Mesh{Indices: []uint32{0, 1, 2, 0, 2, 3}}
	for i := range corners {
		m.Vertices = append(m.Vertices, Vertex{Pos: corners[i], Normal: FloorNormal, UV: uvs[i], Color: FloorColor})
	}
	return m
}

// Cube builds a cube spanning [-1, 1] on every axis with per-face normals.
func Cube() Mesh {
	faces := []struct {
		n      mgl32.Vec3
		corner [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	var m Mesh
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for i, p := range f.corner {
			m.Vertices = append(m.Vertices, Vertex{Pos: p, Normal: f.n, UV: uvs[i], Color: white})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Cylinder builds an open tube along +Z from z=0 to z=height, the way a
// quadric cylinder is laid out. Faces point outward.
func Cylinder(baseRadius, topRadius, height float32, slices, stacks int) Mesh {
	slices = max(slices, 3)
	stacks = max(stacks, 1)
	var m Mesh
	slope := (baseRadius - topRadius) / height
	for j := 0; j <= stacks; j++ {
		t := float32(j) / float32(stacks)
		r := baseRadius + (topRadius-baseRadius)*t
		z := height * t
		for i := 0; i <= slices; i++ {
			u := float32(i) / float32(slices)
			a := u * 2 * math32.Pi
			c, s := math32.Cos(a), math32.Sin(a)
			n := mgl32.Vec3{c, s, slope}.Normalize()
			m.Vertices = append(m.Vertices, Vertex{
				Pos:    mgl32.Vec3{r * c, r * s, z},
				Normal: n,
				UV:     mgl32.Vec2{u, t},
				Color:  white,
			})
		}
	}
	row := uint32(slices + 1)
	for j := 0; j < stacks; j++ {
		for i := 0; i < slices; i++ {
			a := uint32(j)*row + uint32(i)
			b := a + 1
			c := a + row
			d := c + 1
			m.Indices = append(m.Indices, a, b, d, a, d, c)
		}
	}
	return m
}
