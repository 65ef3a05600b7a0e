package asset

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stairwalk/internal/config"
)

const testOBJ = `# two-material panel
mtllib panel.mtl
v 0 0 0
v 1 0 0
v 1 2 0
v 0 2 0
g front
usemtl skin
f 1 2 3
g back
usemtl cloth
f 1 3 4
`

const testMTL = `newmtl skin
Kd 0.9 0.7 0.6
newmtl cloth
Kd 0.1 0.2 0.8
`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func gradient(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / max(w-1, 1)), G: uint8(y * 255 / max(h-1, 1)), A: 255})
		}
	}
	return img
}

func writeJPEG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 95}))
	return p
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return p
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "panel.obj", []byte(testOBJ))
	writeFile(t, dir, "panel.mtl", []byte(testMTL))

	m, err := LoadModel(dir, "panel.obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "panel.obj"), m.Path)
	assert.Len(t, m.Mesh.Indices, 6)
	assert.Len(t, m.Mesh.Vertices, 6)
	assert.Equal(t, 2, m.Mesh.TriangleCount())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, m.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, m.Max)

	want := map[string]mgl32.Vec4{
		"skin":  {0.9, 0.7, 0.6, 1},
		"cloth": {0.1, 0.2, 0.8, 1},
	}
	seen := map[string]bool{}
	for _, g := range m.Groups {
		col, ok := want[g.Material]
		require.True(t, ok, "unexpected material %q", g.Material)
		seen[g.Material] = true
		for _, idx := range m.Mesh.Indices[g.First : g.First+g.Count] {
			assert.Equal(t, col, m.Mesh.Vertices[idx].Color)
		}
	}
	assert.Len(t, seen, 2)

	// No normals in the file: flat normals face +Z for CCW triangles.
	for _, v := range m.Mesh.Vertices {
		assert.InDelta(t, 1.0, v.Normal.Z(), 1e-6)
	}

	fit := m.Fit()
	top := fit.Mul4x1(mgl32.Vec4{0.5, 2, 0, 1})
	assert.InDelta(t, 1.0, top.Y(), 1e-6)
}

func TestLoadModelWithoutMaterials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.obj", []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))

	m, err := LoadModel(dir, "tri.obj")
	require.NoError(t, err)
	for _, v := range m.Mesh.Vertices {
		assert.Equal(t, DefaultModelColor, v.Color)
	}
}

func TestLoadModelErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadModel(dir, "missing.obj")
	assert.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, dir, "points.obj", []byte("v 0 0 0\nv 1 0 0\n"))
	_, err = LoadModel(dir, "points.obj")
	assert.Error(t, err)

	writePNG(t, dir, "image.obj", gradient(4, 4))
	_, err = LoadModel(dir, "image.obj")
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	p := writePNG(t, dir, "ramp.png", gradient(8, 4))

	img, err := LoadTexture(p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	// Rows are flipped: the first stored row is the bottom of the image.
	assert.Equal(t, uint8(255), img.NRGBAAt(0, 0).G)
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 3).G)

	j := writeJPEG(t, dir, "ramp.jpg", gradient(16, 16))
	img, err = LoadTexture(j)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestLoadTextureDownscales(t *testing.T) {
	img := toTexels(gradient(MaxTextureSize*2, 16))
	assert.Equal(t, MaxTextureSize, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestLoadTextureErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTexture(filepath.Join(dir, "nope.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	txt := writeFile(t, dir, "notes.jpg", []byte("definitely not a jpeg"))
	_, err = LoadTexture(txt)
	assert.ErrorIs(t, err, ErrUnsupportedTexture)
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "panel.obj", []byte(testOBJ))
	writeFile(t, dir, "panel.mtl", []byte(testMTL))
	tex := config.Textures{
		Metal:   writeJPEG(t, dir, "metal.jpg", gradient(8, 8)),
		Ceramic: writeJPEG(t, dir, "ceramic.jpg", gradient(4, 4)),
	}

	s, err := LoadScene(context.Background(), model, tex)
	require.NoError(t, err)
	assert.NotNil(t, s.Model)
	assert.Equal(t, 8, s.Metal.Bounds().Dx())
	assert.Equal(t, 4, s.Ceramic.Bounds().Dx())

	tex.Ceramic = filepath.Join(dir, "missing.jpg")
	s, err = LoadScene(context.Background(), model, tex)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, s)
}

func TestRenderCaption(t *testing.T) {
	lines := []string{"Course: Computer Graphics", "Task: 16.1"}
	img := RenderCaption(lines, CaptionColor)
	b := img.Bounds()
	assert.Greater(t, b.Dx(), 7*len(lines[0]))
	assert.Greater(t, b.Dy(), 2*13)

	red := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] > 0 {
			assert.Zero(t, img.Pix[i+1])
			red++
		}
	}
	assert.Positive(t, red)

}

func TestRenderCaptionEmpty(t *testing.T) {
	for _, lines := range [][]string{nil, {}} {
		img := RenderCaption(lines, CaptionColor)
		assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
		assert.Zero(t, img.Pix[3], "empty caption is transparent")
	}
}

func TestWriteInfo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "panel.obj", []byte(testOBJ))
	writeFile(t, dir, "panel.mtl", []byte(testMTL))
	m, err := LoadModel(dir, "panel.obj")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteInfo(&buf, m))
	out := buf.String()
	assert.Contains(t, out, "panel.obj")
	assert.Regexp(t, `Triangles:\s+2\n`, out)
	assert.Regexp(t, `Groups:\s+2\n`, out)
	assert.Regexp(t, `front\s+skin\s+1 triangles`, out)
	assert.Regexp(t, `back\s+cloth\s+1 triangles`, out)
	assert.Contains(t, out, "1.000 x 2.000 x 0.000")
}
