// Package render draws scene meshes and 2D overlays with OpenGL 4.1 core.
// Every function must be called on the thread that owns the GL context.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"stairwalk/internal/scene"
)

// LightDir is the direction the single scene light travels in.
var LightDir = mgl32.Vec3{-0.4, -1, -0.3}.Normalize()

// ClearColor is the background behind the scene.
var ClearColor = mgl32.Vec4{0.12, 0.12, 0.16, 1}

type Renderer struct {
	// Scene program.
	sceneProg   uint32
	uProjection int32
	uView       int32
	uModel      int32
	uNormal     int32
	uTex        int32
	uTextured   int32
	uAmbient    int32
	uLightDir   int32

	// Overlay program: one streamed textured quad per image.
	overlayProg uint32
	overlayVAO  uint32
	overlayVBO  uint32
	ovURes      int32
	ovUTex      int32

	// Procedural primitives shared by every world.
	Cylinder *Mesh
	Floor    *Mesh
	Cube     *Mesh
}

// NewRenderer links the programs, uploads the primitives and sets the fixed
// pipeline state: depth test, back-face culling, CCW front faces.
func NewRenderer() (*Renderer, error) {
	sceneProg, err := linkProgram(sceneVertSrc, sceneFragSrc)
	if err != nil {
		return nil, fmt.Errorf("scene program: %w", err)
	}
	overlayProg, err := linkProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		gl.DeleteProgram(sceneProg)
		return nil, fmt.Errorf("overlay program: %w", err)
	}

	r := &Renderer{sceneProg: sceneProg, overlayProg: overlayProg}

	gl.UseProgram(sceneProg)
	r.uProjection = uniform(sceneProg, "uProjection")
	r.uView = uniform(sceneProg, "uView")
	r.uModel = uniform(sceneProg, "uModel")
	r.uNormal = uniform(sceneProg, "uNormal")
	r.uTex = uniform(sceneProg, "uTex")
	r.uTextured = uniform(sceneProg, "uTextured")
	r.uAmbient = uniform(sceneProg, "uAmbient")
	r.uLightDir = uniform(sceneProg, "uLightDir")
	gl.Uniform1i(r.uTex, 0)
	gl.Uniform3f(r.uLightDir, LightDir.X(), LightDir.Y(), LightDir.Z())

	gl.UseProgram(overlayProg)
	r.ovURes = uniform(overlayProg, "uResolution")
	r.ovUTex = uniform(overlayProg, "uTex")
	gl.Uniform1i(r.ovUTex, 0)

	// Overlay VAO/VBO: 6 vertices of pos(2) + uv(2).
	gl.GenVertexArrays(1, &r.overlayVAO)
	gl.GenBuffers(1, &r.overlayVBO)
	gl.BindVertexArray(r.overlayVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.overlayVBO)
	stride := int32(4 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.BindVertexArray(0)

	cyl := scene.Cylinder(scene.CylinderRadius, scene.CylinderRadius, scene.CylinderHeight, scene.CylinderSlices, scene.CylinderStacks)
	floor := scene.Floor()
	cube := scene.Cube()
	for _, p := range []struct {
		dst  **Mesh
		src  *scene.Mesh
		name string
	}{
		{&r.Cylinder, &cyl, "cylinder"},
		{&r.Floor, &floor, "floor"},
		{&r.Cube, &cube, "cube"},
	} {
		m, err := NewMesh(p.src)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("%s: %w", p.name, err)
		}
		*p.dst = m
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(ClearColor.X(), ClearColor.Y(), ClearColor.Z(), ClearColor.W())

	if err := checkGL("renderer init"); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) Destroy() {
	r.Cylinder.Delete()
	r.Floor.Delete()
	r.Cube.Delete()
	if r.overlayVBO != 0 {
		gl.DeleteBuffers(1, &r.overlayVBO)
		r.overlayVBO = 0
	}
	if r.overlayVAO != 0 {
		gl.DeleteVertexArrays(1, &r.overlayVAO)
		r.overlayVAO = 0
	}
	for _, id := range []*uint32{&r.sceneProg, &r.overlayProg} {
		if *id != 0 {
			gl.DeleteProgram(*id)
			*id = 0
		}
	}
}

// BeginFrame clears the framebuffer and loads the per-frame uniforms.
func (r *Renderer) BeginFrame(vp scene.Viewport, cam scene.Camera, ambient float32) {
	gl.Viewport(0, 0, int32(vp.Width), int32(vp.Height))
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj := vp.Projection()
	view := cam.View()
	gl.UseProgram(r.sceneProg)
	gl.UniformMatrix4fv(r.uProjection, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.Uniform1f(r.uAmbient, ambient)
}

// DrawMesh draws m with the given model matrix. tex may be nil for
// untextured geometry.
func (r *Renderer) DrawMesh(m *Mesh, model mgl32.Mat4, tex *Texture) {
	normal := scene.NormalMatrix(model)
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.UniformMatrix3fv(r.uNormal, 1, false, &normal[0])
	if tex != nil {
		tex.Bind(0)
		gl.Uniform1i(r.uTextured, 1)
	} else {
		gl.Uniform1i(r.uTextured, 0)
	}
	m.Draw()
}

// BeginOverlay switches to 2D drawing inside rect. Coordinates passed to
// DrawImage are pixels relative to the rect's bottom-left corner.
func (r *Renderer) BeginOverlay(rect scene.Rect) {
	gl.Viewport(int32(rect.X), int32(rect.Y), int32(rect.W), int32(rect.H))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.overlayProg)
	gl.Uniform2f(r.ovURes, float32(rect.W), float32(rect.H))
	gl.BindVertexArray(r.overlayVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.overlayVBO)
}

// DrawImage draws tex unscaled with its bottom-left corner at (x, y).
func (r *Renderer) DrawImage(tex *Texture, x, y float32) {
	if tex == nil {
		return
	}
	quad := overlayQuad(x, y, float32(tex.Width), float32(tex.Height))
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(&quad[0]))
	tex.Bind(0)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// overlayQuad returns two triangles covering (x, y, w, h) with UVs for a
// bottom-up texture.
func overlayQuad(x, y, w, h float32) [24]float32 {
	x1, y1 := x+w, y+h
	return [24]float32{
		x, y, 0, 0,
		x1, y, 1, 0,
		x1, y1, 1, 1,
		x, y, 0, 0,
		x1, y1, 1, 1,
		x, y1, 0, 1,
	}
}
