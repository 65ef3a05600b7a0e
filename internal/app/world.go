package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"stairwalk/internal/asset"
	"stairwalk/internal/config"
	"stairwalk/internal/render"
	"stairwalk/internal/scene"
	"stairwalk/internal/walk"
)

// CaptionMargin is the gap in pixels between the overlay text and the
// edges of the caption viewport.
const CaptionMargin = 12

// World is one loaded model composed with the fixed scenery: cylinder,
// floor and staircase. It owns the model mesh and both textures; the
// primitives and programs belong to the shared renderer.
type World struct {
	rend *render.Renderer

	model   *asset.Model
	fit     mgl32.Mat4
	actor   *render.Mesh
	metal   *render.Texture
	ceramic *render.Texture
	stairs  []mgl32.Mat4

	camera   scene.Camera
	walker   *walk.Controller
	viewport scene.Viewport

	closed bool
}

// LoadWorld decodes modelPath and the textures, then uploads them. Nothing
// touches the GPU until every file has decoded, so a bad file leaks
// nothing; a GL failure during upload releases what was created.
func LoadWorld(ctx context.Context, rend *render.Renderer, modelPath string, tex config.Textures, vp scene.Viewport) (*World, error) {
	s, err := asset.LoadScene(ctx, modelPath, tex)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	w := &World{
		rend:     rend,
		model:    s.Model,
		fit:      s.Model.Fit(),
		stairs:   scene.StairTransforms(),
		camera:   scene.DefaultCamera(),
		walker:   walk.NewController(),
		viewport: vp,
	}
	if err := w.initGraphics(s); err != nil {
		w.Close()
		return nil, fmt.Errorf("load world: %w", err)
	}
	slog.Info("world loaded",
		"model", s.Model.Path,
		"triangles", s.Model.Mesh.TriangleCount(),
		"groups", len(s.Model.Groups))
	return w, nil
}

func (w *World) initGraphics(s *asset.Scene) error {
	var err error
	if w.metal, err = render.NewTexture(s.Metal, true); err != nil {
		return fmt.Errorf("metal texture: %w", err)
	}
	if w.ceramic, err = render.NewTexture(s.Ceramic, true); err != nil {
		return fmt.Errorf("ceramic texture: %w", err)
	}
	if w.actor, err = render.NewMesh(&s.Model.Mesh); err != nil {
		return fmt.Errorf("model mesh: %w", err)
	}
	return nil
}

func (w *World) Camera() *scene.Camera    { return &w.camera }
func (w *World) Walker() *walk.Controller { return w.walker }
func (w *World) Model() *asset.Model      { return w.model }

// Resize records the framebuffer size. The projection is rebuilt from it
// on the next frame.
func (w *World) Resize(width, height int) {
	w.viewport.Resize(width, height)
}

// Viewport returns the current clamped framebuffer size.
func (w *World) Viewport() scene.Viewport { return w.viewport }

// DrawFrame renders the scene in a fixed order: actor, cylinder, floor,
// staircase, then the overlay text in the caption viewport. notice may be
// nil or empty.
func (w *World) DrawFrame(p config.Params, captions, notice *render.Label) {
	if w.closed {
		return
	}
	r := w.rend
	r.BeginFrame(w.viewport, w.camera, float32(p.AmbientLight))

	r.DrawMesh(w.actor, scene.ActorTransform(w.walker.Pose(), float32(p.ActorHeight), w.fit), nil)
	r.DrawMesh(r.Cylinder, scene.CylinderTransform(), w.metal)
	r.DrawMesh(r.Floor, mgl32.Ident4(), w.ceramic)
	for _, m := range w.stairs {
		r.DrawMesh(r.Cube, m, w.metal)
	}

	rect := w.viewport.CaptionRect()
	r.BeginOverlay(rect)
	y := float32(CaptionMargin)
	if tex := captions.Texture(); tex != nil {
		r.DrawImage(tex, float32(rect.W-tex.Width-CaptionMargin), y)
		y += float32(tex.Height + CaptionMargin/2)
	}
	if notice != nil {
		if tex := notice.Texture(); tex != nil {
			r.DrawImage(tex, float32(rect.W-tex.Width-CaptionMargin), y)
		}
	}
}

// Close releases the world's GPU resources. It is safe to call more than
// once.
func (w *World) Close() {
	if w == nil || w.closed {
		return
	}
	w.closed = true
	w.actor.Delete()
	w.metal.Delete()
	w.ceramic.Delete()
	w.actor, w.metal, w.ceramic = nil, nil, nil
}
