package scene

import "github.com/go-gl/mathgl/mgl32"

// Projection parameters.
const (
	FieldOfView = 50.0 // degrees, vertical
	NearPlane   = 0.5
	FarPlane    = 20000.0
)

// Viewport is the framebuffer size in pixels. Dimensions are never below 1.
type Viewport struct {
	Width, Height int
}

// NewViewport returns a viewport with clamped dimensions.
func NewViewport(w, h int) Viewport {
	var v Viewport
	v.Resize(w, h)
	return v
}

// Resize stores new dimensions, clamping non-positive values to 1.
func (v *Viewport) Resize(w, h int) {
	v.Width = max(w, 1)
	v.Height = max(h, 1)
}

// Aspect returns width/height.
func (v Viewport) Aspect() float32 {
	return float32(max(v.Width, 1)) / float32(max(v.Height, 1))
}

// Projection returns the perspective matrix for the viewport.
func (v Viewport) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), v.Aspect(), NearPlane, FarPlane)
}

// Rect is a pixel rectangle with a bottom-left origin, as glViewport takes it.
type Rect struct {
	X, Y, W, H int
}

// CaptionRect returns the bottom-right quadrant used for the caption overlay.
func (v Viewport) CaptionRect() Rect {
	return Rect{
		X: v.Width / 2,
		Y: 0,
		W: max(v.Width-v.Width/2, 1),
		H: max(v.Height/2, 1),
	}
}
