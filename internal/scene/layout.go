package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"stairwalk/internal/walk"
)

// Staircase layout.
const (
	StairSteps     = 20
	StairStepAngle = 20.0 // degrees, multiplied by the step index
	StairRadius    = 2.9
	StairBaseY     = -0.7
	StairRise      = 0.5
)

// StairStepScale shapes the unit cube into a thin step.
var StairStepScale = mgl32.Vec3{0.8, 0.2, 0.2}

// StairTransforms returns the model matrix of every step. The Y rotation is
// carried from one step to the next, so step i sits at a cumulative angle of
// 10·i·(i+1) degrees and the steps wind into a spiral.
func StairTransforms() []mgl32.Mat4 {
	out := make([]mgl32.Mat4, StairSteps)
	running := mgl32.Ident4()
	for i := 0; i < StairSteps; i++ {
		running = running.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(i) * StairStepAngle)))
		out[i] = running.
			Mul4(mgl32.Translate3D(StairRadius, StairBaseY+float32(i)*StairRise, 0)).
			Mul4(mgl32.Scale3D(StairStepScale.X(), StairStepScale.Y(), StairStepScale.Z()))
	}
	return out
}

// Cylinder placement and shape.
const (
	CylinderRadius = 2.0
	CylinderHeight = 10.0
	CylinderSlices = 32
	CylinderStacks = 1
)

// CylinderTransform stands the Z-aligned cylinder upright on the floor.
func CylinderTransform() mgl32.Mat4 {
	return mgl32.Translate3D(0, -1, 0).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-90)))
}

// ActorTransform places the actor. fit maps the raw model into a unit-height
// box with its feet at the origin; height scales that box to world units.
func ActorTransform(p walk.Pose, height float32, fit mgl32.Mat4) mgl32.Mat4 {
	return mgl32.Translate3D(float32(p.X), float32(p.Y), float32(p.Z)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(p.RotY)))).
		Mul4(mgl32.Scale3D(height, height, height)).
		Mul4(fit)
}

// FitTransform maps the box [min, max] to unit height, centred on X/Z with
// its lowest point at Y=0. A degenerate box yields a pure translation.
func FitTransform(min, max mgl32.Vec3) mgl32.Mat4 {
	h := max.Y() - min.Y()
	s := float32(1)
	if h > 0 {
		s = 1 / h
	}
	cx := (min.X() + max.X()) / 2
	cz := (min.Z() + max.Z()) / 2
	return mgl32.Scale3D(s, s, s).Mul4(mgl32.Translate3D(-cx, -min.Y(), -cz))
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of m.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}
