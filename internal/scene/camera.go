package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera limits and steps, in degrees and world units.
const (
	MinRotationX    = -35.0
	MaxRotationX    = 45.0
	RotationStep    = 5.0
	DistanceStep    = 3.0
	DefaultDistance = 30.0
)

// ErrRotationLimit is returned when a tilt would leave [MinRotationX, MaxRotationX].
var ErrRotationLimit = errors.New("camera rotation out of range")

// Camera orbits the origin. RotationY and Distance are unbounded.
type Camera struct {
	RotationX float32
	RotationY float32
	Distance  float32
}

// DefaultCamera is the camera of a freshly loaded world.
func DefaultCamera() Camera {
	return Camera{Distance: DefaultDistance}
}

// SetRotationX sets the tilt, rejecting values outside the limits.
// The boundaries themselves are accepted.
func (c *Camera) SetRotationX(deg float32) error {
	if deg < MinRotationX {
		return fmt.Errorf("%w: %.0f below floor limit %.0f", ErrRotationLimit, deg, MinRotationX)
	}
	if deg > MaxRotationX {
		return fmt.Errorf("%w: %.0f above limit %.0f", ErrRotationLimit, deg, MaxRotationX)
	}
	c.RotationX = deg
	return nil
}

// Tilt changes RotationX by delta degrees; see SetRotationX.
func (c *Camera) Tilt(delta float32) error {
	return c.SetRotationX(c.RotationX + delta)
}

// Pan changes RotationY by delta degrees.
func (c *Camera) Pan(delta float32) {
	c.RotationY += delta
}

// Zoom changes the distance; negative moves the camera closer.
func (c *Camera) Zoom(delta float32) {
	c.Distance += delta
}

// View returns translate(0,0,-Distance)·rotX·rotY.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -c.Distance).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.RotationX))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.RotationY)))
}
