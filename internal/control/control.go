package control

import (
	"errors"
	"fmt"

	"stairwalk/internal/config"
	"stairwalk/internal/scene"
	"stairwalk/internal/walk"
)

// Action is a user command, independent of the key that triggers it.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionTiltDown
	ActionTiltUp
	ActionPanLeft
	ActionPanRight
	ActionZoomIn
	ActionZoomOut
	ActionAnimate
	ActionOpenModel
	ActionCycleHeight
	ActionCycleAmbient
	ActionCycleSpeed
)

var actionNames = [...]string{
	ActionNone:         "none",
	ActionQuit:         "quit",
	ActionTiltDown:     "tilt down",
	ActionTiltUp:       "tilt up",
	ActionPanLeft:      "pan left",
	ActionPanRight:     "pan right",
	ActionZoomIn:       "zoom in",
	ActionZoomOut:      "zoom out",
	ActionAnimate:      "animate",
	ActionOpenModel:    "open model",
	ActionCycleHeight:  "actor height",
	ActionCycleAmbient: "ambient light",
	ActionCycleSpeed:   "animation speed",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ErrAnimationInProgress rejects every command except Animate during a run.
var ErrAnimationInProgress = errors.New("animation in progress")

// Scene is the part of the current world the controls act on.
type Scene interface {
	Camera() *scene.Camera
	Walker() *walk.Controller
}

// Controls applies actions to the current scene and parameters.
type Controls struct {
	Scene   Scene
	Params  *config.Params
	Options config.Options

	// Quit and OpenModel are invoked for their actions once the guard passes.
	Quit      func()
	OpenModel func() error
}

// Locked reports whether a walk is running.
func (c *Controls) Locked() bool {
	return c.Scene != nil && c.Scene.Walker().InProgress()
}

// Apply runs a. The returned notice, if any, is meant for the user.
func (c *Controls) Apply(a Action) (string, error) {
	if c.Scene == nil || a == ActionNone {
		return "", nil
	}
	if a == ActionAnimate {
		if !c.Scene.Walker().Start(c.Params.TickInterval()) {
			return "", ErrAnimationInProgress
		}
		return "", nil
	}
	if c.Locked() {
		return "", fmt.Errorf("%s: %w", a, ErrAnimationInProgress)
	}

	cam := c.Scene.Camera()
	switch a {
	case ActionQuit:
		if c.Quit != nil {
			c.Quit()
		}
	case ActionTiltDown:
		if err := cam.Tilt(-scene.RotationStep); err != nil {
			return "Going below the floor is not allowed", err
		}
	case ActionTiltUp:
		if err := cam.Tilt(scene.RotationStep); err != nil {
			return "Turning the floor upside down is not allowed", err
		}
	case ActionPanLeft:
		cam.Pan(-scene.RotationStep)
	case ActionPanRight:
		cam.Pan(scene.RotationStep)
	case ActionZoomIn:
		cam.Zoom(-scene.DistanceStep)
	case ActionZoomOut:
		cam.Zoom(scene.DistanceStep)
	case ActionOpenModel:
		if c.OpenModel != nil {
			return "", c.OpenModel()
		}
	case ActionCycleHeight:
		c.Params.ActorHeight = config.Next(c.Options.ActorHeights, c.Params.ActorHeight)
		return fmt.Sprintf("Actor height: %.1f", c.Params.ActorHeight), nil
	case ActionCycleAmbient:
		c.Params.AmbientLight = config.Next(c.Options.AmbientLights, c.Params.AmbientLight)
		return fmt.Sprintf("Ambient light: %.1f", c.Params.AmbientLight), nil
	case ActionCycleSpeed:
		c.Params.TickMillis = config.Next(c.Options.TickMillis, c.Params.TickMillis)
		return fmt.Sprintf("Animation tick: %d ms", c.Params.TickMillis), nil
	}
	return "", nil
}

// SetParams replaces the parameters, as a config reload does. It is
// rejected while a walk is running.
func (c *Controls) SetParams(p config.Params) error {
	if c.Locked() {
		return fmt.Errorf("parameter reload: %w", ErrAnimationInProgress)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	*c.Params = p
	return nil
}
