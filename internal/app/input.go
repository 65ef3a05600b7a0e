package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"stairwalk/internal/control"
)

// keyBindings maps keys to actions. Order is the order actions are applied
// when several keys go down in the same frame.
var keyBindings = []struct {
	key    glfw.Key
	action control.Action
}{
	{glfw.KeyF4, control.ActionQuit},
	{glfw.KeyE, control.ActionTiltDown},
	{glfw.KeyD, control.ActionTiltUp},
	{glfw.KeyS, control.ActionPanLeft},
	{glfw.KeyF, control.ActionPanRight},
	{glfw.KeyKPAdd, control.ActionZoomIn},
	{glfw.KeyKPSubtract, control.ActionZoomOut},
	{glfw.KeyV, control.ActionAnimate},
	{glfw.KeyF2, control.ActionOpenModel},
	{glfw.KeyH, control.ActionCycleHeight},
	{glfw.KeyL, control.ActionCycleAmbient},
	{glfw.KeyT, control.ActionCycleSpeed},
}

type Input struct {
	prevKeys map[glfw.Key]bool
	buf      []control.Action
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Actions returns the actions whose keys went down since the last call.
// The slice is reused between calls.
func (in *Input) Actions(window *glfw.Window) []control.Action {
	in.buf = in.buf[:0]
	for _, b := range keyBindings {
		if in.JustPressed(window, b.key) {
			in.buf = append(in.buf, b.action)
		}
	}
	return in.buf
}
