// Package app hosts the desktop window: it owns the GL context, the current
// World and the frame loop that drives input, animation and drawing.
package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"stairwalk/internal/config"
	"stairwalk/internal/control"
	"stairwalk/internal/dialog"
	"stairwalk/internal/render"
	"stairwalk/internal/scene"
	"stairwalk/internal/sfx"
	"stairwalk/internal/walk"
)

var noticeColor = color.NRGBA{R: 255, G: 220, B: 64, A: 255}

// RunDesktop opens the window and runs until it is closed. It returns an
// error if the first World cannot be built.
func RunDesktop(cfg *config.Config) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	slog.Debug("opengl", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	rend, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	var player *sfx.Player
	if cfg.Audio.Enabled {
		if player, err = sfx.New(cfg.Audio.Volume); err != nil {
			slog.Warn("audio init failed, continuing without sound", "err", err)
			player = nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fbW, fbH := window.GetFramebufferSize()
	world, err := LoadWorld(ctx, rend, cfg.Model, cfg.Textures, scene.NewViewport(fbW, fbH))
	if err != nil {
		return err
	}
	defer func() { world.Close() }()
	attachSound(world, player)
	window.SetTitle(windowTitle(cfg.Window.Title, world))

	captions := &render.Label{}
	defer captions.Delete()
	if err := captions.Set(cfg.Captions...); err != nil {
		return fmt.Errorf("captions: %w", err)
	}
	noticeLabel := &render.Label{Color: noticeColor}
	defer noticeLabel.Delete()

	params := cfg.Params
	controls := &control.Controls{
		Scene:   world,
		Params:  &params,
		Options: cfg.Options,
		Quit:    func() { window.SetShouldClose(true) },
	}
	picker := dialog.Picker{Command: cfg.DialogCommand}
	controls.OpenModel = func() error {
		path, err := picker.Pick(ctx)
		if err != nil {
			return err
		}
		next, err := LoadWorld(ctx, rend, path, cfg.Textures, world.Viewport())
		if err != nil {
			return err
		}
		attachSound(next, player)
		world.Close()
		world = next
		controls.Scene = world
		window.SetTitle(windowTitle(cfg.Window.Title, world))
		return nil
	}

	var updates <-chan config.Params
	switch path, err := cfg.WatchPath(); {
	case errors.Is(err, config.ErrNoConfigFile):
		slog.Warn("config watcher disabled, pass --config to enable it", "err", err)
	case path != "":
		if updates, err = config.Watch(ctx, path); err != nil {
			slog.Warn("config watcher disabled", "err", err)
		}
	}
	var pending *config.Params

	var notice control.Notice
	input := NewInput()

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}
		wall := time.Now()

		glfw.PollEvents()
		fbW, fbH := window.GetFramebufferSize()
		world.Resize(fbW, fbH)

		for _, a := range input.Actions(window) {
			msg, err := controls.Apply(a)
			switch {
			case err == nil:
			case errors.Is(err, control.ErrAnimationInProgress),
				errors.Is(err, scene.ErrRotationLimit),
				errors.Is(err, dialog.ErrCancelled):
				slog.Debug("action rejected", "action", a, "err", err)
			default:
				slog.Error("action failed", "action", a, "err", err)
				msg = fmt.Sprintf("Could not %s", a)
			}
			if msg != "" {
				notice.Show(msg, wall)
			}
		}

		// Reloaded parameters wait until no walk is running.
		select {
		case p, ok := <-updates:
			if !ok {
				updates = nil
				break
			}
			pending = &p
		default:
		}
		if pending != nil && !controls.Locked() {
			if err := controls.SetParams(*pending); err != nil {
				slog.Warn("config reload rejected", "err", err)
			} else {
				slog.Info("config reloaded", "params", *pending)
				notice.Show("Configuration reloaded", wall)
			}
			pending = nil
		}

		world.Walker().Advance(time.Duration(dt * float64(time.Second)))

		var lines []string
		if text := notice.Text(wall); text != "" {
			lines = []string{text}
		}
		if err := noticeLabel.Set(lines...); err != nil {
			slog.Warn("notice", "err", err)
		}

		if fbW <= 0 || fbH <= 0 {
			continue
		}
		world.DrawFrame(params, captions, noticeLabel)
		window.SwapBuffers()
	}
	return nil
}

// windowTitle names the loaded model after the configured title.
func windowTitle(title string, w *World) string {
	return title + " - " + filepath.Base(w.Model().Path)
}

// attachSound plays a footstep at every phase boundary of w's walk.
func attachSound(w *World, player *sfx.Player) {
	walker := w.Walker()
	walker.OnPhase = func(p walk.Phase) {
		slog.Debug("walk phase", "phase", p, "tick", walker.TickCount())
		player.Footstep()
	}
	walker.OnFinish = func(p walk.Pose) {
		slog.Debug("walk finished", "x", p.X, "y", p.Y, "z", p.Z, "rot", p.RotY)
	}
}
