package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50*time.Millisecond, cfg.Params.TickInterval())
	assert.Len(t, cfg.Captions, 5)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "scene.yaml", `
model: assets/walker.obj
params:
  actor_height: 2.0
  ambient_light: 0.8
  tick_millis: 20
options:
  tick_millis: [5, 20]
audio:
  enabled: false
  volume: 0.2
watch: true
log_level: debug
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "assets/walker.obj", cfg.Model)
	assert.Equal(t, Params{ActorHeight: 2.0, AmbientLight: 0.8, TickMillis: 20}, cfg.Params)
	assert.Equal(t, []int{5, 20}, cfg.Options.TickMillis)
	assert.Equal(t, Default().Options.ActorHeights, cfg.Options.ActorHeights)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Watch)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, p, cfg.Path())
	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Textures, cfg.Textures)
	assert.Equal(t, WindowWidth, cfg.Window.Width)
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, "scene.toml", `
model = "assets/walker.obj"
log_level = "warn"

[params]
actor_height = 1.5
ambient_light = 0.3
tick_millis = 100

[window]
width = 640
height = 480
title = "walk"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Params{ActorHeight: 1.5, AmbientLight: 0.3, TickMillis: 100}, cfg.Params)
	assert.Equal(t, Window{Width: 640, Height: 480, Title: "walk"}, cfg.Window)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "params: [1, 2")
	_, err = Load(bad)
	assert.Error(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"zero height", "params: {actor_height: 0, ambient_light: 0.5, tick_millis: 50}"},
		{"ambient above one", "params: {actor_height: 1, ambient_light: 1.5, tick_millis: 50}"},
		{"zero tick", "params: {actor_height: 1, ambient_light: 0.5, tick_millis: 0}"},
		{"negative window", "window: {width: -1, height: 10}"},
		{"missing texture", "textures: {metal: '', ceramic: c.jpg}"},
		{"bad tick option", "options: {tick_millis: [10, -5]}"},
		{"bad ambient option", "options: {ambient_lights: [2]}"},
		{"bad volume", "audio: {volume: 3}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", tt.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSlogLevelFallback(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "chatty"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestNext(t *testing.T) {
	assert.Equal(t, 20, Next([]int{10, 20, 50}, 10))
	assert.Equal(t, 10, Next([]int{10, 20, 50}, 50))
	assert.Equal(t, 10, Next([]int{10, 20, 50}, 7))
	assert.Equal(t, 0.3, Next([]float64{0.1, 0.3}, 0.1))
	assert.Equal(t, 4, Next([]int(nil), 4))
}

func TestEncode(t *testing.T) {
	var y strings.Builder
	require.NoError(t, Default().Encode(&y, "yaml"))
	assert.Contains(t, y.String(), "actor_height: 1.8")
	assert.Contains(t, y.String(), "tick_millis: 50")

	var tm strings.Builder
	require.NoError(t, Default().Encode(&tm, "toml"))
	assert.Contains(t, tm.String(), "[params]")
	assert.Contains(t, tm.String(), "ambient_light = 0.5")

	// The dump loads back as a config file.
	p := writeFile(t, "dump.toml", tm.String())
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default().Params, cfg.Params)

	assert.ErrorIs(t, Default().Encode(io.Discard, "ini"), ErrInvalid)
}

func TestWatchPath(t *testing.T) {
	cfg := Default()
	path, err := cfg.WatchPath()
	require.NoError(t, err)
	assert.Empty(t, path)

	cfg.Watch = true
	_, err = cfg.WatchPath()
	assert.ErrorIs(t, err, ErrNoConfigFile)

	p := writeFile(t, "stairwalk.yaml", "watch: true\n")
	cfg, err = Load(p)
	require.NoError(t, err)
	path, err = cfg.WatchPath()
	require.NoError(t, err)
	assert.Equal(t, p, path)
}
