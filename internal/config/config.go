package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Window defaults.
const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Stairwalk"
)

// Params are the user-selectable scene parameters. They are read when an
// animation starts or a frame is drawn.
type Params struct {
	ActorHeight  float64 `yaml:"actor_height" toml:"actor_height"`   // world units
	AmbientLight float64 `yaml:"ambient_light" toml:"ambient_light"` // 0..1
	TickMillis   int     `yaml:"tick_millis" toml:"tick_millis"`
}

// TickInterval returns the animation tick period.
func (p Params) TickInterval() time.Duration {
	return time.Duration(p.TickMillis) * time.Millisecond
}

// Options are the value lists the parameter selectors cycle through.
type Options struct {
	ActorHeights  []float64 `yaml:"actor_heights" toml:"actor_heights"`
	AmbientLights []float64 `yaml:"ambient_lights" toml:"ambient_lights"`
	TickMillis    []int     `yaml:"tick_millis" toml:"tick_millis"`
}

type Window struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

type Textures struct {
	Metal   string `yaml:"metal" toml:"metal"`
	Ceramic string `yaml:"ceramic" toml:"ceramic"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"`
}

type Config struct {
	Window   Window   `yaml:"window" toml:"window"`
	Model    string   `yaml:"model" toml:"model"`
	Textures Textures `yaml:"textures" toml:"textures"`
	Params   Params   `yaml:"params" toml:"params"`
	Options  Options  `yaml:"options" toml:"options"`
	Captions []string `yaml:"captions" toml:"captions"`
	Audio    Audio    `yaml:"audio" toml:"audio"`
	// DialogCommand is run to pick a model file; its stdout is the path.
	DialogCommand string `yaml:"dialog_command" toml:"dialog_command"`
	// Watch reloads Params when the config file changes on disk.
	Watch    bool   `yaml:"watch" toml:"watch"`
	LogLevel string `yaml:"log_level" toml:"log_level"`

	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: Window{Width: WindowWidth, Height: WindowHeight, Title: WindowTitle},
		Model:  filepath.Join("models", "bodymesh", "human.obj"),
		Textures: Textures{
			Metal:   filepath.Join("textures", "metal.jpg"),
			Ceramic: filepath.Join("textures", "ceramic.jpg"),
		},
		Params: Params{ActorHeight: 1.8, AmbientLight: 0.5, TickMillis: 50},
		Options: Options{
			ActorHeights:  []float64{1.5, 1.8, 2.0, 2.5},
			AmbientLights: []float64{0.1, 0.3, 0.5, 0.8, 1.0},
			TickMillis:    []int{10, 20, 50, 100},
		},
		Captions: []string{
			"Course: Computer Graphics",
			"School year: 2020/21",
			"Name: Rados",
			"Surname: Milicev",
			"Task: 16.1",
		},
		Audio:    Audio{Enabled: true, Volume: 0.6},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. TOML is used for ".toml" files and YAML
// otherwise. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path %s: %w", path, err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", p, err)
	}
	if err := decode(p, data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", p, err)
	}
	cfg.path = p
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", p, err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string { return c.path }

// ErrNoConfigFile is returned by WatchPath when watching is on but the
// config did not come from a file.
var ErrNoConfigFile = errors.New("no config file to watch")

// WatchPath returns the file to watch for reloads, or "" when Watch is off.
func (c *Config) WatchPath() (string, error) {
	if !c.Watch {
		return "", nil
	}
	if c.path == "" {
		return "", ErrNoConfigFile
	}
	return c.path, nil
}

// Validate checks ranges and fills empty option lists from the defaults.
func (c *Config) Validate() error {
	def := Default()
	if len(c.Options.ActorHeights) == 0 {
		c.Options.ActorHeights = def.Options.ActorHeights
	}
	if len(c.Options.AmbientLights) == 0 {
		c.Options.AmbientLights = def.Options.AmbientLights
	}
	if len(c.Options.TickMillis) == 0 {
		c.Options.TickMillis = def.Options.TickMillis
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Textures.Metal == "" || c.Textures.Ceramic == "" {
		return fmt.Errorf("%w: both textures must be set", ErrInvalid)
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	for _, h := range c.Options.ActorHeights {
		if h <= 0 {
			return fmt.Errorf("%w: actor height option %v", ErrInvalid, h)
		}
	}
	for _, a := range c.Options.AmbientLights {
		if a < 0 || a > 1 {
			return fmt.Errorf("%w: ambient light option %v", ErrInvalid, a)
		}
	}
	for _, ms := range c.Options.TickMillis {
		if ms <= 0 {
			return fmt.Errorf("%w: tick option %dms", ErrInvalid, ms)
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %v", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if p.ActorHeight <= 0 {
		return fmt.Errorf("%w: actor height %v", ErrInvalid, p.ActorHeight)
	}
	if p.AmbientLight < 0 || p.AmbientLight > 1 {
		return fmt.Errorf("%w: ambient light %v", ErrInvalid, p.AmbientLight)
	}
	if p.TickMillis <= 0 {
		return fmt.Errorf("%w: tick interval %dms", ErrInvalid, p.TickMillis)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Next returns the element after cur in opts, wrapping around. If cur is
// not in opts the first option is returned.
func Next[T comparable](opts []T, cur T) T {
	if len(opts) == 0 {
		return cur
	}
	i := slices.Index(opts, cur)
	return opts[(i+1)%len(opts)]
}
