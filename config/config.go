// Package config loads the YAML settings shared by the game and the
// simulator. Every field is optional; a file only needs to name what it
// changes from Default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate error.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of the settings file.
type Config struct {
	Timing    Timing    `yaml:"timing"`
	Window    Window    `yaml:"window"`
	Keys      Keys      `yaml:"keys"`
	Log       Log       `yaml:"log"`
	HighScore HighScore `yaml:"highScore"`
}

// Timing holds the pacing of the game. Durations use Go syntax ("100ms").
type Timing struct {
	Descend       time.Duration `yaml:"descend"`
	SoftDrop      time.Duration `yaml:"softDrop"`
	LateralRepeat time.Duration `yaml:"lateralRepeat"`
	LevelStep     time.Duration `yaml:"levelStep"`
	MinDescend    time.Duration `yaml:"minDescend"`
	LinesPerLevel int           `yaml:"linesPerLevel"`
}

// Window configures the desktop shell.
type Window struct {
	Title string `yaml:"title"`
	Scale int    `yaml:"scale"`
	TPS   int    `yaml:"tps"`
}

// Keys lists key names per action. Names follow ebiten's key names
// ("ArrowLeft", "Space", "A").
type Keys struct {
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	SoftDrop []string `yaml:"softDrop"`
	Rotate   []string `yaml:"rotate"`
	HardDrop []string `yaml:"hardDrop"`
	Restart  []string `yaml:"restart"`
	Debug    []string `yaml:"debug"`
}

// Log selects the slog level: debug, info, warn or error.
type Log struct {
	Level string `yaml:"level"`
}

// HighScore configures the persistent score table.
type HighScore struct {
	AppName string `yaml:"appName"`
	Size    int    `yaml:"size"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	b := input.DefaultBindings()
	return &Config{
		Timing: Timing{
			Descend:       tetris.DefaultProgression.Base,
			SoftDrop:      tetris.DefaultSoftDrop,
			LateralRepeat: input.DefaultLateralRepeat,
			LevelStep:     tetris.DefaultProgression.Step,
			MinDescend:    tetris.DefaultProgression.Min,
			LinesPerLevel: tetris.DefaultProgression.LinesPerLevel,
		},
		Window: Window{
			Title: "blockfall",
			Scale: 1,
			TPS:   60,
		},
		Keys: Keys{
			Left:     b[input.Left],
			Right:    b[input.Right],
			SoftDrop: b[input.SoftDrop],
			Rotate:   b[input.Rotate],
			HardDrop: b[input.HardDrop],
			Restart:  b[input.Restart],
			Debug:    b[input.Debug],
		},
		Log: Log{Level: "info"},
		HighScore: HighScore{
			AppName: "blockfall",
			Size:    10,
		},
	}
}

// Load reads the file at path over Default. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode renders cfg as YAML.
func (c *Config) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks value ranges and the key bindings.
func (c *Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"timing.descend", c.Timing.Descend},
		{"timing.softDrop", c.Timing.SoftDrop},
		{"timing.lateralRepeat", c.Timing.LateralRepeat},
		{"timing.minDescend", c.Timing.MinDescend},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, d.name, d.d)
		}
	}
	if c.Timing.LevelStep < 0 {
		return fmt.Errorf("%w: timing.levelStep must not be negative", ErrInvalidConfig)
	}
	if c.Timing.MinDescend > c.Timing.Descend {
		return fmt.Errorf("%w: timing.minDescend %s exceeds timing.descend %s", ErrInvalidConfig, c.Timing.MinDescend, c.Timing.Descend)
	}
	if c.Timing.LinesPerLevel <= 0 {
		return fmt.Errorf("%w: timing.linesPerLevel must be positive", ErrInvalidConfig)
	}
	if c.Window.Scale <= 0 || c.Window.TPS <= 0 {
		return fmt.Errorf("%w: window.scale and window.tps must be positive", ErrInvalidConfig)
	}
	if c.HighScore.Size <= 0 {
		return fmt.Errorf("%w: highscore.size must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.HighScore.AppName) == "" {
		return fmt.Errorf("%w: highscore.appName is empty", ErrInvalidConfig)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if err := c.Bindings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

// Progression is the level policy described by Timing.
func (c *Config) Progression() tetris.LinearProgression {
	return tetris.LinearProgression{
		Base:          c.Timing.Descend,
		Step:          c.Timing.LevelStep,
		Min:           c.Timing.MinDescend,
		LinesPerLevel: c.Timing.LinesPerLevel,
	}
}

// Bindings converts Keys to the input package's form.
func (c *Config) Bindings() input.Bindings {
	return input.Bindings{
		input.Left:     c.Keys.Left,
		input.Right:    c.Keys.Right,
		input.SoftDrop: c.Keys.SoftDrop,
		input.Rotate:   c.Keys.Rotate,
		input.HardDrop: c.Keys.HardDrop,
		input.Restart:  c.Keys.Restart,
		input.Debug:    c.Keys.Debug,
	}
}

// GameOptions returns the engine options that follow from the settings.
func (c *Config) GameOptions() []tetris.Option {
	return []tetris.Option{
		tetris.WithProgression(c.Progression()),
		tetris.WithSoftDrop(c.Timing.SoftDrop),
	}
}
