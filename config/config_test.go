package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.Timing.Descend)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.SoftDrop)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.LateralRepeat)
	assert.Equal(t, tetris.DefaultProgression, cfg.Progression())
	assert.Equal(t, input.DefaultBindings(), cfg.Bindings())

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParse(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
timing:
  descend: 800ms
  linesPerLevel: 5
keys:
  hardDrop: [Enter]
log:
  level: debug
`))
		require.NoError(t, err)
		assert.Equal(t, 800*time.Millisecond, cfg.Timing.Descend)
		assert.Equal(t, 100*time.Millisecond, cfg.Timing.SoftDrop)
		assert.Equal(t, 5, cfg.Progression().LinesPerLevel)
		assert.Equal(t, []string{"Enter"}, cfg.Keys.HardDrop)
		assert.Equal(t, []string{"ArrowLeft", "A"}, cfg.Keys.Left)
		assert.Equal(t, "blockfall", cfg.Window.Title)

		level, err := cfg.LogLevel()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("high score section", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
highScore:
  appName: other
  size: 3
`))
		require.NoError(t, err)
		assert.Equal(t, "other", cfg.HighScore.AppName)
		assert.Equal(t, 3, cfg.HighScore.Size)

		data, err := cfg.Encode()
		require.NoError(t, err)
		assert.Contains(t, string(data), "highScore:")
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Parse([]byte("timing: [1, 2"))
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := config.Parse([]byte("timing:\n  softDrop: soon\n"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero descend", func(c *config.Config) { c.Timing.Descend = 0 }},
		{"negative soft drop", func(c *config.Config) { c.Timing.SoftDrop = -time.Millisecond }},
		{"zero repeat", func(c *config.Config) { c.Timing.LateralRepeat = 0 }},
		{"negative level step", func(c *config.Config) { c.Timing.LevelStep = -1 }},
		{"min above base", func(c *config.Config) { c.Timing.MinDescend = 2 * time.Second }},
		{"no lines per level", func(c *config.Config) { c.Timing.LinesPerLevel = 0 }},
		{"zero scale", func(c *config.Config) { c.Window.Scale = 0 }},
		{"zero table", func(c *config.Config) { c.HighScore.Size = 0 }},
		{"blank app name", func(c *config.Config) { c.HighScore.AppName = "  " }},
		{"unknown log level", func(c *config.Config) { c.Log.Level = "loud" }},
		{"duplicate key", func(c *config.Config) { c.Keys.Rotate = []string{"Space"} }},
		{"unbound left", func(c *config.Config) { c.Keys.Left = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}

	t.Run("binding errors keep their cause", func(t *testing.T) {
		cfg := config.Default()
		cfg.Keys.Rotate = []string{"Space"}
		assert.ErrorIs(t, cfg.Validate(), input.ErrInvalidBindings)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("round trip", func(t *testing.T) {
		cfg := config.Default()
		cfg.Timing.Descend = 750 * time.Millisecond
		cfg.Window.Scale = 3
		data, err := cfg.Encode()
		require.NoError(t, err)
		assert.Contains(t, string(data), "descend: 750ms")

		path := filepath.Join(dir, "blockfall.yaml")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		loaded, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})

	t.Run("invalid file names the path", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("window:\n  scale: -1\n"), 0o644))
		_, err := config.Load(path)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "bad.yaml")
	})
}

func TestGameOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.Descend = 300 * time.Millisecond
	cfg.Timing.MinDescend = 50 * time.Millisecond

	g := tetris.New(append(cfg.GameOptions(), tetris.WithSeed(1))...)
	assert.Equal(t, 300*time.Millisecond, g.State().Interval)
}
