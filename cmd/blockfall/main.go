// Command blockfall is the desktop game.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/highscore"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// App implements ebiten.Game on top of the scheduler.
type App struct {
	scheduler *loop.Scheduler
	imgui     *ebitenbackend.EbitenBackend
	renderer  *Renderer
	dt        time.Duration
}

func (a *App) Update() error {
	a.imgui.BeginFrame()
	a.scheduler.Once(a.dt)
	a.imgui.EndFrame()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	res := a.scheduler.Resources()
	a.renderer.Draw(screen,
		loop.MustLookup[Session](res),
		loop.MustLookup[Banner](res),
		loop.MustLookup[Scores](res),
	)
	a.imgui.Draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "blockfall.yaml", "path to the YAML config file")
	seed := flag.Uint64("seed", 0, "piece sequence seed (0 picks one at random)")
	printConfig := flag.Bool("print-config", false, "print the effective config and exit")
	flag.Parse()

	if err := run(*configPath, *seed, *printConfig); err != nil {
		fmt.Fprintln(os.Stderr, "blockfall:", err)
		os.Exit(1)
	}
}

func run(configPath string, seed uint64, printConfig bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if printConfig {
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	keys, err := NewKeymap(cfg.Bindings())
	if err != nil {
		return err
	}

	store, err := highscore.Open(cfg.HighScore.AppName, cfg.HighScore.Size, log)
	if err != nil {
		log.Warn("high score table unreadable, starting empty", "err", err)
	}

	opts := append(cfg.GameOptions(), tetris.WithLogger(log.With("component", "tetris")))
	if seed != 0 {
		opts = append(opts, tetris.WithSeed(seed))
	}

	scheduler := loop.NewScheduler(nil)
	res := scheduler.Resources()
	loop.Provide(res, Session{Game: tetris.New(opts...), Started: time.Now()})
	loop.Provide(res, Controls{})
	loop.Provide(res, Notifications{})
	loop.Provide(res, Overlay{})
	loop.Provide(res, Banner{})
	loop.Provide(res, Scores{Store: store})

	scheduler.Register(&DebugUISystem{Scheduler: scheduler, Keys: keys})
	scheduler.Register(&InputSystem{
		Keys:      keys,
		Debouncer: input.NewDebouncer(cfg.Timing.LateralRepeat),
		IsDown:    ebiten.IsKeyPressed,
	})
	scheduler.Register(&GameSystem{Log: log})
	scheduler.Register(&CueSystem{Log: log})
	scheduler.Register(&HighScoreSystem{Log: log})

	renderer := NewRenderer(cfg.Window.Scale)
	width, height := renderer.Size()

	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(cfg.Window.Title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	ebiten.SetTPS(cfg.Window.TPS)

	app := &App{
		scheduler: scheduler,
		imgui:     backend,
		renderer:  renderer,
		dt:        time.Second / time.Duration(cfg.Window.TPS),
	}
	log.Info("starting", "config", configPath, "scores_saved", store.Persistent())
	return ebiten.RunGame(app)
}
