package main

import (
	"context"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// framesPerPiece caps a game's frames so a stuck driver cannot spin forever.
const framesPerPiece = 64

// Result is the outcome of one bot game. It is written as one JSON line.
// Clears counts clears by size; index 0 is unused. Capped is set when the
// frame limit ended the game before the piece limit or a game over did.
type Result struct {
	Game    int           `json:"game"`
	Seed    uint64        `json:"seed"`
	Score   int           `json:"score"`
	Lines   int           `json:"lines"`
	Level   int           `json:"level"`
	Pieces  int           `json:"pieces"`
	Clears  [5]int        `json:"clears"`
	Over    bool          `json:"over"`
	Capped  bool          `json:"capped,omitempty"`
	Frames  uint64        `json:"frames"`
	Elapsed time.Duration `json:"elapsedNs"`
}

// Session holds the game a scheduler is playing.
type Session struct {
	Game   *tetris.Game
	Result Result
	Done   bool
}

// Controls carries the bot's input to the play system.
type Controls struct {
	Input tetris.Input
}

// BotSystem asks the driver for the next input.
type BotSystem struct {
	Driver *bot.Driver

	Session  loop.Resource[Session]
	Controls loop.Resource[Controls]
}

func (s *BotSystem) Execute(frame *loop.Frame) {
	session := s.Session.Get()
	if session.Done {
		return
	}
	s.Controls.Get().Input = s.Driver.Next(session.Game)
}

// PlaySystem steps the game and tallies its events. The session is closed
// once the game is over or MaxPieces have locked.
type PlaySystem struct {
	MaxPieces int

	Session  loop.Resource[Session]
	Controls loop.Resource[Controls]
}

func (s *PlaySystem) Execute(frame *loop.Frame) {
	session := s.Session.Get()
	if session.Done {
		return
	}

	g := session.Game
	g.Step(frame.DeltaTime, s.Controls.Get().Input)
	for _, e := range g.Events() {
		if e.Type == tetris.LinesCleared && e.Lines > 0 && e.Lines < len(session.Result.Clears) {
			session.Result.Clears[e.Lines]++
		}
	}

	state := g.State()
	if g.Over() || state.Pieces >= s.MaxPieces {
		frame.Commands.Defer(func() {
			session.Done = true
			session.Result.Score = state.Score
			session.Result.Lines = state.Lines
			session.Result.Level = state.Level
			session.Result.Pieces = state.Pieces
			session.Result.Over = g.Over()
		})
	}
}

// Options configure a batch of games.
type Options struct {
	Config    *config.Config
	Weights   bot.Weights
	MaxPieces int
}

func (o Options) frameTime() time.Duration {
	return time.Second / time.Duration(o.Config.Window.TPS)
}

// Play runs a single game to completion on its own scheduler.
func Play(index int, seed uint64, opts Options) Result {
	start := time.Now()

	game := tetris.New(append(opts.Config.GameOptions(), tetris.WithSeed(seed))...)
	scheduler := loop.NewScheduler(nil)
	session := loop.Provide(scheduler.Resources(), Session{
		Game:   game,
		Result: Result{Game: index, Seed: seed},
	})
	loop.Provide(scheduler.Resources(), Controls{})

	scheduler.Register(&BotSystem{Driver: bot.NewDriver(bot.NewPlanner(opts.Weights))})
	scheduler.Register(&PlaySystem{MaxPieces: opts.MaxPieces})

	dt := opts.frameTime()
	limit := uint64(opts.MaxPieces+1) * framesPerPiece
	var frames uint64
	for !session.Done && frames < limit {
		scheduler.Once(dt)
		frames++
	}

	result := session.Result
	if !session.Done {
		result.Capped = true
		state := game.State()
		result.Score, result.Lines, result.Level, result.Pieces = state.Score, state.Lines, state.Level, state.Pieces
	}
	result.Frames = frames
	result.Elapsed = time.Since(start)
	return result
}

// Run plays games seeded seed, seed+1, ... across workers goroutines. The
// results are in game order. A cancelled ctx stops handing out new games;
// the returned slice then only holds the finished ones.
func Run(ctx context.Context, games, workers int, seed uint64, opts Options, bar *pb.ProgressBar) []Result {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	results := make([]Result, games)
	finished := make([]bool, games)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = Play(i, seed+uint64(i), opts)
				finished[i] = true
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

feed:
	for i := 0; i < games && ctx.Err() == nil; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	done := results[:0]
	for i, r := range results {
		if finished[i] {
			done = append(done, r)
		}
	}
	return done
}
