package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/highscore"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// flashDuration is how long a clear or game-over banner stays up.
const flashDuration = 1200 * time.Millisecond

// Session is the game being played.
type Session struct {
	Game     *tetris.Game
	Started  time.Time
	Recorded bool
}

// Controls carries the debounced input from InputSystem to GameSystem.
type Controls struct {
	Intent input.Intent
}

// Notifications holds the engine events raised during the current frame.
type Notifications struct {
	Events []tetris.Event
}

// Overlay is the debug overlay state.
type Overlay struct {
	Visible             bool
	WantCaptureKeyboard bool
}

// Banner is a short message drawn over the board.
type Banner struct {
	Text      string
	Remaining time.Duration
}

// Scores is the high-score table and the rank of the last finished game.
type Scores struct {
	Store    *highscore.Store
	LastRank int
}

// InputSystem samples the keyboard and debounces it into Controls.
type InputSystem struct {
	Keys      *Keymap
	Debouncer *input.Debouncer
	IsDown    func(ebiten.Key) bool

	Controls loop.Resource[Controls]
	Overlay  loop.Resource[Overlay]
}

func (s *InputSystem) Execute(frame *loop.Frame) {
	overlay := s.Overlay.Get()
	pressed := s.Keys.Pressed(s.IsDown)
	if overlay.Visible && overlay.WantCaptureKeyboard {
		pressed = func(input.Action) bool { return false }
	}

	intent := s.Debouncer.Update(frame.DeltaTime, pressed)
	if intent.Debug {
		overlay.Visible = !overlay.Visible
	}
	s.Controls.Get().Intent = intent
}

// GameSystem advances the session and collects its events.
type GameSystem struct {
	Session       loop.Resource[Session]
	Controls      loop.Resource[Controls]
	Notifications loop.Resource[Notifications]
	Log           *slog.Logger
}

func (s *GameSystem) Execute(frame *loop.Frame) {
	session := s.Session.Get()
	intent := s.Controls.Get().Intent
	notes := s.Notifications.Get()
	notes.Events = notes.Events[:0]

	if intent.Restart {
		// Other systems still read this frame's events and state.
		frame.Commands.Defer(func() {
			s.Log.Info("restarting")
			session.Game.Reset()
			session.Started = time.Now()
			session.Recorded = false
		})
		return
	}

	session.Game.Step(frame.DeltaTime, intent.Input)
	notes.Events = append(notes.Events, session.Game.Events()...)
}

// CueSystem turns events into presentation cues: a log line each, and a
// banner for clears and game over.
type CueSystem struct {
	Notifications loop.Resource[Notifications]
	Banner        loop.Resource[Banner]
	Log           *slog.Logger
}

var clearNames = [...]string{1: "SINGLE", 2: "DOUBLE", 3: "TRIPLE", 4: "TETRIS!"}

func (s *CueSystem) Execute(frame *loop.Frame) {
	banner := s.Banner.Get()
	banner.Remaining -= frame.DeltaTime
	if banner.Remaining <= 0 {
		banner.Text = ""
		banner.Remaining = 0
	}

	for _, e := range s.Notifications.Get().Events {
		s.Log.Debug("cue", "event", e.Type.String(), "placement", e.Placement.String(), "lines", e.Lines, "score", e.Score)
		switch e.Type {
		case tetris.LinesCleared:
			if e.Lines > 0 && e.Lines < len(clearNames) {
				banner.Text = clearNames[e.Lines]
				banner.Remaining = flashDuration
			}
		case tetris.GameOver:
			banner.Text = "GAME OVER"
			banner.Remaining = flashDuration
		}
	}
}

// HighScoreSystem records each finished game once.
type HighScoreSystem struct {
	Session loop.Resource[Session]
	Scores  loop.Resource[Scores]
	Log     *slog.Logger
}

func (s *HighScoreSystem) Execute(frame *loop.Frame) {
	session := s.Session.Get()
	if session.Recorded || !session.Game.Over() {
		return
	}
	session.Recorded = true

	state := session.Game.State()
	scores := s.Scores.Get()
	rank, err := scores.Store.Record(highscore.Entry{
		Name:   playerName(),
		Score:  state.Score,
		Lines:  state.Lines,
		Level:  state.Level,
		Pieces: state.Pieces,
		At:     time.Now(),
	})
	if err != nil {
		s.Log.Warn("failed to save high score", "err", err)
	}
	scores.LastRank = rank
	s.Log.Info("game finished",
		"score", state.Score,
		"lines", state.Lines,
		"level", state.Level,
		"duration", time.Since(session.Started).Round(time.Second),
		"rank", rank,
	)
}

func playerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
