package tetris

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

// DefaultSoftDrop is the descend period while soft drop is held.
const DefaultSoftDrop = 100 * time.Millisecond

// Input is the set of already-debounced actions for one step. Left, Right,
// Rotate and HardDrop are one-shot; SoftDrop is held.
type Input struct {
	Left     bool
	Right    bool
	Rotate   bool
	HardDrop bool
	SoftDrop bool
}

// Game is one play session. It owns the board, the falling and preview
// pieces, the scoreboard and the game-over latch. It is not safe for
// concurrent use; a host with several goroutines must serialise access.
type Game struct {
	board   Board
	active  Active
	preview Preview
	state   State
	over    bool

	// elapsed is the time since the last descend or spawn.
	elapsed  time.Duration
	softDrop time.Duration

	gen    Generator
	prog   Progression
	log    *slog.Logger
	events eventQueue

	initial Board
}

// Option configures a Game.
type Option func(*Game)

// WithGenerator sets the source of upcoming pieces.
func WithGenerator(gen Generator) Option {
	return func(g *Game) {
		g.gen = gen
	}
}

// WithSeed draws pieces from a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.gen = NewRandomGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithProgression sets the level and speed policy.
func WithProgression(prog Progression) Option {
	return func(g *Game) {
		g.prog = prog
	}
}

// WithSoftDrop sets the descend period used while soft drop is held.
func WithSoftDrop(d time.Duration) Option {
	return func(g *Game) {
		g.softDrop = d
	}
}

// WithBoard starts the session on a pre-filled board.
func WithBoard(b Board) Option {
	return func(g *Game) {
		g.initial = b
	}
}

// WithLogger sets the logger for lock, clear and game-over messages.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// New creates a session, rolls the first preview and spawns the first
// piece. The spawn notification is waiting in Events.
func New(opts ...Option) *Game {
	g := &Game{
		softDrop: DefaultSoftDrop,
		prog:     DefaultProgression,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.gen == nil {
		g.gen = NewRandomGenerator(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g.Reset()
	return g
}

// Reset starts a new session with the same options.
func (g *Game) Reset() {
	g.board = g.initial
	g.active = Active{}
	g.state = newState(g.prog)
	g.over = false
	g.elapsed = 0
	g.events.drain()
	g.preview = g.gen.Next()
	g.spawn()
}

// Step advances the session by dt with the given inputs. Lateral moves and
// rotation are applied first, then at most one descend: a hard drop, or a
// timed descend when the elapsed time reaches the level interval or, with
// soft drop held, the soft-drop period. A lock, its clear and the following
// spawn all complete inside the call.
func (g *Game) Step(dt time.Duration, in Input) {
	if !g.controllable() {
		return
	}

	switch {
	case in.Left && !in.Right:
		g.Shift(-1)
	case in.Right && !in.Left:
		g.Shift(1)
	}
	if in.Rotate {
		g.Rotate()
	}

	g.elapsed += dt
	switch {
	case in.HardDrop:
		g.elapsed = 0
		g.HardDrop()
	case g.elapsed >= g.state.Interval, in.SoftDrop && g.elapsed >= g.softDrop:
		g.elapsed = 0
		g.Descend()
	}
}

// Board returns a snapshot of the settled grid.
func (g *Game) Board() Board {
	return g.board
}

// Active returns the falling piece.
func (g *Game) Active() Active {
	return g.active
}

// Preview returns the next piece.
func (g *Game) Preview() Preview {
	return g.preview
}

// State returns the scoreboard.
func (g *Game) State() State {
	return g.state
}

// Over reports whether the game-over latch is set.
func (g *Game) Over() bool {
	return g.over
}

// Phase is Over once the latch is set and Falling otherwise.
func (g *Game) Phase() Phase {
	if g.over {
		return Over
	}
	return Falling
}

// Ghost is where the active piece would land on a hard drop.
func (g *Game) Ghost() Placement {
	p, _ := Drop(g.active.Placement, &g.board)
	return p
}

// Events returns and clears the notifications raised since the last call.
func (g *Game) Events() []Event {
	return g.events.drain()
}
