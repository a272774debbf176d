package input

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// DefaultLateralRepeat is how often a held direction moves the piece again.
const DefaultLateralRepeat = 100 * time.Millisecond

// Intent is what one update of the Debouncer produced: the engine's input
// for this step, plus the shell-level actions.
type Intent struct {
	tetris.Input
	Restart bool
	Debug   bool
}

// Debouncer converts held keys into one-shot actions. Rotate, hard drop,
// restart and debug fire on the press only. A direction fires when it is
// pressed and then once per repeat period while it stays held; holding both
// directions moves nowhere. Soft drop is passed through as held.
type Debouncer struct {
	repeat time.Duration

	was  [actionCount]bool
	dir  int
	held time.Duration
}

// NewDebouncer uses repeat as the lateral auto-repeat period. A non-positive
// value selects DefaultLateralRepeat.
func NewDebouncer(repeat time.Duration) *Debouncer {
	if repeat <= 0 {
		repeat = DefaultLateralRepeat
	}
	return &Debouncer{repeat: repeat}
}

// Update samples pressed for every action and returns the intent for a step
// of length dt.
func (d *Debouncer) Update(dt time.Duration, pressed func(Action) bool) Intent {
	var now [actionCount]bool
	for _, a := range Actions {
		now[a] = pressed(a)
	}

	var in Intent
	in.Rotate = d.rising(now, Rotate)
	in.HardDrop = d.rising(now, HardDrop)
	in.Restart = d.rising(now, Restart)
	in.Debug = d.rising(now, Debug)
	in.SoftDrop = now[SoftDrop]

	switch d.lateral(dt, now[Left], now[Right]) {
	case -1:
		in.Left = true
	case 1:
		in.Right = true
	}

	d.was = now
	return in
}

func (d *Debouncer) rising(now [actionCount]bool, a Action) bool {
	return now[a] && !d.was[a]
}

// lateral returns the direction to move this update, or 0.
func (d *Debouncer) lateral(dt time.Duration, left, right bool) int {
	dir := 0
	switch {
	case left && !right:
		dir = -1
	case right && !left:
		dir = 1
	}

	if dir == 0 {
		d.dir = 0
		d.held = 0
		return 0
	}
	if dir != d.dir {
		d.dir = dir
		d.held = 0
		return dir
	}

	d.held += dt
	if d.held < d.repeat {
		return 0
	}
	d.held = 0
	return dir
}
