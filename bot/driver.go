package bot

import "github.com/plus3/blockfall/tetris"

// maxAttempts bounds the steps spent steering one piece before the driver
// gives up and hard-drops where it is.
const maxAttempts = 16

// Driver steers the active piece towards the planner's target, one input
// per step: rotate first, then shift, then hard drop.
type Driver struct {
	planner *Planner

	piece    int
	target   Target
	planned  bool
	attempts int
}

// NewDriver plans with p.
func NewDriver(p *Planner) *Driver {
	return &Driver{planner: p, piece: -1}
}

// Target returns the plan for the current piece.
func (d *Driver) Target() (Target, bool) {
	return d.target, d.planned
}

// Next returns the input for the next step of g.
func (d *Driver) Next(g *tetris.Game) tetris.Input {
	active := g.Active()
	if g.Over() || !active.Visible {
		return tetris.Input{}
	}

	// Pieces counts locks, so it changes exactly when a new piece spawns.
	if n := g.State().Pieces; n != d.piece {
		d.piece = n
		d.attempts = 0
		d.target, d.planned = d.planner.Plan(g.Board(), active.Placement)
	}
	if !d.planned {
		return tetris.Input{HardDrop: true}
	}

	d.attempts++
	if d.attempts > maxAttempts {
		return tetris.Input{HardDrop: true}
	}

	switch {
	case active.Orientation != d.target.Orientation:
		return tetris.Input{Rotate: true}
	case active.X < d.target.X:
		return tetris.Input{Right: true}
	case active.X > d.target.X:
		return tetris.Input{Left: true}
	}
	return tetris.Input{HardDrop: true}
}

// Reset forgets the current plan. Call it when g is reset or replaced.
func (d *Driver) Reset() {
	d.piece = -1
	d.planned = false
	d.attempts = 0
}
