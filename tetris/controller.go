package tetris

// Phase is the controller state of the falling piece.
type Phase uint8

const (
	// Falling accepts moves and descends on the timer.
	Falling Phase = iota
	// Over is terminal; every operation becomes a no-op.
	Over
)

func (p Phase) String() string {
	if p == Over {
		return "over"
	}
	return "falling"
}

// Active is the falling piece. Visible is false only between a lock and the
// next spawn, and after the game has ended.
type Active struct {
	Placement
	Visible bool
}

// Shift moves the active piece dx columns. Any collision rejects the move
// and leaves the piece where it was.
func (g *Game) Shift(dx int) bool {
	if !g.controllable() {
		return false
	}
	next := g.active.Moved(dx, 0)
	if !Legal(next, &g.board) {
		return false
	}
	g.active.Placement = next
	return true
}

// Rotate turns the active piece clockwise, applying wall kicks.
func (g *Game) Rotate() bool {
	if !g.controllable() {
		return false
	}
	next, ok := Kick(g.active.Placement, &g.board)
	if !ok {
		return false
	}
	g.active.Placement = next
	return true
}

// Descend moves the active piece one row down. When the row below is the
// floor or the stack the piece locks where it is instead, and the clear and
// the next spawn run before Descend returns. It reports whether the piece
// moved.
func (g *Game) Descend() bool {
	if !g.controllable() {
		return false
	}
	next := g.active.Moved(0, 1)
	switch Classify(next, &g.board) {
	case None:
		g.active.Placement = next
		return true
	case Floor:
		g.lock()
	}
	return false
}

// HardDrop descends until the piece locks and returns the rows fallen.
func (g *Game) HardDrop() int {
	rows := 0
	for limit := Height + spawnDepth; limit >= 0 && g.Descend(); limit-- {
		rows++
	}
	return rows
}

func (g *Game) controllable() bool {
	return !g.over && g.active.Visible
}

// lock settles the active piece, clears rows and either ends the game or
// spawns the next piece. A tile left above the top row cannot be stored and
// ends the game once the clear has been scored.
func (g *Game) lock() {
	p := g.active.Placement
	above := false
	for _, t := range p.Tiles() {
		if !g.board.Set(t.X, t.Y, p.Kind) {
			above = true
		}
	}
	g.active.Visible = false
	g.log.Debug("piece locked", "kind", p.Kind.String(), "x", p.X, "y", p.Y)
	g.events.push(Event{Type: PieceLocked, Placement: p, Score: g.state.Score})

	n := ClearLines(&g.board)
	g.state.award(n, g.prog)
	if n > 0 {
		g.log.Debug("lines cleared", "count", n, "score", g.state.Score)
		g.events.push(Event{Type: LinesCleared, Lines: n, Score: g.state.Score})
	}

	if above {
		g.log.Info("piece locked above the board", "placement", p.String())
		g.end()
		return
	}
	g.spawn()
}

func (g *Game) end() {
	if g.over {
		return
	}
	g.over = true
	g.active.Visible = false
	g.log.Info("game over", "score", g.state.Score, "lines", g.state.Lines, "level", g.state.Level)
	g.events.push(Event{Type: GameOver, Score: g.state.Score})
}
