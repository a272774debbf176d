package tetris

// Collision classifies a candidate placement against the board.
type Collision uint8

const (
	None Collision = iota
	LeftWall
	RightWall
	// Floor covers both the bottom edge and the settled stack; it is the
	// result that makes a descending piece lock.
	Floor
)

func (c Collision) String() string {
	switch c {
	case None:
		return "none"
	case LeftWall:
		return "left wall"
	case RightWall:
		return "right wall"
	case Floor:
		return "floor"
	}
	return "unknown"
}

// Classify reports what p runs into. Rules in priority order: a tile below
// the bottom edge or on a settled tile is Floor, a tile left of column 0 is
// LeftWall, a tile right of the last column is RightWall. Floor outranks the
// walls across all four tiles, so a piece that is both off a side and on the
// stack is on the Floor. Tiles above the top row are free space.
func Classify(p Placement, b *Board) Collision {
	tiles := p.Tiles()
	for _, t := range tiles {
		if t.Y >= Height || b.Occupied(t.X, t.Y) {
			return Floor
		}
	}
	for _, t := range tiles {
		if t.X < 0 {
			return LeftWall
		}
		if t.X >= Width {
			return RightWall
		}
	}
	return None
}

// Legal reports whether p collides with nothing.
func Legal(p Placement, b *Board) bool {
	return Classify(p, b) == None
}

// Kick resolves a clockwise rotation of p. The naive rotation is tried
// first; if it hits the right wall the piece is nudged left by one and then
// two columns, if it hits the left wall it is nudged right the same way.
// The first legal candidate wins. ok is false when every candidate fails,
// including a naive rotation into the stack or floor.
func Kick(p Placement, b *Board) (Placement, bool) {
	rotated := p.Rotated()

	var dir int
	switch Classify(rotated, b) {
	case None:
		return rotated, true
	case RightWall:
		dir = -1
	case LeftWall:
		dir = 1
	default:
		return p, false
	}

	for step := 1; step <= 2; step++ {
		candidate := rotated.Moved(dir*step, 0)
		if Legal(candidate, b) {
			return candidate, true
		}
	}
	return p, false
}

// Drop returns the lowest placement p can fall to in a straight line, and
// how many rows it fell.
func Drop(p Placement, b *Board) (Placement, int) {
	rows := 0
	for rows <= Height+spawnDepth && Legal(p.Moved(0, 1), b) {
		p = p.Moved(0, 1)
		rows++
	}
	return p, rows
}
