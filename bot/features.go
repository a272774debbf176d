package bot

import "github.com/plus3/blockfall/tetris"

// Features describes the board left behind by a candidate placement.
type Features struct {
	// AggregateHeight is the sum of column heights.
	AggregateHeight int
	// Holes counts empty cells with a filled cell somewhere above them.
	Holes int
	// Bumpiness sums the height differences of neighbouring columns.
	Bumpiness int
	// Lines is how many rows the placement cleared.
	Lines int
	// Landing is the height of the piece's lowest tile above the floor.
	Landing int
	// RowTransitions counts filled/empty changes along each row, with the
	// walls counted as filled.
	RowTransitions int
}

// Measure computes the features of board b after a lock that cleared lines
// rows with the piece's lowest tile on row bottom.
func Measure(b *tetris.Board, lines, bottom int) Features {
	f := Features{
		Lines:   lines,
		Landing: tetris.Height - 1 - bottom,
	}

	heights := b.Heights()
	for x, h := range heights {
		f.AggregateHeight += h
		if x > 0 {
			f.Bumpiness += abs(h - heights[x-1])
		}
		for y := tetris.Height - h; y < tetris.Height; y++ {
			if !b.Occupied(x, y) {
				f.Holes++
			}
		}
	}

	for y := 0; y < tetris.Height; y++ {
		prev := true
		for x := 0; x <= tetris.Width; x++ {
			cur := x == tetris.Width || b.Occupied(x, y)
			if cur != prev {
				f.RowTransitions++
			}
			prev = cur
		}
	}
	return f
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
