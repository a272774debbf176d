package tetris

import "fmt"

// Orientation is a clockwise rotation step: 0, 90, 180 or 270 degrees.
type Orientation uint8

// Orientations is the number of distinct rotation steps.
const Orientations = 4

// Next is the orientation one clockwise quarter turn further.
func (o Orientation) Next() Orientation {
	return (o + 1) % Orientations
}

// Placement locates a piece on the board. X and Y position the top-left
// corner of the kind's bounding square; tiles are always derived from it.
type Placement struct {
	Kind        Kind
	Orientation Orientation
	X, Y        int
}

// Tiles projects a kind at an orientation and origin onto board
// coordinates. The bounding square is rotated in place, so every kind spins
// around its own fixed pivot. Orientations above 3 are a caller bug and
// panic.
func Tiles(kind Kind, o Orientation, x, y int) [4]Point {
	shape := kind.Shape()
	last := shape.Size - 1

	var tiles [4]Point
	for i, c := range shape.Cells {
		switch o {
		case 0:
			tiles[i] = Point{c.X + x, c.Y + y}
		case 1:
			tiles[i] = Point{last - c.Y + x, c.X + y}
		case 2:
			tiles[i] = Point{last - c.X + x, last - c.Y + y}
		case 3:
			tiles[i] = Point{c.Y + x, last - c.X + y}
		default:
			panic(fmt.Sprintf("tetris: invalid orientation %d", o))
		}
	}
	return tiles
}

// Tiles returns the four board cells the placement covers.
func (p Placement) Tiles() [4]Point {
	return Tiles(p.Kind, p.Orientation, p.X, p.Y)
}

// Moved returns the placement translated by dx, dy.
func (p Placement) Moved(dx, dy int) Placement {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the placement turned one step clockwise about the same
// origin.
func (p Placement) Rotated() Placement {
	p.Orientation = p.Orientation.Next()
	return p
}

// Entered reports whether at least one tile is at or below the top row.
func (p Placement) Entered() bool {
	for _, t := range p.Tiles() {
		if t.Y >= 0 {
			return true
		}
	}
	return false
}

func (p Placement) String() string {
	return fmt.Sprintf("%s/%d@(%d,%d)", p.Kind, p.Orientation, p.X, p.Y)
}
