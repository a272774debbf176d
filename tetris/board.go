package tetris

import "strings"

// Playfield dimensions. They are fixed; shells may rely on them.
const (
	Width  = 10
	Height = 20

	// MaxClear is the most rows a single lock can complete.
	MaxClear = 4
)

// Cell is one square of the settled grid. The zero value is empty.
type Cell struct {
	Filled bool
	Kind   Kind
}

// Board is the grid of settled tiles, row 0 at the top. It is a plain value:
// assigning a Board copies it, which is how snapshots are taken. Rows above
// the playfield are never stored.
type Board [Height][Width]Cell

// InBounds reports whether x, y is a stored cell.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Occupied reports whether x, y holds a settled tile. Coordinates off the
// grid are never occupied.
func (b *Board) Occupied(x, y int) bool {
	return InBounds(x, y) && b[y][x].Filled
}

// At returns the cell at x, y, or an empty cell off the grid.
func (b *Board) At(x, y int) Cell {
	if !InBounds(x, y) {
		return Cell{}
	}
	return b[y][x]
}

// Set settles a tile of kind k at x, y. It reports false, storing nothing,
// when the coordinate is outside the grid.
func (b *Board) Set(x, y int, k Kind) bool {
	if !InBounds(x, y) {
		return false
	}
	b[y][x] = Cell{Filled: true, Kind: k}
	return true
}

// Unset empties x, y.
func (b *Board) Unset(x, y int) {
	if InBounds(x, y) {
		b[y][x] = Cell{}
	}
}

// RowFull reports whether every cell of row y is settled.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= Height {
		return false
	}
	for x := 0; x < Width; x++ {
		if !b[y][x].Filled {
			return false
		}
	}
	return true
}

// FullRows lists the complete rows from top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < Height; y++ {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// Filled counts settled tiles.
func (b *Board) Filled() int {
	n := 0
	for y := range b {
		for x := range b[y] {
			if b[y][x].Filled {
				n++
			}
		}
	}
	return n
}

// Heights returns, per column, the distance from the floor to the highest
// settled tile (0 for an empty column).
func (b *Board) Heights() [Width]int {
	var h [Width]int
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			if b[y][x].Filled {
				h[x] = Height - y
				break
			}
		}
	}
	return h
}

// String renders the board as rows of kind letters and dots.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range b {
		for x := range b[y] {
			if c := b[y][x]; c.Filled {
				sb.WriteString(c.Kind.String())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
