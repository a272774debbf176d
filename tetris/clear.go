package tetris

var lineScores = [MaxClear + 1]int{0, 100, 300, 500, 800}

// LineScore is the award for clearing n rows at once at the given level.
// Counts outside 0..4 score nothing.
func LineScore(n, level int) int {
	if n < 0 || n > MaxClear {
		return 0
	}
	return level * lineScores[n]
}

// ClearLines removes every full row and lets the rows above fall into the
// gap, returning how many rows were removed. It walks the board once from
// the bottom up, keeping a count of full rows seen so far; each remaining
// row moves down by that count and keeps its tiles' kinds. A board without
// full rows is left untouched.
func ClearLines(b *Board) int {
	removed := 0
	for y := Height - 1; y >= 0; y-- {
		if b.RowFull(y) {
			removed++
			continue
		}
		if removed > 0 {
			b[y+removed] = b[y]
		}
	}
	for y := 0; y < removed; y++ {
		b[y] = [Width]Cell{}
	}
	return removed
}
