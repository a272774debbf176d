package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestLineScore(t *testing.T) {
	tests := []struct {
		lines, level, want int
	}{
		{0, 1, 0},
		{1, 1, 100},
		{2, 1, 300},
		{3, 1, 500},
		{4, 1, 800},
		{4, 3, 2400},
		{2, 5, 1500},
		{5, 1, 0},
		{-1, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tetris.LineScore(tt.lines, tt.level), "lines=%d level=%d", tt.lines, tt.level)
	}
}

func TestClearLines(t *testing.T) {
	t.Run("two separated rows", func(t *testing.T) {
		var b tetris.Board
		fillRow(&b, 5, tetris.I)
		fillRow(&b, 7, tetris.I)
		// Partial rows above, between and below the full ones.
		b.Set(0, 0, tetris.T)
		b.Set(3, 2, tetris.L)
		b.Set(9, 4, tetris.J)
		b.Set(4, 6, tetris.S)
		b.Set(2, 19, tetris.Z)

		n := tetris.ClearLines(&b)
		assert.Equal(t, 2, n)
		assert.Empty(t, b.FullRows())

		// Rows 0-4 fall by two, row 6 by one, rows below 7 stay.
		assert.Equal(t, tetris.Cell{Filled: true, Kind: tetris.T}, b.At(0, 2))
		assert.Equal(t, tetris.Cell{Filled: true, Kind: tetris.L}, b.At(3, 4))
		assert.Equal(t, tetris.Cell{Filled: true, Kind: tetris.J}, b.At(9, 6))
		assert.Equal(t, tetris.Cell{Filled: true, Kind: tetris.S}, b.At(4, 7))
		assert.Equal(t, tetris.Cell{Filled: true, Kind: tetris.Z}, b.At(2, 19))
		assert.Equal(t, 5, b.Filled())

		for y := 0; y < 2; y++ {
			for x := 0; x < tetris.Width; x++ {
				assert.False(t, b.Occupied(x, y), "row %d should be empty", y)
			}
		}
	})

	t.Run("four at the bottom", func(t *testing.T) {
		var b tetris.Board
		for y := 16; y < 20; y++ {
			fillRow(&b, y, tetris.O)
		}
		b.Set(5, 15, tetris.T)

		n := tetris.ClearLines(&b)
		assert.Equal(t, 4, n)
		assert.Equal(t, 1, b.Filled())
		assert.True(t, b.Occupied(5, 19))
	})

	t.Run("no full rows leaves the board alone", func(t *testing.T) {
		var b tetris.Board
		b.Set(0, 19, tetris.I)
		b.Set(9, 0, tetris.O)
		for x := 0; x < tetris.Width-1; x++ {
			b.Set(x, 12, tetris.S)
		}
		before := b

		assert.Equal(t, 0, tetris.ClearLines(&b))
		assert.Equal(t, before, b)
	})
}
