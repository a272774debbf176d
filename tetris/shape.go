// Package tetris is the rule engine of a 10x20 falling-block puzzle game.
//
// It decides which tiles a piece occupies, classifies collisions against the
// walls, the floor and the settled stack, resolves rotations with a small
// wall-kick table, locks pieces into the board, compacts completed rows and
// keeps score. It has no rendering, timing source or input polling of its
// own: a shell drives a Game with elapsed durations and already-debounced
// inputs, and reads back its state and notifications.
package tetris

import (
	"fmt"
	"image/color"
)

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	I Kind = iota
	L
	J
	O
	S
	Z
	T
)

// KindCount is the number of tetromino kinds.
const KindCount = 7

// Kinds lists every kind in catalog order.
var Kinds = [KindCount]Kind{I, L, J, O, S, Z, T}

// Point is a board or shape-local coordinate. X grows to the right and Y
// grows downward.
type Point struct {
	X, Y int
}

// Shape is the geometry of a kind at orientation 0: four cells inside a
// Size x Size bounding square that rotations pivot within.
type Shape struct {
	Size  int
	Cells [4]Point
}

var catalog = [KindCount]Shape{
	I: {Size: 4, Cells: [4]Point{{0, 2}, {1, 2}, {2, 2}, {3, 2}}},
	L: {Size: 3, Cells: [4]Point{{1, 0}, {1, 1}, {1, 2}, {2, 2}}},
	J: {Size: 3, Cells: [4]Point{{1, 0}, {1, 1}, {1, 2}, {0, 2}}},
	O: {Size: 2, Cells: [4]Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	S: {Size: 3, Cells: [4]Point{{0, 2}, {1, 2}, {1, 1}, {2, 1}}},
	Z: {Size: 3, Cells: [4]Point{{0, 1}, {1, 1}, {1, 2}, {2, 2}}},
	T: {Size: 3, Cells: [4]Point{{0, 1}, {1, 1}, {1, 0}, {2, 1}}},
}

var kindNames = [KindCount]string{"I", "L", "J", "O", "S", "Z", "T"}

var kindColors = [KindCount]color.RGBA{
	I: {R: 0xd8, G: 0x3a, B: 0x3a, A: 0xff}, // red
	L: {R: 0x9b, G: 0x4d, B: 0xca, A: 0xff}, // purple
	J: {R: 0x3a, G: 0x6e, B: 0xd8, A: 0xff}, // blue
	O: {R: 0xf2, G: 0xc9, B: 0x1d, A: 0xff}, // yellow
	S: {R: 0x3a, G: 0xc8, B: 0xd8, A: 0xff}, // cyan
	Z: {R: 0x4c, G: 0xb9, B: 0x4c, A: 0xff}, // green
	T: {R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}, // grey
}

// Valid reports whether k is one of the seven catalog kinds.
func (k Kind) Valid() bool {
	return int(k) < KindCount
}

// Shape returns the catalog geometry for k. It panics for an unknown kind.
func (k Kind) Shape() Shape {
	k.mustBeValid()
	return catalog[k]
}

// Color is the display colour tagged onto tiles of this kind.
func (k Kind) Color() color.RGBA {
	k.mustBeValid()
	return kindColors[k]
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind maps a single-letter name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) mustBeValid() {
	if !k.Valid() {
		panic(fmt.Sprintf("tetris: invalid piece kind %d", uint8(k)))
	}
}
