// Package bot plays the game through the same inputs a player would use.
// A Planner scores every reachable resting place of the active piece; a
// Driver turns the best one into per-step inputs.
package bot

import (
	"math"

	"github.com/plus3/blockfall/tetris"
)

// Weights scale each feature. Negative weights penalise.
type Weights struct {
	AggregateHeight float64 `yaml:"aggregateHeight"`
	Holes           float64 `yaml:"holes"`
	Bumpiness       float64 `yaml:"bumpiness"`
	Lines           float64 `yaml:"lines"`
	Landing         float64 `yaml:"landing"`
	RowTransitions  float64 `yaml:"rowTransitions"`
}

// DefaultWeights favour flat, hole-free stacks.
var DefaultWeights = Weights{
	AggregateHeight: -0.51,
	Holes:           -0.36,
	Bumpiness:       -0.18,
	Lines:           0.76,
	Landing:         -0.05,
	RowTransitions:  -0.1,
}

// Score combines f with the weights.
func (w Weights) Score(f Features) float64 {
	return w.AggregateHeight*float64(f.AggregateHeight) +
		w.Holes*float64(f.Holes) +
		w.Bumpiness*float64(f.Bumpiness) +
		w.Lines*float64(f.Lines) +
		w.Landing*float64(f.Landing) +
		w.RowTransitions*float64(f.RowTransitions)
}

// Target is a chosen resting place.
type Target struct {
	Orientation tetris.Orientation
	X           int
	// Landed is the placement after a hard drop from the top.
	Landed   tetris.Placement
	Features Features
	Score    float64
}

// Planner searches every orientation and column for the active piece.
type Planner struct {
	weights Weights
}

// NewPlanner scores candidates with w.
func NewPlanner(w Weights) *Planner {
	return &Planner{weights: w}
}

// Plan returns the best target for a piece entering at from. Candidates are
// dropped straight down from from's row, so slides under overhangs are not
// considered. It reports false when every candidate would lock above the
// board.
func (p *Planner) Plan(b tetris.Board, from tetris.Placement) (Target, bool) {
	best := Target{Score: math.Inf(-1)}
	found := false

	for o := tetris.Orientation(0); o < tetris.Orientations; o++ {
		for x := -3; x < tetris.Width; x++ {
			start := tetris.Placement{Kind: from.Kind, Orientation: o, X: x, Y: from.Y}
			if !tetris.Legal(start, &b) {
				continue
			}
			landed, _ := tetris.Drop(start, &b)

			f, ok := evaluate(b, landed)
			if !ok {
				continue
			}
			score := p.weights.Score(f)
			if !found || score > best.Score {
				best = Target{Orientation: o, X: x, Landed: landed, Features: f, Score: score}
				found = true
			}
		}
	}
	return best, found
}

// evaluate locks landed on a copy of b.
func evaluate(b tetris.Board, landed tetris.Placement) (Features, bool) {
	bottom := math.MinInt
	for _, t := range landed.Tiles() {
		if !b.Set(t.X, t.Y, landed.Kind) {
			return Features{}, false
		}
		bottom = max(bottom, t.Y)
	}
	lines := tetris.ClearLines(&b)
	return Measure(&b, lines, bottom), true
}
