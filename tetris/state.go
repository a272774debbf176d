package tetris

import "time"

// State is the scoreboard of a session.
type State struct {
	Level  int
	Score  int
	Lines  int
	Pieces int
	// Interval is the automatic descend period at the current level.
	Interval time.Duration
}

// Progression decides how level and descend speed follow from cleared
// lines. The engine only reports counts; pacing is the caller's policy.
type Progression interface {
	Level(lines int) int
	Interval(level int) time.Duration
}

// LinearProgression raises the level every LinesPerLevel lines and
// shortens the descend interval by Step per level, never below Min.
type LinearProgression struct {
	Base          time.Duration
	Step          time.Duration
	Min           time.Duration
	LinesPerLevel int
}

// DefaultProgression starts at one row per second.
var DefaultProgression = LinearProgression{
	Base:          time.Second,
	Step:          75 * time.Millisecond,
	Min:           100 * time.Millisecond,
	LinesPerLevel: 10,
}

func (p LinearProgression) Level(lines int) int {
	if p.LinesPerLevel <= 0 {
		return 1
	}
	return lines/p.LinesPerLevel + 1
}

func (p LinearProgression) Interval(level int) time.Duration {
	d := p.Base - time.Duration(level-1)*p.Step
	if d < p.Min {
		return p.Min
	}
	return d
}

// award books a lock that cleared n rows. Scoring uses the level in force
// before the clear.
func (s *State) award(n int, prog Progression) {
	s.Pieces++
	s.Score += LineScore(n, s.Level)
	s.Lines += n
	if level := prog.Level(s.Lines); level > s.Level {
		s.Level = level
	}
	s.Interval = prog.Interval(s.Level)
}

func newState(prog Progression) State {
	return State{
		Level:    1,
		Interval: prog.Interval(1),
	}
}
