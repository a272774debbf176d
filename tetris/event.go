package tetris

// EventType names a notification the shell can react to.
type EventType uint8

const (
	PieceSpawned EventType = iota + 1
	PieceLocked
	LinesCleared
	GameOver
)

func (t EventType) String() string {
	switch t {
	case PieceSpawned:
		return "piece spawned"
	case PieceLocked:
		return "piece locked"
	case LinesCleared:
		return "lines cleared"
	case GameOver:
		return "game over"
	}
	return "unknown"
}

// Event is one notification. Placement is set for spawns and locks, Lines
// for clears; Score is the running score after the event.
type Event struct {
	Type      EventType
	Placement Placement
	Lines     int
	Score     int
}

// eventQueue collects notifications during a step. They are handed out in
// the order they happened: a lock, then its clear, then the next spawn or
// the game over.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(e Event) {
	q.events = append(q.events, e)
}

func (q *eventQueue) drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}
