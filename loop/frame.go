package loop

import "time"

// Frame is handed to every system during one scheduler tick.
type Frame struct {
	// DeltaTime is the time since the previous tick.
	DeltaTime time.Duration
	// Index counts ticks from zero.
	Index     uint64
	Commands  *Commands
	Resources *Resources
}

func newFrame(dt time.Duration, index uint64, resources *Resources, commands *Commands) *Frame {
	return &Frame{
		DeltaTime: dt,
		Index:     index,
		Commands:  commands,
		Resources: resources,
	}
}
