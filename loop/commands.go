package loop

// Commands buffers work that must not run while systems are still reading
// the frame's state, such as resetting a game another system has already
// inspected. The buffer runs in queue order when the frame ends.
type Commands struct {
	defers []func()
}

// Defer queues fn to run after the last system of the frame.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len is the number of queued commands.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs every queued command and empties the buffer. Commands queued
// while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
