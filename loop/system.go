// Package loop runs an ordered list of systems once per frame. Systems share
// state through typed resources and queue work that must happen after every
// system has run on the frame's command buffer.
package loop

// System is one stage of a frame. Fields of type Resource[T] on a system
// struct are bound by the Scheduler when the system is registered.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) {
	f(frame)
}
