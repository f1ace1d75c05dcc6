package widget

// Async is deferred work started by a model update. It runs on its own
// goroutine; the returned message is fed back to the model through the
// session's command channel.
type Async func() interface{}

// Model is the application side of a UI session. View builds the widget
// tree from the current state; Update applies one message and may return
// asynchronous follow-up work.
//
// All calls happen on the frame thread, in order. A model never needs its
// own locking as long as its state is touched only from Update.
type Model interface {
	View() Node
	Update(message interface{}) []Async
}
