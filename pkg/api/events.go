package api

// EventType identifies the type of a normalized stream event.
type EventType string

const (
	// EventStarted is emitted exactly once, before any other event.
	EventStarted EventType = "started"
	// EventDelta carries an incremental fragment of the assistant reply.
	EventDelta EventType = "delta"
	// EventDone terminates the stream successfully.
	EventDone EventType = "done"
	// EventError terminates the stream with a failure. Mutually exclusive
	// with EventDone.
	EventError EventType = "error"
)

// StreamEvent is a single normalized event in a chat stream. Exactly one
// terminal event (Done or Error) is emitted per stream, and no Delta ever
// follows it. Concatenating all Delta contents in emission order yields the
// full assistant reply.
type StreamEvent struct {
	Type EventType

	// MessageID is set on Started events.
	MessageID string

	// Content is set on Delta events.
	Content string

	// TotalTokens is set on Done events. Zero when the upstream does not
	// report usage.
	TotalTokens int

	// Err is set on Error events.
	Err error
}

// Started builds the stream-opening event for the given message ID.
func Started(messageID string) StreamEvent {
	return StreamEvent{Type: EventStarted, MessageID: messageID}
}

// Delta builds an incremental content event.
func Delta(content string) StreamEvent {
	return StreamEvent{Type: EventDelta, Content: content}
}

// Done builds the successful terminal event.
func Done(totalTokens int) StreamEvent {
	return StreamEvent{Type: EventDone, TotalTokens: totalTokens}
}

// ErrorEvent builds the failing terminal event.
func ErrorEvent(err error) StreamEvent {
	return StreamEvent{Type: EventError, Err: err}
}

// Terminal reports whether the event ends its stream.
func (e StreamEvent) Terminal() bool {
	return e.Type == EventDone || e.Type == EventError
}
