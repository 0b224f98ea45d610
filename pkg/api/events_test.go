package api

import (
	"errors"
	"testing"
)

func TestStreamEventConstructors(t *testing.T) {
	started := Started("msg-1")
	if started.Type != EventStarted || started.MessageID != "msg-1" {
		t.Errorf("Started = %+v, want type=started messageID=msg-1", started)
	}

	delta := Delta("Hello")
	if delta.Type != EventDelta || delta.Content != "Hello" {
		t.Errorf("Delta = %+v, want type=delta content=Hello", delta)
	}

	done := Done(42)
	if done.Type != EventDone || done.TotalTokens != 42 {
		t.Errorf("Done = %+v, want type=done totalTokens=42", done)
	}

	ev := ErrorEvent(errors.New("boom"))
	if ev.Type != EventError || ev.Err == nil || ev.Err.Error() != "boom" {
		t.Errorf("ErrorEvent = %+v, want type=error err=boom", ev)
	}
}

func TestStreamEventTerminal(t *testing.T) {
	tests := []struct {
		event    StreamEvent
		terminal bool
	}{
		{Started("id"), false},
		{Delta("x"), false},
		{Done(0), true},
		{ErrorEvent(errors.New("x")), true},
	}
	for _, tt := range tests {
		if got := tt.event.Terminal(); got != tt.terminal {
			t.Errorf("Terminal(%s) = %v, want %v", tt.event.Type, got, tt.terminal)
		}
	}
}
