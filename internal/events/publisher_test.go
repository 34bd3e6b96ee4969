package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(TypePromptCreated, map[string]interface{}{"prompt_id": uint(1)})

	if event.ID == "" {
		t.Error("NewEvent() did not assign an id")
	}
	if event.Type != TypePromptCreated {
		t.Errorf("type = %q, want %q", event.Type, TypePromptCreated)
	}
	if event.Source != eventSource || event.Version != eventVersion {
		t.Errorf("envelope = %q/%q, want %q/%q", event.Source, event.Version, eventSource, eventVersion)
	}
	if event.Timestamp.IsZero() {
		t.Error("NewEvent() did not set a timestamp")
	}

	other := NewEvent(TypePromptCreated, nil)
	if other.ID == event.ID {
		t.Error("event ids must be unique")
	}
}

func TestMockEventPublisher(t *testing.T) {
	ctx := context.Background()
	publisher := NewMockEventPublisher(testLogger())

	for _, eventType := range []string{TypeUserRegistered, TypePromptCreated, TypePromptExecuted} {
		if err := publisher.Publish(ctx, NewEvent(eventType, nil)); err != nil {
			t.Fatalf("Publish(%s) error = %v", eventType, err)
		}
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 3 {
		t.Fatalf("published %d events, want 3", len(published))
	}
	if published[0].Type != TypeUserRegistered || published[2].Type != TypePromptExecuted {
		t.Errorf("events out of order: %v", published)
	}

	// The returned slice is a copy.
	published[0].Type = "tampered"
	if publisher.GetPublishedEvents()[0].Type != TypeUserRegistered {
		t.Error("GetPublishedEvents() must return a copy")
	}

	publisher.ClearEvents()
	if got := publisher.GetPublishedEvents(); len(got) != 0 {
		t.Errorf("after ClearEvents() = %v, want empty", got)
	}
}
