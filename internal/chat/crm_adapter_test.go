package chat

import (
	"context"
	"testing"

	"github.com/arpanm/appointment-assistant/internal/salesforce"
)

type stubEventCreator struct {
	lastEvent salesforce.Event
	id        string
	err       error
}

func (s *stubEventCreator) CreateEvent(_ context.Context, event salesforce.Event) (string, error) {
	s.lastEvent = event
	return s.id, s.err
}

func TestCRMAdapterMapsDraftFields(t *testing.T) {
	stub := &stubEventCreator{id: "00U000042"}
	adapter := NewCRMAdapter(stub)

	id, err := adapter.CreateEvent(context.Background(), Draft{
		Subject:       "Dentist",
		StartDateTime: "2025-03-15T14:30:00",
		EndDateTime:   "2025-03-15T15:30:00",
		Description:   "Scheduled via AI Assistant",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if id != "00U000042" {
		t.Errorf("unexpected record ID: %s", id)
	}

	want := salesforce.Event{
		Subject:       "Dentist",
		StartDateTime: "2025-03-15T14:30:00",
		EndDateTime:   "2025-03-15T15:30:00",
		Description:   "Scheduled via AI Assistant",
	}
	if stub.lastEvent != want {
		t.Errorf("unexpected event mapping: %+v", stub.lastEvent)
	}
}
