package chat

import (
	"context"

	"github.com/arpanm/appointment-assistant/internal/salesforce"
)

// EventCreator is the subset of the Salesforce client the conversation
// engine needs.
type EventCreator interface {
	CreateEvent(ctx context.Context, event salesforce.Event) (string, error)
}

// CRMAdapter bridges extracted drafts to Salesforce Event records.
type CRMAdapter struct {
	client EventCreator
}

// NewCRMAdapter wraps a Salesforce client as a RecordStore.
func NewCRMAdapter(client EventCreator) *CRMAdapter {
	return &CRMAdapter{client: client}
}

var _ RecordStore = (*CRMAdapter)(nil)

// CreateEvent submits the draft as a calendar Event. No idempotency key
// is attached: calling twice creates two records.
func (a *CRMAdapter) CreateEvent(ctx context.Context, draft Draft) (string, error) {
	return a.client.CreateEvent(ctx, salesforce.Event{
		Subject:       draft.Subject,
		StartDateTime: draft.StartDateTime,
		EndDateTime:   draft.EndDateTime,
		Description:   draft.Description,
	})
}
