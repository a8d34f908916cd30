package chat

import "time"

// Sender identifies who authored a conversation message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one entry in a conversation. Messages are immutable once
// appended; IDs are per-conversation ordinals assigned by the store.
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Draft is an extracted, not-yet-persisted appointment record. A Draft is
// only ever built when date, time, and subject were all found; there is no
// partially-filled Draft.
type Draft struct {
	Subject       string `json:"Subject"`
	StartDateTime string `json:"StartDateTime"`
	EndDateTime   string `json:"EndDateTime"`
	Description   string `json:"Description,omitempty"`
}
