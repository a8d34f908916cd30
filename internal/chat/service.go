package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/arpanm/appointment-assistant/internal/observability/metrics"
	"github.com/arpanm/appointment-assistant/pkg/logging"
)

const (
	scheduledReplyFormat = "Your appointment has been successfully scheduled! Appointment ID: %s"
	extractionMissReply  = "I could not extract the appointment details. Please provide the date, time, and subject again."
	turnErrorReply       = "I apologize, but I encountered an error processing your request."

	completionTimeout = 30 * time.Second
)

// Turn outcomes reported to metrics.
const (
	outcomeReply          = "reply"
	outcomeBooked         = "booked"
	outcomeExtractionMiss = "extraction_miss"
	outcomeError          = "error"
)

var chatTracer = otel.Tracer("assistant.internal.chat")

// RecordStore persists a confirmed appointment draft in the CRM and
// returns the provider-assigned record identifier.
type RecordStore interface {
	CreateEvent(ctx context.Context, draft Draft) (string, error)
}

// Service runs one conversation turn at a time: it appends the user
// message, asks the completion provider for a reply, and on confirmation
// language extracts a draft and books it through the record store.
type Service struct {
	store   *Store
	llm     CompletionProvider
	records RecordStore
	logger  *logging.Logger
	metrics *metrics.ChatMetrics

	turns sync.Map // sessionID -> *sync.Mutex
}

// NewService wires the conversation orchestrator. records may be nil when
// no CRM is configured; the confirm branch then degrades to the turn
// error reply.
func NewService(store *Store, llm CompletionProvider, records RecordStore, m *metrics.ChatMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("chat: store cannot be nil")
	}
	if llm == nil {
		panic("chat: completion provider cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:   store,
		llm:     llm,
		records: records,
		logger:  logger,
		metrics: m,
	}
}

// ProcessTurn handles one user submission and returns the single
// assistant message appended for it. Provider failures never surface as
// errors here; they become a substitute assistant reply instead, so the
// conversation survives. The only error cases are validation ones, raised
// before any state change or network call.
func (s *Service) ProcessTurn(ctx context.Context, sessionID, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}
	if sessionID == "" {
		return Message{}, errors.New("chat: session ID is required")
	}

	// The browser serializes turns per user, but the server itself is
	// concurrent; one lock per conversation keeps turns sequential.
	mu := s.turnLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	ctx, span := chatTracer.Start(ctx, "chat.turn")
	defer span.End()
	span.SetAttributes(attribute.String("chat.session_id", sessionID))

	started := time.Now()
	history := s.store.History(sessionID)
	userMsg := s.store.Append(sessionID, SenderUser, text)

	reply, outcome := s.resolveReply(ctx, sessionID, history, userMsg)
	assistant := s.store.Append(sessionID, SenderAssistant, reply)

	span.SetAttributes(attribute.String("chat.outcome", outcome))
	s.metrics.ObserveTurn(outcome, time.Since(started).Seconds())
	s.logger.Info("turn completed",
		"session_id", sessionID,
		"outcome", outcome,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return assistant, nil
}

// resolveReply produces the assistant text for the turn and names the
// branch taken. history is the conversation before the new user message;
// the completion call receives it with the message appended last.
func (s *Service) resolveReply(ctx context.Context, sessionID string, history []Message, userMsg Message) (string, string) {
	callCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	reply, err := s.llm.Complete(callCtx, userMsg.Text, history)
	if err != nil {
		s.logger.Error("completion failed", "session_id", sessionID, "error", err)
		return turnErrorReply, outcomeError
	}

	if !containsFold(reply, "confirm") || !containsFold(userMsg.Text, "yes") {
		return reply, outcomeReply
	}

	draft, ok := ExtractAppointment(s.store.History(sessionID))
	if !ok {
		return extractionMissReply, outcomeExtractionMiss
	}

	if s.records == nil {
		s.logger.Error("no record store configured, cannot book", "session_id", sessionID)
		return turnErrorReply, outcomeError
	}

	recordID, err := s.records.CreateEvent(ctx, draft)
	if err != nil {
		s.logger.Error("record creation failed", "session_id", sessionID, "error", err)
		return turnErrorReply, outcomeError
	}

	s.metrics.ObserveEventCreated()
	s.logger.Info("appointment booked",
		"session_id", sessionID,
		"record_id", recordID,
		"start", draft.StartDateTime,
	)
	return fmt.Sprintf(scheduledReplyFormat, recordID), outcomeBooked
}

func (s *Service) turnLock(sessionID string) *sync.Mutex {
	mu, _ := s.turns.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
