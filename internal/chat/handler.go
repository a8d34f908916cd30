package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/arpanm/appointment-assistant/pkg/logging"
)

// Handler wires HTTP requests to the conversation service.
type Handler struct {
	service *Service
	store   *Store
	logger  *logging.Logger
}

// NewHandler creates a chat handler.
func NewHandler(service *Service, store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type messageResponse struct {
	SessionID string  `json:"session_id"`
	Reply     Message `json:"reply"`
}

// Message handles POST /chat/messages: one user turn in, one assistant
// reply out.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode message request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := h.service.ProcessTurn(r.Context(), req.SessionID, req.Text)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to process turn", "error", err, "session_id", req.SessionID)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{
		SessionID: req.SessionID,
		Reply:     reply,
	})
}

// History handles GET /chat/history?session=: the ordered conversation.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	messages := h.store.History(sessionID)
	if messages == nil {
		messages = []Message{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
