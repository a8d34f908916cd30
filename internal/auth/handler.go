package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arpanm/appointment-assistant/pkg/logging"
)

// guestUsername is the display name for guest sessions.
const guestUsername = "Guest"

// CRMAuthenticator opens the CRM session after a non-guest sign-in.
type CRMAuthenticator interface {
	Login(ctx context.Context, username, password string) error
}

// Config holds sign-in configuration.
type Config struct {
	// Username/Password are the accepted credential pair. The check is a
	// plain comparison; there is no user store.
	Username string
	Password string

	// JWTSecret signs session tokens; TTL bounds their lifetime.
	JWTSecret string
	TTL       time.Duration

	// CRMUsername/CRMPassword are the integration credentials used for
	// the CRM login triggered by a non-guest sign-in.
	CRMUsername string
	CRMPassword string
}

// Handler accepts or rejects sign-in attempts and issues session tokens.
type Handler struct {
	cfg    Config
	crm    CRMAuthenticator
	logger *logging.Logger
}

// NewHandler creates a sign-in handler. crm may be nil when no CRM is
// configured.
func NewHandler(cfg Config, crm CRMAuthenticator, logger *logging.Logger) *Handler {
	if cfg.TTL == 0 {
		cfg.TTL = 12 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		cfg:    cfg,
		crm:    crm,
		logger: logger,
	}
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Guest    bool   `json:"guest"`
}

type signInResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Guest    bool   `json:"guest"`
}

// SignIn handles POST /auth/signin. Guests are always accepted; otherwise
// the credential pair must match the configured one. An accepted non-guest
// sign-in also opens the CRM session; a failure there is logged but does
// not reject the sign-in, it just leaves record creation unauthenticated.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	username := req.Username
	if req.Guest {
		username = guestUsername
	} else if req.Username != h.cfg.Username || req.Password != h.cfg.Password {
		h.logger.Info("sign-in rejected", "username", req.Username)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.issueToken(username, req.Guest)
	if err != nil {
		h.logger.Error("failed to issue session token", "error", err)
		http.Error(w, "failed to sign in", http.StatusInternalServerError)
		return
	}

	if !req.Guest && h.crm != nil {
		if err := h.crm.Login(r.Context(), h.cfg.CRMUsername, h.cfg.CRMPassword); err != nil {
			h.logger.Error("failed to connect to Salesforce", "error", err)
		} else {
			h.logger.Info("connected to Salesforce")
		}
	}

	h.logger.Info("sign-in accepted", "username", username, "guest", req.Guest)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(signInResponse{
		Token:    token,
		Username: username,
		Guest:    req.Guest,
	})
}

func (h *Handler) issueToken(username string, guest bool) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.TTL)),
	}
	if guest {
		claims.Audience = jwt.ClaimStrings{"guest"}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
