package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNotAuthenticated is returned by record operations before a
	// successful Login.
	ErrNotAuthenticated = errors.New("salesforce: not authenticated")

	// ErrAuthenticationFailed is returned when the token endpoint rejects
	// the credential grant.
	ErrAuthenticationFailed = errors.New("salesforce: authentication failed")
)

// Config holds configuration for the Salesforce client.
type Config struct {
	LoginURL     string // e.g. "https://login.salesforce.com"
	ClientID     string // connected app consumer key
	ClientSecret string // connected app consumer secret
	APIVersion   string // REST API version, e.g. "v57.0"
	Timeout      time.Duration
}

// Client talks to the Salesforce REST API. The session (access token and
// instance URL) is set by one successful Login and lives for the process
// lifetime: there is no logout, refresh, or expiry detection, so an
// expired token surfaces as a failed record call until the process is
// restarted and logged in again.
type Client struct {
	loginURL     string
	clientID     string
	clientSecret string
	apiVersion   string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	instanceURL string
}

// New creates a Salesforce client. It does not authenticate; call Login
// before creating records.
func New(cfg Config) (*Client, error) {
	if cfg.LoginURL == "" {
		return nil, fmt.Errorf("salesforce: LoginURL is required")
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("salesforce: ClientID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("salesforce: ClientSecret is required")
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "v57.0"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		loginURL:     strings.TrimSuffix(cfg.LoginURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		apiVersion:   apiVersion,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Login performs the OAuth 2.0 password grant and stores the returned
// session. On failure the client stays unauthenticated.
func (c *Client) Login(ctx context.Context, username, password string) error {
	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("username", username)
	data.Set("password", password)

	tokenURL := c.loginURL + "/services/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("salesforce: failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("salesforce: auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w (status %d): %s", ErrAuthenticationFailed, resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		InstanceURL string `json:"instance_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("salesforce: failed to decode auth response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = tokenResp.AccessToken
	c.instanceURL = strings.TrimSuffix(tokenResp.InstanceURL, "/")
	c.mu.Unlock()

	return nil
}

// Authenticated reports whether a session is held.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != "" && c.instanceURL != ""
}

// Event is the calendar record submitted to the sobjects API. Field names
// match the Salesforce Event object.
type Event struct {
	Subject       string `json:"Subject"`
	StartDateTime string `json:"StartDateTime"`
	EndDateTime   string `json:"EndDateTime"`
	Description   string `json:"Description,omitempty"`
}

// CreateEvent posts one Event record and returns the provider-assigned
// ID. Requires a prior successful Login; an unauthenticated call fails
// without touching the network. Exactly one request per invocation and no
// idempotency key, so calling twice creates two records.
func (c *Client) CreateEvent(ctx context.Context, event Event) (string, error) {
	c.mu.Lock()
	token, instanceURL := c.accessToken, c.instanceURL
	c.mu.Unlock()
	if token == "" || instanceURL == "" {
		return "", ErrNotAuthenticated
	}

	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("salesforce: failed to marshal event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/services/data/%s/sobjects/Event", instanceURL, c.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("salesforce: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("salesforce: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("salesforce: record creation failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("salesforce: failed to decode response: %w", err)
	}
	return created.ID, nil
}
