// Package functions invokes managed edge functions over HTTP, the way the
// hosted platform's client SDK does: POST {base}/functions/v1/{name} with the
// project anon key as bearer token.
package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lunarai-web/internal/domain"
)

const maxErrorBody = 4 << 10

// Config holds the function endpoint settings
type Config struct {
	BaseURL      string // e.g. https://xyz.supabase.co
	AnonKey      string
	FunctionName string // e.g. send-contact-email
	HTTPClient   *http.Client
}

// Client calls a single named function
type Client struct {
	endpoint   string
	anonKey    string
	httpClient *http.Client
}

// Error describes a failed invocation
type Error struct {
	Function   string
	StatusCode int
	Relay      bool   // the platform relay failed before reaching the function
	Message    string // collaborator-reported error, if any
}

func (e *Error) Error() string {
	switch {
	case e.Relay:
		return fmt.Sprintf("functions: relay error invoking %s: %s", e.Function, e.Message)
	case e.StatusCode >= 300:
		return fmt.Sprintf("functions: %s returned status %d: %s", e.Function, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("functions: %s reported error: %s", e.Function, e.Message)
	}
}

// NewClient creates a client for cfg.FunctionName
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/functions/v1/" + cfg.FunctionName,
		anonKey:    cfg.AnonKey,
		httpClient: httpClient,
	}
}

// Invoke posts body as JSON. It never retries.
func (c *Client) Invoke(ctx context.Context, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("functions: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("functions: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.anonKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
		req.Header.Set("apikey", c.anonKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("functions: invoke %s: %w", c.name(), err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if strings.EqualFold(resp.Header.Get("x-relay-error"), "true") {
		return &Error{Function: c.name(), StatusCode: resp.StatusCode, Relay: true, Message: strings.TrimSpace(string(raw))}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Function: c.name(), StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if msg := reportedError(raw); msg != "" {
		return &Error{Function: c.name(), StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}

func (c *Client) name() string {
	return c.endpoint[strings.LastIndex(c.endpoint, "/")+1:]
}

// reportedError extracts a non-empty "error" member from a 2xx JSON body
func reportedError(raw []byte) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &body) != nil {
		return ""
	}
	switch s := strings.TrimSpace(string(body.Error)); s {
	case "", "null", "false", `""`:
		return ""
	default:
		var str string
		if json.Unmarshal(body.Error, &str) == nil {
			return str
		}
		return s
	}
}

func errorMessage(raw []byte) string {
	if msg := reportedError(raw); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(raw))
}

// ContactDispatcher sends contact forms through a function client
type ContactDispatcher struct {
	client *Client
}

// NewContactDispatcher wraps client as a domain.ContactDispatcher
func NewContactDispatcher(client *Client) *ContactDispatcher {
	return &ContactDispatcher{client: client}
}

// Dispatch sends the six form fields as the JSON body
func (d *ContactDispatcher) Dispatch(ctx context.Context, form domain.ContactForm) error {
	return d.client.Invoke(ctx, form)
}
