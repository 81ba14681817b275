// Package datasource talks JSON to the userhub REST API.
package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:3000/api"
	DefaultTimeout = 10 * time.Second
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope mirrors the server's response body.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Decode unmarshals the data member into dst.
func (e *Envelope) Decode(dst any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	return json.Unmarshal(e.Data, dst)
}

// StatusError is returned for any non-2xx answer. Envelope is nil when the
// body was not a JSON envelope.
type StatusError struct {
	Status   int
	Envelope *Envelope
}

func (e *StatusError) Error() string {
	if e.Envelope != nil && e.Envelope.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Envelope.Message)
	}
	return fmt.Sprintf("status %d", e.Status)
}

// Message is the server's message, if it sent one.
func (e *StatusError) Message() string {
	if e.Envelope == nil {
		return ""
	}
	return e.Envelope.Message
}

type HTTP struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*HTTP)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) { h.client = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(h *HTTP) { h.log = l }
}

func New(baseURL string, opts ...Option) *HTTP {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *HTTP) SetAuthToken(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *HTTP) ClearAuthToken() {
	h.mu.Lock()
	h.token = ""
	h.mu.Unlock()
}

// AuthToken reports the credential currently attached to requests.
func (h *HTTP) AuthToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *HTTP) Get(ctx context.Context, path string) (*Envelope, error) {
	return h.do(ctx, http.MethodGet, path, nil)
}

func (h *HTTP) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return h.do(ctx, http.MethodPost, path, body)
}

func (h *HTTP) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return h.do(ctx, http.MethodPut, path, body)
}

func (h *HTTP) Delete(ctx context.Context, path string) (*Envelope, error) {
	return h.do(ctx, http.MethodDelete, path, nil)
}

func (h *HTTP) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok := h.AuthToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Warn("network error", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env *Envelope
	if len(raw) > 0 {
		var e Envelope
		if err := json.Unmarshal(raw, &e); err == nil {
			env = &e
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.log.Warn("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return nil, &StatusError{Status: resp.StatusCode, Envelope: env}
	}
	if env == nil {
		return nil, fmt.Errorf("%s %s: response is not a JSON envelope", method, path)
	}
	return env, nil
}
