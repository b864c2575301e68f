// Package rag is the HTTP adapter to the external study-assistant (RAG) service.
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lshigami/placement-portal/config"
	"github.com/lshigami/placement-portal/internal/metrics"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	callChat   = "chat"
	callHealth = "health"
	callSync   = "sync"

	maxErrorBody = 512
)

type Config struct {
	BaseURL       string
	ChatTimeout   time.Duration
	SyncTimeout   time.Duration
	HealthTimeout time.Duration
}

func ConfigFrom(cfg *config.Config) Config {
	return Config{
		BaseURL:       cfg.RAG.BaseURL,
		ChatTimeout:   cfg.RAG.ChatTimeout,
		SyncTimeout:   cfg.RAG.SyncTimeout,
		HealthTimeout: cfg.RAG.HealthTimeout,
	}
}

type ChatRequest struct {
	StudentID           uint             `json:"student_id"`
	Message             string           `json:"message"`
	StudentName         string           `json:"student_name,omitempty"`
	StudentEmail        string           `json:"student_email,omitempty"`
	SessionID           string           `json:"session_id,omitempty"`
	StudentContext      any              `json:"student_context"`
	ConversationHistory []model.ChatTurn `json:"conversation_history"`
}

// SpecialAction is an instruction the assistant attaches to an answer, e.g. a profile update.
type SpecialAction struct {
	Type    string `json:"type"`
	NewName string `json:"new_name,omitempty"`
}

// ChatResponse is the normalized answer of the service, whatever keys it used on the wire.
type ChatResponse struct {
	Answer        string
	Intent        string
	Confidence    *float64
	ModelUsed     string
	Suggestions   []string
	Actions       []map[string]any
	TokensUsed    *int
	FromCache     bool
	SpecialAction *SpecialAction
}

type HealthResponse struct {
	Status     string         `json:"status"`
	RAGService bool           `json:"rag_service"`
	Details    map[string]any `json:"-"`
}

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rag service returned status %d: %s", e.StatusCode, e.Body)
}

// ErrEmptyAnswer is returned when a 2xx chat reply carries no answer text.
var ErrEmptyAnswer = errors.New("rag service returned an empty answer")

type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Health(ctx context.Context) (*HealthResponse, error)
	Sync(ctx context.Context) (map[string]any, error)
}

type client struct {
	cfg     Config
	http    *http.Client
	metrics *metrics.Metrics
}

// NewClient builds the adapter. Timeouts are applied per call, so httpClient
// should not carry its own; nil means http.DefaultClient.
func NewClient(cfg Config, httpClient *http.Client, m *metrics.Metrics) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &client{cfg: cfg, http: httpClient, metrics: m}
}

func (c *client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	raw := map[string]any{}
	if err := c.do(ctx, callChat, c.cfg.ChatTimeout, http.MethodPost, "/chat", req, &raw); err != nil {
		return nil, err
	}
	resp := normalize(raw)
	if resp.Answer == "" {
		return nil, ErrEmptyAnswer
	}
	return resp, nil
}

func (c *client) Health(ctx context.Context) (*HealthResponse, error) {
	raw := map[string]any{}
	if err := c.do(ctx, callHealth, c.cfg.HealthTimeout, http.MethodGet, "/health", nil, &raw); err != nil {
		return nil, err
	}
	health := &HealthResponse{Details: raw}
	health.Status, _ = raw["status"].(string)
	health.RAGService, _ = raw["rag_service"].(bool)
	return health, nil
}

func (c *client) Sync(ctx context.Context) (map[string]any, error) {
	raw := map[string]any{}
	if err := c.do(ctx, callSync, c.cfg.SyncTimeout, http.MethodPost, "/sync", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *client) do(ctx context.Context, call string, timeout time.Duration, method, path string, body any, out any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", call, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", call, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRAGCall(call, "transport_error", time.Since(start))
		log.Warn().Err(err).Str("call", call).Msg("RAG request failed")
		return fmt.Errorf("rag %s request failed: %w", call, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.metrics.ObserveRAGCall(call, "bad_status", time.Since(start))
		log.Warn().Int("status", resp.StatusCode).Str("call", call).Msg("RAG service returned error status")
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.ObserveRAGCall(call, "decode_error", time.Since(start))
		return fmt.Errorf("failed to decode rag %s response: %w", call, err)
	}
	c.metrics.ObserveRAGCall(call, "ok", time.Since(start))
	return nil
}

// normalize maps the service's alternative key spellings onto ChatResponse.
func normalize(raw map[string]any) *ChatResponse {
	resp := &ChatResponse{
		Answer:    firstString(raw, "message", "response", "answer"),
		Intent:    firstString(raw, "intent", "query_type"),
		ModelUsed: firstString(raw, "model_used"),
	}
	if f, ok := toFloat(raw["confidence"]); ok {
		resp.Confidence = &f
	}
	if f, ok := toFloat(raw["tokens_used"]); ok {
		n := int(f)
		resp.TokensUsed = &n
	}
	resp.FromCache, _ = raw["from_cache"].(bool)

	for _, key := range []string{"suggestions", "follow_up_questions"} {
		if list, ok := raw[key].([]any); ok && len(list) > 0 {
			for _, item := range list {
				if s, ok := item.(string); ok && s != "" {
					resp.Suggestions = append(resp.Suggestions, s)
				}
			}
			break
		}
	}
	if list, ok := raw["actions"].([]any); ok {
		for _, item := range list {
			if action, ok := item.(map[string]any); ok {
				resp.Actions = append(resp.Actions, action)
			}
		}
	}
	if action, ok := raw["special_action"].(map[string]any); ok {
		sa := &SpecialAction{}
		sa.Type, _ = action["type"].(string)
		sa.NewName, _ = action["new_name"].(string)
		if sa.Type != "" {
			resp.SpecialAction = sa
		}
	}
	return resp
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
