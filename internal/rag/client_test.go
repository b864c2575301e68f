package rag

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL + "/"
	return NewClient(cfg, srv.Client(), nil)
}

func TestClientChat(t *testing.T) {
	t.Run("posts the request and normalizes the response key", func(t *testing.T) {
		var got ChatRequest
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/chat", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"response":"Hi there","query_type":"greeting","confidence":0.9,
				"follow_up_questions":["Show my results"],"model_used":"m1","tokens_used":42}`))
		}, Config{ChatTimeout: time.Second})

		resp, err := c.Chat(context.Background(), ChatRequest{
			StudentID:           5,
			Message:             "hello",
			ConversationHistory: []model.ChatTurn{{Role: "user", Content: "before"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "Hi there", resp.Answer)
		assert.Equal(t, "greeting", resp.Intent)
		require.NotNil(t, resp.Confidence)
		assert.InDelta(t, 0.9, *resp.Confidence, 1e-9)
		assert.Equal(t, []string{"Show my results"}, resp.Suggestions)
		assert.Equal(t, "m1", resp.ModelUsed)
		require.NotNil(t, resp.TokensUsed)
		assert.Equal(t, 42, *resp.TokensUsed)

		assert.Equal(t, uint(5), got.StudentID)
		assert.Equal(t, "hello", got.Message)
		assert.Len(t, got.ConversationHistory, 1)
	})

	t.Run("non-2xx becomes a StatusError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}, Config{ChatTimeout: time.Second})

		_, err := c.Chat(context.Background(), ChatRequest{Message: "x"})
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
		assert.Equal(t, "upstream down", statusErr.Body)
	})

	t.Run("slow service hits the chat timeout", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}, Config{ChatTimeout: 50 * time.Millisecond})

		start := time.Now()
		_, err := c.Chat(context.Background(), ChatRequest{Message: "x"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("empty answer is an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"intent":"x"}`))
		}, Config{})

		_, err := c.Chat(context.Background(), ChatRequest{Message: "x"})
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	})

	t.Run("undecodable body is an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}, Config{})

		_, err := c.Chat(context.Background(), ChatRequest{Message: "x"})
		assert.Error(t, err)
	})
}

func TestClientHealthAndSync(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte(`{"status":"ok","rag_service":true}`))
		case "/sync":
			assert.Equal(t, http.MethodPost, r.Method)
			_, _ = w.Write([]byte(`{"documents":12}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, Config{HealthTimeout: time.Second, SyncTimeout: time.Second})

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.RAGService)

	data, err := c.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(12), data["documents"])
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want ChatResponse
	}{
		{
			name: "message and intent keys",
			raw:  map[string]any{"message": "A", "intent": "results", "suggestions": []any{"s1", 3, "s2"}},
			want: ChatResponse{Answer: "A", Intent: "results", Suggestions: []string{"s1", "s2"}},
		},
		{
			name: "message wins over response",
			raw:  map[string]any{"message": "first", "response": "second"},
			want: ChatResponse{Answer: "first"},
		},
		{
			name: "blank message falls back to response",
			raw:  map[string]any{"message": "  ", "response": "second", "query_type": "stats"},
			want: ChatResponse{Answer: "second", Intent: "stats"},
		},
		{
			name: "special action",
			raw:  map[string]any{"message": "ok", "special_action": map[string]any{"type": "update_name", "new_name": "Ann"}},
			want: ChatResponse{Answer: "ok", SpecialAction: &SpecialAction{Type: "update_name", NewName: "Ann"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.raw)
			assert.Equal(t, tt.want, *got)
		})
	}

	t.Run("string confidence is parsed", func(t *testing.T) {
		got := normalize(map[string]any{"message": "a", "confidence": "0.75"})
		require.NotNil(t, got.Confidence)
		assert.InDelta(t, 0.75, *got.Confidence, 1e-9)
	})
}
