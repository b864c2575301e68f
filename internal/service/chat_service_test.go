package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lshigami/placement-portal/internal/cache"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/rag"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatService(t *testing.T, handler http.HandlerFunc, chatTimeout time.Duration) (*gorm.DB, *chatService) {
	t.Helper()
	db := testutil.NewDB(t)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := rag.NewClient(rag.Config{BaseURL: srv.URL, ChatTimeout: chatTimeout, HealthTimeout: time.Second, SyncTimeout: time.Second}, srv.Client(), nil)
	assessments := repository.NewAssessmentRepository(db)
	attempts := repository.NewStudentAssessmentRepository(db)
	builder := NewContextBuilder(assessments, attempts, repository.NewStudentAnswerRepository(db), cache.NoopContextCache{}, time.Minute)

	svc := NewChatService(
		client,
		true,
		builder,
		NewLimitedResponder(assessments, attempts),
		repository.NewChatbotRepository(db),
		repository.NewUserRepository(db),
		nil,
		nil,
	).(*chatService)
	svc.now = func() time.Time { return fixedNow }
	return db, svc
}

func storedMessages(t *testing.T, db *gorm.DB) []model.ChatbotMessage {
	var messages []model.ChatbotMessage
	require.NoError(t, db.Order("id").Find(&messages).Error)
	return messages
}

func TestChatFallsBackToLimitedMode(t *testing.T) {
	ctx := context.Background()

	cases := map[string]struct {
		handler http.HandlerFunc
	}{
		"timeout": {handler: func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(500 * time.Millisecond):
			}
		}},
		"server error": {handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		"empty answer": {handler: func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":"   "}`))
		}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db, svc := newChatService(t, tc.handler, 50*time.Millisecond)
			student := testutil.CreateStudent(t, db, "ravi")
			testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Logic I"})
			testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Logic II"})

			resp := svc.Chat(ctx, student, "sess-1", "show my statistics")

			assert.True(t, resp.Success)
			assert.Equal(t, ModeLimited, resp.Mode)
			assert.Equal(t, "Mode 2: LIMITED MODE", resp.ModeName)
			assert.Equal(t, "statistics", resp.Intent)
			assert.Contains(t, resp.Message, "Tests Available: 2")
			assert.Contains(t, resp.Message, "Tests Completed: 0")
			assert.Equal(t, "sess-1", resp.SessionID)
			assert.Equal(t, fixedNow, resp.Timestamp)

			messages := storedMessages(t, db)
			require.Len(t, messages, 2)
			assert.Equal(t, model.ChatSenderStudent, messages[0].Sender)
			assert.Equal(t, model.ChatSenderBot, messages[1].Sender)
			assert.True(t, messages[1].Failed)
			assert.Equal(t, ModeLimited, messages[1].Mode)
		})
	}
}

func TestChatRAGActive(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the assistant answer and persists the exchange", func(t *testing.T) {
		var got rag.ChatRequest
		db, svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"answer":"You have one test waiting.","intent":"available_assessments","confidence":0.8,"suggestions":["Start it"],"tokens_used":17}`))
		}, time.Second)
		student := testutil.CreateStudent(t, db, "meera")
		testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Verbal"})

		resp := svc.Chat(ctx, student, "", "what can I take?")

		assert.Equal(t, ModeRAGActive, resp.Mode)
		assert.Equal(t, "You have one test waiting.", resp.Message)
		assert.Equal(t, resp.Message, resp.Response)
		assert.Equal(t, []string{"Start it"}, resp.Suggestions)
		assert.NotEmpty(t, resp.SessionID)

		assert.Equal(t, student.ID, got.StudentID)
		assert.Equal(t, resp.SessionID, got.SessionID)
		assert.Empty(t, got.ConversationHistory)

		messages := storedMessages(t, db)
		require.Len(t, messages, 2)
		assert.False(t, messages[1].Failed)
		require.NotNil(t, messages[1].TokensUsed)
		assert.Equal(t, 17, *messages[1].TokensUsed)

		var conversation model.ChatbotConversation
		require.NoError(t, db.First(&conversation).Error)
		assert.Equal(t, "what can I take?", conversation.Title)
		require.Len(t, conversation.History, 2)
		assert.Equal(t, "assistant", conversation.History[1].Role)
	})

	t.Run("keeps only the latest ten history turns", func(t *testing.T) {
		var got rag.ChatRequest
		db, svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"message":"noted"}`))
		}, time.Second)
		student := testutil.CreateStudent(t, db, "kiran")

		history := make([]model.ChatTurn, 0, 10)
		for i := 0; i < 10; i++ {
			history = append(history, model.ChatTurn{Role: "user", Content: fmt.Sprintf("turn %d", i)})
		}
		require.NoError(t, db.Create(&model.ChatbotConversation{
			StudentID: student.ID,
			SessionID: "long",
			Title:     "long",
			History:   history,
			Status:    "active",
		}).Error)

		resp := svc.Chat(ctx, student, "long", "one more")
		require.Equal(t, ModeRAGActive, resp.Mode)
		assert.Len(t, got.ConversationHistory, 10)

		var conversation model.ChatbotConversation
		require.NoError(t, db.Where("session_id = ?", "long").First(&conversation).Error)
		require.Len(t, conversation.History, 10)
		assert.Equal(t, "turn 2", conversation.History[0].Content)
		assert.Equal(t, "one more", conversation.History[8].Content)
		assert.Equal(t, "noted", conversation.History[9].Content)
	})

	t.Run("applies a name update requested by the assistant", func(t *testing.T) {
		db, svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":"Sure.","special_action":{"type":"update_name","new_name":"  Priya Sharma "}}`))
		}, time.Second)
		student := testutil.CreateStudent(t, db, "priya")

		resp := svc.Chat(ctx, student, "s", "call me Priya Sharma")

		assert.Equal(t, "Perfect! I've updated your name to Priya Sharma. Your profile has been saved.", resp.Message)
		var stored model.User
		require.NoError(t, db.First(&stored, student.ID).Error)
		assert.Equal(t, "Priya Sharma", stored.Name)
	})
}

func TestChatDisabledUsesLimitedMode(t *testing.T) {
	db, svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("assistant must not be called when disabled")
	}, time.Second)
	svc.ragEnabled = false
	student := testutil.CreateStudent(t, db, "dev")

	resp := svc.Chat(context.Background(), student, "s", "hi")
	assert.Equal(t, ModeLimited, resp.Mode)
	assert.Equal(t, "greeting", resp.Intent)
	assert.Contains(t, resp.Message, "Hello dev!")

	health := svc.Health(context.Background())
	assert.Equal(t, "limited", health.Mode)
	assert.False(t, health.RAGService)

	sync := svc.Sync(context.Background())
	assert.False(t, sync.Success)
}

func TestChatHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		_, svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"healthy","rag_service":true}`))
		}, time.Second)
		health := svc.Health(context.Background())
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, ModeRAGActive, health.Mode)
		assert.True(t, health.RAGService)
	})

	t.Run("error status", func(t *testing.T) {
		_, svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}, time.Second)
		health := svc.Health(context.Background())
		assert.Equal(t, "limited", health.Mode)
		assert.Equal(t, "RAG service returned error status: 503", health.Error)
	})
}

func TestChatOfflineAndConversations(t *testing.T) {
	ctx := context.Background()
	db, svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}, time.Second)
	student := testutil.CreateStudent(t, db, "nia")
	other := testutil.CreateStudent(t, db, "omar")

	offline := svc.Offline("abc")
	assert.Equal(t, ModeOffline, offline.Mode)
	assert.Equal(t, "abc", offline.SessionID)
	assert.NotEmpty(t, offline.Suggestions)

	svc.Chat(ctx, student, "first", "hello there")
	svc.Chat(ctx, student, "first", "again")

	list, err := svc.Conversations(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].SessionID)

	conversation, err := svc.Conversation(ctx, student.ID, "first")
	require.NoError(t, err)
	assert.Len(t, conversation.Messages, 4)

	_, err = svc.Conversation(ctx, other.ID, "first")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrimHistory(t *testing.T) {
	short := []model.ChatTurn{{Role: "user", Content: "a"}}
	assert.Equal(t, short, trimHistory(short))

	long := make([]model.ChatTurn, 13)
	for i := range long {
		long[i].Content = fmt.Sprint(i)
	}
	trimmed := trimHistory(long)
	require.Len(t, trimmed, maxHistoryTurns)
	assert.Equal(t, "3", trimmed[0].Content)
}
