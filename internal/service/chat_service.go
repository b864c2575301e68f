package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/placement-portal/internal/cache"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/metrics"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/rag"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	maxHistoryTurns        = 10
	conversationTitleLimit = 60
	maxStudentNameLength   = 255
	conversationListLimit  = 20
	healthModeLimited      = "limited"
)

type ChatService interface {
	// Chat always produces an answer; the mode tells which tier produced it.
	Chat(ctx context.Context, student *model.User, sessionID, message string) *dto.ChatResponse
	Health(ctx context.Context) *dto.ChatHealthResponse
	Sync(ctx context.Context) *dto.ChatSyncResponse
	Offline(sessionID string) *dto.ChatResponse
	Conversations(ctx context.Context, studentID uint) ([]dto.ChatConversationDTO, error)
	Conversation(ctx context.Context, studentID uint, sessionID string) (*dto.ChatConversationDTO, error)
}

type chatService struct {
	ragClient      rag.Client
	ragEnabled     bool
	contextBuilder ContextBuilder
	limited        LimitedResponder
	chatRepo       repository.ChatbotRepository
	userRepo       repository.UserRepository
	contextCache   cache.ContextCache
	metrics        *metrics.Metrics
	now            func() time.Time
}

func NewChatService(
	ragClient rag.Client,
	ragEnabled bool,
	contextBuilder ContextBuilder,
	limited LimitedResponder,
	chatRepo repository.ChatbotRepository,
	userRepo repository.UserRepository,
	contextCache cache.ContextCache,
	m *metrics.Metrics,
) ChatService {
	if contextCache == nil {
		contextCache = cache.NoopContextCache{}
	}
	return &chatService{
		ragClient:      ragClient,
		ragEnabled:     ragEnabled,
		contextBuilder: contextBuilder,
		limited:        limited,
		chatRepo:       chatRepo,
		userRepo:       userRepo,
		contextCache:   contextCache,
		metrics:        m,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *chatService) Chat(ctx context.Context, student *model.User, sessionID, message string) *dto.ChatResponse {
	started := time.Now()
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	conversation := s.loadConversation(ctx, student.ID, sessionID, message)

	var (
		resp   *dto.ChatResponse
		answer *rag.ChatResponse
		ragErr = errors.New("rag service is disabled")
	)
	history := []model.ChatTurn(conversation.History)
	if history == nil {
		history = []model.ChatTurn{}
	}
	if s.ragEnabled {
		answer, ragErr = s.ragClient.Chat(ctx, rag.ChatRequest{
			StudentID:           student.ID,
			Message:             message,
			StudentName:         student.Name,
			StudentEmail:        student.Email,
			SessionID:           sessionID,
			StudentContext:      s.studentContext(ctx, student),
			ConversationHistory: history,
		})
	}

	switch SelectMode(ragErr) {
	case ModeRAGActive:
		resp = s.ragReply(ctx, student, sessionID, answer)
		history = append(history,
			model.ChatTurn{Role: "user", Content: message},
			model.ChatTurn{Role: "assistant", Content: resp.Message},
		)
		conversation.History = trimHistory(history)
	default:
		if s.ragEnabled {
			log.Warn().Err(ragErr).Uint("studentID", student.ID).Msg("Chat: study assistant unavailable, answering in limited mode")
		}
		resp = s.limitedReply(ctx, student, sessionID, message)
	}
	resp.Timestamp = s.now()

	s.persist(ctx, conversation, message, resp, answer, time.Since(started))
	s.metrics.ObserveChatResponse(resp.Mode)
	return resp
}

func (s *chatService) ragReply(ctx context.Context, student *model.User, sessionID string, answer *rag.ChatResponse) *dto.ChatResponse {
	text := answer.Answer
	if action := answer.SpecialAction; action != nil && action.Type == "update_name" {
		if updated, ok := s.updateName(ctx, student, action.NewName); ok {
			text = fmt.Sprintf("Perfect! I've updated your name to %s. Your profile has been saved.", updated)
		}
	}
	suggestions := answer.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return &dto.ChatResponse{
		Success:     true,
		Message:     text,
		Response:    text,
		Intent:      answer.Intent,
		Confidence:  answer.Confidence,
		ModelUsed:   answer.ModelUsed,
		Suggestions: suggestions,
		Actions:     answer.Actions,
		Mode:        ModeRAGActive,
		ModeName:    ModeName(ModeRAGActive),
		SessionID:   sessionID,
		FromCache:   answer.FromCache,
	}
}

func (s *chatService) limitedReply(ctx context.Context, student *model.User, sessionID, message string) *dto.ChatResponse {
	reply, err := s.limited.Respond(ctx, student, message)
	if err != nil {
		log.Error().Err(err).Uint("studentID", student.ID).Msg("Chat: limited responder failed, answering offline")
		return OfflineResponse(sessionID, s.now())
	}
	return &dto.ChatResponse{
		Success:     true,
		Message:     reply.Message,
		Response:    reply.Message,
		Intent:      reply.Intent,
		ModelUsed:   "limited",
		Suggestions: reply.Suggestions,
		Actions:     reply.Actions,
		Mode:        ModeLimited,
		ModeName:    ModeName(ModeLimited),
		SessionID:   sessionID,
	}
}

func (s *chatService) studentContext(ctx context.Context, student *model.User) *StudentContext {
	sc, err := s.contextBuilder.Build(ctx, student)
	if err != nil {
		log.Error().Err(err).Uint("studentID", student.ID).Msg("Chat: failed to build student context, sending minimal context")
		return minimalContext(student, s.now())
	}
	return sc
}

func (s *chatService) updateName(ctx context.Context, student *model.User, raw string) (string, bool) {
	name := dto.Sanitize(raw)
	if name == "" || len(name) > maxStudentNameLength {
		log.Warn().Uint("studentID", student.ID).Msg("Chat: ignoring invalid name update")
		return "", false
	}
	if err := s.userRepo.UpdateName(ctx, student.ID, name); err != nil {
		log.Error().Err(err).Uint("studentID", student.ID).Msg("Chat: failed to update student name")
		return "", false
	}
	log.Info().Uint("studentID", student.ID).Str("oldName", student.Name).Str("newName", name).Msg("Student name updated by assistant")
	student.Name = name
	if err := s.contextCache.Invalidate(ctx, student.ID); err != nil {
		log.Warn().Err(err).Uint("studentID", student.ID).Msg("Chat: failed to invalidate chatbot context")
	}
	return name, true
}

func (s *chatService) loadConversation(ctx context.Context, studentID uint, sessionID, firstMessage string) *model.ChatbotConversation {
	conversation, err := s.chatRepo.FindConversation(ctx, studentID, sessionID)
	if err == nil {
		return conversation
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Err(err).Uint("studentID", studentID).Msg("Chat: failed to load conversation, starting a new one")
	}
	return &model.ChatbotConversation{
		StudentID: studentID,
		SessionID: sessionID,
		Title:     truncate(firstMessage, conversationTitleLimit),
		Status:    "active",
	}
}

// persist stores the conversation and both messages. Failures are logged only.
func (s *chatService) persist(ctx context.Context, conversation *model.ChatbotConversation, message string, resp *dto.ChatResponse, answer *rag.ChatResponse, elapsed time.Duration) {
	conversation.LastActivity = s.now()
	if err := s.chatRepo.SaveConversation(ctx, conversation); err != nil {
		log.Error().Err(err).Uint("studentID", conversation.StudentID).Msg("Chat: failed to save conversation")
		return
	}

	bot := &model.ChatbotMessage{
		ConversationID: conversation.ID,
		Sender:         model.ChatSenderBot,
		Message:        resp.Message,
		Intent:         resp.Intent,
		Confidence:     resp.Confidence,
		ModelUsed:      resp.ModelUsed,
		Mode:           resp.Mode,
		Suggestions:    resp.Suggestions,
		ResponseTimeMs: elapsed.Milliseconds(),
		FromCache:      resp.FromCache,
		Failed:         resp.Mode != ModeRAGActive,
	}
	if answer != nil {
		bot.TokensUsed = answer.TokensUsed
	}
	userMessage := &model.ChatbotMessage{
		ConversationID: conversation.ID,
		Sender:         model.ChatSenderStudent,
		Message:        message,
		Mode:           resp.Mode,
	}
	if err := s.chatRepo.AddMessages(ctx, userMessage, bot); err != nil {
		log.Error().Err(err).Uint("conversationID", conversation.ID).Msg("Chat: failed to save messages")
	}
}

func (s *chatService) Health(ctx context.Context) *dto.ChatHealthResponse {
	if !s.ragEnabled {
		return &dto.ChatHealthResponse{
			Status: healthModeLimited,
			Mode:   healthModeLimited,
			UIText: "Limited Mode",
			Error:  "RAG service is disabled",
		}
	}
	health, err := s.ragClient.Health(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("RAG service health check failed")
		return &dto.ChatHealthResponse{
			Status: healthModeLimited,
			Mode:   healthModeLimited,
			UIText: "Limited Mode",
			Error:  healthError(err),
		}
	}
	return &dto.ChatHealthResponse{
		Status:     "healthy",
		RAGService: true,
		Mode:       ModeRAGActive,
		UIText:     "Online - AI Ready",
		Details:    health.Details,
	}
}

func healthError(err error) string {
	var statusErr *rag.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("RAG service returned error status: %d", statusErr.StatusCode)
	}
	return "Cannot connect to RAG service: " + err.Error()
}

func (s *chatService) Sync(ctx context.Context) *dto.ChatSyncResponse {
	if !s.ragEnabled {
		return &dto.ChatSyncResponse{Success: false, Message: "Failed to sync knowledge base: RAG service is disabled"}
	}
	log.Info().Msg("Triggering RAG knowledge sync")
	data, err := s.ragClient.Sync(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Knowledge sync failed")
		return &dto.ChatSyncResponse{Success: false, Message: "Failed to sync knowledge base: " + err.Error()}
	}
	return &dto.ChatSyncResponse{Success: true, Message: "Knowledge base synced successfully", Data: data}
}

func (s *chatService) Offline(sessionID string) *dto.ChatResponse {
	s.metrics.ObserveChatResponse(ModeOffline)
	return OfflineResponse(sessionID, s.now())
}

func (s *chatService) Conversations(ctx context.Context, studentID uint) ([]dto.ChatConversationDTO, error) {
	conversations, err := s.chatRepo.ListConversations(ctx, studentID, conversationListLimit)
	if err != nil {
		return nil, fmt.Errorf("error fetching conversations: %w", err)
	}
	result := make([]dto.ChatConversationDTO, 0, len(conversations))
	for i := range conversations {
		result = append(result, toConversationDTO(&conversations[i], nil))
	}
	return result, nil
}

func (s *chatService) Conversation(ctx context.Context, studentID uint, sessionID string) (*dto.ChatConversationDTO, error) {
	conversation, err := s.chatRepo.FindConversation(ctx, studentID, sessionID)
	if err != nil {
		return nil, notFoundOr(err, "conversation %s", sessionID)
	}
	messages, err := s.chatRepo.ListMessages(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching messages: %w", err)
	}
	result := toConversationDTO(conversation, messages)
	return &result, nil
}

func toConversationDTO(c *model.ChatbotConversation, messages []model.ChatbotMessage) dto.ChatConversationDTO {
	result := dto.ChatConversationDTO{
		ID:           c.ID,
		StudentID:    c.StudentID,
		SessionID:    c.SessionID,
		Title:        c.Title,
		Status:       c.Status,
		LastActivity: c.LastActivity,
	}
	for _, m := range messages {
		result.Messages = append(result.Messages, dto.ChatMessageDTO{
			ID:             m.ID,
			Sender:         m.Sender,
			Message:        m.Message,
			Intent:         m.Intent,
			Confidence:     m.Confidence,
			ModelUsed:      m.ModelUsed,
			Mode:           m.Mode,
			Suggestions:    m.Suggestions,
			ResponseTimeMs: m.ResponseTimeMs,
			TokensUsed:     m.TokensUsed,
			FromCache:      m.FromCache,
			Failed:         m.Failed,
			CreatedAt:      m.CreatedAt,
		})
	}
	return result
}

// trimHistory keeps the most recent turns only.
func trimHistory(history []model.ChatTurn) []model.ChatTurn {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
