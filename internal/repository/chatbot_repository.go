package repository

import (
	"context"

	"github.com/lshigami/placement-portal/internal/model"
	"gorm.io/gorm"
)

type ChatbotRepository interface {
	FindConversation(ctx context.Context, studentID uint, sessionID string) (*model.ChatbotConversation, error)
	SaveConversation(ctx context.Context, conversation *model.ChatbotConversation) error
	AddMessages(ctx context.Context, messages ...*model.ChatbotMessage) error
	ListConversations(ctx context.Context, studentID uint, limit int) ([]model.ChatbotConversation, error)
	ListMessages(ctx context.Context, conversationID uint) ([]model.ChatbotMessage, error)
}

type chatbotRepository struct {
	db *gorm.DB
}

func NewChatbotRepository(db *gorm.DB) ChatbotRepository {
	return &chatbotRepository{db: db}
}

func (r *chatbotRepository) FindConversation(ctx context.Context, studentID uint, sessionID string) (*model.ChatbotConversation, error) {
	var conversation model.ChatbotConversation
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *chatbotRepository) SaveConversation(ctx context.Context, conversation *model.ChatbotConversation) error {
	return r.db.WithContext(ctx).Omit("Messages").Save(conversation).Error
}

func (r *chatbotRepository) AddMessages(ctx context.Context, messages ...*model.ChatbotMessage) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(messages).Error
}

func (r *chatbotRepository) ListConversations(ctx context.Context, studentID uint, limit int) ([]model.ChatbotConversation, error) {
	var conversations []model.ChatbotConversation
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("last_activity DESC").
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}

func (r *chatbotRepository) ListMessages(ctx context.Context, conversationID uint) ([]model.ChatbotMessage, error) {
	var messages []model.ChatbotMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}
