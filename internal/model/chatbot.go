package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ChatSenderStudent = "student"
	ChatSenderBot     = "bot"
)

// ChatTurn is one entry of the rolling conversation history sent to the study assistant.
type ChatTurn struct {
	Role    string `json:"role"` // "user", "assistant"
	Content string `json:"content"`
}

type ChatbotConversation struct {
	ID           uint                          `gorm:"primarykey" json:"id"`
	StudentID    uint                          `json:"student_id" gorm:"not null;uniqueIndex:idx_conversation_session"`
	SessionID    string                        `json:"session_id" gorm:"size:64;not null;uniqueIndex:idx_conversation_session"`
	Title        string                        `json:"title"`
	Topic        string                        `json:"topic,omitempty"`
	History      datatypes.JSONSlice[ChatTurn] `json:"history"`
	Status       string                        `json:"status"` // "active", "closed"
	LastActivity time.Time                     `json:"last_activity"`
	Messages     []ChatbotMessage              `json:"messages,omitempty" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE;"`
	CreatedAt    time.Time                     `json:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at"`
}

type ChatbotMessage struct {
	ID             uint                        `gorm:"primarykey" json:"id"`
	ConversationID uint                        `json:"conversation_id" gorm:"not null;index"`
	Sender         string                      `json:"sender" gorm:"not null"`
	Message        string                      `json:"message" gorm:"type:text;not null"`
	Intent         string                      `json:"intent,omitempty"`
	Confidence     *float64                    `json:"confidence,omitempty"`
	ModelUsed      string                      `json:"model_used,omitempty"`
	Mode           string                      `json:"mode,omitempty"`
	Suggestions    datatypes.JSONSlice[string] `json:"suggestions,omitempty"`
	ResponseTimeMs int64                       `json:"response_time_ms"`
	TokensUsed     *int                        `json:"tokens_used,omitempty"`
	FromCache      bool                        `json:"from_cache"`
	Failed         bool                        `json:"failed"`
	CreatedAt      time.Time                   `json:"created_at"`
}
