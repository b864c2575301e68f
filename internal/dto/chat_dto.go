package dto

import "time"

// ChatResponse is returned for every chatbot turn regardless of the mode that produced it.
type ChatResponse struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	Response    string           `json:"response"`
	Intent      string           `json:"intent,omitempty"`
	Confidence  *float64         `json:"confidence,omitempty"`
	ModelUsed   string           `json:"model_used,omitempty"`
	Suggestions []string         `json:"suggestions"`
	Actions     []map[string]any `json:"actions,omitempty"`
	Mode        string           `json:"mode"`
	ModeName    string           `json:"mode_name"`
	SessionID   string           `json:"session_id"`
	FromCache   bool             `json:"from_cache,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

type ChatHealthResponse struct {
	Status     string         `json:"status"`
	RAGService bool           `json:"rag_service"`
	Mode       string         `json:"mode"`
	UIText     string         `json:"ui_text"`
	Error      string         `json:"error,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

type ChatSyncResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

type ChatMessageDTO struct {
	ID             uint      `json:"id"`
	Sender         string    `json:"sender"`
	Message        string    `json:"message"`
	Intent         string    `json:"intent,omitempty"`
	Confidence     *float64  `json:"confidence,omitempty"`
	ModelUsed      string    `json:"model_used,omitempty"`
	Mode           string    `json:"mode"`
	Suggestions    []string  `json:"suggestions,omitempty"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	TokensUsed     *int      `json:"tokens_used,omitempty"`
	FromCache      bool      `json:"from_cache"`
	Failed         bool      `json:"failed"`
	CreatedAt      time.Time `json:"created_at"`
}

type ChatConversationDTO struct {
	ID           uint             `json:"id"`
	StudentID    uint             `json:"student_id"`
	SessionID    string           `json:"session_id"`
	Title        string           `json:"title"`
	Status       string           `json:"status"`
	LastActivity time.Time        `json:"last_activity"`
	Messages     []ChatMessageDTO `json:"messages,omitempty"`
}

type ChatConversationListResponse struct {
	Conversations []ChatConversationDTO `json:"conversations"`
	Meta          PageMeta              `json:"meta"`
}
