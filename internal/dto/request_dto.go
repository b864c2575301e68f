package dto

import "strings"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest changes the caller's name, password or both. A new
// password needs the current one.
type UpdateProfileRequest struct {
	Name            string `json:"name" binding:"omitempty,max=255"`
	CurrentPassword string `json:"current_password" binding:"omitempty,max=72"`
	NewPassword     string `json:"new_password" binding:"omitempty,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SaveProgressRequest maps question IDs to the chosen option key. Null entries are skipped.
type SaveProgressRequest struct {
	AttemptID uint             `json:"attempt_id" binding:"required"`
	Answers   map[uint]*string `json:"answers" binding:"required"`
}

type SubmitAttemptRequest struct {
	AttemptID uint `json:"attempt_id" binding:"required"`
	TimeTaken *int `json:"time_taken" binding:"omitempty,min=0"` // seconds, as measured by the client
}

type ChatRequest struct {
	Message   string `json:"message" binding:"required,max=1000"`
	SessionID string `json:"session_id" binding:"omitempty,max=64"`
}

// Sanitize trims surrounding whitespace and strips NUL bytes from free-text input.
func Sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
