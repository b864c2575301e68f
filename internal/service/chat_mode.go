package service

import (
	"time"

	"github.com/lshigami/placement-portal/internal/dto"
)

// Chat modes, from best to worst.
const (
	ModeRAGActive = "rag_active"
	ModeLimited   = "database_only"
	ModeOffline   = "offline"
)

var modeNames = map[string]string{
	ModeRAGActive: "Mode 1: RAG ACTIVE",
	ModeLimited:   "Mode 2: LIMITED MODE",
	ModeOffline:   "Mode 3: OFFLINE",
}

// ModeName is the display label of a chat mode.
func ModeName(mode string) string {
	return modeNames[mode]
}

// SelectMode maps the outcome of a study-assistant call to the mode that answers
// the student. Any failure, whether transport, timeout, status or decoding, degrades to limited.
func SelectMode(ragErr error) string {
	if ragErr == nil {
		return ModeRAGActive
	}
	return ModeLimited
}

var offlineSuggestions = []string{
	"View my assessments",
	"Check my results",
	"Open my history",
}

const offlineMessage = "I'm offline right now and can't look anything up.\n\n" +
	"You can still use the portal directly:\n" +
	"• Assessments: browse and start available tests\n" +
	"• Results: review your completed attempts\n" +
	"• History: track your progress over time\n\n" +
	"Please try the assistant again in a few minutes."

// OfflineResponse is the canned reply used when neither the assistant nor the database can answer.
func OfflineResponse(sessionID string, now time.Time) *dto.ChatResponse {
	return &dto.ChatResponse{
		Success:     true,
		Message:     offlineMessage,
		Response:    offlineMessage,
		Intent:      "offline",
		ModelUsed:   "offline",
		Suggestions: append([]string(nil), offlineSuggestions...),
		Actions: []map[string]any{
			{"type": "link", "label": "View Assessments", "url": "/student/assessments"},
			{"type": "link", "label": "View Results", "url": "/student/results"},
		},
		Mode:      ModeOffline,
		ModeName:  ModeName(ModeOffline),
		SessionID: sessionID,
		Timestamp: now,
	}
}
