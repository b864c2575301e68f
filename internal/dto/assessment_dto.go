package dto

import "time"

// AttemptStatusDTO summarizes the caller's latest attempt at an assessment.
type AttemptStatusDTO struct {
	AttemptID  uint    `json:"attempt_id"`
	Status     string  `json:"status"`
	Percentage float64 `json:"percentage"`
	PassStatus string  `json:"pass_status,omitempty"`
}

// AssessmentSummaryDTO is used for listing assessments available to students.
type AssessmentSummaryDTO struct {
	ID                    uint              `json:"id"`
	Title                 string            `json:"title"`
	Description           string            `json:"description,omitempty"`
	Category              string            `json:"category"`
	Difficulty            string            `json:"difficulty"`
	Duration              int               `json:"duration"`
	PassPercentage        float64           `json:"pass_percentage"`
	TotalMarks            int               `json:"total_marks"`
	QuestionCount         int               `json:"question_count"`
	StartDate             *time.Time        `json:"start_date,omitempty"`
	EndDate               *time.Time        `json:"end_date,omitempty"`
	AllowMultipleAttempts bool              `json:"allow_multiple_attempts"`
	LatestAttempt         *AttemptStatusDTO `json:"latest_attempt,omitempty"`
}

type AssessmentListResponse struct {
	Assessments []AssessmentSummaryDTO `json:"assessments"`
	Categories  []string               `json:"categories"`
	Meta        PageMeta               `json:"meta"`
}

type AssessmentDetailDTO struct {
	Assessment          AssessmentSummaryDTO `json:"assessment"`
	AlreadyCompleted    bool                 `json:"already_completed"`
	CompletedAttemptID  *uint                `json:"completed_attempt_id,omitempty"`
	InProgressAttemptID *uint                `json:"in_progress_attempt_id,omitempty"`
}

// StudentQuestionDTO is a question as shown while taking an assessment; it never carries the key.
type StudentQuestionDTO struct {
	ID       uint   `json:"id"`
	Question string `json:"question"`
	OptionA  string `json:"option_a"`
	OptionB  string `json:"option_b"`
	OptionC  string `json:"option_c"`
	OptionD  string `json:"option_d"`
	Marks    int    `json:"marks"`
}
