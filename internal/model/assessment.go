package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AssessmentStatusActive   = "active"
	AssessmentStatusInactive = "inactive"
	AssessmentStatusDraft    = "draft"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Assessment struct {
	ID                     uint                 `gorm:"primarykey" json:"id"`
	Title                  string               `json:"title" gorm:"not null"`
	Description            string               `json:"description,omitempty" gorm:"type:text"`
	Category               string               `json:"category" gorm:"index"`
	Difficulty             string               `json:"difficulty"`
	Duration               int                  `json:"duration"` // minutes
	PassPercentage         float64              `json:"pass_percentage"`
	TotalMarks             int                  `json:"total_marks"`
	Status                 string               `json:"status" gorm:"not null;index"`
	StartDate              *time.Time           `json:"start_date,omitempty"`
	EndDate                *time.Time           `json:"end_date,omitempty"`
	AllowMultipleAttempts  bool                 `json:"allow_multiple_attempts"`
	ShowResultsImmediately bool                 `json:"show_results_immediately"`
	ShowCorrectAnswers     bool                 `json:"show_correct_answers"`
	CreatedBy              *uint                `json:"created_by,omitempty"`
	QuestionLinks          []AssessmentQuestion `json:"question_links,omitempty" gorm:"foreignKey:AssessmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
	DeletedAt              gorm.DeletedAt       `gorm:"index" json:"-"`
}

// IsCurrentlyActive reports whether students may start the assessment at now:
// the status is active and now falls inside the optional availability window.
func (a *Assessment) IsCurrentlyActive(now time.Time) bool {
	if a.Status != AssessmentStatusActive {
		return false
	}
	if a.StartDate != nil && now.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && now.After(*a.EndDate) {
		return false
	}
	return true
}
