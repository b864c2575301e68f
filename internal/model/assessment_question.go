package model

import "time"

// AssessmentQuestion is the ordered link between an assessment and a question.
type AssessmentQuestion struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	AssessmentID uint      `json:"assessment_id" gorm:"not null;uniqueIndex:idx_assessment_question"`
	QuestionID   uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_assessment_question"`
	Question     Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SortOrder    int       `json:"order" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
