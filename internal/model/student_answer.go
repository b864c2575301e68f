package model

import "time"

type StudentAnswer struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	StudentAssessmentID uint      `json:"student_assessment_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID          uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	Question            Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Answer              *string   `json:"student_answer" gorm:"size:1"` // nil when left unanswered
	IsCorrect           bool      `json:"is_correct"`
	MarksObtained       int       `json:"marks_obtained"`
	TimeSpent           int       `json:"time_spent"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
