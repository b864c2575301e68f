package model

import "time"

const (
	AttemptStatusStarted   = "started"
	AttemptStatusCompleted = "completed"
)

const (
	PassStatusPass = "pass"
	PassStatusFail = "fail"
)

// StudentAssessment is one student's attempt at one assessment. Rows are never
// deleted in normal flow; completed attempts form the student's history. A
// student holds at most one started attempt per assessment.
type StudentAssessment struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	StudentID     uint            `json:"student_id" gorm:"not null;index:idx_attempt_student_assessment;uniqueIndex:idx_attempt_one_started,where:status = 'started'"`
	Student       User            `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	AssessmentID  uint            `json:"assessment_id" gorm:"not null;index:idx_attempt_student_assessment;uniqueIndex:idx_attempt_one_started,where:status = 'started'"`
	Assessment    Assessment      `json:"assessment,omitempty" gorm:"foreignKey:AssessmentID"`
	StartTime     time.Time       `json:"start_time" gorm:"not null"`
	EndTime       *time.Time      `json:"end_time,omitempty"`
	SubmitTime    *time.Time      `json:"submit_time,omitempty"`
	Status        string          `json:"status" gorm:"not null;index"` // "started", "completed"
	TotalMarks    int             `json:"total_marks"`
	ObtainedMarks int             `json:"obtained_marks"`
	Percentage    float64         `json:"percentage"`
	PassStatus    string          `json:"pass_status,omitempty"`
	TimeTaken     int             `json:"time_taken"` // seconds
	Answers       []StudentAnswer `json:"answers,omitempty" gorm:"foreignKey:StudentAssessmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (a *StudentAssessment) IsCompleted() bool {
	return a.Status == AttemptStatusCompleted
}

// RemainingSeconds is the time left on the clock for a started attempt, never negative.
func (a *StudentAssessment) RemainingSeconds(now time.Time, durationMinutes int) int {
	remaining := durationMinutes*60 - int(now.Sub(a.StartTime).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
