package dto

import "time"

type ReportSummaryDTO struct {
	TotalStudents     int64   `json:"total_students"`
	PendingStudents   int64   `json:"pending_approvals"`
	TotalAssessments  int64   `json:"total_assessments"`
	ActiveAssessments int64   `json:"active_assessments"`
	TotalQuestions    int64   `json:"total_questions"`
	CompletedAttempts int64   `json:"completed_attempts"`
	AveragePercentage float64 `json:"average_percentage"`
	PassRate          float64 `json:"pass_rate"`
}

type AssessmentStatsDTO struct {
	AssessmentID      uint    `json:"assessment_id"`
	Title             string  `json:"title"`
	Category          string  `json:"category"`
	Attempts          int64   `json:"attempts"`
	Passed            int64   `json:"passed"`
	PassRate          float64 `json:"pass_rate"`
	AveragePercentage float64 `json:"average_percentage"`
	HighestPercentage float64 `json:"highest_percentage"`
	LowestPercentage  float64 `json:"lowest_percentage"`
}

type StudentStatsDTO struct {
	StudentID         uint    `json:"student_id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Attempts          int64   `json:"attempts"`
	Passed            int64   `json:"passed"`
	AveragePercentage float64 `json:"average_percentage"`
}

type CategoryStatsDTO struct {
	Category          string  `json:"category"`
	Attempts          int64   `json:"attempts"`
	Passed            int64   `json:"passed"`
	PassRate          float64 `json:"pass_rate"`
	AveragePercentage float64 `json:"average_percentage"`
}

type QuestionStatsDTO struct {
	QuestionID    uint    `json:"question_id"`
	QuestionText  string  `json:"question"`
	CorrectAnswer string  `json:"correct_answer"`
	TotalAnswers  int64   `json:"total_answers"`
	CorrectCount  int64   `json:"correct_count"`
	CorrectRate   float64 `json:"correct_rate"`
	OptionA       int64   `json:"option_a"`
	OptionB       int64   `json:"option_b"`
	OptionC       int64   `json:"option_c"`
	OptionD       int64   `json:"option_d"`
}

type OverviewReportDTO struct {
	Summary     ReportSummaryDTO     `json:"summary"`
	Assessments []AssessmentStatsDTO `json:"assessments"`
	Categories  []CategoryStatsDTO   `json:"categories"`
}

type AssessmentReportDTO struct {
	Stats     AssessmentStatsDTO `json:"stats"`
	Questions []QuestionStatsDTO `json:"questions"`
}

type ExportQuery struct {
	AssessmentID *uint      `form:"assessment_id"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
}
