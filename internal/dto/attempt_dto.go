package dto

import "time"

type StartAttemptResponse struct {
	AttemptID        uint      `json:"attempt_id"`
	AssessmentID     uint      `json:"assessment_id"`
	Status           string    `json:"status"`
	StartTime        time.Time `json:"start_time"`
	TotalMarks       int       `json:"total_marks"`
	RemainingSeconds int       `json:"remaining_seconds"`
	Resumed          bool      `json:"resumed"`
}

type TakeAttemptResponse struct {
	AttemptID        uint                 `json:"attempt_id"`
	Assessment       AssessmentSummaryDTO `json:"assessment"`
	Questions        []StudentQuestionDTO `json:"questions"`
	SavedAnswers     map[uint]string      `json:"saved_answers"`
	StartTime        time.Time            `json:"start_time"`
	RemainingSeconds int                  `json:"remaining_seconds"`
}

type SaveProgressResponse struct {
	Saved   int       `json:"saved"`
	SavedAt time.Time `json:"saved_at"`
}

// AnswerResultDTO is one question of a scored attempt. CorrectAnswer is only
// filled when the assessment reveals correct answers.
type AnswerResultDTO struct {
	QuestionID    uint    `json:"question_id"`
	Question      string  `json:"question"`
	OptionA       string  `json:"option_a"`
	OptionB       string  `json:"option_b"`
	OptionC       string  `json:"option_c"`
	OptionD       string  `json:"option_d"`
	Marks         int     `json:"marks"`
	StudentAnswer *string `json:"student_answer"`
	IsCorrect     bool    `json:"is_correct"`
	MarksObtained int     `json:"marks_obtained"`
	CorrectAnswer *string `json:"correct_answer,omitempty"`
}

type AttemptResultDTO struct {
	AttemptID       uint              `json:"attempt_id"`
	AssessmentID    uint              `json:"assessment_id"`
	AssessmentTitle string            `json:"assessment_title"`
	Category        string            `json:"category"`
	Difficulty      string            `json:"difficulty,omitempty"`
	Status          string            `json:"status"`
	TotalMarks      int               `json:"total_marks"`
	ObtainedMarks   int               `json:"obtained_marks"`
	Percentage      float64           `json:"percentage"`
	PassStatus      string            `json:"pass_status,omitempty"`
	TimeTaken       int               `json:"time_taken"`
	StartTime       time.Time         `json:"start_time"`
	SubmitTime      *time.Time        `json:"submit_time,omitempty"`
	CorrectCount    int               `json:"correct_count,omitempty"`
	QuestionCount   int               `json:"question_count,omitempty"`
	Answers         []AnswerResultDTO `json:"answers,omitempty"`
}

type ResultListResponse struct {
	Results []AttemptResultDTO `json:"results"`
	Meta    PageMeta           `json:"meta"`
}

type CategoryPerformanceDTO struct {
	Category          string  `json:"category"`
	Attempts          int     `json:"attempts"`
	Passed            int     `json:"passed"`
	AveragePercentage float64 `json:"average_percentage"`
}

type DashboardDTO struct {
	TotalAttempts       int                      `json:"total_attempts"`
	Passed              int                      `json:"passed"`
	Failed              int                      `json:"failed"`
	AveragePercentage   float64                  `json:"average_percentage"`
	PassRate            float64                  `json:"pass_rate"`
	AvailableCount      int64                    `json:"available_count"`
	CategoryPerformance []CategoryPerformanceDTO `json:"category_performance"`
	RecentResults       []AttemptResultDTO       `json:"recent_results"`
}

type HistoryDTO struct {
	Attempts          []AttemptResultDTO `json:"attempts"`
	AveragePercentage float64            `json:"average_percentage"`
	HighestPercentage float64            `json:"highest_percentage"`
	TotalTimeSpent    int                `json:"total_time_spent"`
}

type PeriodPerformanceDTO struct {
	Period            string  `json:"period"`
	Attempts          int     `json:"attempts"`
	AveragePercentage float64 `json:"average_percentage"`
}

type AnalyticsDTO struct {
	ByCategory   []CategoryPerformanceDTO `json:"by_category"`
	ByMonth      []PeriodPerformanceDTO   `json:"by_month"`
	ByDifficulty []PeriodPerformanceDTO   `json:"by_difficulty"`
}
