package dto

import "time"

// QuestionRequest is used by admins to create or replace a question, either on
// its own or inline within AssessmentRequest.
type QuestionRequest struct {
	Question      string `json:"question" binding:"required"`
	OptionA       string `json:"option_a" binding:"required,max=500"`
	OptionB       string `json:"option_b" binding:"required,max=500"`
	OptionC       string `json:"option_c" binding:"required,max=500"`
	OptionD       string `json:"option_d" binding:"required,max=500"`
	CorrectAnswer string `json:"correct_answer" binding:"required,oneof=A B C D"`
	Marks         int    `json:"marks" binding:"required,min=1,max=100"`
	Difficulty    string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Category      string `json:"category" binding:"omitempty,max=100"`
	IsActive      *bool  `json:"is_active"`
}

// AssessmentRequest is for admins to create or update an assessment. Questions
// are only honoured on create.
type AssessmentRequest struct {
	Title                  string            `json:"title" binding:"required,max=255"`
	Description            string            `json:"description,omitempty"`
	Category               string            `json:"category" binding:"required,max=100"`
	Difficulty             string            `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Duration               int               `json:"duration" binding:"required,min=1,max=300"`
	PassPercentage         float64           `json:"pass_percentage" binding:"required,gt=0,max=100"`
	TotalMarks             int               `json:"total_marks" binding:"min=0"` // 0 on create means the sum of the inline question marks
	Status                 string            `json:"status" binding:"required,oneof=active inactive draft"`
	StartDate              *time.Time        `json:"start_date"`
	EndDate                *time.Time        `json:"end_date"`
	AllowMultipleAttempts  bool              `json:"allow_multiple_attempts"`
	ShowResultsImmediately bool              `json:"show_results_immediately"`
	ShowCorrectAnswers     bool              `json:"show_correct_answers"`
	Questions              []QuestionRequest `json:"questions,omitempty" binding:"omitempty,dive"`
}

type AttachQuestionRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Order      int  `json:"order" binding:"min=0"`
}

type ApproveUserRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type QuestionDraftRequest struct {
	Topic      string `json:"topic" binding:"required,max=200"`
	Count      int    `json:"count" binding:"required,min=1,max=10"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type AdminQuestionDTO struct {
	ID            uint   `json:"id"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Marks         int    `json:"marks"`
	Difficulty    string `json:"difficulty"`
	Category      string `json:"category"`
	IsActive      bool   `json:"is_active"`
	Order         int    `json:"order,omitempty"`
}

type QuestionListResponse struct {
	Questions []AdminQuestionDTO `json:"questions"`
	Meta      PageMeta           `json:"meta"`
}

// QuestionImportResponse lists the imported questions and one message per skipped row.
type QuestionImportResponse struct {
	Imported  int                `json:"imported"`
	Errors    []string           `json:"errors"`
	Questions []AdminQuestionDTO `json:"questions"`
}

type AdminAssessmentDTO struct {
	ID                     uint       `json:"id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Category               string     `json:"category"`
	Difficulty             string     `json:"difficulty"`
	Duration               int        `json:"duration"`
	PassPercentage         float64    `json:"pass_percentage"`
	TotalMarks             int        `json:"total_marks"`
	Status                 string     `json:"status"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	AllowMultipleAttempts  bool       `json:"allow_multiple_attempts"`
	ShowResultsImmediately bool       `json:"show_results_immediately"`
	ShowCorrectAnswers     bool       `json:"show_correct_answers"`
	QuestionCount          int        `json:"question_count"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type AdminAssessmentListResponse struct {
	Assessments []AdminAssessmentDTO `json:"assessments"`
	Meta        PageMeta             `json:"meta"`
}

type AdminAttemptDTO struct {
	AttemptID     uint       `json:"attempt_id"`
	StudentID     uint       `json:"student_id"`
	StudentName   string     `json:"student_name"`
	StudentEmail  string     `json:"student_email"`
	Status        string     `json:"status"`
	ObtainedMarks int        `json:"obtained_marks"`
	TotalMarks    int        `json:"total_marks"`
	Percentage    float64    `json:"percentage"`
	PassStatus    string     `json:"pass_status,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	SubmitTime    *time.Time `json:"submit_time,omitempty"`
}

type AdminAssessmentDetailDTO struct {
	Assessment     AdminAssessmentDTO `json:"assessment"`
	Questions      []AdminQuestionDTO `json:"questions"`
	AttemptCount   int64              `json:"attempt_count"`
	RecentAttempts []AdminAttemptDTO  `json:"recent_attempts"`
}

// QuestionDraftDTO is a generated question awaiting admin review. Drafts are never persisted.
type QuestionDraftDTO struct {
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Marks         int    `json:"marks"`
	Difficulty    string `json:"difficulty"`
	Category      string `json:"category"`
	Explanation   string `json:"explanation,omitempty"`
}

type QuestionDraftResponse struct {
	Drafts    []QuestionDraftDTO `json:"drafts"`
	ModelUsed string             `json:"model_used"`
}
