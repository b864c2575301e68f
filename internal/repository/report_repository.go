package repository

import (
	"context"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"gorm.io/gorm"
)

type ReportSummary struct {
	TotalStudents     int64
	PendingStudents   int64
	TotalAssessments  int64
	ActiveAssessments int64
	TotalQuestions    int64
	CompletedAttempts int64
}

// AssessmentStats aggregates completed attempts of one assessment.
type AssessmentStats struct {
	AssessmentID      uint
	Title             string
	Category          string
	Attempts          int64
	Passed            int64
	AveragePercentage float64
	HighestPercentage float64
	LowestPercentage  float64
}

type StudentStats struct {
	StudentID         uint
	Name              string
	Email             string
	Attempts          int64
	Passed            int64
	AveragePercentage float64
}

type CategoryStats struct {
	Category          string
	Attempts          int64
	Passed            int64
	AveragePercentage float64
}

type QuestionStats struct {
	QuestionID    uint
	QuestionText  string
	CorrectAnswer string
	TotalAnswers  int64
	CorrectCount  int64
	OptionA       int64
	OptionB       int64
	OptionC       int64
	OptionD       int64
}

type ExportFilter struct {
	AssessmentID *uint
	From         *time.Time
	To           *time.Time
}

type ExportRow struct {
	AttemptID       uint
	StudentName     string
	StudentEmail    string
	AssessmentTitle string
	Category        string
	ObtainedMarks   int
	TotalMarks      int
	Percentage      float64
	PassStatus      string
	TimeTaken       int
	SubmitTime      *time.Time
}

// ReportRepository runs the aggregate queries behind the admin reports.
type ReportRepository interface {
	Summary(ctx context.Context) (*ReportSummary, error)
	AssessmentOverview(ctx context.Context) ([]AssessmentStats, error)
	AssessmentStatsByID(ctx context.Context, assessmentID uint) (*AssessmentStats, error)
	StudentPerformance(ctx context.Context) ([]StudentStats, error)
	CategoryAnalysis(ctx context.Context) ([]CategoryStats, error)
	QuestionAnalysis(ctx context.Context, assessmentID uint) ([]QuestionStats, error)
	ExportRows(ctx context.Context, filter ExportFilter) ([]ExportRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Summary(ctx context.Context) (*ReportSummary, error) {
	db := r.db.WithContext(ctx)
	var s ReportSummary
	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&model.User{}).Where("role = ?", model.RoleStudent), &s.TotalStudents},
		{db.Model(&model.User{}).Where("role = ? AND is_approved = ?", model.RoleStudent, false), &s.PendingStudents},
		{db.Model(&model.Assessment{}), &s.TotalAssessments},
		{db.Model(&model.Assessment{}).Where("status = ?", model.AssessmentStatusActive), &s.ActiveAssessments},
		{db.Model(&model.Question{}), &s.TotalQuestions},
		{db.Model(&model.StudentAssessment{}).Where("status = ?", model.AttemptStatusCompleted), &s.CompletedAttempts},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}

const assessmentStatsSelect = `
SELECT a.id AS assessment_id, a.title AS title, a.category AS category,
	COUNT(s.id) AS attempts,
	COALESCE(SUM(CASE WHEN s.pass_status = 'pass' THEN 1 ELSE 0 END), 0) AS passed,
	COALESCE(AVG(s.percentage), 0) AS average_percentage,
	COALESCE(MAX(s.percentage), 0) AS highest_percentage,
	COALESCE(MIN(s.percentage), 0) AS lowest_percentage
FROM assessments a
LEFT JOIN student_assessments s ON s.assessment_id = a.id AND s.status = 'completed'
WHERE a.deleted_at IS NULL`

func (r *reportRepository) AssessmentOverview(ctx context.Context) ([]AssessmentStats, error) {
	var rows []AssessmentStats
	err := r.db.WithContext(ctx).
		Raw(assessmentStatsSelect + ` GROUP BY a.id, a.title, a.category ORDER BY a.title`).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) AssessmentStatsByID(ctx context.Context, assessmentID uint) (*AssessmentStats, error) {
	var rows []AssessmentStats
	err := r.db.WithContext(ctx).
		Raw(assessmentStatsSelect+` AND a.id = ? GROUP BY a.id, a.title, a.category`, assessmentID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *reportRepository) StudentPerformance(ctx context.Context) ([]StudentStats, error) {
	var rows []StudentStats
	err := r.db.WithContext(ctx).Raw(`
SELECT u.id AS student_id, u.name AS name, u.email AS email,
	COUNT(s.id) AS attempts,
	COALESCE(SUM(CASE WHEN s.pass_status = 'pass' THEN 1 ELSE 0 END), 0) AS passed,
	COALESCE(AVG(s.percentage), 0) AS average_percentage
FROM users u
LEFT JOIN student_assessments s ON s.student_id = u.id AND s.status = 'completed'
WHERE u.role = ? AND u.deleted_at IS NULL
GROUP BY u.id, u.name, u.email
ORDER BY average_percentage DESC, u.name`, model.RoleStudent).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) CategoryAnalysis(ctx context.Context) ([]CategoryStats, error) {
	var rows []CategoryStats
	err := r.db.WithContext(ctx).Raw(`
SELECT a.category AS category,
	COUNT(s.id) AS attempts,
	COALESCE(SUM(CASE WHEN s.pass_status = 'pass' THEN 1 ELSE 0 END), 0) AS passed,
	COALESCE(AVG(s.percentage), 0) AS average_percentage
FROM student_assessments s
JOIN assessments a ON a.id = s.assessment_id
WHERE s.status = 'completed'
GROUP BY a.category
ORDER BY a.category`).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) QuestionAnalysis(ctx context.Context, assessmentID uint) ([]QuestionStats, error) {
	var rows []QuestionStats
	err := r.db.WithContext(ctx).Raw(`
SELECT q.id AS question_id, q.text AS question_text, q.correct_answer AS correct_answer,
	COUNT(sa.id) AS total_answers,
	COALESCE(SUM(CASE WHEN sa.is_correct THEN 1 ELSE 0 END), 0) AS correct_count,
	COALESCE(SUM(CASE WHEN sa.answer = 'A' THEN 1 ELSE 0 END), 0) AS option_a,
	COALESCE(SUM(CASE WHEN sa.answer = 'B' THEN 1 ELSE 0 END), 0) AS option_b,
	COALESCE(SUM(CASE WHEN sa.answer = 'C' THEN 1 ELSE 0 END), 0) AS option_c,
	COALESCE(SUM(CASE WHEN sa.answer = 'D' THEN 1 ELSE 0 END), 0) AS option_d
FROM assessment_questions aq
JOIN questions q ON q.id = aq.question_id
LEFT JOIN student_answers sa ON sa.question_id = q.id AND sa.student_assessment_id IN (
	SELECT id FROM student_assessments WHERE assessment_id = ? AND status = 'completed'
)
WHERE aq.assessment_id = ?
GROUP BY q.id, q.text, q.correct_answer, aq.sort_order
ORDER BY aq.sort_order`, assessmentID, assessmentID).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) ExportRows(ctx context.Context, filter ExportFilter) ([]ExportRow, error) {
	query := r.db.WithContext(ctx).
		Table("student_assessments").
		Select(`student_assessments.id AS attempt_id, users.name AS student_name, users.email AS student_email,
			assessments.title AS assessment_title, assessments.category AS category,
			student_assessments.obtained_marks, student_assessments.total_marks, student_assessments.percentage,
			student_assessments.pass_status, student_assessments.time_taken, student_assessments.submit_time`).
		Joins("JOIN users ON users.id = student_assessments.student_id").
		Joins("JOIN assessments ON assessments.id = student_assessments.assessment_id").
		Where("student_assessments.status = ?", model.AttemptStatusCompleted)
	if filter.AssessmentID != nil {
		query = query.Where("student_assessments.assessment_id = ?", *filter.AssessmentID)
	}
	if filter.From != nil {
		query = query.Where("student_assessments.submit_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("student_assessments.submit_time <= ?", *filter.To)
	}

	var rows []ExportRow
	err := query.Order("student_assessments.submit_time DESC, student_assessments.id DESC").Scan(&rows).Error
	return rows, err
}
