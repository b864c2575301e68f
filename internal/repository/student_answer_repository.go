package repository

import (
	"context"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mistake is an incorrectly answered question from one of the student's completed attempts.
type Mistake struct {
	AssessmentTitle string
	QuestionText    string
	Category        string
	StudentAnswer   string
	CorrectAnswer   string
	SubmittedAt     *time.Time
}

type StudentAnswerRepository interface {
	WithTx(tx *gorm.DB) StudentAnswerRepository
	// Upsert stores the chosen option, keyed by (attempt, question). Correctness is left untouched.
	Upsert(ctx context.Context, answer *model.StudentAnswer) error
	FindByAttempt(ctx context.Context, attemptID uint) ([]model.StudentAnswer, error)
	Create(ctx context.Context, answer *model.StudentAnswer) error
	UpdateScore(ctx context.Context, answerID uint, isCorrect bool, marks int) error
	RecentMistakes(ctx context.Context, studentID uint, limit int) ([]Mistake, error)
}

type studentAnswerRepository struct {
	db *gorm.DB
}

func NewStudentAnswerRepository(db *gorm.DB) StudentAnswerRepository {
	return &studentAnswerRepository{db: db}
}

func (r *studentAnswerRepository) WithTx(tx *gorm.DB) StudentAnswerRepository {
	return &studentAnswerRepository{db: tx}
}

func (r *studentAnswerRepository) Upsert(ctx context.Context, answer *model.StudentAnswer) error {
	return r.db.WithContext(ctx).
		Omit("Question").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_assessment_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"answer", "updated_at"}),
		}).
		Create(answer).Error
}

func (r *studentAnswerRepository) FindByAttempt(ctx context.Context, attemptID uint) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.db.WithContext(ctx).
		Where("student_assessment_id = ?", attemptID).
		Order("id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *studentAnswerRepository) Create(ctx context.Context, answer *model.StudentAnswer) error {
	return r.db.WithContext(ctx).Omit("Question").Create(answer).Error
}

func (r *studentAnswerRepository) UpdateScore(ctx context.Context, answerID uint, isCorrect bool, marks int) error {
	return r.db.WithContext(ctx).Model(&model.StudentAnswer{}).
		Where("id = ?", answerID).
		Updates(map[string]interface{}{
			"is_correct":     isCorrect,
			"marks_obtained": marks,
		}).Error
}

func (r *studentAnswerRepository) RecentMistakes(ctx context.Context, studentID uint, limit int) ([]Mistake, error) {
	var mistakes []Mistake
	err := r.db.WithContext(ctx).
		Table("student_answers").
		Select(`assessments.title AS assessment_title, questions.text AS question_text, questions.category AS category,
			student_answers.answer AS student_answer, questions.correct_answer AS correct_answer,
			student_assessments.submit_time AS submitted_at`).
		Joins("JOIN student_assessments ON student_assessments.id = student_answers.student_assessment_id").
		Joins("JOIN questions ON questions.id = student_answers.question_id").
		Joins("JOIN assessments ON assessments.id = student_assessments.assessment_id").
		Where("student_assessments.student_id = ? AND student_assessments.status = ?", studentID, model.AttemptStatusCompleted).
		Where("student_answers.is_correct = ? AND student_answers.answer IS NOT NULL", false).
		Order("student_assessments.submit_time DESC, student_answers.id DESC").
		Limit(limit).
		Scan(&mistakes).Error
	return mistakes, err
}
