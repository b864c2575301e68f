package repository

import (
	"context"

	"github.com/lshigami/placement-portal/internal/model"
	"gorm.io/gorm"
)

type QuestionFilter struct {
	Category   string
	Difficulty string
	Search     string
	Page
}

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	Create(ctx context.Context, question *model.Question) error
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	// FindByAssessmentID returns the assessment's questions in their configured order.
	FindByAssessmentID(ctx context.Context, assessmentID uint) ([]model.Question, error)
	List(ctx context.Context, filter QuestionFilter) ([]model.Question, int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByAssessmentID(ctx context.Context, assessmentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Joins("JOIN assessment_questions ON assessment_questions.question_id = questions.id").
		Where("assessment_questions.assessment_id = ?", assessmentID).
		Order("assessment_questions.sort_order ASC, questions.id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) List(ctx context.Context, filter QuestionFilter) ([]model.Question, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Question{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Search != "" {
		query = query.Where("text LIKE ?", likePattern(filter.Search))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var questions []model.Question
	err := query.Scopes(filter.Page.scope).Order("created_at DESC").Find(&questions).Error
	return questions, total, err
}
