package repository

import (
	"context"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"gorm.io/gorm"
)

type AssessmentFilter struct {
	Status     string
	Category   string
	Difficulty string
	Search     string
	Page
}

// AssessmentWithCount is an assessment row together with the number of linked questions.
type AssessmentWithCount struct {
	model.Assessment
	QuestionCount int
}

type AssessmentRepository interface {
	WithTx(tx *gorm.DB) AssessmentRepository
	Create(ctx context.Context, assessment *model.Assessment) error
	Update(ctx context.Context, assessment *model.Assessment) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Assessment, error)
	List(ctx context.Context, filter AssessmentFilter) ([]AssessmentWithCount, int64, error)
	ListCurrentlyActive(ctx context.Context, now time.Time, filter AssessmentFilter) ([]AssessmentWithCount, int64, error)
	FindAvailableFor(ctx context.Context, studentID uint, now time.Time) ([]model.Assessment, error)
	CountAvailableFor(ctx context.Context, studentID uint, now time.Time) (int64, error)
	Categories(ctx context.Context) ([]string, error)

	FindLinks(ctx context.Context, assessmentID uint) ([]model.AssessmentQuestion, error)
	CreateLinks(ctx context.Context, links []model.AssessmentQuestion) error
	AttachQuestion(ctx context.Context, assessmentID, questionID uint, order int) error
	DetachQuestion(ctx context.Context, assessmentID, questionID uint) error
	NextSortOrder(ctx context.Context, assessmentID uint) (int, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) WithTx(tx *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: tx}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) error {
	return r.db.WithContext(ctx).Omit("QuestionLinks").Save(assessment).Error
}

func (r *assessmentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Assessment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.WithContext(ctx).First(&assessment, id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) List(ctx context.Context, filter AssessmentFilter) ([]AssessmentWithCount, int64, error) {
	return r.listWithCount(r.filtered(ctx, filter), filter.Page)
}

func (r *assessmentRepository) ListCurrentlyActive(ctx context.Context, now time.Time, filter AssessmentFilter) ([]AssessmentWithCount, int64, error) {
	filter.Status = model.AssessmentStatusActive
	return r.listWithCount(currentlyActive(r.filtered(ctx, filter), now), filter.Page)
}

func (r *assessmentRepository) filtered(ctx context.Context, filter AssessmentFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Assessment{})
	if filter.Status != "" {
		query = query.Where("assessments.status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("assessments.category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("assessments.difficulty = ?", filter.Difficulty)
	}
	if filter.Search != "" {
		query = query.Where("(assessments.title LIKE ? OR assessments.description LIKE ?)",
			likePattern(filter.Search), likePattern(filter.Search))
	}
	return query
}

func (r *assessmentRepository) listWithCount(query *gorm.DB, page Page) ([]AssessmentWithCount, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []AssessmentWithCount
	err := query.
		Select("assessments.*, (SELECT COUNT(*) FROM assessment_questions WHERE assessment_questions.assessment_id = assessments.id) AS question_count").
		Where("assessments.deleted_at IS NULL").
		Order("assessments.created_at DESC").
		Scopes(page.scope).
		Scan(&results).Error
	return results, total, err
}

func currentlyActive(query *gorm.DB, now time.Time) *gorm.DB {
	return query.
		Where("assessments.status = ?", model.AssessmentStatusActive).
		Where("(assessments.start_date IS NULL OR assessments.start_date <= ?)", now).
		Where("(assessments.end_date IS NULL OR assessments.end_date >= ?)", now)
}

// availableFor selects currently active assessments the student has not completed yet.
func (r *assessmentRepository) availableFor(ctx context.Context, studentID uint, now time.Time) *gorm.DB {
	return currentlyActive(r.db.WithContext(ctx).Model(&model.Assessment{}), now).
		Where("NOT EXISTS (SELECT 1 FROM student_assessments sa WHERE sa.assessment_id = assessments.id AND sa.student_id = ? AND sa.status = ?)",
			studentID, model.AttemptStatusCompleted)
}

func (r *assessmentRepository) FindAvailableFor(ctx context.Context, studentID uint, now time.Time) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.availableFor(ctx, studentID, now).Order("assessments.created_at DESC").Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) CountAvailableFor(ctx context.Context, studentID uint, now time.Time) (int64, error) {
	var count int64
	err := r.availableFor(ctx, studentID, now).Count(&count).Error
	return count, err
}

func (r *assessmentRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Assessment{}).
		Where("category <> ''").
		Distinct().Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *assessmentRepository) FindLinks(ctx context.Context, assessmentID uint) ([]model.AssessmentQuestion, error) {
	var links []model.AssessmentQuestion
	err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("sort_order ASC, id ASC").
		Find(&links).Error
	return links, err
}

func (r *assessmentRepository) CreateLinks(ctx context.Context, links []model.AssessmentQuestion) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Question").Create(&links).Error
}

func (r *assessmentRepository) AttachQuestion(ctx context.Context, assessmentID, questionID uint, order int) error {
	link := model.AssessmentQuestion{AssessmentID: assessmentID, QuestionID: questionID, SortOrder: order}
	return r.db.WithContext(ctx).Omit("Question").Create(&link).Error
}

func (r *assessmentRepository) DetachQuestion(ctx context.Context, assessmentID, questionID uint) error {
	res := r.db.WithContext(ctx).
		Where("assessment_id = ? AND question_id = ?", assessmentID, questionID).
		Delete(&model.AssessmentQuestion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assessmentRepository) NextSortOrder(ctx context.Context, assessmentID uint) (int, error) {
	var maxOrder int
	err := r.db.WithContext(ctx).Model(&model.AssessmentQuestion{}).
		Where("assessment_id = ?", assessmentID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
