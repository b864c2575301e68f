package repository

import (
	"context"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptOutcome carries the fields written when an attempt is finalized.
type AttemptOutcome struct {
	ObtainedMarks int
	Percentage    float64
	PassStatus    string
	TimeTaken     int
	FinishedAt    time.Time
}

type StudentAssessmentRepository interface {
	WithTx(tx *gorm.DB) StudentAssessmentRepository
	Create(ctx context.Context, attempt *model.StudentAssessment) error
	FindByID(ctx context.Context, id uint) (*model.StudentAssessment, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*model.StudentAssessment, error)
	// FindByIDForUpdate locks the row for the rest of the transaction where the database supports it.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.StudentAssessment, error)
	FindStarted(ctx context.Context, studentID, assessmentID uint) (*model.StudentAssessment, error)
	FindLatestCompleted(ctx context.Context, studentID, assessmentID uint) (*model.StudentAssessment, error)
	LatestByAssessment(ctx context.Context, studentID uint, assessmentIDs []uint) (map[uint]model.StudentAssessment, error)
	// Complete moves a started attempt to completed. It reports false when the
	// attempt was no longer in the started state.
	Complete(ctx context.Context, attemptID uint, outcome AttemptOutcome) (bool, error)

	ListCompletedByStudent(ctx context.Context, studentID uint) ([]model.StudentAssessment, error)
	ListStartedByStudent(ctx context.Context, studentID uint) ([]model.StudentAssessment, error)
	ListByStudent(ctx context.Context, studentID uint, page Page) ([]model.StudentAssessment, int64, error)
	ListRecentByAssessment(ctx context.Context, assessmentID uint, limit int) ([]model.StudentAssessment, error)
	CountByAssessment(ctx context.Context, assessmentID uint) (int64, error)
}

type studentAssessmentRepository struct {
	db *gorm.DB
}

func NewStudentAssessmentRepository(db *gorm.DB) StudentAssessmentRepository {
	return &studentAssessmentRepository{db: db}
}

func (r *studentAssessmentRepository) WithTx(tx *gorm.DB) StudentAssessmentRepository {
	return &studentAssessmentRepository{db: tx}
}

func (r *studentAssessmentRepository) Create(ctx context.Context, attempt *model.StudentAssessment) error {
	return r.db.WithContext(ctx).Omit("Student", "Assessment", "Answers").Create(attempt).Error
}

func (r *studentAssessmentRepository) FindByID(ctx context.Context, id uint) (*model.StudentAssessment, error) {
	var attempt model.StudentAssessment
	if err := r.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *studentAssessmentRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.StudentAssessment, error) {
	var attempt model.StudentAssessment
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *studentAssessmentRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.StudentAssessment, error) {
	var attempt model.StudentAssessment
	err := r.db.WithContext(ctx).
		Preload("Assessment", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Answers").
		Preload("Answers.Question", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *studentAssessmentRepository) FindStarted(ctx context.Context, studentID, assessmentID uint) (*model.StudentAssessment, error) {
	var attempt model.StudentAssessment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND assessment_id = ? AND status = ?", studentID, assessmentID, model.AttemptStatusStarted).
		Order("start_time DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *studentAssessmentRepository) FindLatestCompleted(ctx context.Context, studentID, assessmentID uint) (*model.StudentAssessment, error) {
	var attempt model.StudentAssessment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND assessment_id = ? AND status = ?", studentID, assessmentID, model.AttemptStatusCompleted).
		Order("submit_time DESC, id DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *studentAssessmentRepository) LatestByAssessment(ctx context.Context, studentID uint, assessmentIDs []uint) (map[uint]model.StudentAssessment, error) {
	latest := make(map[uint]model.StudentAssessment)
	if len(assessmentIDs) == 0 {
		return latest, nil
	}
	var attempts []model.StudentAssessment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND assessment_id IN ?", studentID, assessmentIDs).
		Order("id DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	for _, a := range attempts {
		if _, seen := latest[a.AssessmentID]; !seen {
			latest[a.AssessmentID] = a
		}
	}
	return latest, nil
}

func (r *studentAssessmentRepository) Complete(ctx context.Context, attemptID uint, outcome AttemptOutcome) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.StudentAssessment{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusStarted).
		Updates(map[string]interface{}{
			"status":         model.AttemptStatusCompleted,
			"obtained_marks": outcome.ObtainedMarks,
			"percentage":     outcome.Percentage,
			"pass_status":    outcome.PassStatus,
			"time_taken":     outcome.TimeTaken,
			"end_time":       outcome.FinishedAt,
			"submit_time":    outcome.FinishedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *studentAssessmentRepository) ListCompletedByStudent(ctx context.Context, studentID uint) ([]model.StudentAssessment, error) {
	var attempts []model.StudentAssessment
	err := r.db.WithContext(ctx).
		Preload("Assessment", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("student_id = ? AND status = ?", studentID, model.AttemptStatusCompleted).
		Order("submit_time DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *studentAssessmentRepository) ListStartedByStudent(ctx context.Context, studentID uint) ([]model.StudentAssessment, error) {
	var attempts []model.StudentAssessment
	err := r.db.WithContext(ctx).
		Preload("Assessment").
		Where("student_id = ? AND status = ?", studentID, model.AttemptStatusStarted).
		Order("start_time DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *studentAssessmentRepository) ListByStudent(ctx context.Context, studentID uint, page Page) ([]model.StudentAssessment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.StudentAssessment{}).Where("student_id = ?", studentID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var attempts []model.StudentAssessment
	err := query.
		Preload("Assessment", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC, id DESC").
		Scopes(page.scope).
		Find(&attempts).Error
	return attempts, total, err
}

func (r *studentAssessmentRepository) ListRecentByAssessment(ctx context.Context, assessmentID uint, limit int) ([]model.StudentAssessment, error) {
	var attempts []model.StudentAssessment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("assessment_id = ?", assessmentID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *studentAssessmentRepository) CountByAssessment(ctx context.Context, assessmentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StudentAssessment{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error
	return count, err
}
