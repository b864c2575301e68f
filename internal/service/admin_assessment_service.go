package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const recentAttemptsLimit = 10

type AdminAssessmentService interface {
	Create(ctx context.Context, adminID uint, req dto.AssessmentRequest) (*dto.AdminAssessmentDetailDTO, error)
	List(ctx context.Context, filter repository.AssessmentFilter) (*dto.AdminAssessmentListResponse, error)
	Get(ctx context.Context, id uint) (*dto.AdminAssessmentDetailDTO, error)
	Update(ctx context.Context, id uint, req dto.AssessmentRequest) (*dto.AdminAssessmentDetailDTO, error)
	Delete(ctx context.Context, id uint) error
	ToggleStatus(ctx context.Context, id uint) (*dto.AdminAssessmentDetailDTO, error)
	Duplicate(ctx context.Context, adminID, id uint) (*dto.AdminAssessmentDetailDTO, error)
}

type adminAssessmentService struct {
	db             *gorm.DB
	assessmentRepo repository.AssessmentRepository
	questionRepo   repository.QuestionRepository
	attemptRepo    repository.StudentAssessmentRepository
	syncer         KnowledgeSyncer
}

func NewAdminAssessmentService(
	db *gorm.DB,
	assessmentRepo repository.AssessmentRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.StudentAssessmentRepository,
	syncer KnowledgeSyncer,
) AdminAssessmentService {
	return &adminAssessmentService{
		db:             db,
		assessmentRepo: assessmentRepo,
		questionRepo:   questionRepo,
		attemptRepo:    attemptRepo,
		syncer:         syncer,
	}
}

func validateSchedule(req dto.AssessmentRequest) error {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return validationError("end_date must not be before start_date")
	}
	return nil
}

func (s *adminAssessmentService) Create(ctx context.Context, adminID uint, req dto.AssessmentRequest) (*dto.AdminAssessmentDetailDTO, error) {
	if err := validateSchedule(req); err != nil {
		return nil, err
	}

	assessment := model.Assessment{CreatedBy: &adminID}
	applyAssessmentRequest(&assessment, req)
	questions := make([]model.Question, 0, len(req.Questions))
	questionMarks := 0
	for _, q := range req.Questions {
		question := questionFromRequest(q, assessment.Category, assessment.Difficulty)
		questionMarks += question.Marks
		questions = append(questions, question)
	}
	if assessment.TotalMarks == 0 {
		assessment.TotalMarks = questionMarks
	}
	if assessment.TotalMarks < 1 {
		return nil, validationError("total_marks must be at least 1 when no questions are given")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.assessmentRepo.WithTx(tx).Create(ctx, &assessment); err != nil {
			return fmt.Errorf("failed to create assessment: %w", err)
		}
		links := make([]model.AssessmentQuestion, 0, len(questions))
		for i := range questions {
			if err := s.questionRepo.WithTx(tx).Create(ctx, &questions[i]); err != nil {
				return fmt.Errorf("failed to create question %d: %w", i+1, err)
			}
			links = append(links, model.AssessmentQuestion{
				AssessmentID: assessment.ID,
				QuestionID:   questions[i].ID,
				SortOrder:    i + 1,
			})
		}
		return s.assessmentRepo.WithTx(tx).CreateLinks(ctx, links)
	})
	if err != nil {
		log.Error().Err(err).Uint("adminID", adminID).Msg("Failed to create assessment in database")
		return nil, fmt.Errorf("database error creating assessment: %w", err)
	}

	log.Info().Uint("assessmentID", assessment.ID).Int("questions", len(questions)).Msg("Assessment created")
	s.syncer.Trigger("assessment created")
	return s.Get(ctx, assessment.ID)
}

func (s *adminAssessmentService) List(ctx context.Context, filter repository.AssessmentFilter) (*dto.AdminAssessmentListResponse, error) {
	rows, total, err := s.assessmentRepo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list assessments")
		return nil, fmt.Errorf("error fetching assessments: %w", err)
	}
	page := filter.Page.Normalized()
	resp := &dto.AdminAssessmentListResponse{
		Assessments: make([]dto.AdminAssessmentDTO, 0, len(rows)),
		Meta:        dto.PageMeta{Page: page.Page, PageSize: page.PageSize, Total: total},
	}
	for i := range rows {
		resp.Assessments = append(resp.Assessments, toAdminAssessment(&rows[i].Assessment, rows[i].QuestionCount))
	}
	return resp, nil
}

func (s *adminAssessmentService) Get(ctx context.Context, id uint) (*dto.AdminAssessmentDetailDTO, error) {
	assessment, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", id)
	}
	questions, err := s.questionRepo.FindByAssessmentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	links, err := s.assessmentRepo.FindLinks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching question order: %w", err)
	}
	attemptCount, err := s.attemptRepo.CountByAssessment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error counting attempts: %w", err)
	}
	recent, err := s.attemptRepo.ListRecentByAssessment(ctx, id, recentAttemptsLimit)
	if err != nil {
		return nil, fmt.Errorf("error fetching recent attempts: %w", err)
	}

	order := make(map[uint]int, len(links))
	for _, link := range links {
		order[link.QuestionID] = link.SortOrder
	}
	resp := &dto.AdminAssessmentDetailDTO{
		Assessment:     toAdminAssessment(assessment, len(questions)),
		Questions:      make([]dto.AdminQuestionDTO, 0, len(questions)),
		AttemptCount:   attemptCount,
		RecentAttempts: make([]dto.AdminAttemptDTO, 0, len(recent)),
	}
	for i := range questions {
		q := toAdminQuestion(&questions[i])
		q.Order = order[questions[i].ID]
		resp.Questions = append(resp.Questions, q)
	}
	for _, a := range recent {
		resp.RecentAttempts = append(resp.RecentAttempts, dto.AdminAttemptDTO{
			AttemptID:     a.ID,
			StudentID:     a.StudentID,
			StudentName:   a.Student.Name,
			StudentEmail:  a.Student.Email,
			Status:        a.Status,
			ObtainedMarks: a.ObtainedMarks,
			TotalMarks:    a.TotalMarks,
			Percentage:    a.Percentage,
			PassStatus:    a.PassStatus,
			StartTime:     a.StartTime,
			SubmitTime:    a.SubmitTime,
		})
	}
	return resp, nil
}

func (s *adminAssessmentService) Update(ctx context.Context, id uint, req dto.AssessmentRequest) (*dto.AdminAssessmentDetailDTO, error) {
	if err := validateSchedule(req); err != nil {
		return nil, err
	}
	if req.TotalMarks < 1 {
		return nil, validationError("total_marks must be at least 1")
	}
	assessment, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", id)
	}
	applyAssessmentRequest(assessment, req)
	if err := s.assessmentRepo.Update(ctx, assessment); err != nil {
		log.Error().Err(err).Uint("assessmentID", id).Msg("Failed to update assessment")
		return nil, fmt.Errorf("database error updating assessment: %w", err)
	}
	s.syncer.Trigger("assessment updated")
	return s.Get(ctx, id)
}

func (s *adminAssessmentService) Delete(ctx context.Context, id uint) error {
	if err := s.assessmentRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "assessment %d", id)
	}
	log.Info().Uint("assessmentID", id).Msg("Assessment deleted")
	s.syncer.Trigger("assessment deleted")
	return nil
}

// ToggleStatus flips an assessment between active and inactive. Drafts become
// active. An assessment without total marks is never activated.
func (s *adminAssessmentService) ToggleStatus(ctx context.Context, id uint) (*dto.AdminAssessmentDetailDTO, error) {
	assessment, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", id)
	}
	if assessment.Status == model.AssessmentStatusActive {
		assessment.Status = model.AssessmentStatusInactive
	} else {
		if assessment.TotalMarks < 1 {
			return nil, validationError("assessment %d has no total marks and cannot be activated", id)
		}
		assessment.Status = model.AssessmentStatusActive
	}
	if err := s.assessmentRepo.Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("database error updating assessment status: %w", err)
	}
	log.Info().Uint("assessmentID", id).Str("status", assessment.Status).Msg("Assessment status toggled")
	s.syncer.Trigger("assessment status changed")
	return s.Get(ctx, id)
}

// Duplicate copies an assessment and its ordered question links. The copy starts as a draft.
func (s *adminAssessmentService) Duplicate(ctx context.Context, adminID, id uint) (*dto.AdminAssessmentDetailDTO, error) {
	original, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", id)
	}

	var copyID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessmentRepo := s.assessmentRepo.WithTx(tx)
		var duplicate model.Assessment
		if err := copier.Copy(&duplicate, original); err != nil {
			return fmt.Errorf("failed to copy assessment: %w", err)
		}
		duplicate.ID = 0
		duplicate.CreatedAt = time.Time{}
		duplicate.UpdatedAt = time.Time{}
		duplicate.Title = original.Title + " (Copy)"
		duplicate.Status = model.AssessmentStatusDraft
		duplicate.CreatedBy = &adminID
		duplicate.QuestionLinks = nil
		if err := assessmentRepo.Create(ctx, &duplicate); err != nil {
			return fmt.Errorf("failed to create duplicate: %w", err)
		}

		links, err := assessmentRepo.FindLinks(ctx, original.ID)
		if err != nil {
			return fmt.Errorf("failed to load question links: %w", err)
		}
		copies := make([]model.AssessmentQuestion, 0, len(links))
		for _, link := range links {
			copies = append(copies, model.AssessmentQuestion{
				AssessmentID: duplicate.ID,
				QuestionID:   link.QuestionID,
				SortOrder:    link.SortOrder,
			})
		}
		if err := assessmentRepo.CreateLinks(ctx, copies); err != nil {
			return fmt.Errorf("failed to copy question links: %w", err)
		}
		copyID = duplicate.ID
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", id).Msg("Failed to duplicate assessment")
		return nil, err
	}
	log.Info().Uint("assessmentID", id).Uint("copyID", copyID).Msg("Assessment duplicated")
	s.syncer.Trigger("assessment duplicated")
	return s.Get(ctx, copyID)
}

func applyAssessmentRequest(a *model.Assessment, req dto.AssessmentRequest) {
	a.Title = dto.Sanitize(req.Title)
	a.Description = dto.Sanitize(req.Description)
	a.Category = dto.Sanitize(req.Category)
	a.Difficulty = req.Difficulty
	a.Duration = req.Duration
	a.PassPercentage = req.PassPercentage
	a.TotalMarks = req.TotalMarks
	a.Status = req.Status
	a.StartDate = utcPtr(req.StartDate)
	a.EndDate = utcPtr(req.EndDate)
	a.AllowMultipleAttempts = req.AllowMultipleAttempts
	a.ShowResultsImmediately = req.ShowResultsImmediately
	a.ShowCorrectAnswers = req.ShowCorrectAnswers
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func toAdminAssessment(a *model.Assessment, questionCount int) dto.AdminAssessmentDTO {
	var out dto.AdminAssessmentDTO
	if err := copier.Copy(&out, a); err != nil {
		log.Error().Err(err).Uint("assessmentID", a.ID).Msg("Failed to copy Assessment model to AdminAssessmentDTO")
	}
	out.QuestionCount = questionCount
	return out
}
