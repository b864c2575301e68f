package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UserAssessmentService is the student-facing assessment catalogue.
type UserAssessmentService interface {
	List(ctx context.Context, studentID uint, filter repository.AssessmentFilter) (*dto.AssessmentListResponse, error)
	Show(ctx context.Context, assessmentID, studentID uint) (*dto.AssessmentDetailDTO, error)
}

type userAssessmentService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.StudentAssessmentRepository
	now            func() time.Time
}

func NewUserAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.StudentAssessmentRepository,
) UserAssessmentService {
	return &userAssessmentService{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *userAssessmentService) List(ctx context.Context, studentID uint, filter repository.AssessmentFilter) (*dto.AssessmentListResponse, error) {
	rows, total, err := s.assessmentRepo.ListCurrentlyActive(ctx, s.now(), filter)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("Failed to list active assessments")
		return nil, fmt.Errorf("error fetching assessments: %w", err)
	}
	categories, err := s.assessmentRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	latest, err := s.attemptRepo.LatestByAssessment(ctx, studentID, ids)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	page := filter.Page.Normalized()
	resp := &dto.AssessmentListResponse{
		Assessments: make([]dto.AssessmentSummaryDTO, 0, len(rows)),
		Categories:  categories,
		Meta:        dto.PageMeta{Page: page.Page, PageSize: page.PageSize, Total: total},
	}
	for i := range rows {
		summary := toAssessmentSummary(&rows[i].Assessment, rows[i].QuestionCount)
		if attempt, ok := latest[rows[i].ID]; ok {
			summary.LatestAttempt = toAttemptStatus(&attempt)
		}
		resp.Assessments = append(resp.Assessments, summary)
	}
	return resp, nil
}

func (s *userAssessmentService) Show(ctx context.Context, assessmentID, studentID uint) (*dto.AssessmentDetailDTO, error) {
	assessment, err := s.assessmentRepo.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}
	if !assessment.IsCurrentlyActive(s.now()) {
		return nil, ErrUnavailable
	}
	links, err := s.assessmentRepo.FindLinks(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching assessment questions: %w", err)
	}

	resp := &dto.AssessmentDetailDTO{Assessment: toAssessmentSummary(assessment, len(links))}

	completed, err := s.attemptRepo.FindLatestCompleted(ctx, studentID, assessmentID)
	switch {
	case err == nil:
		resp.CompletedAttemptID = &completed.ID
		resp.AlreadyCompleted = !assessment.AllowMultipleAttempts
		resp.Assessment.LatestAttempt = toAttemptStatus(completed)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("error fetching completed attempt: %w", err)
	}

	started, err := s.attemptRepo.FindStarted(ctx, studentID, assessmentID)
	switch {
	case err == nil:
		resp.InProgressAttemptID = &started.ID
		resp.Assessment.LatestAttempt = toAttemptStatus(started)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("error fetching started attempt: %w", err)
	}
	return resp, nil
}

func toAssessmentSummary(assessment *model.Assessment, questionCount int) dto.AssessmentSummaryDTO {
	var summary dto.AssessmentSummaryDTO
	if err := copier.Copy(&summary, assessment); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessment.ID).Msg("Failed to copy Assessment model to AssessmentSummaryDTO")
	}
	summary.QuestionCount = questionCount
	return summary
}

func toAttemptStatus(attempt *model.StudentAssessment) *dto.AttemptStatusDTO {
	return &dto.AttemptStatusDTO{
		AttemptID:  attempt.ID,
		Status:     attempt.Status,
		Percentage: attempt.Percentage,
		PassStatus: attempt.PassStatus,
	}
}

func toStudentQuestion(q *model.Question) dto.StudentQuestionDTO {
	return dto.StudentQuestionDTO{
		ID:       q.ID,
		Question: q.Text,
		OptionA:  q.OptionA,
		OptionB:  q.OptionB,
		OptionC:  q.OptionC,
		OptionD:  q.OptionD,
		Marks:    q.Marks,
	}
}
