package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/placement-portal/internal/cache"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/metrics"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService drives an attempt through started -> completed.
type AttemptService interface {
	Start(ctx context.Context, assessmentID, studentID uint) (*dto.StartAttemptResponse, error)
	Take(ctx context.Context, assessmentID, attemptID, studentID uint) (*dto.TakeAttemptResponse, error)
	SaveProgress(ctx context.Context, assessmentID, attemptID, studentID uint, answers map[uint]*string) (*dto.SaveProgressResponse, error)
	Submit(ctx context.Context, assessmentID, attemptID, studentID uint, clientElapsed *int) (*dto.AttemptResultDTO, error)
}

type attemptService struct {
	db             *gorm.DB
	assessmentRepo repository.AssessmentRepository
	questionRepo   repository.QuestionRepository
	attemptRepo    repository.StudentAssessmentRepository
	answerRepo     repository.StudentAnswerRepository
	contextCache   cache.ContextCache
	metrics        *metrics.Metrics
	now            func() time.Time
}

func NewAttemptService(
	db *gorm.DB,
	assessmentRepo repository.AssessmentRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.StudentAssessmentRepository,
	answerRepo repository.StudentAnswerRepository,
	contextCache cache.ContextCache,
	m *metrics.Metrics,
) AttemptService {
	if contextCache == nil {
		contextCache = cache.NoopContextCache{}
	}
	return &attemptService{
		db:             db,
		assessmentRepo: assessmentRepo,
		questionRepo:   questionRepo,
		attemptRepo:    attemptRepo,
		answerRepo:     answerRepo,
		contextCache:   contextCache,
		metrics:        m,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *attemptService) Start(ctx context.Context, assessmentID, studentID uint) (*dto.StartAttemptResponse, error) {
	now := s.now()
	assessment, err := s.assessmentRepo.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}
	if !assessment.IsCurrentlyActive(now) {
		return nil, ErrUnavailable
	}

	if !assessment.AllowMultipleAttempts {
		_, err := s.attemptRepo.FindLatestCompleted(ctx, studentID, assessmentID)
		if err == nil {
			return nil, ErrAlreadyCompleted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check completed attempts: %w", err)
		}
	}

	existing, err := s.attemptRepo.FindStarted(ctx, studentID, assessmentID)
	if err == nil {
		log.Debug().Uint("attemptID", existing.ID).Uint("studentID", studentID).Msg("Start: resuming attempt")
		return toStartResponse(existing, assessment, now, true), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up started attempt: %w", err)
	}

	attempt := &model.StudentAssessment{
		StudentID:    studentID,
		AssessmentID: assessmentID,
		StartTime:    now,
		Status:       model.AttemptStatusStarted,
		TotalMarks:   assessment.TotalMarks,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		// A concurrent Start may have inserted the student's started attempt first.
		if existing, findErr := s.attemptRepo.FindStarted(ctx, studentID, assessmentID); findErr == nil {
			log.Debug().Err(err).Uint("attemptID", existing.ID).Uint("studentID", studentID).Msg("Start: resuming attempt created concurrently")
			return toStartResponse(existing, assessment, now, true), nil
		}
		log.Error().Err(err).Uint("assessmentID", assessmentID).Uint("studentID", studentID).Msg("Start: failed to create attempt")
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}
	log.Info().Uint("attemptID", attempt.ID).Uint("assessmentID", assessmentID).Uint("studentID", studentID).Msg("Attempt started")
	s.invalidateContext(ctx, studentID)
	return toStartResponse(attempt, assessment, now, false), nil
}

func (s *attemptService) Take(ctx context.Context, assessmentID, attemptID, studentID uint) (*dto.TakeAttemptResponse, error) {
	attempt, err := s.startedAttempt(ctx, assessmentID, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.assessmentRepo.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}
	questions, err := s.questionRepo.FindByAssessmentID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	answers, err := s.answerRepo.FindByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved answers: %w", err)
	}

	saved := make(map[uint]string, len(answers))
	for _, a := range answers {
		if a.Answer != nil {
			saved[a.QuestionID] = *a.Answer
		}
	}

	summary := toAssessmentSummary(assessment, len(questions))
	resp := &dto.TakeAttemptResponse{
		AttemptID:        attempt.ID,
		Assessment:       summary,
		Questions:        make([]dto.StudentQuestionDTO, 0, len(questions)),
		SavedAnswers:     saved,
		StartTime:        attempt.StartTime,
		RemainingSeconds: attempt.RemainingSeconds(s.now(), assessment.Duration),
	}
	for i := range questions {
		resp.Questions = append(resp.Questions, toStudentQuestion(&questions[i]))
	}
	return resp, nil
}

func (s *attemptService) SaveProgress(ctx context.Context, assessmentID, attemptID, studentID uint, answers map[uint]*string) (*dto.SaveProgressResponse, error) {
	attempt, err := s.startedAttempt(ctx, assessmentID, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.FindByAssessmentID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	inAssessment := make(map[uint]bool, len(questions))
	for _, q := range questions {
		inAssessment[q.ID] = true
	}

	toSave := make([]*model.StudentAnswer, 0, len(answers))
	for questionID, raw := range answers {
		if raw == nil || !inAssessment[questionID] {
			continue
		}
		if trimmed := dto.Sanitize(*raw); trimmed == "" {
			continue
		}
		key, ok := NormalizeAnswerKey(*raw)
		if !ok {
			return nil, validationError("answer for question %d must be one of A, B, C or D", questionID)
		}
		toSave = append(toSave, &model.StudentAnswer{
			StudentAssessmentID: attempt.ID,
			QuestionID:          questionID,
			Answer:              &key,
		})
	}

	for _, answer := range toSave {
		if err := s.answerRepo.Upsert(ctx, answer); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Uint("questionID", answer.QuestionID).Msg("SaveProgress: failed to upsert answer")
			return nil, fmt.Errorf("failed to save answer: %w", err)
		}
	}
	return &dto.SaveProgressResponse{Saved: len(toSave), SavedAt: s.now()}, nil
}

func (s *attemptService) Submit(ctx context.Context, assessmentID, attemptID, studentID uint, clientElapsed *int) (*dto.AttemptResultDTO, error) {
	if _, err := s.ownedAttempt(ctx, assessmentID, attemptID, studentID); err != nil {
		return nil, err
	}
	assessment, err := s.assessmentRepo.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}
	questions, err := s.questionRepo.FindByAssessmentID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	now := s.now()
	var outcome repository.AttemptOutcome
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attemptRepo := s.attemptRepo.WithTx(tx)
		answerRepo := s.answerRepo.WithTx(tx)

		current, err := attemptRepo.FindByIDForUpdate(ctx, attemptID)
		if err != nil {
			return notFoundOr(err, "attempt %d", attemptID)
		}
		if current.Status != model.AttemptStatusStarted {
			return ErrInvalidState
		}

		saved, err := answerRepo.FindByAttempt(ctx, attemptID)
		if err != nil {
			return fmt.Errorf("failed to load answers: %w", err)
		}
		byQuestion := make(map[uint]*model.StudentAnswer, len(saved))
		for i := range saved {
			byQuestion[saved[i].QuestionID] = &saved[i]
		}

		obtained := 0
		for i := range questions {
			question := &questions[i]
			answer, ok := byQuestion[question.ID]
			if !ok {
				// Unanswered questions still get a row so the result lists every question.
				isCorrect, marks := EvaluateAnswer(question, nil)
				row := &model.StudentAnswer{
					StudentAssessmentID: attemptID,
					QuestionID:          question.ID,
					IsCorrect:           isCorrect,
					MarksObtained:       marks,
				}
				if err := answerRepo.Create(ctx, row); err != nil {
					return fmt.Errorf("failed to record unanswered question %d: %w", question.ID, err)
				}
				continue
			}
			isCorrect, marks := EvaluateAnswer(question, answer.Answer)
			if err := answerRepo.UpdateScore(ctx, answer.ID, isCorrect, marks); err != nil {
				return fmt.Errorf("failed to score question %d: %w", question.ID, err)
			}
			obtained += marks
		}

		result := ComputeOutcome(obtained, current.TotalMarks, assessment.PassPercentage)
		outcome = repository.AttemptOutcome{
			ObtainedMarks: obtained,
			Percentage:    result.Percentage,
			PassStatus:    result.PassStatus,
			TimeTaken:     ElapsedSeconds(current.StartTime, now, clientElapsed, assessment.Duration),
			FinishedAt:    now,
		}
		completed, err := attemptRepo.Complete(ctx, attemptID, outcome)
		if err != nil {
			return fmt.Errorf("failed to complete attempt: %w", err)
		}
		if !completed {
			return ErrInvalidState
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidState) {
			log.Error().Err(err).Uint("attemptID", attemptID).Msg("Submit: transaction rolled back")
		}
		return nil, err
	}

	log.Info().Uint("attemptID", attemptID).Uint("studentID", studentID).
		Int("obtained", outcome.ObtainedMarks).Float64("percentage", outcome.Percentage).
		Str("passStatus", outcome.PassStatus).Msg("Attempt submitted")
	s.metrics.ObserveSubmission(outcome.PassStatus)
	s.invalidateContext(ctx, studentID)

	attempt, err := s.attemptRepo.FindByIDWithDetails(ctx, attemptID)
	if err != nil {
		return nil, notFoundOr(err, "attempt %d", attemptID)
	}
	result := toResultDTO(attempt, assessment.ShowResultsImmediately, assessment.ShowCorrectAnswers)
	return &result, nil
}

// invalidateContext drops the student's cached chatbot context. Failures are only logged.
func (s *attemptService) invalidateContext(ctx context.Context, studentID uint) {
	if err := s.contextCache.Invalidate(ctx, studentID); err != nil {
		log.Warn().Err(err).Uint("studentID", studentID).Msg("Failed to invalidate chatbot context")
	}
}

// ownedAttempt loads an attempt of the given assessment and checks it belongs to the student.
func (s *attemptService) ownedAttempt(ctx context.Context, assessmentID, attemptID, studentID uint) (*model.StudentAssessment, error) {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, notFoundOr(err, "attempt %d", attemptID)
	}
	if attempt.AssessmentID != assessmentID {
		return nil, fmt.Errorf("attempt %d does not belong to assessment %d: %w", attemptID, assessmentID, ErrNotFound)
	}
	if attempt.StudentID != studentID {
		log.Warn().Uint("attemptID", attemptID).Uint("studentID", studentID).Msg("Attempt accessed by another student")
		return nil, ErrForbidden
	}
	return attempt, nil
}

func (s *attemptService) startedAttempt(ctx context.Context, assessmentID, attemptID, studentID uint) (*model.StudentAssessment, error) {
	attempt, err := s.ownedAttempt(ctx, assessmentID, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptStatusStarted {
		return nil, ErrInvalidState
	}
	return attempt, nil
}

func toStartResponse(attempt *model.StudentAssessment, assessment *model.Assessment, now time.Time, resumed bool) *dto.StartAttemptResponse {
	return &dto.StartAttemptResponse{
		AttemptID:        attempt.ID,
		AssessmentID:     attempt.AssessmentID,
		Status:           attempt.Status,
		StartTime:        attempt.StartTime,
		TotalMarks:       attempt.TotalMarks,
		RemainingSeconds: attempt.RemainingSeconds(now, assessment.Duration),
		Resumed:          resumed,
	}
}
