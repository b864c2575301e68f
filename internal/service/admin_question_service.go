package service

import (
	"context"
	"fmt"
	"io"

	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminQuestionService interface {
	Create(ctx context.Context, req dto.QuestionRequest) (*dto.AdminQuestionDTO, error)
	// CreateForAssessment creates a question and appends it to the assessment.
	CreateForAssessment(ctx context.Context, assessmentID uint, req dto.QuestionRequest) (*dto.AdminQuestionDTO, error)
	// ImportForAssessment appends the valid rows of a CSV file to the assessment.
	ImportForAssessment(ctx context.Context, assessmentID uint, r io.Reader) (*dto.QuestionImportResponse, error)
	Attach(ctx context.Context, assessmentID uint, req dto.AttachQuestionRequest) error
	Detach(ctx context.Context, assessmentID, questionID uint) error
	Update(ctx context.Context, id uint, req dto.QuestionRequest) (*dto.AdminQuestionDTO, error)
	Delete(ctx context.Context, id uint) error
	ListForAssessment(ctx context.Context, assessmentID uint) ([]dto.AdminQuestionDTO, error)
	List(ctx context.Context, filter repository.QuestionFilter) (*dto.QuestionListResponse, error)
}

type adminQuestionService struct {
	db             *gorm.DB
	assessmentRepo repository.AssessmentRepository
	questionRepo   repository.QuestionRepository
	syncer         KnowledgeSyncer
}

func NewAdminQuestionService(
	db *gorm.DB,
	assessmentRepo repository.AssessmentRepository,
	questionRepo repository.QuestionRepository,
	syncer KnowledgeSyncer,
) AdminQuestionService {
	return &adminQuestionService{db: db, assessmentRepo: assessmentRepo, questionRepo: questionRepo, syncer: syncer}
}

func (s *adminQuestionService) Create(ctx context.Context, req dto.QuestionRequest) (*dto.AdminQuestionDTO, error) {
	question := questionFromRequest(req, "", "")
	if err := s.questionRepo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Msg("Failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}
	s.syncer.Trigger("question created")
	out := toAdminQuestion(&question)
	return &out, nil
}

func (s *adminQuestionService) CreateForAssessment(ctx context.Context, assessmentID uint, req dto.QuestionRequest) (*dto.AdminQuestionDTO, error) {
	assessment, err := s.assessmentRepo.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}
	question := questionFromRequest(req, assessment.Category, assessment.Difficulty)
	var order int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessmentRepo := s.assessmentRepo.WithTx(tx)
		if err := s.questionRepo.WithTx(tx).Create(ctx, &question); err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}
		next, err := assessmentRepo.NextSortOrder(ctx, assessmentID)
		if err != nil {
			return fmt.Errorf("failed to compute question order: %w", err)
		}
		order = next
		return assessmentRepo.AttachQuestion(ctx, assessmentID, question.ID, order)
	})
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("Failed to create question for assessment")
		return nil, err
	}
	s.syncer.Trigger("question added")
	out := toAdminQuestion(&question)
	out.Order = order
	return &out, nil
}

func (s *adminQuestionService) Attach(ctx context.Context, assessmentID uint, req dto.AttachQuestionRequest) error {
	if _, err := s.assessmentRepo.FindByID(ctx, assessmentID); err != nil {
		return notFoundOr(err, "assessment %d", assessmentID)
	}
	if _, err := s.questionRepo.FindByID(ctx, req.QuestionID); err != nil {
		return notFoundOr(err, "question %d", req.QuestionID)
	}
	links, err := s.assessmentRepo.FindLinks(ctx, assessmentID)
	if err != nil {
		return fmt.Errorf("error fetching question links: %w", err)
	}
	for _, link := range links {
		if link.QuestionID == req.QuestionID {
			return fmt.Errorf("question %d is already part of assessment %d: %w", req.QuestionID, assessmentID, ErrConflict)
		}
	}
	order := req.Order
	if order == 0 {
		if order, err = s.assessmentRepo.NextSortOrder(ctx, assessmentID); err != nil {
			return fmt.Errorf("failed to compute question order: %w", err)
		}
	}
	if err := s.assessmentRepo.AttachQuestion(ctx, assessmentID, req.QuestionID, order); err != nil {
		return fmt.Errorf("database error attaching question: %w", err)
	}
	s.syncer.Trigger("question attached")
	return nil
}

func (s *adminQuestionService) Detach(ctx context.Context, assessmentID, questionID uint) error {
	if err := s.assessmentRepo.DetachQuestion(ctx, assessmentID, questionID); err != nil {
		return notFoundOr(err, "question %d of assessment %d", questionID, assessmentID)
	}
	s.syncer.Trigger("question detached")
	return nil
}

func (s *adminQuestionService) Update(ctx context.Context, id uint, req dto.QuestionRequest) (*dto.AdminQuestionDTO, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "question %d", id)
	}
	updated := questionFromRequest(req, question.Category, question.Difficulty)
	updated.ID = question.ID
	updated.CreatedAt = question.CreatedAt
	if req.IsActive == nil {
		updated.IsActive = question.IsActive
	}
	if err := s.questionRepo.Update(ctx, &updated); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to update question")
		return nil, fmt.Errorf("database error updating question: %w", err)
	}
	s.syncer.Trigger("question updated")
	out := toAdminQuestion(&updated)
	return &out, nil
}

func (s *adminQuestionService) Delete(ctx context.Context, id uint) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "question %d", id)
	}
	s.syncer.Trigger("question deleted")
	return nil
}

func (s *adminQuestionService) ListForAssessment(ctx context.Context, assessmentID uint) ([]dto.AdminQuestionDTO, error) {
	if _, err := s.assessmentRepo.FindByID(ctx, assessmentID); err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}
	questions, err := s.questionRepo.FindByAssessmentID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	links, err := s.assessmentRepo.FindLinks(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching question order: %w", err)
	}
	order := make(map[uint]int, len(links))
	for _, link := range links {
		order[link.QuestionID] = link.SortOrder
	}
	out := make([]dto.AdminQuestionDTO, 0, len(questions))
	for i := range questions {
		q := toAdminQuestion(&questions[i])
		q.Order = order[questions[i].ID]
		out = append(out, q)
	}
	return out, nil
}

func (s *adminQuestionService) List(ctx context.Context, filter repository.QuestionFilter) (*dto.QuestionListResponse, error) {
	questions, total, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list questions")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	page := filter.Page.Normalized()
	resp := &dto.QuestionListResponse{
		Questions: make([]dto.AdminQuestionDTO, 0, len(questions)),
		Meta:      dto.PageMeta{Page: page.Page, PageSize: page.PageSize, Total: total},
	}
	for i := range questions {
		resp.Questions = append(resp.Questions, toAdminQuestion(&questions[i]))
	}
	return resp, nil
}

// questionFromRequest builds a question, falling back to the given category
// and difficulty when the request leaves them empty.
func questionFromRequest(req dto.QuestionRequest, category, difficulty string) model.Question {
	q := model.Question{
		Text:       dto.Sanitize(req.Question),
		OptionA:    dto.Sanitize(req.OptionA),
		OptionB:    dto.Sanitize(req.OptionB),
		OptionC:    dto.Sanitize(req.OptionC),
		OptionD:    dto.Sanitize(req.OptionD),
		Marks:      req.Marks,
		Difficulty: req.Difficulty,
		Category:   dto.Sanitize(req.Category),
		IsActive:   true,
	}
	q.CorrectAnswer, _ = NormalizeAnswerKey(req.CorrectAnswer)
	if q.Category == "" {
		q.Category = category
	}
	if q.Difficulty == "" {
		q.Difficulty = difficulty
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	return q
}

func toAdminQuestion(q *model.Question) dto.AdminQuestionDTO {
	return dto.AdminQuestionDTO{
		ID:            q.ID,
		Question:      q.Text,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectAnswer: q.CorrectAnswer,
		Marks:         q.Marks,
		Difficulty:    q.Difficulty,
		Category:      q.Category,
		IsActive:      q.IsActive,
	}
}
