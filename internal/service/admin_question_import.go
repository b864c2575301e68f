package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// importColumns lists the header names an import file must carry. difficulty
// and category are optional and fall back to the assessment's values.
var importColumns = []string{"question", "option_a", "option_b", "option_c", "option_d", "correct_answer", "marks"}

const maxImportRows = 500

// ImportForAssessment reads a CSV of questions and appends every valid row to
// the assessment in one transaction. Invalid rows are skipped and reported by
// line number. A file without a single valid row is rejected.
func (s *adminQuestionService) ImportForAssessment(ctx context.Context, assessmentID uint, r io.Reader) (*dto.QuestionImportResponse, error) {
	assessment, err := s.assessmentRepo.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, validationError("import file is empty")
	}
	if err != nil {
		return nil, validationError("unreadable import file: %v", err)
	}
	columns, err := importHeader(header)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuestionImportResponse{Errors: []string{}}
	var questions []model.Question
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: %v", line, parseErr.Err))
			continue
		}
		if err != nil {
			return nil, validationError("unreadable import file: %v", err)
		}
		if blankRecord(record) {
			continue
		}
		if len(questions) == maxImportRows {
			return nil, validationError("import file has more than %d questions", maxImportRows)
		}
		q, err := importRow(columns, record, assessment)
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no valid questions in import file (%s)", ErrValidation, strings.Join(resp.Errors, "; "))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessmentRepo := s.assessmentRepo.WithTx(tx)
		questionRepo := s.questionRepo.WithTx(tx)
		order, err := assessmentRepo.NextSortOrder(ctx, assessmentID)
		if err != nil {
			return fmt.Errorf("failed to compute question order: %w", err)
		}
		for i := range questions {
			if err := questionRepo.Create(ctx, &questions[i]); err != nil {
				return fmt.Errorf("failed to create question: %w", err)
			}
			if err := assessmentRepo.AttachQuestion(ctx, assessmentID, questions[i].ID, order+i); err != nil {
				return fmt.Errorf("failed to attach question: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("Failed to import questions")
		return nil, err
	}

	resp.Imported = len(questions)
	resp.Questions = make([]dto.AdminQuestionDTO, 0, len(questions))
	for i := range questions {
		resp.Questions = append(resp.Questions, toAdminQuestion(&questions[i]))
	}
	log.Info().Uint("assessmentID", assessmentID).Int("imported", resp.Imported).Int("skipped", len(resp.Errors)).
		Msg("Questions imported")
	s.syncer.Trigger("questions imported")
	return resp, nil
}

func importHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}
	var missing []string
	for _, name := range importColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, validationError("import file is missing columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

func importRow(columns map[string]int, record []string, assessment *model.Assessment) (model.Question, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	req := dto.QuestionRequest{
		Question:      field("question"),
		OptionA:       field("option_a"),
		OptionB:       field("option_b"),
		OptionC:       field("option_c"),
		OptionD:       field("option_d"),
		CorrectAnswer: field("correct_answer"),
		Difficulty:    strings.ToLower(field("difficulty")),
		Category:      field("category"),
	}
	if req.Question == "" {
		return model.Question{}, errors.New("question is required")
	}
	for _, opt := range []string{req.OptionA, req.OptionB, req.OptionC, req.OptionD} {
		if opt == "" {
			return model.Question{}, errors.New("all four options are required")
		}
		if len(opt) > 500 {
			return model.Question{}, errors.New("options must be at most 500 characters")
		}
	}
	if _, ok := NormalizeAnswerKey(req.CorrectAnswer); !ok {
		return model.Question{}, fmt.Errorf("correct_answer %q must be one of A, B, C, D", req.CorrectAnswer)
	}
	marks, err := strconv.Atoi(field("marks"))
	if err != nil || marks < 1 || marks > 100 {
		return model.Question{}, fmt.Errorf("marks %q must be a whole number from 1 to 100", field("marks"))
	}
	req.Marks = marks
	switch req.Difficulty {
	case "", model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return model.Question{}, fmt.Errorf("difficulty %q must be easy, medium or hard", req.Difficulty)
	}
	if len(req.Category) > 100 {
		return model.Question{}, errors.New("category must be at most 100 characters")
	}
	return questionFromRequest(req, assessment.Category, assessment.Difficulty), nil
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
