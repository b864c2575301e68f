package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/placement-portal/config"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrUpstream is returned when an external model replies with something unusable.
var ErrUpstream = errors.New("upstream service returned an unusable response")

// TextGenerator produces a text completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	model *genai.GenerativeModel
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content: %w", ErrUpstream)
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content: %w", ErrUpstream)
	}
	return text.String(), nil
}

// QuestionDraftService asks an LLM for multiple-choice question drafts. Drafts
// are returned for review and never stored.
type QuestionDraftService interface {
	Draft(ctx context.Context, assessmentID uint, req dto.QuestionDraftRequest) (*dto.QuestionDraftResponse, error)
}

type questionDraftService struct {
	generator      TextGenerator
	modelName      string
	assessmentRepo repository.AssessmentRepository
}

func NewQuestionDraftService(cfg *config.Config, assessmentRepo repository.AssessmentRepository) (QuestionDraftService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Question drafting is disabled.")
		return &questionDraftService{modelName: cfg.GeminiModel, assessmentRepo: assessmentRepo}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	generator := &geminiGenerator{model: client.GenerativeModel(cfg.GeminiModel)}
	return NewQuestionDraftServiceWithGenerator(generator, cfg.GeminiModel, assessmentRepo), nil
}

func NewQuestionDraftServiceWithGenerator(generator TextGenerator, modelName string, assessmentRepo repository.AssessmentRepository) QuestionDraftService {
	return &questionDraftService{generator: generator, modelName: modelName, assessmentRepo: assessmentRepo}
}

func (s *questionDraftService) Draft(ctx context.Context, assessmentID uint, req dto.QuestionDraftRequest) (*dto.QuestionDraftResponse, error) {
	if s.generator == nil {
		return nil, ErrFeatureDisabled
	}
	assessment, err := s.assessmentRepo.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = assessment.Difficulty
	}

	var prompt strings.Builder
	prompt.WriteString("You are an experienced placement-test author.\n")
	fmt.Fprintf(&prompt, "Write %d multiple-choice questions for a %s assessment titled %q.\n", req.Count, assessment.Category, assessment.Title)
	fmt.Fprintf(&prompt, "Topic: %s\nDifficulty: %s\n\n", dto.Sanitize(req.Topic), difficulty)
	prompt.WriteString("Each question has exactly four options and one correct answer.\n")
	prompt.WriteString("Reply with a JSON array only, no prose. Each element must have the keys:\n")
	prompt.WriteString(`"question", "option_a", "option_b", "option_c", "option_d", "correct_answer" (one of "A", "B", "C", "D"), "marks" (integer), "explanation".`)

	raw, err := s.generator.Generate(ctx, prompt.String())
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("Question draft generation failed")
		return nil, fmt.Errorf("question draft generation failed: %w", err)
	}

	drafts, err := parseQuestionDrafts(raw, assessment.Category, difficulty)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse question drafts")
		return nil, err
	}
	if len(drafts) > req.Count {
		drafts = drafts[:req.Count]
	}
	return &dto.QuestionDraftResponse{Drafts: drafts, ModelUsed: s.modelName}, nil
}

// parseQuestionDrafts extracts the JSON array from a model reply, tolerating
// code fences and surrounding prose. Incomplete drafts are dropped.
func parseQuestionDrafts(raw, category, difficulty string) ([]dto.QuestionDraftDTO, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array in model reply: %w", ErrUpstream)
	}
	var parsed []dto.QuestionDraftDTO
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("undecodable model reply: %v: %w", err, ErrUpstream)
	}

	drafts := make([]dto.QuestionDraftDTO, 0, len(parsed))
	for _, d := range parsed {
		key, ok := NormalizeAnswerKey(d.CorrectAnswer)
		if !ok || strings.TrimSpace(d.Question) == "" ||
			strings.TrimSpace(d.OptionA) == "" || strings.TrimSpace(d.OptionB) == "" ||
			strings.TrimSpace(d.OptionC) == "" || strings.TrimSpace(d.OptionD) == "" {
			continue
		}
		d.CorrectAnswer = key
		if d.Marks < 1 {
			d.Marks = 1
		}
		if d.Marks > 100 {
			d.Marks = 100
		}
		if d.Category == "" {
			d.Category = category
		}
		if d.Difficulty == "" {
			d.Difficulty = difficulty
		}
		drafts = append(drafts, d)
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("model reply contained no usable questions: %w", ErrUpstream)
	}
	return drafts, nil
}
