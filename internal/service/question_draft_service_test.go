package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/placement-portal/config"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

const draftReply = "Here you go:\n```json\n[\n" +
	`{"question":"2+2?","option_a":"3","option_b":"4","option_c":"5","option_d":"6","correct_answer":"b","marks":0,"explanation":"basic"},` +
	`{"question":"Missing options","option_a":"x","correct_answer":"A","marks":1},` +
	`{"question":"Capital of France?","option_a":"Paris","option_b":"Rome","option_c":"Oslo","option_d":"Bern","correct_answer":"A","marks":500,"difficulty":"hard"},` +
	`{"question":"Third","option_a":"a","option_b":"b","option_c":"c","option_d":"d","correct_answer":"C","marks":2}` +
	"\n]\n```"

func TestQuestionDraft(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	assessment, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "General Knowledge", Category: "Aptitude"})
	repo := repository.NewAssessmentRepository(db)

	t.Run("parses, normalizes and trims to the requested count", func(t *testing.T) {
		gen := &stubGenerator{reply: draftReply}
		svc := NewQuestionDraftServiceWithGenerator(gen, "gemini-test", repo)

		resp, err := svc.Draft(ctx, assessment.ID, dto.QuestionDraftRequest{Topic: "world facts", Count: 2})
		require.NoError(t, err)
		assert.Equal(t, "gemini-test", resp.ModelUsed)
		require.Len(t, resp.Drafts, 2)

		first := resp.Drafts[0]
		assert.Equal(t, "B", first.CorrectAnswer)
		assert.Equal(t, 1, first.Marks)
		assert.Equal(t, "Aptitude", first.Category)
		assert.Equal(t, "medium", first.Difficulty)

		second := resp.Drafts[1]
		assert.Equal(t, "Capital of France?", second.Question)
		assert.Equal(t, 100, second.Marks)
		assert.Equal(t, "hard", second.Difficulty)

		assert.Contains(t, gen.prompt, "Write 2 multiple-choice questions")
		assert.Contains(t, gen.prompt, "Topic: world facts")
	})

	t.Run("disabled without a generator", func(t *testing.T) {
		svc, err := NewQuestionDraftService(&config.Config{}, repo)
		require.NoError(t, err)
		_, err = svc.Draft(ctx, assessment.ID, dto.QuestionDraftRequest{Topic: "x", Count: 1})
		assert.ErrorIs(t, err, ErrFeatureDisabled)
	})

	t.Run("unknown assessment", func(t *testing.T) {
		svc := NewQuestionDraftServiceWithGenerator(&stubGenerator{reply: draftReply}, "m", repo)
		_, err := svc.Draft(ctx, 404, dto.QuestionDraftRequest{Topic: "x", Count: 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("generator failure is wrapped", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		svc := NewQuestionDraftServiceWithGenerator(&stubGenerator{err: boom}, "m", repo)
		_, err := svc.Draft(ctx, assessment.ID, dto.QuestionDraftRequest{Topic: "x", Count: 1})
		assert.ErrorIs(t, err, boom)
	})
}

func TestParseQuestionDrafts(t *testing.T) {
	cases := map[string]string{
		"no array":         "I cannot help with that.",
		"broken json":      `[{"question": "a",]`,
		"nothing complete": `[{"question":"a","correct_answer":"E","option_a":"1","option_b":"2","option_c":"3","option_d":"4"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseQuestionDrafts(raw, "Technical", "easy")
			assert.ErrorIs(t, err, ErrUpstream)
		})
	}
}
