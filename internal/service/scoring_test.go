package service

import (
	"testing"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestEvaluateAnswer(t *testing.T) {
	q := &model.Question{CorrectAnswer: "B", Marks: 4}

	tests := []struct {
		name       string
		answer     *string
		wantOK     bool
		wantEarned int
	}{
		{"exact match", strPtr("B"), true, 4},
		{"case and whitespace are ignored", strPtr("  b "), true, 4},
		{"wrong key", strPtr("C"), false, 0},
		{"unanswered", nil, false, 0},
		{"empty answer", strPtr("   "), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, earned := EvaluateAnswer(q, tt.answer)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantEarned, earned)
		})
	}
}

func TestNormalizeAnswerKey(t *testing.T) {
	key, ok := NormalizeAnswerKey(" d")
	assert.True(t, ok)
	assert.Equal(t, "D", key)

	_, ok = NormalizeAnswerKey("E")
	assert.False(t, ok)
	_, ok = NormalizeAnswerKey("AB")
	assert.False(t, ok)
}

func TestComputeOutcome(t *testing.T) {
	t.Run("threshold is inclusive", func(t *testing.T) {
		out := ComputeOutcome(5, 10, 50)
		assert.InDelta(t, 50.0, out.Percentage, 1e-9)
		assert.Equal(t, model.PassStatusPass, out.PassStatus)
	})

	t.Run("percentage is rounded to two places", func(t *testing.T) {
		out := ComputeOutcome(1, 3, 40)
		assert.InDelta(t, 33.33, out.Percentage, 1e-9)
		assert.Equal(t, model.PassStatusFail, out.PassStatus)
	})

	t.Run("zero total gives zero percent", func(t *testing.T) {
		out := ComputeOutcome(7, 0, 10)
		assert.Zero(t, out.Percentage)
		assert.Equal(t, model.PassStatusFail, out.PassStatus)
	})
}

func TestElapsedSeconds(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, ElapsedSeconds(start, start.Add(90*time.Second), nil, 30))
	assert.Equal(t, 120, ElapsedSeconds(start, start.Add(time.Hour), intPtr(120), 30))
	assert.Equal(t, 1800, ElapsedSeconds(start, start, intPtr(5000), 30))
	assert.Equal(t, 0, ElapsedSeconds(start, start, intPtr(-3), 30))
	assert.Equal(t, 0, ElapsedSeconds(start, start.Add(-time.Minute), nil, 30))
}

func intPtr(v int) *int { return &v }

func TestAveragePercentageAndRatio(t *testing.T) {
	assert.Zero(t, AveragePercentage(nil))
	assert.InDelta(t, 66.67, AveragePercentage([]float64{50, 75, 75}), 1e-9)
	assert.InDelta(t, 25.0, Ratio(1, 4), 1e-9)
	assert.Zero(t, Ratio(3, 0))
}
