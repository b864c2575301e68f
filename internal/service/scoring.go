package service

import (
	"strings"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"github.com/shopspring/decimal"
)

// Outcome is the derived result of a scored attempt.
type Outcome struct {
	Percentage float64
	PassStatus string
}

// NormalizeAnswerKey trims and upper-cases a submitted option key. It reports
// false for anything other than A, B, C or D.
func NormalizeAnswerKey(raw string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	for _, valid := range model.AnswerKeys {
		if key == valid {
			return key, true
		}
	}
	return "", false
}

// EvaluateAnswer scores one question. An unanswered question is incorrect and
// earns nothing; otherwise the keys must match once both are normalized. No partial credit.
func EvaluateAnswer(question *model.Question, answer *string) (bool, int) {
	if answer == nil {
		return false, 0
	}
	given := strings.ToUpper(strings.TrimSpace(*answer))
	if given == "" || given != strings.ToUpper(strings.TrimSpace(question.CorrectAnswer)) {
		return false, 0
	}
	return true, question.Marks
}

// ComputeOutcome derives the percentage, rounded to two places, and the pass
// status. A zero total yields 0%. The pass threshold is inclusive.
func ComputeOutcome(obtained, total int, passPercentage float64) Outcome {
	percentage := 0.0
	if total > 0 {
		percentage = decimal.NewFromInt(int64(obtained)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(decimal.NewFromInt(100)).
			Round(2).
			InexactFloat64()
	}
	status := model.PassStatusFail
	if decimal.NewFromFloat(percentage).GreaterThanOrEqual(decimal.NewFromFloat(passPercentage)) {
		status = model.PassStatusPass
	}
	return Outcome{Percentage: percentage, PassStatus: status}
}

// ElapsedSeconds is the time taken on an attempt. A client-reported value is
// preferred but capped to the assessment duration; otherwise the wall-clock
// delta is used. Never negative.
func ElapsedSeconds(start, now time.Time, clientSeconds *int, durationMinutes int) int {
	if clientSeconds != nil {
		elapsed := *clientSeconds
		if limit := durationMinutes * 60; durationMinutes > 0 && elapsed > limit {
			elapsed = limit
		}
		if elapsed < 0 {
			return 0
		}
		return elapsed
	}
	elapsed := int(now.Sub(start).Seconds())
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// AveragePercentage returns the mean of the given percentages rounded to two places.
func AveragePercentage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))).Round(2).InexactFloat64()
}

// Ratio returns part/whole as a percentage rounded to two places, 0 when whole is 0.
func Ratio(part, whole int) float64 {
	return ComputeOutcome(part, whole, 0).Percentage
}
