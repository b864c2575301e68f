package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lshigami/placement-portal/internal/cache"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	recentMistakesLimit = 5
	weakAreaThreshold   = 60.0
	strongAreaThreshold = 80.0
)

type StudentProfile struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

type AvailableAssessment struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Duration    int    `json:"duration"`
	Difficulty  string `json:"difficulty_level"`
	TotalMarks  int    `json:"total_marks"`
}

type CompletedAssessment struct {
	ID            uint       `json:"id"`
	AttemptID     uint       `json:"attempt_id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	ObtainedMarks int        `json:"score"`
	TotalMarks    int        `json:"total_marks"`
	Percentage    float64    `json:"percentage"`
	Passed        bool       `json:"passed"`
	TimeTaken     int        `json:"time_taken"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

type InProgressAssessment struct {
	ID            uint      `json:"id"`
	AttemptID     uint      `json:"attempt_id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	StartedAt     time.Time `json:"started_at"`
	TimeRemaining int       `json:"time_remaining"`
}

type RecentMistake struct {
	AssessmentTitle string     `json:"assessment"`
	Question        string     `json:"question"`
	Category        string     `json:"category"`
	StudentAnswer   string     `json:"student_answer"`
	CorrectAnswer   string     `json:"correct_answer"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
}

type StudentStatistics struct {
	TotalCompleted    int                          `json:"total_completed"`
	TotalPassed       int                          `json:"total_passed"`
	AverageScore      float64                      `json:"average_score"`
	PassRate          float64                      `json:"pass_rate"`
	CategoryBreakdown []dto.CategoryPerformanceDTO `json:"category_breakdown"`
	WeakAreas         []string                     `json:"weak_areas"`
	StrongAreas       []string                     `json:"strong_areas"`
}

// StudentContext is the snapshot of a student's state sent along with every
// chat message to the study assistant.
type StudentContext struct {
	Profile               StudentProfile         `json:"student_profile"`
	AvailableAssessments  []AvailableAssessment  `json:"available_assessments"`
	CompletedAssessments  []CompletedAssessment  `json:"completed_assessments"`
	InProgressAssessments []InProgressAssessment `json:"in_progress_assessments"`
	RecentMistakes        []RecentMistake        `json:"recent_mistakes"`
	Statistics            StudentStatistics      `json:"statistics"`
	Timestamp             time.Time              `json:"timestamp"`
}

type ContextBuilder interface {
	// Build returns the student's context, served from the cache when a fresh copy exists.
	Build(ctx context.Context, student *model.User) (*StudentContext, error)
}

type contextBuilder struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.StudentAssessmentRepository
	answerRepo     repository.StudentAnswerRepository
	contextCache   cache.ContextCache
	ttl            time.Duration
	now            func() time.Time
}

func NewContextBuilder(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.StudentAssessmentRepository,
	answerRepo repository.StudentAnswerRepository,
	contextCache cache.ContextCache,
	ttl time.Duration,
) ContextBuilder {
	if contextCache == nil {
		contextCache = cache.NoopContextCache{}
	}
	return &contextBuilder{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		answerRepo:     answerRepo,
		contextCache:   contextCache,
		ttl:            ttl,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (b *contextBuilder) Build(ctx context.Context, student *model.User) (*StudentContext, error) {
	payload, found, err := b.contextCache.Get(ctx, student.ID)
	if err != nil {
		log.Warn().Err(err).Uint("studentID", student.ID).Msg("Build: context cache read failed")
	}
	if found {
		var cached StudentContext
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		log.Warn().Uint("studentID", student.ID).Msg("Build: discarding undecodable cached context")
	}

	fresh, err := b.fetch(ctx, student)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(fresh); err == nil {
		if err := b.contextCache.Set(ctx, student.ID, encoded, b.ttl); err != nil {
			log.Warn().Err(err).Uint("studentID", student.ID).Msg("Build: context cache write failed")
		}
	}
	return fresh, nil
}

func (b *contextBuilder) fetch(ctx context.Context, student *model.User) (*StudentContext, error) {
	now := b.now()
	available, err := b.assessmentRepo.FindAvailableFor(ctx, student.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load available assessments: %w", err)
	}
	completed, err := b.attemptRepo.ListCompletedByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed attempts: %w", err)
	}
	started, err := b.attemptRepo.ListStartedByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load started attempts: %w", err)
	}
	mistakes, err := b.answerRepo.RecentMistakes(ctx, student.ID, recentMistakesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent mistakes: %w", err)
	}

	sc := &StudentContext{
		Profile: StudentProfile{
			ID:         student.ID,
			Name:       student.Name,
			Email:      student.Email,
			Role:       student.Role,
			IsApproved: student.IsApproved,
			CreatedAt:  student.CreatedAt,
		},
		AvailableAssessments:  make([]AvailableAssessment, 0, len(available)),
		CompletedAssessments:  make([]CompletedAssessment, 0, len(completed)),
		InProgressAssessments: make([]InProgressAssessment, 0, len(started)),
		RecentMistakes:        make([]RecentMistake, 0, len(mistakes)),
		Timestamp:             now,
	}
	for _, a := range available {
		sc.AvailableAssessments = append(sc.AvailableAssessments, AvailableAssessment{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Category:    a.Category,
			Duration:    a.Duration,
			Difficulty:  a.Difficulty,
			TotalMarks:  a.TotalMarks,
		})
	}
	for _, a := range completed {
		sc.CompletedAssessments = append(sc.CompletedAssessments, CompletedAssessment{
			ID:            a.AssessmentID,
			AttemptID:     a.ID,
			Title:         a.Assessment.Title,
			Category:      a.Assessment.Category,
			ObtainedMarks: a.ObtainedMarks,
			TotalMarks:    a.TotalMarks,
			Percentage:    a.Percentage,
			Passed:        a.PassStatus == model.PassStatusPass,
			TimeTaken:     a.TimeTaken,
			SubmittedAt:   a.SubmitTime,
		})
	}
	for i := range started {
		a := &started[i]
		sc.InProgressAssessments = append(sc.InProgressAssessments, InProgressAssessment{
			ID:            a.AssessmentID,
			AttemptID:     a.ID,
			Title:         a.Assessment.Title,
			Category:      a.Assessment.Category,
			StartedAt:     a.StartTime,
			TimeRemaining: a.RemainingSeconds(now, a.Assessment.Duration),
		})
	}
	for _, m := range mistakes {
		sc.RecentMistakes = append(sc.RecentMistakes, RecentMistake{
			AssessmentTitle: m.AssessmentTitle,
			Question:        m.QuestionText,
			Category:        m.Category,
			StudentAnswer:   m.StudentAnswer,
			CorrectAnswer:   m.CorrectAnswer,
			SubmittedAt:     m.SubmittedAt,
		})
	}

	summary := summarize(completed)
	sc.Statistics = StudentStatistics{
		TotalCompleted:    summary.Total,
		TotalPassed:       summary.Passed,
		AverageScore:      summary.Average,
		PassRate:          Ratio(summary.Passed, summary.Total),
		CategoryBreakdown: summary.Categories,
		WeakAreas:         []string{},
		StrongAreas:       []string{},
	}
	for _, c := range summary.Categories {
		switch {
		case c.AveragePercentage < weakAreaThreshold:
			sc.Statistics.WeakAreas = append(sc.Statistics.WeakAreas, c.Category)
		case c.AveragePercentage >= strongAreaThreshold:
			sc.Statistics.StrongAreas = append(sc.Statistics.StrongAreas, c.Category)
		}
	}
	return sc, nil
}

// minimalContext is sent when the full context cannot be built.
func minimalContext(student *model.User, now time.Time) *StudentContext {
	return &StudentContext{
		Profile: StudentProfile{
			ID:    student.ID,
			Name:  student.Name,
			Email: student.Email,
			Role:  student.Role,
		},
		AvailableAssessments:  []AvailableAssessment{},
		CompletedAssessments:  []CompletedAssessment{},
		InProgressAssessments: []InProgressAssessment{},
		RecentMistakes:        []RecentMistake{},
		Statistics:            StudentStatistics{CategoryBreakdown: []dto.CategoryPerformanceDTO{}, WeakAreas: []string{}, StrongAreas: []string{}},
		Timestamp:             now,
	}
}
