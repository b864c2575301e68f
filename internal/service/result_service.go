package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	dashboardRecentResults = 5
	analyticsMonths        = 6
)

// ResultService exposes a student's own results and derived analytics.
type ResultService interface {
	ListResults(ctx context.Context, studentID uint, page repository.Page) (*dto.ResultListResponse, error)
	ShowResult(ctx context.Context, attemptID, studentID uint) (*dto.AttemptResultDTO, error)
	Dashboard(ctx context.Context, studentID uint) (*dto.DashboardDTO, error)
	History(ctx context.Context, studentID uint) (*dto.HistoryDTO, error)
	Analytics(ctx context.Context, studentID uint) (*dto.AnalyticsDTO, error)
}

type resultService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.StudentAssessmentRepository
	now            func() time.Time
}

func NewResultService(assessmentRepo repository.AssessmentRepository, attemptRepo repository.StudentAssessmentRepository) ResultService {
	return &resultService{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *resultService) ListResults(ctx context.Context, studentID uint, page repository.Page) (*dto.ResultListResponse, error) {
	attempts, total, err := s.attemptRepo.ListByStudent(ctx, studentID, page)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("Failed to list results")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}
	n := page.Normalized()
	resp := &dto.ResultListResponse{
		Results: make([]dto.AttemptResultDTO, 0, len(attempts)),
		Meta:    dto.PageMeta{Page: n.Page, PageSize: n.PageSize, Total: total},
	}
	for i := range attempts {
		resp.Results = append(resp.Results, toResultDTO(&attempts[i], false, false))
	}
	return resp, nil
}

func (s *resultService) ShowResult(ctx context.Context, attemptID, studentID uint) (*dto.AttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(ctx, attemptID)
	if err != nil {
		return nil, notFoundOr(err, "attempt %d", attemptID)
	}
	if attempt.StudentID != studentID {
		log.Warn().Uint("attemptID", attemptID).Uint("studentID", studentID).Msg("Result accessed by another student")
		return nil, ErrForbidden
	}
	if !attempt.IsCompleted() {
		return nil, ErrInvalidState
	}
	// The per-question breakdown follows the same rule as the response to Submit.
	result := toResultDTO(attempt, attempt.Assessment.ShowResultsImmediately, attempt.Assessment.ShowCorrectAnswers)
	return &result, nil
}

func (s *resultService) Dashboard(ctx context.Context, studentID uint) (*dto.DashboardDTO, error) {
	completed, err := s.attemptRepo.ListCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching completed attempts: %w", err)
	}
	available, err := s.assessmentRepo.CountAvailableFor(ctx, studentID, s.now())
	if err != nil {
		return nil, fmt.Errorf("error counting available assessments: %w", err)
	}

	stats := summarize(completed)
	resp := &dto.DashboardDTO{
		TotalAttempts:       stats.Total,
		Passed:              stats.Passed,
		Failed:              stats.Total - stats.Passed,
		AveragePercentage:   stats.Average,
		PassRate:            Ratio(stats.Passed, stats.Total),
		AvailableCount:      available,
		CategoryPerformance: stats.Categories,
		RecentResults:       make([]dto.AttemptResultDTO, 0, dashboardRecentResults),
	}
	for i := 0; i < len(completed) && i < dashboardRecentResults; i++ {
		resp.RecentResults = append(resp.RecentResults, toResultDTO(&completed[i], false, false))
	}
	return resp, nil
}

func (s *resultService) History(ctx context.Context, studentID uint) (*dto.HistoryDTO, error) {
	completed, err := s.attemptRepo.ListCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching completed attempts: %w", err)
	}
	resp := &dto.HistoryDTO{
		Attempts:          make([]dto.AttemptResultDTO, 0, len(completed)),
		AveragePercentage: summarize(completed).Average,
	}
	for i := range completed {
		resp.Attempts = append(resp.Attempts, toResultDTO(&completed[i], false, false))
		resp.TotalTimeSpent += completed[i].TimeTaken
		if completed[i].Percentage > resp.HighestPercentage {
			resp.HighestPercentage = completed[i].Percentage
		}
	}
	return resp, nil
}

func (s *resultService) Analytics(ctx context.Context, studentID uint) (*dto.AnalyticsDTO, error) {
	completed, err := s.attemptRepo.ListCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching completed attempts: %w", err)
	}

	now := s.now()
	months := make([]string, 0, analyticsMonths)
	byMonth := make(map[string][]float64, analyticsMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := analyticsMonths - 1; i >= 0; i-- {
		months = append(months, first.AddDate(0, -i, 0).Format("2006-01"))
	}

	byDifficulty := make(map[string][]float64)
	for _, a := range completed {
		if a.SubmitTime != nil {
			key := a.SubmitTime.UTC().Format("2006-01")
			byMonth[key] = append(byMonth[key], a.Percentage)
		}
		difficulty := a.Assessment.Difficulty
		byDifficulty[difficulty] = append(byDifficulty[difficulty], a.Percentage)
	}

	resp := &dto.AnalyticsDTO{
		ByCategory:   summarize(completed).Categories,
		ByMonth:      make([]dto.PeriodPerformanceDTO, 0, len(months)),
		ByDifficulty: make([]dto.PeriodPerformanceDTO, 0, len(byDifficulty)),
	}
	for _, month := range months {
		resp.ByMonth = append(resp.ByMonth, dto.PeriodPerformanceDTO{
			Period:            month,
			Attempts:          len(byMonth[month]),
			AveragePercentage: AveragePercentage(byMonth[month]),
		})
	}
	for _, difficulty := range []string{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		if values, ok := byDifficulty[difficulty]; ok {
			resp.ByDifficulty = append(resp.ByDifficulty, dto.PeriodPerformanceDTO{
				Period:            difficulty,
				Attempts:          len(values),
				AveragePercentage: AveragePercentage(values),
			})
		}
	}
	return resp, nil
}

// performanceSummary aggregates completed attempts overall and per category.
type performanceSummary struct {
	Total      int
	Passed     int
	Average    float64
	Categories []dto.CategoryPerformanceDTO
}

func summarize(completed []model.StudentAssessment) performanceSummary {
	var summary performanceSummary
	all := make([]float64, 0, len(completed))
	perCategory := make(map[string][]float64)
	passedPerCategory := make(map[string]int)
	for _, a := range completed {
		summary.Total++
		all = append(all, a.Percentage)
		category := a.Assessment.Category
		perCategory[category] = append(perCategory[category], a.Percentage)
		if a.PassStatus == model.PassStatusPass {
			summary.Passed++
			passedPerCategory[category]++
		}
	}
	summary.Average = AveragePercentage(all)

	names := make([]string, 0, len(perCategory))
	for name := range perCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	summary.Categories = make([]dto.CategoryPerformanceDTO, 0, len(names))
	for _, name := range names {
		summary.Categories = append(summary.Categories, dto.CategoryPerformanceDTO{
			Category:          name,
			Attempts:          len(perCategory[name]),
			Passed:            passedPerCategory[name],
			AveragePercentage: AveragePercentage(perCategory[name]),
		})
	}
	return summary
}

// toResultDTO maps an attempt with its assessment preloaded. Answers are only
// included when withAnswers is set, and correct keys only when revealCorrect is set.
func toResultDTO(attempt *model.StudentAssessment, withAnswers, revealCorrect bool) dto.AttemptResultDTO {
	result := dto.AttemptResultDTO{
		AttemptID:       attempt.ID,
		AssessmentID:    attempt.AssessmentID,
		AssessmentTitle: attempt.Assessment.Title,
		Category:        attempt.Assessment.Category,
		Difficulty:      attempt.Assessment.Difficulty,
		Status:          attempt.Status,
		TotalMarks:      attempt.TotalMarks,
		ObtainedMarks:   attempt.ObtainedMarks,
		Percentage:      attempt.Percentage,
		PassStatus:      attempt.PassStatus,
		TimeTaken:       attempt.TimeTaken,
		StartTime:       attempt.StartTime,
		SubmitTime:      attempt.SubmitTime,
		QuestionCount:   len(attempt.Answers),
	}
	for _, answer := range attempt.Answers {
		if answer.IsCorrect {
			result.CorrectCount++
		}
		if !withAnswers {
			continue
		}
		item := dto.AnswerResultDTO{
			QuestionID:    answer.QuestionID,
			Question:      answer.Question.Text,
			OptionA:       answer.Question.OptionA,
			OptionB:       answer.Question.OptionB,
			OptionC:       answer.Question.OptionC,
			OptionD:       answer.Question.OptionD,
			Marks:         answer.Question.Marks,
			StudentAnswer: answer.Answer,
			IsCorrect:     answer.IsCorrect,
			MarksObtained: answer.MarksObtained,
		}
		if revealCorrect {
			correct := answer.Question.CorrectAnswer
			item.CorrectAnswer = &correct
		}
		result.Answers = append(result.Answers, item)
	}
	return result
}
