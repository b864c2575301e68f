package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
)

const limitedListSize = 5

var relevantKeywords = []string{
	"assessment", "test", "exam", "quiz", "available", "take", "start",
	"result", "score", "performance", "grade", "mark", "pass", "fail",
	"stat", "progress", "how am i", "how many", "doing",
	"technical", "aptitude", "category", "subject", "topic",
	"recent", "last", "latest", "history", "completed", "finished",
	"best", "worst", "highest", "lowest", "top", "improve", "weak", "strong",
	"profile", "my name", "who am i", "account", "email",
	"help", "guide", "what", "show", "tell", "how", "when", "where", "can",
	"study", "learn", "prepare", "practice", "ready",
}

var fillerWords = map[string]bool{
	"the": true, "is": true, "are": true, "was": true, "were": true, "a": true, "an": true, "and": true,
	"or": true, "but": true, "in": true, "on": true, "at": true, "to": true, "for": true,
}

var limitedSuggestions = []string{
	"Show available assessments",
	"Show my statistics",
	"What's my best score?",
	"Show technical assessments",
	"What's my recent activity?",
}

var offTopicSuggestions = []string{
	"Show available assessments",
	"What are my results?",
	"How am I doing?",
	"Show my statistics",
	"What should I study next?",
}

// LimitedReply is an answer produced from the database alone.
type LimitedReply struct {
	Message     string
	Intent      string
	Suggestions []string
	Actions     []map[string]any
}

// LimitedResponder answers chat messages from live data when the study assistant is unreachable.
type LimitedResponder interface {
	Respond(ctx context.Context, student *model.User, message string) (*LimitedReply, error)
}

type limitedResponder struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.StudentAssessmentRepository
	now            func() time.Time
}

func NewLimitedResponder(assessmentRepo repository.AssessmentRepository, attemptRepo repository.StudentAssessmentRepository) LimitedResponder {
	return &limitedResponder{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func isRelevant(query string) bool {
	if containsAny(query, relevantKeywords...) {
		return true
	}
	// Short greetings are always welcome.
	return len(query) <= 10 && containsAny(query, "hi", "hello", "hey")
}

func (r *limitedResponder) Respond(ctx context.Context, student *model.User, message string) (*LimitedReply, error) {
	query := strings.ToLower(strings.TrimSpace(message))

	if !isRelevant(query) && len(query) > 2 {
		log.Debug().Uint("studentID", student.ID).Msg("Respond: off-topic query")
		return offTopicReply(query), nil
	}

	var (
		text   string
		intent string
		err    error
	)
	switch {
	case containsAny(query, "assessment", "test", "exam", "available"):
		intent = "available_assessments"
		text, err = r.available(ctx, student)
	case containsAny(query, "result", "score", "performance"):
		intent = "results"
		text, err = r.results(ctx, student)
	case containsAny(query, "stat", "progress", "how am i", "how many"):
		intent = "statistics"
		text, err = r.statistics(ctx, student)
	case containsAny(query, "technical", "aptitude", "category"):
		intent = "category"
		category := "Aptitude"
		if strings.Contains(query, "technical") {
			category = "Technical"
		}
		text, err = r.category(ctx, student, category)
	case containsAny(query, "recent", "last", "latest"):
		intent = "recent_activity"
		text, err = r.recent(ctx, student)
	case containsAny(query, "best", "highest", "top"):
		intent = "best_performance"
		text, err = r.extreme(ctx, student, true)
	case containsAny(query, "worst", "lowest", "improve"):
		intent = "improvement"
		text, err = r.extreme(ctx, student, false)
	case containsAny(query, "profile", "my name", "who am i"):
		intent = "profile"
		text, err = r.profile(ctx, student)
	case containsAny(query, "help", "how", "guide"):
		intent = "help"
		text = helpText
	default:
		intent = "greeting"
		text, err = r.greeting(ctx, student)
	}
	if err != nil {
		return nil, err
	}
	return &LimitedReply{
		Message:     text,
		Intent:      intent,
		Suggestions: append([]string(nil), limitedSuggestions...),
		Actions: []map[string]any{
			{"type": "link", "label": "View Assessments", "url": "/student/assessments"},
			{"type": "link", "label": "View History", "url": "/student/history"},
		},
	}, nil
}

func offTopicReply(query string) *LimitedReply {
	topic := "That"
	for _, word := range strings.Fields(query) {
		if len(word) > 2 && !fillerWords[word] {
			topic = strings.ToUpper(word[:1]) + word[1:]
			break
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hmm, %s sounds interesting! But let's stay focused on your studies.\n\n", topic)
	b.WriteString("I'm your study assistant and can help you with:\n\n")
	b.WriteString("• Available assessments\n• Your test results\n• Performance statistics\n• Study progress tracking\n\n")
	b.WriteString("Try asking:\n• 'Show available assessments'\n• 'What are my results?'\n• 'How am I doing?'")
	return &LimitedReply{
		Message:     b.String(),
		Intent:      "off_topic",
		Suggestions: append([]string(nil), offTopicSuggestions...),
		Actions: []map[string]any{
			{"type": "link", "label": "View Assessments", "url": "/student/assessments"},
		},
	}
}

func (r *limitedResponder) available(ctx context.Context, student *model.User) (string, error) {
	assessments, err := r.assessmentRepo.FindAvailableFor(ctx, student.ID, r.now())
	if err != nil {
		return "", fmt.Errorf("failed to load available assessments: %w", err)
	}
	if len(assessments) == 0 {
		return "LIMITED MODE:\n\nNo assessments are currently available. Please check back later!", nil
	}
	var b strings.Builder
	b.WriteString("LIMITED MODE - Database Query Results:\n\n")
	fmt.Fprintf(&b, "You have %d assessment(s) available:\n\n", len(assessments))
	for i, a := range assessments {
		if i == limitedListSize {
			break
		}
		fmt.Fprintf(&b, "• %s\n   Category: %s | Duration: %d min | %s\n\n", a.Title, a.Category, a.Duration, a.Difficulty)
	}
	b.WriteString("Open 'View Assessments' to start!")
	return b.String(), nil
}

func (r *limitedResponder) results(ctx context.Context, student *model.User) (string, error) {
	completed, err := r.attemptRepo.ListCompletedByStudent(ctx, student.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load results: %w", err)
	}
	if len(completed) == 0 {
		return "LIMITED MODE:\n\nYou haven't completed any assessments yet. Take an assessment to see your results!", nil
	}
	var b strings.Builder
	b.WriteString("LIMITED MODE - Your Recent Results:\n\n")
	obtained, total := 0, 0
	for i, a := range completed {
		if i == limitedListSize {
			break
		}
		fmt.Fprintf(&b, "• %s\n   Score: %d/%d (%.2f%%) %s\n", a.Assessment.Title, a.ObtainedMarks, a.TotalMarks, a.Percentage, passLabel(a.PassStatus))
		if a.SubmitTime != nil {
			fmt.Fprintf(&b, "   Date: %s\n", a.SubmitTime.Format("Jan 02, 2006"))
		}
		b.WriteString("\n")
		obtained += a.ObtainedMarks
		total += a.TotalMarks
	}
	fmt.Fprintf(&b, "Overall Average: %.2f%%", Ratio(obtained, total))
	return b.String(), nil
}

func (r *limitedResponder) statistics(ctx context.Context, student *model.User) (string, error) {
	completed, err := r.attemptRepo.ListCompletedByStudent(ctx, student.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load results: %w", err)
	}
	available, err := r.assessmentRepo.CountAvailableFor(ctx, student.ID, r.now())
	if err != nil {
		return "", fmt.Errorf("failed to count available assessments: %w", err)
	}
	stats := summarize(completed)

	var b strings.Builder
	b.WriteString("LIMITED MODE - Your Statistics:\n\n")
	fmt.Fprintf(&b, "Tests Completed: %d\n", stats.Total)
	fmt.Fprintf(&b, "Tests Available: %d\n", available)
	fmt.Fprintf(&b, "Passed: %d\n", stats.Passed)
	fmt.Fprintf(&b, "Failed: %d\n", stats.Total-stats.Passed)
	fmt.Fprintf(&b, "Average Score: %.2f%%\n", stats.Average)
	fmt.Fprintf(&b, "Pass Rate: %.2f%%\n\n", Ratio(stats.Passed, stats.Total))
	switch {
	case stats.Average >= strongAreaThreshold:
		b.WriteString("Excellent performance! Keep it up!")
	case stats.Average >= weakAreaThreshold:
		b.WriteString("Good work! You're on the right track!")
	default:
		b.WriteString("Keep practicing! You can improve!")
	}
	return b.String(), nil
}

func (r *limitedResponder) category(ctx context.Context, student *model.User, category string) (string, error) {
	assessments, err := r.assessmentRepo.FindAvailableFor(ctx, student.ID, r.now())
	if err != nil {
		return "", fmt.Errorf("failed to load available assessments: %w", err)
	}
	var matching []model.Assessment
	for _, a := range assessments {
		if strings.EqualFold(a.Category, category) {
			matching = append(matching, a)
		}
	}
	if len(matching) == 0 {
		return fmt.Sprintf("LIMITED MODE:\n\nNo %s assessments are currently available.", category), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "LIMITED MODE - %s Assessments:\n\n", category)
	fmt.Fprintf(&b, "Found %d %s assessment(s):\n\n", len(matching), category)
	for i, a := range matching {
		if i == limitedListSize {
			break
		}
		fmt.Fprintf(&b, "• %s (%d min, %s)\n", a.Title, a.Duration, a.Difficulty)
	}
	return b.String(), nil
}

func (r *limitedResponder) recent(ctx context.Context, student *model.User) (string, error) {
	completed, err := r.attemptRepo.ListCompletedByStudent(ctx, student.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load results: %w", err)
	}
	if len(completed) == 0 {
		return "LIMITED MODE:\n\nNo recent activity found. Start an assessment to track your progress!", nil
	}
	latest := completed[0]
	var b strings.Builder
	b.WriteString("LIMITED MODE - Your Latest Activity:\n\n")
	fmt.Fprintf(&b, "Assessment: %s\n", latest.Assessment.Title)
	fmt.Fprintf(&b, "Score: %d/%d (%.2f%%)\n", latest.ObtainedMarks, latest.TotalMarks, latest.Percentage)
	fmt.Fprintf(&b, "Status: %s\n", passLabel(latest.PassStatus))
	if latest.SubmitTime != nil {
		fmt.Fprintf(&b, "Date: %s\n", latest.SubmitTime.Format("Jan 02, 2006 03:04 PM"))
	}
	fmt.Fprintf(&b, "Time Taken: %d minutes\n", latest.TimeTaken/60)
	return b.String(), nil
}

// extreme reports the best (or, when best is false, the worst) completed attempt.
func (r *limitedResponder) extreme(ctx context.Context, student *model.User, best bool) (string, error) {
	completed, err := r.attemptRepo.ListCompletedByStudent(ctx, student.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load results: %w", err)
	}
	if len(completed) == 0 {
		if best {
			return "LIMITED MODE:\n\nNo results yet. Take an assessment to set your best score!", nil
		}
		return "LIMITED MODE:\n\nNo results yet. Take assessments to identify areas for improvement!", nil
	}
	pick := completed[0]
	for _, a := range completed[1:] {
		if (best && a.Percentage > pick.Percentage) || (!best && a.Percentage < pick.Percentage) {
			pick = a
		}
	}

	var b strings.Builder
	if best {
		b.WriteString("LIMITED MODE - Your Best Performance:\n\n")
	} else {
		b.WriteString("LIMITED MODE - Area for Improvement:\n\n")
	}
	fmt.Fprintf(&b, "Assessment: %s\n", pick.Assessment.Title)
	fmt.Fprintf(&b, "Score: %d/%d (%.2f%%)\n", pick.ObtainedMarks, pick.TotalMarks, pick.Percentage)
	if pick.SubmitTime != nil {
		fmt.Fprintf(&b, "Date: %s\n", pick.SubmitTime.Format("Jan 02, 2006"))
	}
	if best {
		b.WriteString("\nGreat job! Keep up the excellent work!")
	} else {
		b.WriteString("\nFocus on this area to improve your overall performance!")
	}
	return b.String(), nil
}

func (r *limitedResponder) profile(ctx context.Context, student *model.User) (string, error) {
	completed, err := r.attemptRepo.ListCompletedByStudent(ctx, student.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load results: %w", err)
	}
	var b strings.Builder
	b.WriteString("LIMITED MODE - Your Profile:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", student.Name)
	fmt.Fprintf(&b, "Email: %s\n", student.Email)
	b.WriteString("Role: Student\n")
	fmt.Fprintf(&b, "Joined: %s\n", student.CreatedAt.Format("Jan 02, 2006"))
	fmt.Fprintf(&b, "Tests Completed: %d\n", len(completed))
	return b.String(), nil
}

func (r *limitedResponder) greeting(ctx context.Context, student *model.User) (string, error) {
	available, err := r.assessmentRepo.CountAvailableFor(ctx, student.ID, r.now())
	if err != nil {
		return "", fmt.Errorf("failed to count available assessments: %w", err)
	}
	completed, err := r.attemptRepo.ListCompletedByStudent(ctx, student.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load results: %w", err)
	}
	var b strings.Builder
	b.WriteString("LIMITED MODE\n\n")
	fmt.Fprintf(&b, "Hello %s!\n\n", student.Name)
	b.WriteString("Quick Stats:\n")
	fmt.Fprintf(&b, "• %d assessments available\n", available)
	fmt.Fprintf(&b, "• %d tests completed\n\n", len(completed))
	b.WriteString("I can help you with:\n• Available assessments\n• Your test results\n• Performance statistics\n• Study guidance\n\n")
	b.WriteString("What would you like to know?")
	return b.String(), nil
}

const helpText = "LIMITED MODE - I can help you with:\n\n" +
	"Assessments:\n   • 'Show available assessments'\n   • 'Show technical assessments'\n   • 'Show aptitude tests'\n\n" +
	"Results:\n   • 'Show my results'\n   • 'What's my best score?'\n   • 'Show my statistics'\n\n" +
	"Progress:\n   • 'How am I doing?'\n   • 'Show my progress'\n   • 'What's my recent activity?'\n\n" +
	"What would you like to know?"

func passLabel(status string) string {
	if status == model.PassStatusPass {
		return "Passed"
	}
	return "Failed"
}
