// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/placement-portal/internal/auth"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a private in-memory sqlite database with every model migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Assessment{},
		&model.AssessmentQuestion{},
		&model.StudentAssessment{},
		&model.StudentAnswer{},
		&model.ChatbotConversation{},
		&model.ChatbotMessage{},
	))
	return db
}

// CreateStudent inserts an approved student.
func CreateStudent(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	user := &model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: hash,
		Role:         model.RoleStudent,
		IsApproved:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// AssessmentFixture describes an assessment and its questions for CreateAssessment.
type AssessmentFixture struct {
	Title                  string
	Category               string
	Difficulty             string
	Duration               int
	PassPercentage         float64
	TotalMarks             int
	Status                 string
	StartDate              *time.Time
	EndDate                *time.Time
	AllowMultipleAttempts  bool
	ShowResultsImmediately bool
	ShowCorrectAnswers     bool
	// Questions lists correct answer keys with their marks, in order.
	Questions []QuestionFixture
}

type QuestionFixture struct {
	Correct string
	Marks   int
}

// CreateAssessment inserts the assessment, its questions and the ordered links.
func CreateAssessment(t *testing.T, db *gorm.DB, f AssessmentFixture) (*model.Assessment, []model.Question) {
	t.Helper()
	if f.Status == "" {
		f.Status = model.AssessmentStatusActive
	}
	if f.Duration == 0 {
		f.Duration = 30
	}
	if f.Category == "" {
		f.Category = "Technical"
	}
	if f.Difficulty == "" {
		f.Difficulty = model.DifficultyMedium
	}
	assessment := &model.Assessment{
		Title:                  f.Title,
		Category:               f.Category,
		Difficulty:             f.Difficulty,
		Duration:               f.Duration,
		PassPercentage:         f.PassPercentage,
		TotalMarks:             f.TotalMarks,
		Status:                 f.Status,
		StartDate:              f.StartDate,
		EndDate:                f.EndDate,
		AllowMultipleAttempts:  f.AllowMultipleAttempts,
		ShowResultsImmediately: f.ShowResultsImmediately,
		ShowCorrectAnswers:     f.ShowCorrectAnswers,
	}
	require.NoError(t, db.Create(assessment).Error)

	questions := make([]model.Question, 0, len(f.Questions))
	for i, qf := range f.Questions {
		q := model.Question{
			Text:          fmt.Sprintf("%s question %d", f.Title, i+1),
			OptionA:       "Option A",
			OptionB:       "Option B",
			OptionC:       "Option C",
			OptionD:       "Option D",
			CorrectAnswer: qf.Correct,
			Marks:         qf.Marks,
			Difficulty:    f.Difficulty,
			Category:      f.Category,
			IsActive:      true,
		}
		require.NoError(t, db.Create(&q).Error)
		require.NoError(t, db.Omit("Question").Create(&model.AssessmentQuestion{
			AssessmentID: assessment.ID,
			QuestionID:   q.ID,
			SortOrder:    i + 1,
		}).Error)
		questions = append(questions, q)
	}
	return assessment, questions
}

// CompletedAttempt inserts a finished attempt with the given score.
func CompletedAttempt(t *testing.T, db *gorm.DB, studentID uint, a *model.Assessment, obtained int, percentage float64, passStatus string, submitted time.Time) *model.StudentAssessment {
	t.Helper()
	attempt := &model.StudentAssessment{
		StudentID:     studentID,
		AssessmentID:  a.ID,
		StartTime:     submitted.Add(-10 * time.Minute),
		EndTime:       &submitted,
		SubmitTime:    &submitted,
		Status:        model.AttemptStatusCompleted,
		TotalMarks:    a.TotalMarks,
		ObtainedMarks: obtained,
		Percentage:    percentage,
		PassStatus:    passStatus,
		TimeTaken:     600,
	}
	require.NoError(t, db.WithContext(context.Background()).Omit("Student", "Assessment", "Answers").Create(attempt).Error)
	return attempt
}

func Ptr[T any](v T) *T {
	return &v
}
