package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lshigami/placement-portal/internal/cache"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContextBuilder(t *testing.T, contextCache cache.ContextCache) (*gorm.DB, *contextBuilder) {
	t.Helper()
	db := testutil.NewDB(t)
	b := NewContextBuilder(
		repository.NewAssessmentRepository(db),
		repository.NewStudentAssessmentRepository(db),
		repository.NewStudentAnswerRepository(db),
		contextCache,
		5*time.Minute,
	).(*contextBuilder)
	b.now = func() time.Time { return fixedNow }
	return db, b
}

func TestContextBuilderFetch(t *testing.T) {
	db, b := newContextBuilder(t, nil)
	student := testutil.CreateStudent(t, db, "ines")

	technical, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Networks", Category: "Technical", TotalMarks: 20})
	aptitude, questions := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{
		Title:      "Ratios",
		Category:   "Aptitude",
		TotalMarks: 10,
		Questions:  []testutil.QuestionFixture{{Correct: "A", Marks: 10}},
	})
	running, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Operating Systems", Duration: 30})
	testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Untouched"})

	testutil.CompletedAttempt(t, db, student.ID, technical, 17, 85, model.PassStatusPass, fixedNow.Add(-2*time.Hour))
	weak := testutil.CompletedAttempt(t, db, student.ID, aptitude, 0, 40, model.PassStatusFail, fixedNow.Add(-time.Hour))
	require.NoError(t, db.Omit("Question").Create(&model.StudentAnswer{
		StudentAssessmentID: weak.ID,
		QuestionID:          questions[0].ID,
		Answer:              testutil.Ptr("B"),
	}).Error)
	require.NoError(t, db.Omit("Student", "Assessment", "Answers").Create(&model.StudentAssessment{
		StudentID:    student.ID,
		AssessmentID: running.ID,
		StartTime:    fixedNow.Add(-10 * time.Minute),
		Status:       model.AttemptStatusStarted,
	}).Error)

	sc, err := b.Build(context.Background(), student)
	require.NoError(t, err)

	assert.Equal(t, student.ID, sc.Profile.ID)
	assert.Len(t, sc.AvailableAssessments, 2)
	require.Len(t, sc.CompletedAssessments, 2)
	assert.Equal(t, "Ratios", sc.CompletedAssessments[0].Title)
	assert.False(t, sc.CompletedAssessments[0].Passed)

	require.Len(t, sc.InProgressAssessments, 1)
	assert.Equal(t, "Operating Systems", sc.InProgressAssessments[0].Title)
	assert.Equal(t, 1200, sc.InProgressAssessments[0].TimeRemaining)

	require.Len(t, sc.RecentMistakes, 1)
	assert.Equal(t, "B", sc.RecentMistakes[0].StudentAnswer)
	assert.Equal(t, "A", sc.RecentMistakes[0].CorrectAnswer)

	assert.Equal(t, 2, sc.Statistics.TotalCompleted)
	assert.Equal(t, 1, sc.Statistics.TotalPassed)
	assert.InDelta(t, 62.5, sc.Statistics.AverageScore, 1e-9)
	assert.Equal(t, []string{"Aptitude"}, sc.Statistics.WeakAreas)
	assert.Equal(t, []string{"Technical"}, sc.Statistics.StrongAreas)
	assert.Equal(t, fixedNow, sc.Timestamp)
}

func TestContextBuilderCaching(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	contextCache := cache.NewRedisContextCache(client)

	db, b := newContextBuilder(t, contextCache)
	student := testutil.CreateStudent(t, db, "jo")
	testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "First"})

	first, err := b.Build(ctx, student)
	require.NoError(t, err)
	require.Len(t, first.AvailableAssessments, 1)
	assert.True(t, mr.Exists(contextKeyFor(student.ID)))

	testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Second"})
	cached, err := b.Build(ctx, student)
	require.NoError(t, err)
	assert.Len(t, cached.AvailableAssessments, 1)

	require.NoError(t, contextCache.Invalidate(ctx, student.ID))
	fresh, err := b.Build(ctx, student)
	require.NoError(t, err)
	assert.Len(t, fresh.AvailableAssessments, 2)

	mr.FastForward(6 * time.Minute)
	assert.False(t, mr.Exists(contextKeyFor(student.ID)))
}

func TestContextBuilderIgnoresBrokenCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	db, b := newContextBuilder(t, cache.NewRedisContextCache(client))
	student := testutil.CreateStudent(t, db, "kai")
	require.NoError(t, mr.Set(contextKeyFor(student.ID), "{not json"))

	sc, err := b.Build(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, student.Name, sc.Profile.Name)

	mr.Close()
	sc, err = b.Build(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, student.ID, sc.Profile.ID)
}

func contextKeyFor(studentID uint) string {
	return fmt.Sprintf("student_context:%d", studentID)
}
