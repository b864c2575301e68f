package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/placement-portal/internal/cache"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newAttemptService(t *testing.T) (*gorm.DB, *attemptService) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewAttemptService(
		db,
		repository.NewAssessmentRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewStudentAssessmentRepository(db),
		repository.NewStudentAnswerRepository(db),
		nil,
		nil,
	).(*attemptService)
	svc.now = func() time.Time { return fixedNow }
	return db, svc
}

func twoQuestionAssessment(t *testing.T, db *gorm.DB, totalMarks int) (*model.Assessment, []model.Question) {
	return testutil.CreateAssessment(t, db, testutil.AssessmentFixture{
		Title:                  "Aptitude Basics",
		PassPercentage:         50,
		TotalMarks:             totalMarks,
		ShowResultsImmediately: true,
		Questions: []testutil.QuestionFixture{
			{Correct: "A", Marks: 5},
			{Correct: "C", Marks: 5},
		},
	})
}

func countAttempts(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&model.StudentAssessment{}).Count(&n).Error)
	return n
}

func TestAttemptStart(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an assessment whose end date has passed without creating a row", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "asha")
		assessment, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{
			Title:      "Expired",
			TotalMarks: 10,
			EndDate:    testutil.Ptr(fixedNow.Add(-time.Hour)),
			Questions:  []testutil.QuestionFixture{{Correct: "A", Marks: 10}},
		})

		_, err := svc.Start(ctx, assessment.ID, student.ID)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Zero(t, countAttempts(t, db))
	})

	t.Run("rejects inactive and not yet open assessments", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "ben")
		inactive, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Off", Status: model.AssessmentStatusInactive})
		future, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Soon", StartDate: testutil.Ptr(fixedNow.Add(time.Hour))})

		_, err := svc.Start(ctx, inactive.ID, student.ID)
		assert.ErrorIs(t, err, ErrUnavailable)
		_, err = svc.Start(ctx, future.ID, student.ID)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unknown assessment is not found", func(t *testing.T) {
		_, svc := newAttemptService(t)
		_, err := svc.Start(ctx, 999, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("creates an attempt and resumes it on the next call", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "chen")
		assessment, _ := twoQuestionAssessment(t, db, 10)

		first, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)
		assert.False(t, first.Resumed)
		assert.Equal(t, model.AttemptStatusStarted, first.Status)
		assert.Equal(t, 10, first.TotalMarks)
		assert.Equal(t, 30*60, first.RemainingSeconds)

		svc.now = func() time.Time { return fixedNow.Add(5 * time.Minute) }
		second, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)
		assert.True(t, second.Resumed)
		assert.Equal(t, first.AttemptID, second.AttemptID)
		assert.Equal(t, 25*60, second.RemainingSeconds)
		assert.EqualValues(t, 1, countAttempts(t, db))
	})

	t.Run("refuses a second attempt when multiple attempts are not allowed", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "dev")
		assessment, _ := twoQuestionAssessment(t, db, 10)
		testutil.CompletedAttempt(t, db, student.ID, assessment, 10, 100, model.PassStatusPass, fixedNow.Add(-24*time.Hour))

		_, err := svc.Start(ctx, assessment.ID, student.ID)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})
}

func TestAttemptSaveAndTake(t *testing.T) {
	ctx := context.Background()
	db, svc := newAttemptService(t)
	student := testutil.CreateStudent(t, db, "esha")
	assessment, questions := twoQuestionAssessment(t, db, 10)
	started, err := svc.Start(ctx, assessment.ID, student.ID)
	require.NoError(t, err)

	t.Run("saved answers come back normalized on take", func(t *testing.T) {
		resp, err := svc.SaveProgress(ctx, assessment.ID, started.AttemptID, student.ID, map[uint]*string{
			questions[0].ID: testutil.Ptr(" b "),
			questions[1].ID: nil,
			9999:            testutil.Ptr("A"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Saved)

		take, err := svc.Take(ctx, assessment.ID, started.AttemptID, student.ID)
		require.NoError(t, err)
		require.Len(t, take.Questions, 2)
		assert.Equal(t, questions[0].ID, take.Questions[0].ID)
		assert.Equal(t, map[uint]string{questions[0].ID: "B"}, take.SavedAnswers)
	})

	t.Run("a canonical key round trips unchanged", func(t *testing.T) {
		_, err := svc.SaveProgress(ctx, assessment.ID, started.AttemptID, student.ID, map[uint]*string{
			questions[0].ID: testutil.Ptr("D"),
		})
		require.NoError(t, err)

		take, err := svc.Take(ctx, assessment.ID, started.AttemptID, student.ID)
		require.NoError(t, err)
		assert.Equal(t, map[uint]string{questions[0].ID: "D"}, take.SavedAnswers)
	})

	t.Run("a later save overwrites the earlier answer", func(t *testing.T) {
		_, err := svc.SaveProgress(ctx, assessment.ID, started.AttemptID, student.ID, map[uint]*string{
			questions[0].ID: testutil.Ptr("a"),
		})
		require.NoError(t, err)

		take, err := svc.Take(ctx, assessment.ID, started.AttemptID, student.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", take.SavedAnswers[questions[0].ID])
	})

	t.Run("an invalid key is rejected and nothing is written", func(t *testing.T) {
		_, err := svc.SaveProgress(ctx, assessment.ID, started.AttemptID, student.ID, map[uint]*string{
			questions[1].ID: testutil.Ptr("E"),
		})
		assert.ErrorIs(t, err, ErrValidation)

		take, err := svc.Take(ctx, assessment.ID, started.AttemptID, student.ID)
		require.NoError(t, err)
		_, saved := take.SavedAnswers[questions[1].ID]
		assert.False(t, saved)
	})

	t.Run("another student cannot save into the attempt", func(t *testing.T) {
		other := testutil.CreateStudent(t, db, "farah")
		_, err := svc.SaveProgress(ctx, assessment.ID, started.AttemptID, other.ID, map[uint]*string{
			questions[1].ID: testutil.Ptr("C"),
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAttemptSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("half the marks at a fifty percent threshold passes and unanswered scores zero", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "gita")
		assessment, questions := twoQuestionAssessment(t, db, 10)
		started, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)
		_, err = svc.SaveProgress(ctx, assessment.ID, started.AttemptID, student.ID, map[uint]*string{
			questions[0].ID: testutil.Ptr("A"),
		})
		require.NoError(t, err)

		svc.now = func() time.Time { return fixedNow.Add(7 * time.Minute) }
		result, err := svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, model.AttemptStatusCompleted, result.Status)
		assert.Equal(t, 5, result.ObtainedMarks)
		assert.Equal(t, 10, result.TotalMarks)
		assert.InDelta(t, 50.0, result.Percentage, 1e-9)
		assert.Equal(t, model.PassStatusPass, result.PassStatus)
		assert.Equal(t, 420, result.TimeTaken)
		assert.Equal(t, 1, result.CorrectCount)
		assert.Equal(t, 2, result.QuestionCount)

		require.Len(t, result.Answers, 2)
		byQuestion := map[uint]bool{}
		for _, a := range result.Answers {
			byQuestion[a.QuestionID] = true
			if a.QuestionID == questions[1].ID {
				assert.Nil(t, a.StudentAnswer)
				assert.False(t, a.IsCorrect)
				assert.Zero(t, a.MarksObtained)
			}
			assert.Nil(t, a.CorrectAnswer)
		}
		assert.Len(t, byQuestion, 2)
	})

	t.Run("zero total marks yields zero percent", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "hari")
		assessment, questions := twoQuestionAssessment(t, db, 0)
		started, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)
		_, err = svc.SaveProgress(ctx, assessment.ID, started.AttemptID, student.ID, map[uint]*string{
			questions[0].ID: testutil.Ptr("A"),
			questions[1].ID: testutil.Ptr("C"),
		})
		require.NoError(t, err)

		result, err := svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, 10, result.ObtainedMarks)
		assert.Zero(t, result.Percentage)
		assert.Equal(t, model.PassStatusFail, result.PassStatus)
	})

	t.Run("a second submit is rejected", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "ira")
		assessment, _ := twoQuestionAssessment(t, db, 10)
		started, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, nil)
		require.NoError(t, err)
		_, err = svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, nil)
		assert.ErrorIs(t, err, ErrInvalidState)

		var answers int64
		require.NoError(t, db.Model(&model.StudentAnswer{}).Count(&answers).Error)
		assert.EqualValues(t, 2, answers)
	})

	t.Run("client elapsed time is capped to the duration", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "jay")
		assessment, _ := twoQuestionAssessment(t, db, 10)
		started, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)

		result, err := svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, testutil.Ptr(99999))
		require.NoError(t, err)
		assert.Equal(t, 30*60, result.TimeTaken)
	})

	t.Run("a foreign attempt is forbidden and left unchanged", func(t *testing.T) {
		db, svc := newAttemptService(t)
		owner := testutil.CreateStudent(t, db, "kiran")
		intruder := testutil.CreateStudent(t, db, "leo")
		assessment, _ := twoQuestionAssessment(t, db, 10)
		started, err := svc.Start(ctx, assessment.ID, owner.ID)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, assessment.ID, started.AttemptID, intruder.ID, nil)
		assert.ErrorIs(t, err, ErrForbidden)

		var attempt model.StudentAssessment
		require.NoError(t, db.First(&attempt, started.AttemptID).Error)
		assert.Equal(t, model.AttemptStatusStarted, attempt.Status)
		assert.Nil(t, attempt.SubmitTime)
	})

	t.Run("an attempt of another assessment is not found", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "mira")
		assessment, _ := twoQuestionAssessment(t, db, 10)
		other, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Other"})
		started, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, other.ID, started.AttemptID, student.ID, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("correct answers are revealed only when configured", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "nia")
		assessment, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{
			Title:                  "Reveal",
			PassPercentage:         60,
			TotalMarks:             4,
			ShowResultsImmediately: true,
			ShowCorrectAnswers:     true,
			Questions:              []testutil.QuestionFixture{{Correct: "D", Marks: 4}},
		})
		started, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)

		result, err := svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, nil)
		require.NoError(t, err)
		require.Len(t, result.Answers, 1)
		require.NotNil(t, result.Answers[0].CorrectAnswer)
		assert.Equal(t, "D", *result.Answers[0].CorrectAnswer)
		assert.Equal(t, model.PassStatusFail, result.PassStatus)
	})
}

// staleStartedLookup hides the existing started attempt from the first lookup,
// as happens to the slower of two concurrent Start calls.
type staleStartedLookup struct {
	repository.StudentAssessmentRepository
	missed bool
}

func (r *staleStartedLookup) FindStarted(ctx context.Context, studentID, assessmentID uint) (*model.StudentAssessment, error) {
	if !r.missed {
		r.missed = true
		return nil, gorm.ErrRecordNotFound
	}
	return r.StudentAssessmentRepository.FindStarted(ctx, studentID, assessmentID)
}

// failingComplete lets the submit transaction run up to finalization and then fails it.
type failingComplete struct {
	repository.StudentAssessmentRepository
}

func (r failingComplete) WithTx(tx *gorm.DB) repository.StudentAssessmentRepository {
	return failingComplete{r.StudentAssessmentRepository.WithTx(tx)}
}

func (r failingComplete) Complete(context.Context, uint, repository.AttemptOutcome) (bool, error) {
	return false, errors.New("connection reset by peer")
}

type invalidationLog struct {
	cache.NoopContextCache
	mu       sync.Mutex
	students []uint
}

func (l *invalidationLog) Invalidate(_ context.Context, studentID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.students = append(l.students, studentID)
	return nil
}

func (l *invalidationLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.students)
}

func TestAttemptStartKeepsOneStartedAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("the database refuses a second started attempt", func(t *testing.T) {
		db := testutil.NewDB(t)
		student := testutil.CreateStudent(t, db, "oona")
		assessment, _ := twoQuestionAssessment(t, db, 10)
		repo := repository.NewStudentAssessmentRepository(db)

		started := func() *model.StudentAssessment {
			return &model.StudentAssessment{StudentID: student.ID, AssessmentID: assessment.ID, StartTime: fixedNow, Status: model.AttemptStatusStarted}
		}
		require.NoError(t, repo.Create(ctx, started()))
		assert.Error(t, repo.Create(ctx, started()))

		testutil.CompletedAttempt(t, db, student.ID, assessment, 5, 50, model.PassStatusPass, fixedNow)
		testutil.CompletedAttempt(t, db, student.ID, assessment, 6, 60, model.PassStatusPass, fixedNow)
		assert.EqualValues(t, 3, countAttempts(t, db))
	})

	t.Run("a start that loses the race resumes the winner", func(t *testing.T) {
		db, svc := newAttemptService(t)
		student := testutil.CreateStudent(t, db, "pia")
		assessment, _ := twoQuestionAssessment(t, db, 10)

		winner, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)

		svc.attemptRepo = &staleStartedLookup{StudentAssessmentRepository: svc.attemptRepo}
		loser, err := svc.Start(ctx, assessment.ID, student.ID)
		require.NoError(t, err)
		assert.True(t, loser.Resumed)
		assert.Equal(t, winner.AttemptID, loser.AttemptID)
		assert.EqualValues(t, 1, countAttempts(t, db))
	})
}

func TestAttemptSubmitRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db, svc := newAttemptService(t)
	student := testutil.CreateStudent(t, db, "quentin")
	assessment, questions := twoQuestionAssessment(t, db, 10)
	started, err := svc.Start(ctx, assessment.ID, student.ID)
	require.NoError(t, err)
	_, err = svc.SaveProgress(ctx, assessment.ID, started.AttemptID, student.ID, map[uint]*string{
		questions[0].ID: testutil.Ptr("A"),
	})
	require.NoError(t, err)

	svc.attemptRepo = failingComplete{svc.attemptRepo}
	_, err = svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidState)

	var attempt model.StudentAssessment
	require.NoError(t, db.First(&attempt, started.AttemptID).Error)
	assert.Equal(t, model.AttemptStatusStarted, attempt.Status)
	assert.Nil(t, attempt.SubmitTime)
	assert.Zero(t, attempt.ObtainedMarks)

	var answers []model.StudentAnswer
	require.NoError(t, db.Where("student_assessment_id = ?", started.AttemptID).Find(&answers).Error)
	require.Len(t, answers, 1)
	assert.Equal(t, questions[0].ID, answers[0].QuestionID)
	assert.False(t, answers[0].IsCorrect)
	assert.Zero(t, answers[0].MarksObtained)

	svc.attemptRepo = repository.NewStudentAssessmentRepository(db)
	result, err := svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, result.ObtainedMarks)
}

func TestAttemptInvalidatesChatbotContext(t *testing.T) {
	ctx := context.Background()
	db, svc := newAttemptService(t)
	invalidations := &invalidationLog{}
	svc.contextCache = invalidations
	student := testutil.CreateStudent(t, db, "rhea")
	assessment, _ := twoQuestionAssessment(t, db, 10)

	started, err := svc.Start(ctx, assessment.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, invalidations.count())

	_, err = svc.Start(ctx, assessment.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, invalidations.count(), "resuming does not change the context")

	_, err = svc.Submit(ctx, assessment.ID, started.AttemptID, student.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, invalidations.count())
	assert.Equal(t, []uint{student.ID, student.ID}, invalidations.students)
}
