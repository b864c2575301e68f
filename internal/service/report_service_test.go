package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type reportFixture struct {
	technical *model.Assessment
	aptitude  *model.Assessment
	questions []model.Question
	passed    *model.StudentAssessment
}

func seedReport(t *testing.T, db *gorm.DB) reportFixture {
	t.Helper()
	quinn := testutil.CreateStudent(t, db, "quinn")
	rosa := testutil.CreateStudent(t, db, "rosa")
	pending := testutil.CreateStudent(t, db, "sam")
	require.NoError(t, db.Model(pending).Update("is_approved", false).Error)

	technical, questions := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{
		Title:      "Algorithms",
		Category:   "Technical",
		TotalMarks: 10,
		Questions:  []testutil.QuestionFixture{{Correct: "A", Marks: 5}, {Correct: "B", Marks: 5}},
	})
	aptitude, _ := testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Averages", Category: "Aptitude", TotalMarks: 10})
	testutil.CreateAssessment(t, db, testutil.AssessmentFixture{Title: "Unused", Status: model.AssessmentStatusInactive})

	passed := testutil.CompletedAttempt(t, db, quinn.ID, technical, 8, 80, model.PassStatusPass, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	failed := testutil.CompletedAttempt(t, db, rosa.ID, technical, 4, 40, model.PassStatusFail, time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC))
	testutil.CompletedAttempt(t, db, quinn.ID, aptitude, 10, 100, model.PassStatusPass, time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC))

	answers := []model.StudentAnswer{
		{StudentAssessmentID: passed.ID, QuestionID: questions[0].ID, Answer: testutil.Ptr("A"), IsCorrect: true, MarksObtained: 5},
		{StudentAssessmentID: failed.ID, QuestionID: questions[0].ID, Answer: testutil.Ptr("C")},
		{StudentAssessmentID: failed.ID, QuestionID: questions[1].ID},
	}
	require.NoError(t, db.Omit("Question").Create(&answers).Error)
	return reportFixture{technical: technical, aptitude: aptitude, questions: questions, passed: passed}
}

func TestReportOverview(t *testing.T) {
	db := testutil.NewDB(t)
	seedReport(t, db)
	svc := NewReportService(repository.NewReportRepository(db))

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	s := overview.Summary
	assert.Equal(t, int64(3), s.TotalStudents)
	assert.Equal(t, int64(1), s.PendingStudents)
	assert.Equal(t, int64(3), s.TotalAssessments)
	assert.Equal(t, int64(2), s.ActiveAssessments)
	assert.Equal(t, int64(2), s.TotalQuestions)
	assert.Equal(t, int64(3), s.CompletedAttempts)
	assert.InDelta(t, 73.33, s.AveragePercentage, 1e-9)
	assert.InDelta(t, 66.67, s.PassRate, 1e-9)

	require.Len(t, overview.Categories, 2)
	assert.Equal(t, "Aptitude", overview.Categories[0].Category)
	technical := overview.Categories[1]
	assert.Equal(t, int64(2), technical.Attempts)
	assert.InDelta(t, 50.0, technical.PassRate, 1e-9)
	assert.InDelta(t, 60.0, technical.AveragePercentage, 1e-9)

	require.Len(t, overview.Assessments, 3)
	assert.Equal(t, "Algorithms", overview.Assessments[0].Title)
	assert.InDelta(t, 80.0, overview.Assessments[0].HighestPercentage, 1e-9)
	assert.InDelta(t, 40.0, overview.Assessments[0].LowestPercentage, 1e-9)
	assert.Equal(t, "Unused", overview.Assessments[2].Title)
	assert.Zero(t, overview.Assessments[2].Attempts)
}

func TestReportAssessmentAndStudents(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	f := seedReport(t, db)
	svc := NewReportService(repository.NewReportRepository(db))

	report, err := svc.AssessmentReport(ctx, f.technical.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Stats.Attempts)
	require.Len(t, report.Questions, 2)
	first := report.Questions[0]
	assert.Equal(t, int64(2), first.TotalAnswers)
	assert.Equal(t, int64(1), first.CorrectCount)
	assert.InDelta(t, 50.0, first.CorrectRate, 1e-9)
	assert.Equal(t, int64(1), first.OptionA)
	assert.Equal(t, int64(1), first.OptionC)
	assert.Equal(t, int64(1), report.Questions[1].TotalAnswers)
	assert.Zero(t, report.Questions[1].CorrectCount)

	_, err = svc.AssessmentReport(ctx, 777)
	assert.ErrorIs(t, err, ErrNotFound)

	students, err := svc.StudentPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "quinn", students[0].Name)
	assert.InDelta(t, 90.0, students[0].AveragePercentage, 1e-9)
	assert.Equal(t, int64(2), students[0].Passed)
}

func TestReportExport(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	f := seedReport(t, db)
	svc := NewReportService(repository.NewReportRepository(db))

	t.Run("csv has a header and one line per completed attempt", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := svc.ExportCSV(ctx, repository.ExportFilter{}, &buf)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, exportHeader, records[0])
		assert.Equal(t, "Averages", records[1][3])
		assert.Equal(t, "100.00", records[1][7])
		assert.Equal(t, "2025-03-08T10:00:00Z", records[1][10])
	})

	t.Run("filters by assessment", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := svc.ExportCSV(ctx, repository.ExportFilter{AssessmentID: &f.technical.ID}, &buf)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("filters by submission window", func(t *testing.T) {
		from := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)
		var buf bytes.Buffer
		n, err := svc.ExportCSV(ctx, repository.ExportFilter{From: &from, To: &to}, &buf)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Contains(t, buf.String(), "rosa")
	})

	t.Run("xlsx workbook carries the same rows", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := svc.ExportXLSX(ctx, repository.ExportFilter{}, &buf)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		book, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer book.Close()
		rows, err := book.GetRows(exportSheet)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, exportHeader, rows[0])
		assert.Equal(t, "Averages", rows[1][3])
	})
}
