package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Results"

var exportHeader = []string{
	"Attempt ID", "Student Name", "Student Email", "Assessment", "Category",
	"Obtained Marks", "Total Marks", "Percentage", "Result", "Time Taken (s)", "Submitted At",
}

// ReportService builds the admin reports and result exports.
type ReportService interface {
	Overview(ctx context.Context) (*dto.OverviewReportDTO, error)
	AssessmentReport(ctx context.Context, assessmentID uint) (*dto.AssessmentReportDTO, error)
	StudentPerformance(ctx context.Context) ([]dto.StudentStatsDTO, error)
	CategoryAnalysis(ctx context.Context) ([]dto.CategoryStatsDTO, error)
	ExportCSV(ctx context.Context, filter repository.ExportFilter, w io.Writer) (int, error)
	ExportXLSX(ctx context.Context, filter repository.ExportFilter, w io.Writer) (int, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) Overview(ctx context.Context) (*dto.OverviewReportDTO, error) {
	summary, err := s.reportRepo.Summary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load report summary")
		return nil, fmt.Errorf("error loading summary: %w", err)
	}
	assessments, err := s.reportRepo.AssessmentOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading assessment stats: %w", err)
	}
	categories, err := s.CategoryAnalysis(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.OverviewReportDTO{
		Assessments: make([]dto.AssessmentStatsDTO, 0, len(assessments)),
		Categories:  categories,
	}
	if err := copier.Copy(&resp.Summary, summary); err != nil {
		return nil, fmt.Errorf("error mapping summary: %w", err)
	}

	var attempts, passed int64
	weighted := decimal.Zero
	for _, c := range categories {
		attempts += c.Attempts
		passed += c.Passed
		weighted = weighted.Add(decimal.NewFromFloat(c.AveragePercentage).Mul(decimal.NewFromInt(c.Attempts)))
	}
	if attempts > 0 {
		resp.Summary.AveragePercentage = weighted.Div(decimal.NewFromInt(attempts)).Round(2).InexactFloat64()
	}
	resp.Summary.PassRate = Ratio(int(passed), int(attempts))

	for i := range assessments {
		resp.Assessments = append(resp.Assessments, toAssessmentStats(&assessments[i]))
	}
	return resp, nil
}

func (s *reportService) AssessmentReport(ctx context.Context, assessmentID uint) (*dto.AssessmentReportDTO, error) {
	stats, err := s.reportRepo.AssessmentStatsByID(ctx, assessmentID)
	if err != nil {
		return nil, notFoundOr(err, "assessment %d", assessmentID)
	}
	questions, err := s.reportRepo.QuestionAnalysis(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("error analysing questions: %w", err)
	}

	resp := &dto.AssessmentReportDTO{
		Stats:     toAssessmentStats(stats),
		Questions: make([]dto.QuestionStatsDTO, 0, len(questions)),
	}
	for _, q := range questions {
		var out dto.QuestionStatsDTO
		if err := copier.Copy(&out, &q); err != nil {
			return nil, fmt.Errorf("error mapping question stats: %w", err)
		}
		out.CorrectRate = Ratio(int(q.CorrectCount), int(q.TotalAnswers))
		resp.Questions = append(resp.Questions, out)
	}
	return resp, nil
}

func (s *reportService) StudentPerformance(ctx context.Context) ([]dto.StudentStatsDTO, error) {
	rows, err := s.reportRepo.StudentPerformance(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading student performance: %w", err)
	}
	out := make([]dto.StudentStatsDTO, 0, len(rows))
	if err := copier.Copy(&out, &rows); err != nil {
		return nil, fmt.Errorf("error mapping student performance: %w", err)
	}
	for i := range out {
		out[i].AveragePercentage = round2(out[i].AveragePercentage)
	}
	return out, nil
}

func (s *reportService) CategoryAnalysis(ctx context.Context) ([]dto.CategoryStatsDTO, error) {
	rows, err := s.reportRepo.CategoryAnalysis(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading category analysis: %w", err)
	}
	out := make([]dto.CategoryStatsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryStatsDTO{
			Category:          r.Category,
			Attempts:          r.Attempts,
			Passed:            r.Passed,
			PassRate:          Ratio(int(r.Passed), int(r.Attempts)),
			AveragePercentage: round2(r.AveragePercentage),
		})
	}
	return out, nil
}

// ExportCSV writes completed attempts matching filter as CSV and returns the number of data rows.
func (s *reportService) ExportCSV(ctx context.Context, filter repository.ExportFilter, w io.Writer) (int, error) {
	rows, err := s.reportRepo.ExportRows(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error loading export rows: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, err
	}
	for _, r := range rows {
		if err := writer.Write(exportRecord(r)); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("error writing csv: %w", err)
	}
	return len(rows), nil
}

// ExportXLSX writes the same rows as ExportCSV into a single-sheet workbook.
func (s *reportService) ExportXLSX(ctx context.Context, filter repository.ExportFilter, w io.Writer) (int, error) {
	rows, err := s.reportRepo.ExportRows(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error loading export rows: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return 0, err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		submitted := ""
		if r.SubmitTime != nil {
			submitted = r.SubmitTime.UTC().Format(time.RFC3339)
		}
		values := []interface{}{
			r.AttemptID, r.StudentName, r.StudentEmail, r.AssessmentTitle, r.Category,
			r.ObtainedMarks, r.TotalMarks, r.Percentage, r.PassStatus, r.TimeTaken, submitted,
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return 0, err
		}
	}
	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("error writing workbook: %w", err)
	}
	return len(rows), nil
}

func exportRecord(r repository.ExportRow) []string {
	submitted := ""
	if r.SubmitTime != nil {
		submitted = r.SubmitTime.UTC().Format(time.RFC3339)
	}
	return []string{
		strconv.FormatUint(uint64(r.AttemptID), 10),
		r.StudentName,
		r.StudentEmail,
		r.AssessmentTitle,
		r.Category,
		strconv.Itoa(r.ObtainedMarks),
		strconv.Itoa(r.TotalMarks),
		strconv.FormatFloat(r.Percentage, 'f', 2, 64),
		r.PassStatus,
		strconv.Itoa(r.TimeTaken),
		submitted,
	}
}

func toAssessmentStats(s *repository.AssessmentStats) dto.AssessmentStatsDTO {
	return dto.AssessmentStatsDTO{
		AssessmentID:      s.AssessmentID,
		Title:             s.Title,
		Category:          s.Category,
		Attempts:          s.Attempts,
		Passed:            s.Passed,
		PassRate:          Ratio(int(s.Passed), int(s.Attempts)),
		AveragePercentage: round2(s.AveragePercentage),
		HighestPercentage: round2(s.HighestPercentage),
		LowestPercentage:  round2(s.LowestPercentage),
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
