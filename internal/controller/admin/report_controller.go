package admin

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/controller"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/service"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// Overview godoc
// @Summary (Admin) Portal-wide report
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OverviewReportDTO
// @Router /admin/reports/overview [get]
func (c *ReportController) Overview(ctx *gin.Context) {
	resp, err := c.reportService.Overview(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, "Admin ReportOverview", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AssessmentReport godoc
// @Summary (Admin) Assessment statistics with per-question analysis
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentReportDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/reports/assessments/{id} [get]
func (c *ReportController) AssessmentReport(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.reportService.AssessmentReport(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, "Admin AssessmentReport", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StudentPerformance godoc
// @Summary (Admin) Per-student performance
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StudentStatsDTO
// @Router /admin/reports/students [get]
func (c *ReportController) StudentPerformance(ctx *gin.Context) {
	resp, err := c.reportService.StudentPerformance(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, "Admin StudentPerformance", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CategoryAnalysis godoc
// @Summary (Admin) Per-category performance
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryStatsDTO
// @Router /admin/reports/categories [get]
func (c *ReportController) CategoryAnalysis(ctx *gin.Context) {
	resp, err := c.reportService.CategoryAnalysis(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, "Admin CategoryAnalysis", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary (Admin) Export completed attempts
// @Tags Admin - Reports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "csv (default) or xlsx"
// @Param assessment_id query int false "Only this assessment"
// @Param from query string false "Submitted on or after (YYYY-MM-DD)"
// @Param to query string false "Submitted on or before (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/reports/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	var q dto.ExportQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid export filter", Details: []string{err.Error()}})
		return
	}
	filter := repository.ExportFilter{AssessmentID: q.AssessmentID, From: q.From}
	if q.To != nil {
		// Include the whole end day.
		end := q.To.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	format := ctx.DefaultQuery("format", "csv")
	var (
		buf         bytes.Buffer
		rows        int
		err         error
		contentType string
	)
	switch format {
	case "csv":
		rows, err = c.reportService.ExportCSV(ctx.Request.Context(), filter, &buf)
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		rows, err = c.reportService.ExportXLSX(ctx.Request.Context(), filter, &buf)
		contentType = xlsxContentType
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Unsupported export format: " + format})
		return
	}
	if err != nil {
		controller.RespondError(ctx, "Admin Export", err)
		return
	}

	filename := fmt.Sprintf("assessment_results_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	log.Info().Int("rows", rows).Str("format", format).Msg("Admin Export: results exported")
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}
