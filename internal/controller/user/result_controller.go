package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/controller"
	"github.com/lshigami/placement-portal/internal/service"
)

type ResultController struct {
	resultService service.ResultService
}

func NewResultController(resultService service.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// ListResults godoc
// @Summary (Student) My results
// @Tags Student - Results
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.ResultListResponse
// @Router /student/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	resp, err := c.resultService.ListResults(ctx.Request.Context(), student.ID, controller.PageQuery(ctx))
	if err != nil {
		controller.RespondError(ctx, "ListResults", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ShowResult godoc
// @Summary (Student) One result with answers
// @Tags Student - Results
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student/results/{attempt_id} [get]
func (c *ResultController) ShowResult(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.ParseID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.resultService.ShowResult(ctx.Request.Context(), attemptID, student.ID)
	if err != nil {
		controller.RespondError(ctx, "ShowResult", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary (Student) Dashboard summary
// @Tags Student - Results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardDTO
// @Router /student/dashboard [get]
func (c *ResultController) Dashboard(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	resp, err := c.resultService.Dashboard(ctx.Request.Context(), student.ID)
	if err != nil {
		controller.RespondError(ctx, "Dashboard", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary (Student) Attempt history
// @Tags Student - Results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.HistoryDTO
// @Router /student/history [get]
func (c *ResultController) History(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	resp, err := c.resultService.History(ctx.Request.Context(), student.ID)
	if err != nil {
		controller.RespondError(ctx, "History", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Analytics godoc
// @Summary (Student) Performance analytics
// @Tags Student - Results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AnalyticsDTO
// @Router /student/analytics [get]
func (c *ResultController) Analytics(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	resp, err := c.resultService.Analytics(ctx.Request.Context(), student.ID)
	if err != nil {
		controller.RespondError(ctx, "Analytics", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
