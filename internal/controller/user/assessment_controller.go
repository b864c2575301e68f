package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/controller"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/service"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	assessmentService service.UserAssessmentService
	attemptService    service.AttemptService
}

func NewAssessmentController(as service.UserAssessmentService, ats service.AttemptService) *AssessmentController {
	return &AssessmentController{
		assessmentService: as,
		attemptService:    ats,
	}
}

// ListAssessments godoc
// @Summary (Student) List available assessments
// @Description Currently active assessments with question counts and the caller's latest attempt.
// @Tags Student - Assessments
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter"
// @Param difficulty query string false "Difficulty filter"
// @Param search query string false "Title search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.AssessmentListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	filter := repository.AssessmentFilter{
		Category:   dto.Sanitize(ctx.Query("category")),
		Difficulty: dto.Sanitize(ctx.Query("difficulty")),
		Search:     dto.Sanitize(ctx.Query("search")),
		Page:       controller.PageQuery(ctx),
	}
	resp, err := c.assessmentService.List(ctx.Request.Context(), student.ID, filter)
	if err != nil {
		controller.RespondError(ctx, "ListAssessments", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ShowAssessment godoc
// @Summary (Student) Assessment details
// @Tags Student - Assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.AssessmentDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Assessment not currently available"
// @Failure 404 {object} dto.ErrorResponse
// @Router /student/assessments/{id} [get]
func (c *AssessmentController) ShowAssessment(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.assessmentService.Show(ctx.Request.Context(), id, student.ID)
	if err != nil {
		controller.RespondError(ctx, "ShowAssessment", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartAttempt godoc
// @Summary (Student) Start or resume an attempt
// @Description Resumes the caller's in-progress attempt when one exists.
// @Tags Student - Attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 201 {object} dto.StartAttemptResponse "Attempt created"
// @Success 200 {object} dto.StartAttemptResponse "Attempt resumed"
// @Failure 403 {object} dto.ErrorResponse "Assessment not currently available"
// @Failure 409 {object} dto.ErrorResponse "Already completed"
// @Router /student/assessments/{id}/start [post]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.attemptService.Start(ctx.Request.Context(), id, student.ID)
	if err != nil {
		controller.RespondError(ctx, "StartAttempt", err)
		return
	}
	status := http.StatusCreated
	if resp.Resumed {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}

// TakeAttempt godoc
// @Summary (Student) Load an in-progress attempt
// @Description Questions without correct answers, plus saved answers and the remaining time.
// @Tags Student - Attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param attempt_id query int true "Attempt ID"
// @Success 200 {object} dto.TakeAttemptResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /student/assessments/{id}/take [get]
func (c *AssessmentController) TakeAttempt(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	attemptID, err := strconv.ParseUint(ctx.Query("attempt_id"), 10, 32)
	if err != nil || attemptID == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt_id format"})
		return
	}
	resp, err := c.attemptService.Take(ctx.Request.Context(), id, uint(attemptID), student.ID)
	if err != nil {
		controller.RespondError(ctx, "TakeAttempt", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SaveProgress godoc
// @Summary (Student) Save answers without submitting
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body dto.SaveProgressRequest true "Answers keyed by question ID"
// @Success 200 {object} dto.SaveProgressResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /student/assessments/{id}/save-progress [post]
func (c *AssessmentController) SaveProgress(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SaveProgressRequest
	if !controller.BindJSON(ctx, "SaveProgress", &req) {
		return
	}
	resp, err := c.attemptService.SaveProgress(ctx.Request.Context(), id, req.AttemptID, student.ID, req.Answers)
	if err != nil {
		controller.RespondError(ctx, "SaveProgress", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAttempt godoc
// @Summary (Student) Submit an attempt for scoring
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body dto.SubmitAttemptRequest true "Attempt to submit"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /student/assessments/{id}/submit [post]
func (c *AssessmentController) SubmitAttempt(ctx *gin.Context) {
	student, ok := controller.User(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptRequest
	if !controller.BindJSON(ctx, "SubmitAttempt", &req) {
		return
	}
	result, err := c.attemptService.Submit(ctx.Request.Context(), id, req.AttemptID, student.ID, req.TimeTaken)
	if err != nil {
		controller.RespondError(ctx, "SubmitAttempt", err)
		return
	}
	log.Info().Uint("attemptID", req.AttemptID).Uint("studentID", student.ID).Msg("SubmitAttempt: attempt scored")
	ctx.JSON(http.StatusOK, result)
}
