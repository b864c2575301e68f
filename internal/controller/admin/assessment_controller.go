package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/controller"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/service"
)

type AssessmentController struct {
	assessmentService service.AdminAssessmentService
	draftService      service.QuestionDraftService
}

func NewAssessmentController(as service.AdminAssessmentService, ds service.QuestionDraftService) *AssessmentController {
	return &AssessmentController{
		assessmentService: as,
		draftService:      ds,
	}
}

// CreateAssessment godoc
// @Summary (Admin) Create an assessment
// @Description Optionally creates and links inline questions in the given order.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AssessmentRequest true "Assessment data"
// @Success 201 {object} dto.AdminAssessmentDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	admin, ok := controller.User(ctx)
	if !ok {
		return
	}
	var req dto.AssessmentRequest
	if !controller.BindJSON(ctx, "Admin CreateAssessment", &req) {
		return
	}
	resp, err := c.assessmentService.Create(ctx.Request.Context(), admin.ID, req)
	if err != nil {
		controller.RespondError(ctx, "Admin CreateAssessment", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListAssessments godoc
// @Summary (Admin) List assessments
// @Tags Admin - Assessments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param search query string false "Title search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.AdminAssessmentListResponse
// @Router /admin/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	filter := repository.AssessmentFilter{
		Status:   dto.Sanitize(ctx.Query("status")),
		Category: dto.Sanitize(ctx.Query("category")),
		Search:   dto.Sanitize(ctx.Query("search")),
		Page:     controller.PageQuery(ctx),
	}
	resp, err := c.assessmentService.List(ctx.Request.Context(), filter)
	if err != nil {
		controller.RespondError(ctx, "Admin ListAssessments", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAssessment godoc
// @Summary (Admin) Assessment with questions and recent attempts
// @Tags Admin - Assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.AdminAssessmentDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.assessmentService.Get(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, "Admin GetAssessment", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateAssessment godoc
// @Summary (Admin) Update an assessment
// @Description Inline questions are ignored on update; manage them through the question endpoints.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body dto.AssessmentRequest true "Assessment data"
// @Success 200 {object} dto.AdminAssessmentDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AssessmentRequest
	if !controller.BindJSON(ctx, "Admin UpdateAssessment", &req) {
		return
	}
	resp, err := c.assessmentService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, "Admin UpdateAssessment", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteAssessment godoc
// @Summary (Admin) Delete an assessment
// @Tags Admin - Assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.assessmentService.Delete(ctx.Request.Context(), id); err != nil {
		controller.RespondError(ctx, "Admin DeleteAssessment", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Assessment deleted"})
}

// ToggleStatus godoc
// @Summary (Admin) Toggle an assessment between active and inactive
// @Tags Admin - Assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} dto.AdminAssessmentDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id}/toggle-status [post]
func (c *AssessmentController) ToggleStatus(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.assessmentService.ToggleStatus(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, "Admin ToggleStatus", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DuplicateAssessment godoc
// @Summary (Admin) Duplicate an assessment with its question links
// @Description The copy is created as a draft with " (Copy)" appended to the title.
// @Tags Admin - Assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 201 {object} dto.AdminAssessmentDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id}/duplicate [post]
func (c *AssessmentController) DuplicateAssessment(ctx *gin.Context) {
	admin, ok := controller.User(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.assessmentService.Duplicate(ctx.Request.Context(), admin.ID, id)
	if err != nil {
		controller.RespondError(ctx, "Admin DuplicateAssessment", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// DraftQuestions godoc
// @Summary (Admin) Draft questions with Gemini
// @Description Drafts are returned for review and are not saved.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body dto.QuestionDraftRequest true "Draft options"
// @Success 200 {object} dto.QuestionDraftResponse
// @Failure 502 {object} dto.ErrorResponse "Model returned no usable drafts"
// @Failure 503 {object} dto.ErrorResponse "Gemini is not configured"
// @Router /admin/assessments/{id}/question-drafts [post]
func (c *AssessmentController) DraftQuestions(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuestionDraftRequest
	if !controller.BindJSON(ctx, "Admin DraftQuestions", &req) {
		return
	}
	resp, err := c.draftService.Draft(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, "Admin DraftQuestions", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
