package admin

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/controller"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/service"
)

type QuestionController struct {
	questionService service.AdminQuestionService
}

func NewQuestionController(questionService service.AdminQuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions godoc
// @Summary (Admin) Question bank
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter"
// @Param difficulty query string false "Difficulty filter"
// @Param search query string false "Text search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.QuestionListResponse
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	filter := repository.QuestionFilter{
		Category:   dto.Sanitize(ctx.Query("category")),
		Difficulty: dto.Sanitize(ctx.Query("difficulty")),
		Search:     dto.Sanitize(ctx.Query("search")),
		Page:       controller.PageQuery(ctx),
	}
	resp, err := c.questionService.List(ctx.Request.Context(), filter)
	if err != nil {
		controller.RespondError(ctx, "Admin ListQuestions", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateQuestion godoc
// @Summary (Admin) Create a standalone question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.QuestionRequest true "Question data"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionRequest
	if !controller.BindJSON(ctx, "Admin CreateQuestion", &req) {
		return
	}
	resp, err := c.questionService.Create(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "Admin CreateQuestion", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param body body dto.QuestionRequest true "Question data"
// @Success 200 {object} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if !controller.BindJSON(ctx, "Admin UpdateQuestion", &req) {
		return
	}
	resp, err := c.questionService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, "Admin UpdateQuestion", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.questionService.Delete(ctx.Request.Context(), id); err != nil {
		controller.RespondError(ctx, "Admin DeleteQuestion", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted"})
}

// ListAssessmentQuestions godoc
// @Summary (Admin) Questions of an assessment in order
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {array} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id}/questions [get]
func (c *QuestionController) ListAssessmentQuestions(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.questionService.ListForAssessment(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, "Admin ListAssessmentQuestions", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateAssessmentQuestion godoc
// @Summary (Admin) Create a question and append it to an assessment
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body dto.QuestionRequest true "Question data"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id}/questions [post]
func (c *QuestionController) CreateAssessmentQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if !controller.BindJSON(ctx, "Admin CreateAssessmentQuestion", &req) {
		return
	}
	resp, err := c.questionService.CreateForAssessment(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, "Admin CreateAssessmentQuestion", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

const maxImportBytes = 2 << 20

// ImportAssessmentQuestions godoc
// @Summary (Admin) Import questions from CSV into an assessment
// @Description Header row: question, option_a, option_b, option_c, option_d, correct_answer, marks and optionally difficulty, category. Send the file as multipart field csv_file or as a text/csv body. Invalid rows are skipped and listed in errors.
// @Tags Admin - Questions
// @Accept multipart/form-data
// @Accept text/csv
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param csv_file formData file false "CSV file"
// @Success 201 {object} dto.QuestionImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id}/questions/import [post]
func (c *QuestionController) ImportAssessmentQuestions(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxImportBytes)

	body := io.Reader(ctx.Request.Body)
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		fh, err := ctx.FormFile("csv_file")
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "csv_file is required", Details: []string{err.Error()}})
			return
		}
		f, err := fh.Open()
		if err != nil {
			controller.RespondError(ctx, "Admin ImportAssessmentQuestions", err)
			return
		}
		defer f.Close()
		body = f
	}

	resp, err := c.questionService.ImportForAssessment(ctx.Request.Context(), id, body)
	if err != nil {
		controller.RespondError(ctx, "Admin ImportAssessmentQuestions", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// AttachQuestion godoc
// @Summary (Admin) Link an existing question to an assessment
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body dto.AttachQuestionRequest true "Question and optional order"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.ErrorResponse "Already linked"
// @Router /admin/assessments/{id}/questions/attach [post]
func (c *QuestionController) AttachQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AttachQuestionRequest
	if !controller.BindJSON(ctx, "Admin AttachQuestion", &req) {
		return
	}
	if err := c.questionService.Attach(ctx.Request.Context(), id, req); err != nil {
		controller.RespondError(ctx, "Admin AttachQuestion", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question attached"})
}

// DetachQuestion godoc
// @Summary (Admin) Unlink a question from an assessment
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assessments/{id}/questions/{question_id} [delete]
func (c *QuestionController) DetachQuestion(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	questionID, ok := controller.ParseID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.questionService.Detach(ctx.Request.Context(), id, questionID); err != nil {
		controller.RespondError(ctx, "Admin DetachQuestion", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question detached"})
}
