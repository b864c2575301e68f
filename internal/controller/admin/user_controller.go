package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/controller"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/service"
)

type UserController struct {
	userService service.AdminUserService
}

func NewUserController(userService service.AdminUserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers godoc
// @Summary (Admin) List users
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "student or admin"
// @Param approved query bool false "Approval filter"
// @Param search query string false "Name or email search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.UserListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	filter := repository.UserFilter{
		Role:   dto.Sanitize(ctx.Query("role")),
		Search: dto.Sanitize(ctx.Query("search")),
		Page:   controller.PageQuery(ctx),
	}
	if raw := ctx.Query("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid approved filter"})
			return
		}
		filter.Approved = &approved
	}
	resp, err := c.userService.List(ctx.Request.Context(), filter)
	if err != nil {
		controller.RespondError(ctx, "Admin ListUsers", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SetApproval godoc
// @Summary (Admin) Approve or revoke a student account
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body dto.ApproveUserRequest true "Approval flag"
// @Success 200 {object} dto.UserDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id}/approval [put]
func (c *UserController) SetApproval(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ApproveUserRequest
	if !controller.BindJSON(ctx, "Admin SetApproval", &req) {
		return
	}
	resp, err := c.userService.SetApproved(ctx.Request.Context(), id, *req.Approved)
	if err != nil {
		controller.RespondError(ctx, "Admin SetApproval", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
