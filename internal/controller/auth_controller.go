package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a student account
// @Description New accounts stay pending until an administrator approves them.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !BindJSON(ctx, "Register", &req) {
		return
	}
	user, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		RespondError(ctx, "Register", err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !BindJSON(ctx, "Login", &req) {
		return
	}
	token, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		RespondError(ctx, "Login", err)
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := User(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.UserDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		IsApproved: user.IsApproved,
		CreatedAt:  user.CreatedAt,
	})
}

// UpdateMe godoc
// @Summary Update the current user's name or password
// @Description A new password needs current_password. Renaming refreshes the study assistant's view of the student.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [put]
func (c *AuthController) UpdateMe(ctx *gin.Context) {
	user, ok := User(ctx)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !BindJSON(ctx, "UpdateMe", &req) {
		return
	}
	updated, err := c.authService.UpdateProfile(ctx.Request.Context(), user, req)
	if err != nil {
		RespondError(ctx, "UpdateMe", err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}
