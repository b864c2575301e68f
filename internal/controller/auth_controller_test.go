package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/config"
	"github.com/lshigami/placement-portal/internal/auth"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/middleware"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/service"
	"github.com/lshigami/placement-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMe(t *testing.T) {
	db := testutil.NewDB(t)
	tokens, err := auth.NewTokenManager(&config.Config{Auth: config.Auth{JWTSecret: "test-secret"}})
	require.NoError(t, err)
	svc := service.NewAuthService(repository.NewUserRepository(db), tokens, nil)
	ctrl := NewAuthController(svc)
	student := testutil.CreateStudent(t, db, "maya")
	token, _, err := tokens.Generate(student.ID, student.Role)
	require.NoError(t, err)

	r := gin.New()
	r.PUT("/auth/me", middleware.AuthJWT(svc), ctrl.UpdateMe)
	put := func(bearer string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		req := httptest.NewRequest(http.MethodPut, "/auth/me", &buf)
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := put(token, dto.UpdateProfileRequest{Name: "Maya Rao"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "Maya Rao", user.Name)
	assert.Equal(t, student.Email, user.Email)

	w = put(token, dto.UpdateProfileRequest{CurrentPassword: "password123", NewPassword: "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = put(token, dto.UpdateProfileRequest{CurrentPassword: "nope", NewPassword: "long-enough-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "current password")

	w = put("", dto.UpdateProfileRequest{Name: "Intruder"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
