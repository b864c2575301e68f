package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Healthz godoc
// @Summary Liveness and database check
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (c *HealthController) Healthz(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthPingTimeout)
		defer cancel()
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		log.Error().Err(err).Msg("Healthz: database ping failed")
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unhealthy", Database: "down", Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
