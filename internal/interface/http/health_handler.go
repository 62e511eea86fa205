package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

type HealthHandler struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{DB: db, Redis: rdb}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health pings the database and, when configured, redis.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "Unhealthy"
		healthy = false
	} else {
		checks["database"] = "Healthy"
	}
	if h.Redis != nil {
		if err := helpers.PingRedis(ctx, h.Redis); err != nil {
			checks["redis"] = "Degraded"
		} else {
			checks["redis"] = "Healthy"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "Unhealthy", Checks: checks})
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "Healthy", Checks: checks})
}
