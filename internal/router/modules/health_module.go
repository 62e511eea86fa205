package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/employee-hierarchy-api/internal/interface/http"
	"github.com/oksasatya/employee-hierarchy-api/internal/interface/middleware"
)

type HealthModule struct {
	Handler *handlers.HealthHandler
	Redis   *redis.Client
}

func NewHealthModule(h *handlers.HealthHandler, rdb *redis.Client) *HealthModule {
	return &HealthModule{Handler: h, Redis: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	// Public, rate-limited per IP; probes from private networks are not limited
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/health", rl, m.Handler.Health)
}
