package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/employee-hierarchy-api/internal/interface/http"
	"github.com/oksasatya/employee-hierarchy-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// 10 req/min per IP
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
