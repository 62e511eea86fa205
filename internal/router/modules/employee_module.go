package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/employee-hierarchy-api/internal/interface/http"
	"github.com/oksasatya/employee-hierarchy-api/internal/interface/middleware"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

// EmployeeModule wires the employee CRUD routes. Every route requires a bearer token.
// GET    /employees
// GET    /employees/search
// GET    /employees/:id
// POST   /employees
// PUT    /employees/:id
// DELETE /employees/:id
type EmployeeModule struct {
	Handler *handlers.EmployeeHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewEmployeeModule(h *handlers.EmployeeHandler, jwt *helpers.JWTManager, rdb *redis.Client) *EmployeeModule {
	return &EmployeeModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *EmployeeModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/employees")
	g.Use(middleware.Auth(m.JWT))
	g.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("", m.Handler.List)
		g.GET("/search", m.Handler.Search)
		g.GET("/:id", m.Handler.Get)
		g.POST("", m.Handler.Create)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
