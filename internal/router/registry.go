package router

import "github.com/gin-gonic/gin"

// APIPrefix is the versioned prefix of every API route.
const APIPrefix = "/api/v1"

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	root        []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group(APIPrefix)
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// Add registers a module under the API prefix.
func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// AddRoot registers a module outside the API prefix, e.g. health checks.
func (r *Registry) AddRoot(mod Module) {
	r.root = append(r.root, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	for _, m := range r.root {
		m.Register(&r.Engine.RouterGroup)
	}
}
