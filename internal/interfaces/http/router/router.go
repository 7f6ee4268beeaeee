package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that can register their
// routes on a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router wires handlers into the gin engine.
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
}

// New creates a router over an existing engine.
func New(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

// Register adds handlers to be wired on Setup.
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.registrars = append(r.registrars, registrars...)
}

// Setup mounts every registered handler under /api/v1.
func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
}
