package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockflow/backend/internal/infrastructure/persistence"
	"github.com/stockflow/backend/internal/interfaces/http/dto"
)

// SystemHandler serves liveness and readiness probes.
type SystemHandler struct {
	db      *persistence.Database
	appName string
	env     string
}

// NewSystemHandler creates a system handler.
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, env: env}
}

// RegisterRoutes registers system routes on the given router group.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", h.Ping)
	rg.GET("/health", h.Health)
}

// Ping is a trivial liveness probe.
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message": "pong",
		"time":    time.Now().Format(time.RFC3339),
	}))
}

// Health reports readiness, including database connectivity.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	checks := gin.H{}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}
	}

	c.JSON(code, gin.H{
		"status": status,
		"app":    h.appName,
		"env":    h.env,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}
