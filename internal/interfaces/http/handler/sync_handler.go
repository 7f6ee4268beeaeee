package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/stockflow/backend/internal/application/sync"
	domain "github.com/stockflow/backend/internal/domain/sync"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stockflow/backend/internal/interfaces/http/dto"
)

// SyncHandler exposes the sync trigger endpoint.
type SyncHandler struct {
	service *appsync.Service
	erpCfg  *config.ERPConfig
	logger  *zap.Logger
}

// NewSyncHandler creates a sync handler.
func NewSyncHandler(service *appsync.Service, erpCfg *config.ERPConfig, logger *zap.Logger) *SyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncHandler{
		service: service,
		erpCfg:  erpCfg,
		logger:  logger,
	}
}

// RegisterRoutes registers sync routes on the given router group.
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync", h.TriggerSync)
}

// TriggerSync runs the requested sync stages and reports per-type
// outcomes. The response is 200 whenever a run completed, even when
// individual stages failed; 500 is reserved for missing credentials
// and unhandled failures.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	if !h.erpCfg.HasCredentials() {
		c.JSON(http.StatusInternalServerError, dto.SyncErrorResponse{
			Error: domain.ErrMissingCredentials.Error(),
		})
		return
	}

	var req dto.SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.SyncErrorResponse{
				Error: "invalid request body: " + err.Error(),
			})
			return
		}
	}

	types := make([]domain.DataType, 0, len(req.SyncTypes))
	for _, s := range req.SyncTypes {
		dt, err := domain.ParseDataType(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.SyncErrorResponse{Error: err.Error()})
			return
		}
		types = append(types, dt)
	}

	h.logger.Info("sync run requested",
		zap.Strings("sync_types", req.SyncTypes),
		zap.String("request_id", c.GetString("request_id")),
	)

	report := h.service.Run(c.Request.Context(), types)

	c.JSON(http.StatusOK, dto.SyncResponse{
		Success:       true,
		Results:       report.Results,
		TotalDuration: report.TotalDuration,
		Timestamp:     report.Timestamp,
	})
}
