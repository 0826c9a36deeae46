package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/homekitchen/internal/server/http/dto"
)

// SystemHandler serves backup and health endpoints.
type SystemHandler struct {
	facade SystemFacade
	resp   *Responder
}

// NewSystemHandler constructs SystemHandler.
func NewSystemHandler(facade SystemFacade, resp *Responder) *SystemHandler {
	return &SystemHandler{facade: facade, resp: resp}
}

// Backup handles POST /api/backup.
func (h *SystemHandler) Backup(c *gin.Context) {
	path, err := h.facade.Backup(c.Request.Context())
	if err != nil {
		h.resp.Error(c, http.StatusInternalServerError, msgBackupFailed, err)
		return
	}
	c.JSON(http.StatusOK, dto.BackupResponse{Success: true, Message: msgBackupDone, BackupPath: path})
}

// Health handles GET /api/health.
func (h *SystemHandler) Health(c *gin.Context) {
	report, err := h.facade.Health(c.Request.Context())
	if err != nil {
		h.resp.logger.Warn("health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.HealthResponse{
			Status:    "ERROR",
			Database:  "disconnected",
			Timestamp: report.Timestamp,
		})
		return
	}

	uptime := report.Uptime.Seconds()
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "OK",
		Database:  "connected",
		Timestamp: report.Timestamp,
		Uptime:    &uptime,
	})
}
