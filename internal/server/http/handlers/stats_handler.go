package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/homekitchen/internal/server/http/dto"
)

// StatsHandler serves order statistics.
type StatsHandler struct {
	facade StatsFacade
	resp   *Responder
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(facade StatsFacade, resp *Responder) *StatsHandler {
	return &StatsHandler{facade: facade, resp: resp}
}

// Stats handles GET /api/stats.
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		h.resp.Error(c, http.StatusInternalServerError, msgStatsFailed, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewStatsResponse(*stats)})
}
