package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/homekitchen/internal/server/http/dto"
)

// MenuHandler serves the menu.
type MenuHandler struct {
	facade MenuFacade
	resp   *Responder
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(facade MenuFacade, resp *Responder) *MenuHandler {
	return &MenuHandler{facade: facade, resp: resp}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.facade.Menu(c.Request.Context())
	if err != nil {
		h.resp.Error(c, http.StatusInternalServerError, msgMenuFailed, err)
		return
	}

	data := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, dto.NewMenuItemResponse(item))
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Data: data})
}
