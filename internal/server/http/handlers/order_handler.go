package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	resp   *Responder
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, resp *Responder) *OrderHandler {
	return &OrderHandler{facade: facade, resp: resp}
}

// Submit handles POST /api/order.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, msgIncompleteOrder)
		return
	}

	order, err := h.facade.SubmitOrder(c.Request.Context(), req.ToModel())
	if err != nil {
		var (
			missing  domainErrors.ItemNotFoundError
			shortage domainErrors.InsufficientStockError
		)
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			h.resp.Fail(c, http.StatusBadRequest, msgIncompleteOrder)
		case errors.Is(err, domainErrors.ErrEmptyOrder):
			h.resp.Fail(c, http.StatusBadRequest, msgEmptyOrder)
		case errors.As(err, &missing):
			h.resp.Fail(c, http.StatusBadRequest, fmt.Sprintf(msgItemNotFound, missing.ItemID))
		case errors.As(err, &shortage):
			h.resp.Fail(c, http.StatusBadRequest, fmt.Sprintf(msgInsufficientStock, shortage.ItemName, shortage.Remaining))
		default:
			h.resp.Error(c, http.StatusInternalServerError, msgOrderFailed, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: msgOrderSubmitted,
		Data: dto.SubmitOrderResponse{
			OrderID:     order.ID,
			TotalAmount: order.TotalAmount.InexactFloat64(),
		},
	})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter := model.OrderFilter{
		Status: model.OrderStatus(c.Query("status")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	page, err := h.facade.Orders(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidStatus) {
			h.resp.Fail(c, http.StatusBadRequest, invalidStatusMessage())
			return
		}
		h.resp.Error(c, http.StatusInternalServerError, msgOrdersFailed, err)
		return
	}

	data := make([]dto.OrderResponse, 0, len(page.Orders))
	for _, o := range page.Orders {
		data = append(data, dto.NewOrderResponse(o))
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Success: true,
		Data:    data,
		Pagination: dto.Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.Pages(),
		},
	})
}

// UpdateStatus handles PUT /api/order/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Fail(c, http.StatusBadRequest, invalidStatusMessage())
		return
	}

	// Unparsable ids fall through as zero and surface as not found after the status check.
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		orderID = 0
	}

	err = h.facade.UpdateOrderStatus(c.Request.Context(), orderID, model.OrderStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			h.resp.Fail(c, http.StatusBadRequest, invalidStatusMessage())
		case errors.Is(err, domainErrors.ErrNotFound):
			h.resp.Fail(c, http.StatusNotFound, msgOrderNotFound)
		default:
			h.resp.Error(c, http.StatusInternalServerError, msgStatusFailed, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: msgStatusUpdated})
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func invalidStatusMessage() string {
	statuses := model.OrderStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}
	return msgInvalidStatus + strings.Join(names, ", ")
}
