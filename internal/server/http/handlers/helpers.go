package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/homekitchen/internal/server/http/dto"
	"github.com/polkiloo/homekitchen/internal/server/http/middleware"
)

const (
	msgIncompleteOrder   = "请提供完整的订单信息（姓名、电话、地址、菜品）"
	msgEmptyOrder        = "订单不能为空"
	msgItemNotFound      = "菜品ID %d 不存在或已下架"
	msgInsufficientStock = "\"%s\" 库存不足，剩余 %d 份"
	msgOrderSubmitted    = "订单提交成功！"
	msgOrderFailed       = "订单处理失败"
	msgMenuFailed        = "获取菜单失败"
	msgOrdersFailed      = "获取订单失败"
	msgInvalidStatus     = "状态值无效，必须是: "
	msgOrderNotFound     = "未找到该订单"
	msgStatusUpdated     = "订单状态更新成功"
	msgStatusFailed      = "更新订单状态失败"
	msgStatsFailed       = "获取统计信息失败"
	msgBackupDone        = "备份成功"
	msgBackupFailed      = "备份失败"
)

// Responder writes failure envelopes and logs server side errors.
type Responder struct {
	logger *slog.Logger
	detail bool
}

// NewResponder creates Responder. When detail is set the error text is returned to clients.
func NewResponder(logger *slog.Logger, detail bool) *Responder {
	return &Responder{logger: logger, detail: detail}
}

// Fail aborts request with a failure envelope.
func (r *Responder) Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.Failure(message))
}

// Error logs err and aborts with a server error envelope.
func (r *Responder) Error(c *gin.Context, status int, message string, err error) {
	r.logger.Error(message,
		slog.String("request_id", middleware.RequestID(c)),
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()))

	resp := dto.Failure(message)
	if r.detail {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}
