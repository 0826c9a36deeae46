package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/homekitchen/internal/server/http/dto"
)

const msgInternalError = "服务器内部错误"

// Recovery turns panics into a JSON 500 reply.
func Recovery(logger *slog.Logger, detail bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			slog.String("request_id", RequestID(c)),
			slog.String("path", c.Request.URL.Path),
			slog.Any("panic", recovered))

		resp := dto.Failure(msgInternalError)
		if detail {
			resp.Error = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}
