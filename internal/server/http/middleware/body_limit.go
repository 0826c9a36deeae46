package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/homekitchen/internal/server/http/dto"
)

const msgBodyTooLarge = "请求体过大"

// LimitBody rejects declared oversize bodies and caps reads of the rest.
func LimitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.Failure(msgBodyTooLarge))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
