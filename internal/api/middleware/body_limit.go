package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hach2pro/app-letp/pkg/response"
)

// BodyLimit 请求体大小限制。
// 声明了 Content-Length 且超限时直接拒绝；否则用 MaxBytesReader 兜底，
// 超限后 JSON 绑定失败由 Handler 返回 400。
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
