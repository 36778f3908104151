package middlewares

import (
	"github.com/gin-gonic/gin"

	"neuroscan/internal/app/pkg/ginx"
	"neuroscan/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 处理器通过 c.Error 登记错误且尚未写响应时，按业务错误类型输出统一响应
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		log.Errorf(c.Request.Context(), "request failed: %v", err.Err)
		if !c.Writer.Written() {
			ginx.Fail(c, err.Err)
		}
	}
}
