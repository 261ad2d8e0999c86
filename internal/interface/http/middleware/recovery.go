package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Recovery 捕获panic，转换为Internal错误交给错误分发中间件
// 必须注册在Dispatcher之后，这样panic后仍然能渲染统一的错误响应
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.String("request_id", c.GetString(ContextKeyRequestID)),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				response.Error(c, apperrors.Wrap(fmt.Errorf("panic: %v", r), "unexpected panic"))
			}
		}()
		c.Next()
	}
}
