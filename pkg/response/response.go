package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 成功响应直接返回业务数据，状态码本身就是契约的一部分（201、204等），
// 所以不再包一层{code,message,data}。

// OK 200 + 数据
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 + 新建的资源
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 记录错误并中断请求，由Dispatcher中间件统一渲染
// 用法：
//
//	book, err := h.getBook.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// DispatcherConfig 错误分发中间件配置
type DispatcherConfig struct {
	Classifier Classifier
	Logger     *zap.Logger
	// ViewTemplate 浏览器错误页模板名
	ViewTemplate string
}

// Dispatcher 错误分发中间件
// 设计说明：
// 1. 必须注册在所有业务中间件之前，这样c.Next()返回后能看到全部c.Errors
// 2. 只处理最后一个错误；响应已写出时只记日志
// 3. 这是唯一产生对外错误响应的地方
func Dispatcher(cfg DispatcherConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	view := cfg.ViewTemplate
	if view == "" {
		view = "error.html"
	}

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if c.Writer.Written() {
			logger.Warn("error after response written",
				zap.String("path", c.Request.URL.Path), zap.Error(err))
			return
		}

		d := cfg.Classifier.Classify(err, c.Request.URL.Path, c.GetHeader("Accept"))

		if d.Kind == apperrors.KindInternal {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		} else {
			logger.Debug("request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("kind", d.Kind.String()),
				zap.Error(err))
		}

		if d.IsAPI() {
			c.JSON(d.Status, d.API)
			return
		}
		c.HTML(d.Status, view, d.View)
	}
}
