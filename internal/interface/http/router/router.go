// Package router 组装gin引擎：全局中间件、API路由、浏览器页面路由
package router

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Handlers 路由依赖
type Handlers struct {
	Books *handler.BookHandler
	Web   *handler.WebHandler
	Users *handler.UserHandler
	Auth  *middleware.AuthMiddleware
	// RateLimiter 为nil时不限流
	RateLimiter *middleware.RateLimiter
	Templates   *template.Template
}

// New 创建gin引擎
//
// 中间件顺序（外层在前）：
//
//	Logger → Metrics → Tracing → Dispatcher → CORS → Recovery → RateLimit → 路由中间件 → Handler
//
// Dispatcher在Recovery外层，panic转换的错误同样由它渲染；
// Logger和Metrics在最外层，记录的是最终状态码
func New(cfg *config.Config, h Handlers, log *zap.Logger) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.Logger(log))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}
	r.Use(response.Dispatcher(response.DispatcherConfig{
		Classifier: response.NewClassifier(cfg.Server.APIPrefix, !cfg.Server.IsRelease()),
		Logger:     log,
	}))
	// 全局注册：预检OPTIONS请求没有匹配的路由，分组中间件不会执行
	r.Use(middleware.CORS(cfg.CORS, cfg.Server.APIPrefix))
	r.Use(middleware.Recovery(log))
	if h.RateLimiter != nil {
		r.Use(h.RateLimiter.Middleware())
	}
	if h.Templates != nil {
		r.SetHTMLTemplate(h.Templates)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound.WithMessage("no handler for %s %s", c.Request.Method, c.Request.URL.Path))
	})

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy"})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	// Swagger文档：访问 /swagger/index.html，生产环境不开放
	if !cfg.Server.IsRelease() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerAPI(r, cfg, h)
	registerWeb(r, cfg, h)
	return r
}

func registerAPI(r *gin.Engine, cfg *config.Config, h Handlers) {
	api := r.Group(strings.TrimSuffix(cfg.Server.APIPrefix, "/"))
	readers := h.Auth.ForReads(cfg.Auth.PublicRead)
	admins := []gin.HandlerFunc{h.Auth.RequireAuth(), middleware.RequireRole(user.RoleAdmin)}

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Users.Register)
		auth.POST("/login", h.Users.Login)
		auth.POST("/logout", h.Auth.RequireAuth(), h.Users.Logout)
	}

	books := api.Group("/books")
	{
		read := books.Group("", readers)
		read.GET("", h.Books.List)
		read.GET("/all", h.Books.ListAll)
		read.GET("/count", h.Books.Count)
		read.GET("/search/titre", h.Books.SearchByTitle)
		read.GET("/search/auteur", h.Books.SearchByAuthor)
		read.GET("/search/titre-auteur", h.Books.SearchByTitleAndAuthor)
		read.GET("/search/max-price", h.Books.SearchByMaxPrice)
		read.GET("/search/min-price", h.Books.SearchByMinPrice)
		read.GET("/:id", h.Books.Get)

		write := books.Group("", admins...)
		write.POST("", h.Books.Create)
		write.PUT("/:id", h.Books.Update)
		write.PATCH("/:id", h.Books.Patch)
		write.DELETE("/:id", h.Books.Delete)
	}
}

func registerWeb(r *gin.Engine, cfg *config.Config, h Handlers) {
	readers := h.Auth.ForReads(cfg.Auth.PublicRead)
	admins := []gin.HandlerFunc{h.Auth.RequireAuth(), middleware.RequireRole(user.RoleAdmin)}

	r.GET("/", h.Web.Home)

	pages := r.Group("/books")
	{
		read := pages.Group("", readers)
		read.GET("", h.Web.List)
		read.GET("/:id", h.Web.Detail)

		write := pages.Group("", admins...)
		write.GET("/new", h.Web.New)
		write.GET("/:id/edit", h.Web.Edit)
		write.POST("/save", h.Web.Save)
		write.POST("/:id/delete", h.Web.Delete)
	}
}
