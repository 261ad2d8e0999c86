package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/messaging"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/internal/interface/http/web"
	"github.com/xiebiao/bookcatalog/internal/interface/rpc"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// App 组装完成的应用
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Engine      *gin.Engine
	GRPC        *grpc.Server // grpc.enabled=false时为nil
	RateLimiter *middleware.RateLimiter
	Bootstrap   *appuser.BootstrapAdminUseCase
}

// Storage 按database.driver选出的存储实现
type Storage struct {
	Books book.Repository
	Users user.Repository
	Tx    book.TxManager
}

// provideStorage 选择存储：memory使用go-memdb，mysql/postgres使用GORM
func provideStorage(cfg *config.Config, log *zap.Logger) (Storage, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		store, err := memory.NewStore()
		if err != nil {
			return Storage{}, nil, err
		}
		log.Warn("使用内存存储，重启后数据丢失")
		return Storage{
			Books: memory.NewBookRepository(store),
			Users: memory.NewUserRepository(store),
			Tx:    memory.NewTxManager(store),
		}, func() {}, nil
	}

	db, err := rdb.NewDB(cfg, log)
	if err != nil {
		return Storage{}, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return Storage{
		Books: rdb.NewBookRepository(db),
		Users: rdb.NewUserRepository(db),
		Tx:    rdb.NewTxManager(db),
	}, cleanup, nil
}

func provideBookRepository(s Storage) book.Repository { return s.Books }
func provideUserRepository(s Storage) user.Repository { return s.Users }
func provideTxManager(s Storage) book.TxManager       { return s.Tx }

func provideUserService(repo user.Repository) user.Service {
	return user.NewService(repo)
}

// provideRedis redis.enabled=false时返回nil
func provideRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		log.Info("Redis未启用，不缓存图书，登出不生效于已签发Token")
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideBookCache(cfg *config.Config, client *goredis.Client) book.Cache {
	if client == nil {
		return book.NopCache{}
	}
	return redis.NewBookCache(client, cfg.Cache.BookTTL, cfg.Cache.CountTTL)
}

func provideTokenRevoker(client *goredis.Client) appuser.TokenRevoker {
	if client == nil {
		return appuser.NopRevoker{}
	}
	return redis.NewTokenBlacklist(client)
}

// provideEventPublisher mq.enabled=false时不发布事件
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (book.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return book.NopPublisher{}, func() {}, nil
	}
	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic, log)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}
	return messaging.NewBookEventPublisher(pub, log), func() { _ = pub.Close() }, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.Issuer)
}

func providePaging(cfg *config.Config) dto.Paging {
	return dto.Paging{DefaultSize: cfg.Pagination.DefaultSize, MaxSize: cfg.Pagination.MaxSize}
}

func provideUserHandler(
	cfg *config.Config,
	register *appuser.RegisterUseCase,
	login *appuser.LoginUseCase,
	logout *appuser.LogoutUseCase,
) *handler.UserHandler {
	return handler.NewUserHandler(register, login, logout, cfg.Auth.CookieName, cfg.Server.IsRelease())
}

func provideAuthMiddleware(cfg *config.Config, jwtManager *jwt.Manager, revoker appuser.TokenRevoker) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(jwtManager, revoker, cfg.Auth.CookieName)
}

// provideRateLimiter rate_limit.enabled=false时返回nil
func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func provideEngine(
	cfg *config.Config,
	log *zap.Logger,
	books *handler.BookHandler,
	pages *handler.WebHandler,
	users *handler.UserHandler,
	auth *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
) (*gin.Engine, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}
	return router.New(cfg, router.Handlers{
		Books:       books,
		Web:         pages,
		Users:       users,
		Auth:        auth,
		RateLimiter: limiter,
		Templates:   templates,
	}, log), nil
}

// provideGRPCServer grpc.enabled=false时返回nil
func provideGRPCServer(
	cfg *config.Config,
	log *zap.Logger,
	books *appbook.UseCases,
	paging dto.Paging,
	jwtManager *jwt.Manager,
	revoker appuser.TokenRevoker,
) *grpc.Server {
	if !cfg.GRPC.Enabled {
		return nil
	}
	return rpc.NewServer(
		rpc.NewCatalogServer(books, paging, !cfg.Server.IsRelease()),
		rpc.NewAuthInterceptor(jwtManager, revoker, cfg.Auth.PublicRead),
		log,
	)
}
