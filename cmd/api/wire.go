//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
)

// infrastructureSet 存储、缓存、消息
var infrastructureSet = wire.NewSet(
	provideStorage,
	provideBookRepository,
	provideUserRepository,
	provideTxManager,
	provideRedis,
	provideBookCache,
	provideTokenRevoker,
	provideEventPublisher,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	book.NewService,
	provideUserService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewUseCases,
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewBootstrapAdminUseCase,
)

// interfaceSet HTTP与gRPC
var interfaceSet = wire.NewSet(
	provideJWTManager,
	providePaging,
	provideAuthMiddleware,
	provideRateLimiter,
	handler.NewBookHandler,
	handler.NewWebHandler,
	provideUserHandler,
	provideEngine,
	provideGRPCServer,
)

// InitializeApp 组装应用
// cleanup按创建的逆序关闭消息连接、Redis、数据库
func InitializeApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
