package rpc

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// 消息大小上限
const maxMessageSize = 10 * 1024 * 1024

// NewServer 创建gRPC服务器并注册目录服务、健康检查、反射
// 拦截器顺序：Recovery → Logger → Auth
func NewServer(catalog CatalogServiceServer, auth *AuthInterceptor, log *zap.Logger) *grpc.Server {
	server := grpc.NewServer(
		grpc.MaxRecvMsgSize(maxMessageSize),
		grpc.MaxSendMsgSize(maxMessageSize),
		grpc.ChainUnaryInterceptor(
			UnaryRecovery(log),
			UnaryLogger(log),
			auth.Unary(),
		),
	)

	RegisterCatalogServiceServer(server, catalog)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	// grpcurl调试用
	reflection.Register(server)
	return server
}
