package rpc

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// writeMethods 需要管理员的方法
var writeMethods = map[string]bool{
	MethodCreateBook: true,
	MethodUpdateBook: true,
	MethodPatchBook:  true,
	MethodDeleteBook: true,
}

// RevocationChecker Token黑名单查询
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type claimsKey struct{}

// ClaimsFromContext 当前调用的Claims，匿名调用返回nil
func ClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims
}

// AuthInterceptor 与HTTP相同的访问策略：
// 读方法要求登录（publicRead时允许匿名），写方法要求ADMIN
// Token从metadata的authorization: Bearer <token>读取
type AuthInterceptor struct {
	jwtManager *jwt.Manager
	revocation RevocationChecker
	publicRead bool
}

// NewAuthInterceptor 创建认证拦截器
func NewAuthInterceptor(jwtManager *jwt.Manager, revocation RevocationChecker, publicRead bool) *AuthInterceptor {
	return &AuthInterceptor{jwtManager: jwtManager, revocation: revocation, publicRead: publicRead}
}

// Unary 一元拦截器
func (a *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if !strings.HasPrefix(info.FullMethod, "/"+ServiceName+"/") {
			return handler(ctx, req)
		}

		write := writeMethods[info.FullMethod]
		token := bearerToken(ctx)
		if token == "" {
			if !write && a.publicRead {
				return handler(ctx, req)
			}
			return nil, toStatus(apperrors.ErrUnauthorized, false)
		}

		claims, err := a.jwtManager.ParseToken(token)
		if err != nil {
			return nil, toStatus(err, false)
		}
		revoked, err := a.revocation.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, toStatus(apperrors.ErrRedisError.WithCause(err), false)
		}
		if revoked {
			return nil, toStatus(apperrors.ErrInvalidToken.WithMessage("token has been revoked"), false)
		}
		if write && claims.Role != string(user.RoleAdmin) {
			return nil, toStatus(apperrors.ErrForbidden, false)
		}
		return handler(context.WithValue(ctx, claimsKey{}, claims), req)
	}
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}
	parts := strings.SplitN(values[0], " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UnaryLogger 记录每次调用的方法、状态码和耗时
func UnaryLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("latency", time.Since(start)),
		}
		switch code {
		case codes.OK:
			log.Info("grpc request", fields...)
		case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
			log.Error("grpc request", append(fields, zap.Error(err))...)
		default:
			log.Warn("grpc request", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// UnaryRecovery panic转换为Internal
func UnaryRecovery(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("grpc panic recovered",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				err = toStatus(apperrors.ErrInternal, false)
			}
		}()
		return handler(ctx, req)
	}
}
