package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// pingTimeout 启动时连通性检查的超时
const pingTimeout = 3 * time.Second

// NewClient 创建Redis客户端并检查连通性
// 缓存和令牌黑名单共用同一个客户端，启用Redis但连不上时启动失败
func NewClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	rc := cfg.Redis
	client := redis.NewClient(&redis.Options{
		Addr:         rc.Addr(),
		Password:     rc.Password,
		DB:           rc.DB,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接Redis %s 失败: %w", rc.Addr(), err)
	}

	log.Info("Redis已连接",
		zap.String("addr", rc.Addr()),
		zap.Int("db", rc.DB),
		zap.Int("pool_size", rc.PoolSize),
	)
	return client, nil
}
