// @title           Book Catalog API
// @version         1.0
// @description     图书目录服务：查询、维护图书，统一错误报告
// @host            localhost:8080
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <token>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/xiebiao/bookcatalog/docs"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// shutdownTimeout 优雅关闭等待进行中请求的最长时间
const shutdownTimeout = 15 * time.Second

// main 启动流程：
//  1. 加载配置、初始化日志和追踪
//  2. Wire组装依赖（存储、缓存、消息、Handler）
//  3. 确保管理员账号存在
//  4. 启动HTTP（和可选的gRPC）服务
//  5. 收到SIGINT/SIGTERM后优雅关闭
func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找config/config.yaml）")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	restore := logger.SetGlobal(log)
	defer restore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
		})
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(sctx); err != nil {
				log.Warn("关闭Tracer失败", zap.Error(err))
			}
		}()
		log.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	app, cleanup, err := InitializeApp(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	if err := app.Bootstrap.Execute(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("初始化管理员失败: %w", err)
	}

	if app.RateLimiter != nil {
		done := make(chan struct{})
		defer close(done)
		go app.RateLimiter.Cleanup(done)
	}

	errCh := make(chan error, 2)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info("HTTP服务启动",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP服务异常: %w", err)
		}
	}()

	if app.GRPC != nil {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPC.Port))
		if err != nil {
			return fmt.Errorf("监听gRPC端口失败: %w", err)
		}
		go func() {
			log.Info("gRPC服务启动", zap.String("addr", lis.Addr().String()))
			if err := app.GRPC.Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC服务异常: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("收到关闭信号，开始优雅关闭")
	case err := <-errCh:
		log.Error("服务异常退出", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if app.GRPC != nil {
		app.GRPC.GracefulStop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP服务关闭失败: %w", err)
	}
	log.Info("服务已安全关闭")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
