// Package logger 基于zap的结构化日志
//
// 设计说明：
//  1. 由配置构建一个*zap.Logger，并通过zap.ReplaceGlobals设为全局，
//     这样不方便注入logger的地方（如错误分发中间件的兜底路径）也能记录日志
//  2. format=json用于生产环境（便于ELK采集），console用于本地开发
//  3. output支持stdout、stderr或文件路径
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置（与config.LogConfig字段一一对应，避免pkg依赖internal）
type Config struct {
	Level        string
	Format       string
	Output       string
	EnableCaller bool
}

// New 创建Logger
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(orDefault(cfg.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch orDefault(cfg.Format, "console") {
	case "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("不支持的日志格式: %q", cfg.Format)
	}

	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = !cfg.EnableCaller
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	output := orDefault(cfg.Output, "stdout")
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// MustNew 创建Logger，失败时panic（仅用于main）
func MustNew(cfg Config) *zap.Logger {
	l, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

// SetGlobal 设置全局Logger，返回恢复函数
func SetGlobal(l *zap.Logger) func() {
	return zap.ReplaceGlobals(l)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
