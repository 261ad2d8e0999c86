// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// # 核心概念
//
// 1. **Trace（追踪）**：一个完整的请求链路，例如一次PUT /api/books/1
// 2. **Span（跨度）**：一个操作单元，例如HTTP处理、用例执行、数据库事务
// 3. **SpanContext**：跨进程传递的TraceID/SpanID（HTTP Header traceparent、gRPC metadata）
//
// # 追踪示例
//
//	Trace: PUT /api/books/1
//	├─ Span: HTTP PUT /api/books/:id          (middleware.Tracing)
//	│  └─ Span: book.Update                    (application层用例)
//	│     └─ Span: book.publish book.updated   (事务提交后发布事件)
//
// # 使用示例
//
//	shutdown, err := tracing.InitTracer(ctx, tracing.Config{
//	    ServiceName: "bookcatalog",
//	    Endpoint:    "localhost:4317",
//	})
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "catalog", "book.Create")
//	defer span.End()
//
// 未启用追踪时otel使用全局noop Provider，StartSpan返回的Span不会被导出，业务代码无需判断
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Config 追踪配置
type Config struct {
	ServiceName string
	// Endpoint OTLP gRPC端点（如localhost:4317），不带协议前缀
	Endpoint string
	// SampleRatio 采样率，<=0或>=1时全量采样
	SampleRatio float64
}

// InitTracer 初始化全局Tracer Provider
//
// 设计要点：
// 1. 使用OTLP gRPC协议，厂商中立（Jaeger、Tempo都支持）
// 2. BatchSpanProcessor批量发送Span，程序退出时调用shutdown刷新剩余数据
// 3. 同时设置W3C Trace Context和Baggage传播器
func InitTracer(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(
		dialCtx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	return Install(cfg, sdktrace.WithBatcher(exporter))
}

// Install 使用给定的SpanProcessor安装全局Provider
// 测试中传入tracetest.SpanRecorder，避免依赖真实Collector
func Install(cfg Config, opts ...sdktrace.TracerProviderOption) (func(context.Context) error, error) {
	// service.name用于在Jaeger UI中分组
	res := resource.NewSchemaless(semconv.ServiceName(cfg.ServiceName))

	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRatio > 0 && cfg.SampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
	}

	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
	}, opts...)
	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
// 必须使用返回的ctx调用下游函数，否则无法构建调用树
func StartSpan(ctx context.Context, tracerName, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, opts...)
}

// EndSpan 根据err设置状态并结束Span
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
