// Package book 图书用例（应用层）
//
// 设计说明：
// 1. 用例编排领域服务、缓存和事件发布，本身不含业务规则
// 2. 每个用例记录一个span和一组指标（operation标签即用例名）
// 3. 缓存和事件属于旁路：失败只记日志，不改变用例结果
package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "github.com/xiebiao/bookcatalog/internal/application/book"

// 用例名（指标operation标签、span名后缀）
const (
	OpGet    = "get"
	OpSearch = "search"
	OpBrowse = "browse"
	OpCount  = "count"
	OpCreate = "create"
	OpUpdate = "update"
	OpPatch  = "patch"
	OpDelete = "delete"
)

// observe 开始一次用例观测，返回的函数在用例结束时调用
func observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	metrics.InitMetrics()
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "book."+op)
	span.SetAttributes(attrs...)
	return ctx, func(err error) {
		metrics.ObserveOperation(op, start, err)
		tracing.EndSpan(span, err)
	}
}
