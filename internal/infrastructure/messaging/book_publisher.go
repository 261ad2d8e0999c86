// Package messaging 把图书事件投递到RabbitMQ
package messaging

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// BreakerName 事件发布熔断器名称（指标标签）
const BreakerName = "catalog-events"

// MessagePublisher *mq.Publisher实现了该接口
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey, messageID string, message interface{}) error
}

// BookEventPublisher 图书事件发布者
// 设计说明：
// 1. routing key即事件类型（book.created等），MessageId即事件ID
// 2. 发布经过熔断器：Broker不可用时快速失败，不拖慢变更请求
// 3. 返回的错误由应用层记录日志，不影响请求结果
type BookEventPublisher struct {
	publisher MessagePublisher
	breaker   *circuitbreaker.CircuitBreaker
	log       *zap.Logger
}

var _ book.EventPublisher = (*BookEventPublisher)(nil)

// NewBookEventPublisher 创建事件发布者
func NewBookEventPublisher(publisher MessagePublisher, log *zap.Logger) *BookEventPublisher {
	return NewBookEventPublisherWithBreaker(publisher, circuitbreaker.DefaultConfig(), log)
}

// NewBookEventPublisherWithBreaker 指定熔断器配置
func NewBookEventPublisherWithBreaker(publisher MessagePublisher, cfg circuitbreaker.Config, log *zap.Logger) *BookEventPublisher {
	metrics.InitMetrics()

	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		log.Warn("熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	}
	cfg.IsSuccessful = func(err error) bool {
		// 调用方取消不算Broker故障
		return err == nil || errors.Is(err, context.Canceled)
	}

	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(float64(circuitbreaker.StateClosed))
	return &BookEventPublisher{
		publisher: publisher,
		breaker:   circuitbreaker.New(BreakerName, cfg),
		log:       log,
	}
}

// Publish 发布事件
func (p *BookEventPublisher) Publish(ctx context.Context, event book.Event) error {
	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.publisher.Publish(ctx, event.Type, event.ID, event)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, metrics.ResultSuccess).Inc()
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, metrics.ResultRejected).Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, metrics.ResultFailure).Inc()
	}
	return err
}

// State 熔断器当前状态
func (p *BookEventPublisher) State() circuitbreaker.State {
	return p.breaker.State()
}
