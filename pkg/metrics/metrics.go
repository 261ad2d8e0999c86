// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、图书创建次数、缓存命中次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的请求数、目录中的图书总数
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、图书用例耗时
//
// # 指标一览
//
//	http_requests_total{method,path,status}          HTTP请求总数
//	http_request_duration_seconds{method,path}       HTTP请求耗时
//	http_requests_in_progress                        正在处理的HTTP请求数
//	catalog_book_operations_total{operation,result}  图书用例执行次数
//	catalog_book_operation_duration_seconds{operation}
//	catalog_book_cache_requests_total{cache,result}  缓存命中/未命中
//	catalog_books                                    最近一次统计的图书总数
//	circuit_breaker_state{name}                      熔断器状态
//	circuit_breaker_requests_total{name,result}
//	messages_published_total{exchange,routing_key}
//	messages_consumed_total{queue,result}
//	message_processing_duration_seconds
//
// # 使用示例
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(metrics.Handler()))
//
//	start := time.Now()
//	book, err := svc.Create(ctx, draft)
//	metrics.ObserveOperation("create", start, err)
//
// # 命名规范
//
// 1. Counter以`_total`结尾
// 2. Histogram以单位结尾（`_seconds`）
// 3. 标签只使用有限取值的维度（method、status、operation），不要用book_id作为标签
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 结果标签取值
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultError    = "error"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BookOperationsTotal 图书用例执行次数
	// 标签：operation（get/search/count/create/update/patch/delete）、result（success/failure）
	BookOperationsTotal *prometheus.CounterVec

	// BookOperationDuration 图书用例耗时
	BookOperationDuration *prometheus.HistogramVec

	// BookCacheRequests 图书缓存访问次数
	// 标签：cache（book/count）、result（hit/miss/error）
	BookCacheRequests *prometheus.CounterVec

	// BooksInCatalog 最近一次统计得到的图书总数
	BooksInCatalog prometheus.Gauge

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数
	MessagesConsumedTotal *prometheus.CounterVec

	// MessageProcessingDuration 消息处理耗时
	MessageProcessingDuration prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标
//
// 使用promauto注册到默认Registry，重复调用是安全的（只注册一次）
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	BookOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_book_operations_total",
			Help: "图书用例执行次数",
		},
		[]string{"operation", "result"},
	)

	BookOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "catalog_book_operation_duration_seconds",
			Help: "图书用例耗时（秒）",
			// 单表操作，桶比HTTP更细
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	BookCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_book_cache_requests_total",
			Help: "图书缓存访问次数",
		},
		[]string{"cache", "result"},
	)

	BooksInCatalog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_books",
			Help: "最近一次统计的图书总数",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_processing_duration_seconds",
			Help:    "消息处理耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
}

// Handler 暴露/metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveOperation 记录一次图书用例的结果和耗时
func ObserveOperation(operation string, start time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	BookOperationsTotal.WithLabelValues(operation, result).Inc()
	BookOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveCache 记录一次缓存访问
func ObserveCache(cache, result string) {
	BookCacheRequests.WithLabelValues(cache, result).Inc()
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
