package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化（重复调用不会panic）
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics()

	if HTTPRequestsTotal == nil || BookOperationsTotal == nil || BookCacheRequests == nil {
		t.Fatal("指标未初始化")
	}
}

// TestObserveOperation 测试用例结果统计
func TestObserveOperation(t *testing.T) {
	InitMetrics()

	success := BookOperationsTotal.WithLabelValues("create", ResultSuccess)
	failure := BookOperationsTotal.WithLabelValues("create", ResultFailure)
	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)

	ObserveOperation("create", time.Now(), nil)
	ObserveOperation("create", time.Now(), nil)
	ObserveOperation("create", time.Now(), errors.New("duplicate"))

	if got := testutil.ToFloat64(success) - beforeSuccess; got != 2 {
		t.Errorf("成功次数错误: expected=2, got=%f", got)
	}
	if got := testutil.ToFloat64(failure) - beforeFailure; got != 1 {
		t.Errorf("失败次数错误: expected=1, got=%f", got)
	}

	count := getHistogramVecCount(t, BookOperationDuration, map[string]string{"operation": "create"})
	if count < 3 {
		t.Errorf("耗时观测次数错误: expected>=3, got=%d", count)
	}
}

// TestObserveCache 测试缓存命中统计
func TestObserveCache(t *testing.T) {
	InitMetrics()

	hit := BookCacheRequests.WithLabelValues("book", ResultHit)
	before := testutil.ToFloat64(hit)
	ObserveCache("book", ResultHit)

	if got := testutil.ToFloat64(hit) - before; got != 1 {
		t.Errorf("命中次数错误: expected=1, got=%f", got)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()
	SetGauge(HTTPRequestsInProgress, 0)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != 1 {
		t.Errorf("Gauge值错误: expected=1, got=%f", v)
	}

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "catalog-events"}, 1)
	if v := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("catalog-events")); v != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", v)
	}
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()
	labels := map[string]string{"method": "GET", "path": "/api/books/:id", "status": "404"}
	before := testutil.ToFloat64(HTTPRequestsTotal.With(labels))

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)

	if got := testutil.ToFloat64(HTTPRequestsTotal.With(labels)) - before; got != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", got)
	}
}

// TestHandler 测试/metrics端点输出
func TestHandler(t *testing.T) {
	InitMetrics()
	ObserveCache("count", ResultMiss)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "catalog_book_cache_requests_total") {
		t.Error("输出中缺少缓存指标")
	}
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
