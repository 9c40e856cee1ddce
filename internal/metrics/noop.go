package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// noopCollector 空操作收集器，未启用指标时使用
type noopCollector struct {
	registry *prometheus.Registry
}

// NewNoopCollector 创建空操作收集器
func NewNoopCollector() MetricsCollector {
	return &noopCollector{
		registry: prometheus.NewRegistry(),
	}
}

func (n *noopCollector) RecordRequest(method, host, result string, statusCode int, duration time.Duration, responseSize int64) {
}

func (n *noopCollector) RecordBatch(result string, size int, duration time.Duration) {}

func (n *noopCollector) RecordRateLimitWait(host string, wait time.Duration) {}

func (n *noopCollector) RecordCircuitBreakerStateChange(host, fromState, toState string) {}

// GetRegistry 返回一个空注册器，便于调用方统一处理
func (n *noopCollector) GetRegistry() *prometheus.Registry {
	return n.registry
}

func (n *noopCollector) Name() string {
	return NoopType
}

func (n *noopCollector) Close() error {
	return nil
}
