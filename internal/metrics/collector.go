package metrics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// prometheusCollector 基于 Prometheus 的指标收集器实现
type prometheusCollector struct {
	name     string
	registry *prometheus.Registry
	config   *Config
	mu       sync.RWMutex

	// 请求指标
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	responseSizeBytes   *prometheus.HistogramVec
	rateLimitWaitSecond *prometheus.HistogramVec

	// 批量指标
	batchesTotal   *prometheus.CounterVec
	batchSize      prometheus.Histogram
	batchDurations *prometheus.HistogramVec

	// 断路器指标
	circuitBreakerStateChanges *prometheus.CounterVec
}

// NewPrometheusCollector 创建使用独立注册器的 Prometheus 指标收集器实例
func NewPrometheusCollector(config *Config) (MetricsCollector, error) {
	return NewPrometheusCollectorWithRegistry(config, prometheus.NewRegistry())
}

// NewPrometheusCollectorWithRegistry 创建使用指定注册器的 Prometheus 指标收集器实例
func NewPrometheusCollectorWithRegistry(config *Config, registry *prometheus.Registry) (MetricsCollector, error) {
	if config == nil {
		return nil, ErrNilConfig
	}
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}

	collector := &prometheusCollector{
		name:     PrometheusType,
		registry: registry,
		config:   config,
	}

	if err := collector.initMetrics(); err != nil {
		return nil, err
	}

	return collector, nil
}

// initMetrics 初始化并注册所有 Prometheus 指标
func (c *prometheusCollector) initMetrics() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 构建指标名称前缀
	prefix := c.config.Namespace
	if c.config.Subsystem != "" {
		prefix = c.config.Namespace + "_" + c.config.Subsystem
	}

	durationBuckets := []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30}

	c.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_requests_total",
			Help: "Total number of requests by classified result",
		},
		[]string{"method", "host", "result", "status_code"},
	)

	c.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: durationBuckets,
		},
		[]string{"method", "host"},
	)

	c.responseSizeBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_response_size_bytes",
			Help:    "Response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8), // 100B to ~1GB
		},
		[]string{"method", "host"},
	)

	c.rateLimitWaitSecond = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_ratelimit_wait_seconds",
			Help:    "Time spent waiting for the dispatch rate limiter",
			Buckets: durationBuckets,
		},
		[]string{"host"},
	)

	c.batchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_batches_total",
			Help: "Total number of executed batches",
		},
		[]string{"result"},
	)

	c.batchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_batch_size",
			Help:    "Number of requests per executed batch",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	c.batchDurations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_batch_duration_seconds",
			Help:    "Batch execution duration in seconds",
			Buckets: durationBuckets,
		},
		[]string{"result"},
	)

	c.circuitBreakerStateChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_circuit_breaker_state_changes_total",
			Help: "Total number of circuit breaker state changes",
		},
		[]string{"host", "from_state", "to_state"},
	)

	collectors := []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.responseSizeBytes,
		c.rateLimitWaitSecond,
		c.batchesTotal,
		c.batchSize,
		c.batchDurations,
		c.circuitBreakerStateChanges,
	}
	for _, collector := range collectors {
		if err := c.registry.Register(collector); err != nil {
			return fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return nil
}

// RecordRequest 记录一次请求的最终分类结果
func (c *prometheusCollector) RecordRequest(method, host, result string, statusCode int, duration time.Duration, responseSize int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.requestsTotal.WithLabelValues(method, host, result, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(method, host).Observe(duration.Seconds())

	if responseSize > 0 {
		c.responseSizeBytes.WithLabelValues(method, host).Observe(float64(responseSize))
	}
}

// RecordBatch 记录一次批量执行
func (c *prometheusCollector) RecordBatch(result string, size int, duration time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.batchesTotal.WithLabelValues(result).Inc()
	c.batchSize.Observe(float64(size))
	c.batchDurations.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordRateLimitWait 记录限流等待时间
func (c *prometheusCollector) RecordRateLimitWait(host string, wait time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.rateLimitWaitSecond.WithLabelValues(host).Observe(wait.Seconds())
}

// RecordCircuitBreakerStateChange 记录断路器状态变化
func (c *prometheusCollector) RecordCircuitBreakerStateChange(host, fromState, toState string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.circuitBreakerStateChanges.WithLabelValues(host, fromState, toState).Inc()
}

// GetRegistry 获取 Prometheus 注册器
func (c *prometheusCollector) GetRegistry() *prometheus.Registry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.registry
}

// Name 获取收集器名称
func (c *prometheusCollector) Name() string {
	return c.name
}

// Close 关闭收集器并清理资源
func (c *prometheusCollector) Close() error {
	return nil
}
