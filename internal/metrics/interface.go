package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shengyanli1982/kissreq/internal/constants"
)

// MetricsCollector 代表指标收集器接口，定义统一的指标收集行为
type MetricsCollector interface {
	// 请求指标收集方法

	// RecordRequest 记录一次请求的最终分类结果
	// method: HTTP 方法
	// host: 目标主机
	// result: 分类结果（success 或错误标识）
	// statusCode: HTTP 状态码，传输层失败时为 0
	// duration: 请求耗时
	// responseSize: 响应体大小（字节）
	RecordRequest(method, host, result string, statusCode int, duration time.Duration, responseSize int64)

	// 批量指标收集方法

	// RecordBatch 记录一次批量执行
	// result: succeeded 或 aborted
	// size: 批量中的请求数
	// duration: 从开始执行到全部完成的耗时
	RecordBatch(result string, size int, duration time.Duration)

	// 保护机制指标收集方法

	// RecordRateLimitWait 记录限流等待时间
	// host: 目标主机
	// wait: 等待时长
	RecordRateLimitWait(host string, wait time.Duration)

	// RecordCircuitBreakerStateChange 记录断路器状态变化
	// host: 目标主机
	// fromState: 原状态
	// toState: 新状态
	RecordCircuitBreakerStateChange(host, fromState, toState string)

	// 工具方法

	// GetRegistry 获取 Prometheus 注册器
	GetRegistry() *prometheus.Registry

	// Name 获取收集器名称
	Name() string

	// Close 关闭收集器并清理资源
	Close() error
}

// Config 代表指标收集器配置
type Config struct {
	// Type 指标收集器类型（prometheus, noop）
	Type string `yaml:"type" json:"type"`

	// Enabled 是否启用指标收集
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Namespace 指标命名空间前缀
	Namespace string `yaml:"namespace" json:"namespace"`

	// Subsystem 指标子系统名称
	Subsystem string `yaml:"subsystem" json:"subsystem"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Type:      NoopType,
		Enabled:   true,
		Namespace: constants.MetricsNamespace,
		Subsystem: "",
	}
}
