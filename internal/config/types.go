package config

// Config 代表请求计划文件的主配置结构体，包含客户端设置、保护机制和待执行的请求列表
type Config struct {
	Client    ClientConfig     `yaml:"client"`
	RateLimit *RateLimitConfig `yaml:"ratelimit,omitempty"`
	Breaker   *BreakerConfig   `yaml:"breaker,omitempty"`
	Metrics   *MetricsConfig   `yaml:"metrics,omitempty"`
	Batch     bool             `yaml:"batch"`
	Requests  []RequestConfig  `yaml:"requests" validate:"required,min=1,dive"`
}

// ClientConfig 代表HTTP客户端配置，超时与Keep-Alive单位均为秒。
// 超时写 0 表示不限制，keepalive 写 0 表示禁用，未填写时取默认值
type ClientConfig struct {
	Agent          string       `yaml:"agent"`
	ConnectTimeout *int         `yaml:"connectTimeout,omitempty" validate:"omitempty,min=0,max=3600"`
	Timeout        *int         `yaml:"timeout,omitempty" validate:"omitempty,min=0,max=86400"`
	KeepAlive      *int         `yaml:"keepalive,omitempty" validate:"omitempty,min=0,max=3600"`
	JSON           *bool        `yaml:"json,omitempty"`
	Insecure       *bool        `yaml:"insecure,omitempty"`
	MaxConcurrency int          `yaml:"maxConcurrency" validate:"min=0,max=1024"`
	Proxy          *ProxyConfig `yaml:"proxy,omitempty"`
}

// RateLimitConfig 代表按目标主机的派发限流配置
type RateLimitConfig struct {
	PerSecond float64 `yaml:"perSecond" validate:"omitempty,gt=0,max=65535"`
	Burst     int     `yaml:"burst" validate:"omitempty,min=1,max=65535"`
}

// BreakerConfig 代表按目标主机的熔断器配置
type BreakerConfig struct {
	Threshold   float64 `yaml:"threshold,omitempty" validate:"omitempty,min=0.01,max=1.0"`
	Cooldown    int     `yaml:"cooldown,omitempty" validate:"omitempty,min=1000,max=3600000"` // 单位：毫秒
	MaxRequests uint32  `yaml:"maxRequests,omitempty" validate:"omitempty,min=1,max=100"`
	Interval    int     `yaml:"interval,omitempty" validate:"omitempty,min=1000,max=3600000"` // 单位：毫秒
}

// MetricsConfig 代表指标配置
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace,omitempty"`
}

// ProxyConfig 代表代理配置，设置HTTP代理服务器
type ProxyConfig struct {
	URL string `yaml:"url" validate:"required,http_url"`
}

// RequestConfig 代表计划中的单个请求
type RequestConfig struct {
	Name    string         `yaml:"name"`
	URL     string         `yaml:"url" validate:"required"`
	Method  string         `yaml:"method,omitempty" validate:"omitempty,oneof=GET POST"`
	Payload map[string]any `yaml:"payload,omitempty"`
	Headers []string       `yaml:"headers,omitempty" validate:"dive,header_line"`
}
