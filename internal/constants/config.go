package constants

const (
	// Command line flags - 命令行标志

	// FlagConfig 请求计划文件路径参数名
	FlagConfig = "config"

	// FlagJSON JSON日志格式参数名
	FlagJSON = "json"

	// FlagRelease 发布模式参数名
	FlagRelease = "release"

	// FlagBatch 批量模式参数名
	FlagBatch = "batch"

	// Flag short aliases - 短参数别名

	// FlagConfigShort 请求计划文件路径短参数
	FlagConfigShort = "c"

	// FlagJSONShort JSON日志格式短参数
	FlagJSONShort = "j"

	// FlagReleaseShort 发布模式短参数
	FlagReleaseShort = "r"

	// FlagBatchShort 批量模式短参数
	FlagBatchShort = "b"
)

const (
	// Limits and constraints - 限制和约束

	// MaxConnectTimeout 最大连接超时时间（秒）
	MaxConnectTimeout = 3600

	// MaxRequestTimeout 最大请求总超时时间（秒，24小时）
	MaxRequestTimeout = 86400

	// MaxKeepAlive 最大TCP Keep-Alive间隔（秒）
	MaxKeepAlive = 3600

	// MaxConcurrency 批量模式最大并发数
	MaxConcurrency = 1024

	// MaxPerSecond 最大每秒请求数
	MaxPerSecond = 65535

	// MaxBurst 最大突发请求数
	MaxBurst = 65535

	// MaxRequests 熔断器半开状态最大请求数
	MaxRequests = 100
)

const (
	// Default configuration values - 配置默认值

	// DefaultConnectTimeout 默认连接超时时间（秒）
	DefaultConnectTimeout = 5

	// DefaultRequestTimeout 默认请求总超时时间（秒）
	DefaultRequestTimeout = 12

	// DefaultKeepAlive 默认TCP Keep-Alive间隔（秒）
	DefaultKeepAlive = 20

	// DefaultUseJSON 默认是否使用JSON编解码
	DefaultUseJSON = true

	// DefaultInsecureSkipVerify 默认跳过TLS证书校验
	DefaultInsecureSkipVerify = true

	// DefaultTLSHandshakeTimeout 默认TLS握手超时（秒）
	DefaultTLSHandshakeTimeout = 10

	// DefaultIdleConnTimeout 默认空闲连接超时（秒）
	DefaultIdleConnTimeout = 90

	// DefaultRatePerSecond 默认每秒请求数
	DefaultRatePerSecond = 100

	// DefaultRateBurst 默认突发请求数
	DefaultRateBurst = 1

	// DefaultBreakerName 默认熔断器名称
	DefaultBreakerName = "default"

	// DefaultBreakerThreshold 默认熔断器失败率阈值
	DefaultBreakerThreshold = 0.5

	// DefaultBreakerMinRequests 触发熔断前的最少请求数
	DefaultBreakerMinRequests = 5

	// DefaultBreakerCooldown 默认熔断器冷却时间（毫秒）
	DefaultBreakerCooldown = 30000

	// DefaultBreakerMaxRequests 默认熔断器半开状态最大请求数
	DefaultBreakerMaxRequests = 3

	// DefaultBreakerInterval 默认熔断器统计间隔（毫秒）
	DefaultBreakerInterval = 10000
)
