// Package constants 定义项目中使用的应用级常量
package constants

const (
	// Application metadata - 应用程序元数据

	// DefaultVersion 应用程序默认版本号
	DefaultVersion = "0.0.0"

	// AppName 应用程序名称
	AppName = "KISSReq"

	// UserAgent 默认HTTP用户代理字符串
	UserAgent = "KISSReq/1.0"

	// DefaultConfigPath 默认请求计划文件路径
	DefaultConfigPath = "./plan.yaml"
)

const (
	// Exit codes - 程序退出码

	// ExitFailure 程序异常退出码
	ExitFailure = -1

	// ExitSuccess 程序正常退出码
	ExitSuccess = 0

	// ExitBatchFailed 批量请求失败退出码
	ExitBatchFailed = 2
)

const (
	// Metrics collector constants - 指标收集器常量

	// MetricsTypePrometheus Prometheus指标类型
	MetricsTypePrometheus = "prometheus"

	// MetricsTypeNoop 空操作指标类型
	MetricsTypeNoop = "noop"

	// MetricsNamespace 指标命名空间
	MetricsNamespace = "kissreq"

	// MetricsResultSuccess 成功请求的结果标签
	MetricsResultSuccess = "success"

	// MetricsBatchSucceeded 批量执行成功的结果标签
	MetricsBatchSucceeded = "succeeded"

	// MetricsBatchAborted 批量执行中止的结果标签
	MetricsBatchAborted = "aborted"
)
