package request

import (
	"github.com/shengyanli1982/kissreq/internal/client"
	"github.com/shengyanli1982/kissreq/internal/constants"
)

// Method 支持的HTTP方法
type Method string

const (
	// MethodGET 载荷编码到查询字符串，请求体为空
	MethodGET Method = constants.MethodGET

	// MethodPOST 载荷作为请求体，JSON 或表单编码
	MethodPOST Method = constants.MethodPOST
)

// Config 客户端配置，超时与 Keep-Alive 单位均为秒
type Config struct {
	ConnectTimeout     int    // 连接超时
	Timeout            int    // 请求总超时
	KeepAlive          int    // TCP Keep-Alive 探测间隔，0 表示禁用
	JSON               bool   // 请求体 JSON 编码、响应体 JSON 解码
	UserAgent          string // 默认 User-Agent
	ProxyURL           string // 代理地址，为空时使用环境变量
	InsecureSkipVerify bool   // 跳过 TLS 证书校验，默认开启
	MaxConcurrency     int    // 批量模式的并发上限，0 表示不限制
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:     constants.DefaultConnectTimeout,
		Timeout:            constants.DefaultRequestTimeout,
		KeepAlive:          constants.DefaultKeepAlive,
		JSON:               constants.DefaultUseJSON,
		UserAgent:          constants.UserAgent,
		InsecureSkipVerify: constants.DefaultInsecureSkipVerify,
	}
}

// engineConfig 提取与连接池相关的配置，只有这些字段变化时才需要新建连接池
func (c Config) engineConfig() client.Config {
	cfg := client.DefaultConfig()
	cfg.ConnectTimeout = c.ConnectTimeout
	cfg.RequestTimeout = c.Timeout
	cfg.KeepAlive = c.KeepAlive
	cfg.InsecureSkipVerify = c.InsecureSkipVerify
	cfg.ProxyURL = c.ProxyURL
	cfg.UserAgent = c.UserAgent
	return *cfg
}
