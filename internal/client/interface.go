package client

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/shengyanli1982/kissreq/internal/constants"
)

// HTTPClient 代表HTTP客户端接口，负责执行单个请求并完整缓冲响应体
type HTTPClient interface {
	// Do 执行HTTP请求，不跟随重定向；返回的 Exchange 中响应体已被完整读取并关闭
	Do(req *http.Request) (*Exchange, error)

	// CloseIdleConnections 关闭连接池中的空闲连接
	CloseIdleConnections()

	// Close 关闭客户端并清理资源
	Close() error

	// Name 获取客户端名称
	Name() string

	// SetLogger 设置日志记录器
	SetLogger(logger logr.Logger)
}

// HTTPClientFactory 代表HTTP客户端工厂接口
type HTTPClientFactory interface {
	// Create 根据配置创建HTTP客户端
	Create(config *Config) (HTTPClient, error)
}

// Exchange 代表一次完成的HTTP往返
type Exchange struct {
	StatusCode int           // HTTP 状态码
	Header     http.Header   // 响应头部
	Body       []byte        // 完整缓冲的响应体
	Duration   time.Duration // 往返耗时
}

// Config 代表HTTP客户端配置
type Config struct {
	ConnectTimeout      int    // 连接超时时间(秒)，0 表示不限制
	RequestTimeout      int    // 请求总超时时间(秒)，0 表示不限制
	KeepAlive           int    // TCP Keep-Alive 探测间隔(秒)，0 表示禁用
	IdleConnTimeout     int    // 空闲连接超时时间(秒)
	InsecureSkipVerify  bool   // 是否跳过TLS证书校验
	ProxyURL            string // 代理URL，为空时使用环境变量
	UserAgent           string // 默认User-Agent
	DisableCompression  bool   // 是否禁用透明gzip解压
	TLSHandshakeTimeout int    // TLS握手超时时间(秒)
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		ConnectTimeout:      constants.DefaultConnectTimeout,
		RequestTimeout:      constants.DefaultRequestTimeout,
		KeepAlive:           constants.DefaultKeepAlive,
		IdleConnTimeout:     constants.DefaultIdleConnTimeout,
		InsecureSkipVerify:  constants.DefaultInsecureSkipVerify,
		ProxyURL:            "",
		UserAgent:           constants.UserAgent,
		DisableCompression:  false,
		TLSHandshakeTimeout: constants.DefaultTLSHandshakeTimeout,
	}
}
