package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/shengyanli1982/kissreq/internal/constants"
)

// 客户端相关错误定义
var (
	ErrNilRequest     = errors.New("request cannot be nil")
	ErrClientClosed   = errors.New("client is closed")
	ErrInvalidTimeout = errors.New("invalid timeout configuration")
)

// httpClient HTTP客户端实现
type httpClient struct {
	name   string
	client *http.Client
	pool   *ConnectionPool
	config *Config
	closed bool

	// 日志记录器（可选）
	logger logr.Logger
}

// NewHTTPClient 创建新的HTTP客户端实例
func NewHTTPClient(cfg *Config) (HTTPClient, error) {
	pool, err := NewConnectionPool(cfg)
	if err != nil {
		return nil, err
	}

	client := &http.Client{
		Transport: pool.GetTransport(),
		Timeout:   time.Duration(cfg.RequestTimeout) * time.Second,
		// 不跟随重定向，重定向响应本身作为结果返回
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &httpClient{
		name:   fmt.Sprintf("http-client-%d", time.Now().UnixNano()),
		client: client,
		pool:   pool,
		config: cfg,
		closed: false,
		logger: logr.Discard(), // 默认使用丢弃日志记录器
	}, nil
}

// Do 执行HTTP请求并完整读取响应体
func (c *httpClient) Do(req *http.Request) (*Exchange, error) {
	if c.closed {
		return nil, ErrClientClosed
	}
	if req == nil {
		return nil, ErrNilRequest
	}

	c.setDefaultHeaders(req)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error(err, "HTTP request execution failed",
			"method", req.Method,
			"target_url", req.URL.Redacted(),
			"execution_duration_ms", time.Since(startTime).Milliseconds())
		return nil, err
	}
	defer resp.Body.Close()

	// 响应体完整缓冲，读取阶段同样受总超时约束
	body, err := io.ReadAll(resp.Body)
	duration := time.Since(startTime)
	if err != nil {
		c.logger.Error(err, "Failed to read response body",
			"method", req.Method,
			"target_url", req.URL.Redacted(),
			"status_code", resp.StatusCode,
			"execution_duration_ms", duration.Milliseconds())
		return nil, err
	}

	c.logger.Info("HTTP request executed",
		"method", req.Method,
		"target_url", req.URL.Redacted(),
		"status_code", resp.StatusCode,
		"content_length", len(body),
		"execution_duration_ms", duration.Milliseconds(),
		"client_name", c.name)

	return &Exchange{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Duration:   duration,
	}, nil
}

// setDefaultHeaders 设置默认HTTP头部
func (c *httpClient) setDefaultHeaders(req *http.Request) {
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	if c.config.UserAgent != "" && req.Header.Get(constants.HeaderUserAgent) == "" {
		req.Header.Set(constants.HeaderUserAgent, c.config.UserAgent)
	}
}

// CloseIdleConnections 关闭空闲连接
func (c *httpClient) CloseIdleConnections() {
	c.pool.CloseIdleConnections()
}

// Close 关闭客户端并清理资源
func (c *httpClient) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true

	if c.pool != nil {
		return c.pool.Close()
	}

	return nil
}

// Name 获取客户端名称
func (c *httpClient) Name() string {
	return c.name
}

// SetLogger 设置日志记录器
func (c *httpClient) SetLogger(logger logr.Logger) {
	c.logger = logger
}
