package client

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// ConnectionPool 连接池管理器，同一个池内的请求复用连接
type ConnectionPool struct {
	transport *http.Transport
	config    *Config
}

// NewConnectionPool 创建新的连接池实例
func NewConnectionPool(cfg *Config) (*ConnectionPool, error) {
	proxy, err := proxyFunc(cfg.ProxyURL)
	if err != nil {
		return nil, err
	}

	// TCP Keep-Alive 为 0 时禁用探测（net.Dialer 中负值表示禁用）
	keepAlive := time.Duration(cfg.KeepAlive) * time.Second
	if cfg.KeepAlive == 0 {
		keepAlive = -1
	}

	dialer := &net.Dialer{
		Timeout:   time.Duration(cfg.ConnectTimeout) * time.Second,
		KeepAlive: keepAlive,
	}

	transport := &http.Transport{
		// 目标可能使用自签名或配置错误的证书
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
		},
		TLSHandshakeTimeout: time.Duration(cfg.TLSHandshakeTimeout) * time.Second,

		Proxy:              proxy,
		DialContext:        dialer.DialContext,
		DisableCompression: cfg.DisableCompression,
		ForceAttemptHTTP2:  true,

		IdleConnTimeout:       time.Duration(cfg.IdleConnTimeout) * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &ConnectionPool{
		transport: transport,
		config:    cfg,
	}, nil
}

// GetTransport 获取HTTP传输层
func (p *ConnectionPool) GetTransport() *http.Transport {
	return p.transport
}

// CloseIdleConnections 关闭所有空闲连接
func (p *ConnectionPool) CloseIdleConnections() {
	p.transport.CloseIdleConnections()
}

// Close 关闭连接池
func (p *ConnectionPool) Close() error {
	p.transport.CloseIdleConnections()
	return nil
}
