package client

import (
	"errors"
	"fmt"
)

// 工厂相关错误定义
var (
	ErrNilConfig = errors.New("client config cannot be nil")
)

// clientFactory 代表HTTP客户端工厂实现
type clientFactory struct{}

// NewFactory 创建新的HTTP客户端工厂实例
func NewFactory() HTTPClientFactory {
	return &clientFactory{}
}

// Create 根据配置创建HTTP客户端
func (f *clientFactory) Create(config *Config) (HTTPClient, error) {
	if config == nil {
		return nil, ErrNilConfig
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return NewHTTPClient(config)
}

// validateConfig 验证客户端配置，超时与Keep-Alive允许为 0
func validateConfig(config *Config) error {
	if config.ConnectTimeout < 0 {
		return fmt.Errorf("%w: connect timeout must be non-negative", ErrInvalidTimeout)
	}
	if config.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must be non-negative", ErrInvalidTimeout)
	}
	if config.KeepAlive < 0 {
		return fmt.Errorf("%w: keepalive must be non-negative", ErrInvalidTimeout)
	}
	return nil
}
