package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrInvalidProxy 代理地址必须是带主机的 http 或 https URL
var ErrInvalidProxy = errors.New("invalid proxy url")

// proxyFunc 返回传输层使用的代理选择函数，地址为空时使用环境变量中的代理设置
func proxyFunc(rawURL string) (func(*http.Request) (*url.URL, error), error) {
	if rawURL == "" {
		return http.ProxyFromEnvironment, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProxy, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProxy, parsed.Redacted())
	}

	return http.ProxyURL(parsed), nil
}
