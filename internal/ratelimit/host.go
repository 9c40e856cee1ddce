package ratelimit

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// HostLimiter 按请求目标的 host:port 分桶的限流器
type HostLimiter struct {
	limiter Limiter
}

// NewHostLimiter 创建主机限流器
func NewHostLimiter(cfg Config) (*HostLimiter, error) {
	limiter, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &HostLimiter{limiter: limiter}, nil
}

// Wait 等待目标主机的令牌，没有主机的地址直接通过
func (l *HostLimiter) Wait(ctx context.Context, target *url.URL) (time.Duration, error) {
	key := hostKey(target)
	if key == "" {
		return 0, nil
	}
	return l.limiter.Wait(ctx, key)
}

func (l *HostLimiter) Type() string {
	return "host_" + l.limiter.Type()
}

func hostKey(target *url.URL) string {
	if target == nil {
		return ""
	}
	return strings.ToLower(target.Host)
}
