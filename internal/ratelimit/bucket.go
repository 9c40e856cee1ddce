package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// bucketLimiter 每个键一个令牌桶
type bucketLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	config  Config
}

// New 按配置创建令牌桶限流器
func New(cfg Config) (Limiter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &bucketLimiter{
		buckets: make(map[string]*rate.Limiter),
		config:  cfg,
	}, nil
}

func (l *bucketLimiter) Wait(ctx context.Context, key string) (time.Duration, error) {
	startTime := time.Now()
	err := l.bucket(key).Wait(ctx)
	return time.Since(startTime), err
}

func (l *bucketLimiter) Type() string {
	return "token_bucket"
}

// bucket 获取或创建 key 的令牌桶，新桶是满的
func (l *bucketLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Limit(l.config.PerSecond), l.config.Burst)
		l.buckets[key] = b
	}
	return b
}
