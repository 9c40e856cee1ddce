package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/shengyanli1982/kissreq/internal/constants"
)

// 配置相关错误定义
var (
	ErrInvalidPerSecond = errors.New("perSecond must be greater than 0")
	ErrInvalidBurst     = errors.New("burst must be greater than 0")
)

// Limiter 代表按键分桶的派发限流器
type Limiter interface {
	// Wait 阻塞直到 key 获得令牌或上下文结束，返回实际等待的时长
	Wait(ctx context.Context, key string) (time.Duration, error)

	// Type 获取限流器类型
	Type() string
}

// Config 代表限流配置
type Config struct {
	PerSecond float64 // 每秒补充的令牌数
	Burst     int     // 令牌桶容量
}

// DefaultConfig 返回默认配置，计划文件中缺省的字段取这里的值
func DefaultConfig() Config {
	return Config{
		PerSecond: constants.DefaultRatePerSecond,
		Burst:     constants.DefaultRateBurst,
	}
}

// Validate 检查配置是否有效
func (c Config) Validate() error {
	if c.PerSecond <= 0 {
		return ErrInvalidPerSecond
	}
	if c.Burst <= 0 {
		return ErrInvalidBurst
	}
	return nil
}
