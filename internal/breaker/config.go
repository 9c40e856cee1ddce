package breaker

import (
	"time"

	"github.com/shengyanli1982/kissreq/internal/config"
	"github.com/shengyanli1982/kissreq/internal/constants"
	"github.com/sony/gobreaker"
)

// DefaultSettings 返回默认的熔断器设置
func DefaultSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        constants.DefaultBreakerName,
		MaxRequests: constants.DefaultBreakerMaxRequests,
		Interval:    time.Duration(constants.DefaultBreakerInterval) * time.Millisecond,
		Timeout:     time.Duration(constants.DefaultBreakerCooldown) * time.Millisecond,
		ReadyToTrip: readyToTrip(constants.DefaultBreakerThreshold),
	}
}

// CreateFromConfig 从配置创建熔断器设置的便捷函数
func CreateFromConfig(name string, cfg *config.BreakerConfig) gobreaker.Settings {
	settings := DefaultSettings()
	settings.Name = name
	if cfg == nil {
		return settings
	}

	// 设置半开状态下允许通过的最大请求数
	if cfg.MaxRequests > 0 {
		settings.MaxRequests = cfg.MaxRequests
	}

	// 设置闭合状态下统计周期重置间隔
	if cfg.Interval > 0 {
		settings.Interval = time.Duration(cfg.Interval) * time.Millisecond
	}

	// 设置开放状态持续时间
	if cfg.Cooldown > 0 {
		settings.Timeout = time.Duration(cfg.Cooldown) * time.Millisecond
	}

	if cfg.Threshold > 0 {
		settings.ReadyToTrip = readyToTrip(cfg.Threshold)
	}

	return settings
}

// readyToTrip 请求数达到下限且失败率达到阈值时熔断
func readyToTrip(threshold float64) func(counts gobreaker.Counts) bool {
	return func(counts gobreaker.Counts) bool {
		if counts.Requests < constants.DefaultBreakerMinRequests {
			return false
		}
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return failureRatio >= threshold
	}
}
