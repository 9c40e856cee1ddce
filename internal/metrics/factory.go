package metrics

import (
	"errors"
	"fmt"

	"github.com/shengyanli1982/kissreq/internal/constants"
)

// 配置相关错误定义
var (
	ErrInvalidMetricsType = errors.New("invalid metrics type")
	ErrNilConfig          = errors.New("metrics config cannot be nil")
	ErrInvalidConfig      = errors.New("invalid metrics config")
)

const (
	NoopType       = constants.MetricsTypeNoop
	PrometheusType = constants.MetricsTypePrometheus
)

// New 根据配置创建指标收集器，未启用时返回空操作收集器
func New(config *Config) (MetricsCollector, error) {
	if config == nil {
		return nil, ErrNilConfig
	}
	if !config.Enabled {
		return NewNoopCollector(), nil
	}

	switch config.Type {
	case NoopType, "":
		return NewNoopCollector(), nil
	case PrometheusType:
		if err := validateName("namespace", config.Namespace, true); err != nil {
			return nil, err
		}
		if err := validateName("subsystem", config.Subsystem, false); err != nil {
			return nil, err
		}
		return NewPrometheusCollector(config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMetricsType, config.Type)
	}
}

// validateName 指标名称片段只允许字母、数字和下划线
func validateName(field, value string, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidConfig, field)
		}
		return nil
	}

	for _, r := range value {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return fmt.Errorf("%w: invalid %s %q", ErrInvalidConfig, field, value)
		}
	}
	return nil
}
