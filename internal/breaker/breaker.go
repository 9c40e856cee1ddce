package breaker

import (
	"errors"

	"github.com/sony/gobreaker"
)

// ErrEmptyHost 熔断器必须绑定到一个目标主机
var ErrEmptyHost = errors.New("circuit breaker host cannot be empty")

// CircuitBreaker 代表单个目标主机的熔断器
type CircuitBreaker interface {
	// Execute 在熔断器保护下执行请求，熔断打开时直接返回 gobreaker.ErrOpenState
	Execute(req func() (interface{}, error)) (interface{}, error)

	// Name 返回熔断器绑定的主机
	Name() string

	// State 返回当前状态
	State() gobreaker.State

	// Counts 返回当前统计周期内的计数
	Counts() gobreaker.Counts
}

// New 为目标主机创建熔断器，settings.Name 会被替换为主机名
func New(host string, settings gobreaker.Settings) (CircuitBreaker, error) {
	if host == "" {
		return nil, ErrEmptyHost
	}

	settings.Name = host
	return gobreaker.NewCircuitBreaker(settings), nil
}
