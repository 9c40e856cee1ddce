package breaker

import (
	"strings"
	"sync"

	"github.com/sony/gobreaker"
)

// StateChangeFunc 熔断器状态变化回调，host 为熔断器绑定的主机
type StateChangeFunc func(host string, from, to gobreaker.State)

// Group 按目标主机懒创建熔断器，同一主机共享一个熔断器
type Group struct {
	mu       sync.Mutex
	settings gobreaker.Settings
	breakers map[string]CircuitBreaker
}

// NewGroup 创建熔断器组，settings 作为每个主机熔断器的模板
func NewGroup(settings gobreaker.Settings, onChange StateChangeFunc) *Group {
	if onChange != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			onChange(name, from, to)
		}
	}

	return &Group{
		settings: settings,
		breakers: make(map[string]CircuitBreaker),
	}
}

// Get 获取或创建指定主机的熔断器，主机名不区分大小写
func (g *Group) Get(host string) (CircuitBreaker, error) {
	host = strings.ToLower(host)

	g.mu.Lock()
	defer g.mu.Unlock()

	if cb, ok := g.breakers[host]; ok {
		return cb, nil
	}

	cb, err := New(host, g.settings)
	if err != nil {
		return nil, err
	}
	g.breakers[host] = cb
	return cb, nil
}

// Len 返回已创建的熔断器数量
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.breakers)
}
