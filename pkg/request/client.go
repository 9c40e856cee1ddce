package request

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/shengyanli1982/kissreq/internal/breaker"
	"github.com/shengyanli1982/kissreq/internal/client"
	"github.com/shengyanli1982/kissreq/internal/constants"
	"github.com/shengyanli1982/kissreq/internal/headers"
	"github.com/shengyanli1982/kissreq/internal/metrics"
	"github.com/shengyanli1982/kissreq/internal/ratelimit"
	"github.com/sony/gobreaker"
)

// State 客户端的批量状态
type State int

const (
	// StateIdle 没有进行中的批量
	StateIdle State = iota

	// StateCollecting 批量已开始，正在收集请求
	StateCollecting

	// StateDraining 批量正在执行
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StateDraining:
		return "draining"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// errServerStatus 让 5xx 响应计入熔断器失败次数，响应本身仍交给分类器
var errServerStatus = errors.New("server error status")

// Recorder 请求与批量执行结果的指标记录器
type Recorder interface {
	RecordRequest(method, host, result string, statusCode int, duration time.Duration, responseSize int64)
	RecordBatch(result string, size int, duration time.Duration)
	RecordRateLimitWait(host string, wait time.Duration)
	RecordCircuitBreakerStateChange(host, fromState, toState string)
}

// Option 客户端构造选项
type Option func(*Client)

// WithConfig 使用指定配置替换默认配置
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		c.config = cfg
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics 设置指标记录器
func WithMetrics(recorder Recorder) Option {
	return func(c *Client) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

// WithRateLimit 按目标主机限制请求发出的速率
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		limiter, err := ratelimit.NewHostLimiter(ratelimit.Config{PerSecond: perSecond, Burst: burst})
		if err != nil {
			c.optErr = errors.Join(c.optErr, err)
			return
		}
		c.limiter = limiter
	}
}

// WithBreaker 为每个目标主机启用熔断器，settings 作为模板
func WithBreaker(settings gobreaker.Settings) Option {
	return func(c *Client) {
		c.breakerSettings = &settings
	}
}

// Client 请求客户端，支持单个同步请求和批量并发请求。
//
// 单个请求以值的形式返回失败（Result.Kind），批量执行则在按提交顺序遇到的
// 第一个失败处中止并返回 *BatchError。Client 不是并发安全的，应由单个所有者顺序使用。
type Client struct {
	config Config
	state  State
	batch  *batch

	engine    client.HTTPClient
	engineCfg client.Config
	factory   client.HTTPClientFactory

	headers         *headers.Processor
	limiter         *ratelimit.HostLimiter
	breakers        *breaker.Group
	breakerSettings *gobreaker.Settings

	metrics Recorder
	logger  logr.Logger
	optErr  error
}

// New 创建客户端
func New(opts ...Option) (*Client, error) {
	c := &Client{
		config:  DefaultConfig(),
		state:   StateIdle,
		factory: client.NewFactory(),
		headers: headers.NewProcessor(),
		metrics: metrics.NewNoopCollector(),
		logger:  logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.optErr != nil {
		return nil, c.optErr
	}

	if c.breakerSettings != nil {
		c.breakers = breaker.NewGroup(*c.breakerSettings, c.onBreakerStateChange)
	}
	if c.limiter != nil {
		c.logger.Info("Dispatch rate limit enabled", "limiter_type", c.limiter.Type())
	}

	if _, err := c.engineFor(c.config); err != nil {
		return nil, err
	}

	return c, nil
}

// Configure 修改超时、Keep-Alive 与 JSON 开关，其他配置保持不变。
// 批量收集期间修改只影响之后提交的请求。
func (c *Client) Configure(connectTimeout, timeout, keepAlive int, useJSON bool) error {
	cfg := c.config
	cfg.ConnectTimeout = connectTimeout
	cfg.Timeout = timeout
	cfg.KeepAlive = keepAlive
	cfg.JSON = useJSON
	return c.SetConfig(cfg)
}

// SetConfig 替换完整配置
func (c *Client) SetConfig(cfg Config) error {
	if _, err := c.engineFor(cfg); err != nil {
		return err
	}
	c.config = cfg
	return nil
}

// Config 返回当前配置
func (c *Client) Config() Config {
	return c.config
}

// SetLogger 设置日志记录器
func (c *Client) SetLogger(logger logr.Logger) {
	c.logger = logger
	if c.engine != nil {
		c.engine.SetLogger(logger)
	}
}

// SetMetrics 设置指标记录器，传入 nil 时恢复为空操作记录器
func (c *Client) SetMetrics(recorder Recorder) {
	if recorder == nil {
		recorder = metrics.NewNoopCollector()
	}
	c.metrics = recorder
}

// State 返回当前批量状态
func (c *Client) State() State {
	return c.state
}

// Request 同步执行单个请求，不重试。
// 任何失败都体现在返回的 Result 中，不会返回错误也不会 panic。
// 在批量收集期间调用同样立即执行，且不会加入批量。
func (c *Client) Request(ctx context.Context, url string, payload map[string]any, method Method, headerLines ...string) Result {
	h := c.newHandle(0, Pending{URL: url, Payload: payload, Method: method, Headers: headerLines})
	c.execute(ctx, h)
	return h.result
}

// BeginBatch 开始收集批量请求，批量的并发上限在此时确定
func (c *Client) BeginBatch() error {
	if c.state != StateIdle {
		return fmt.Errorf("%w: %s (%s)", ErrInvalidState, constants.ErrMsgBatchAlreadyStarted, c.state)
	}

	c.batch = newBatch(c.config.MaxConcurrency)
	c.state = StateCollecting
	return nil
}

// Enqueue 向当前批量提交一个请求并返回其提交序号，不发起网络请求。
// 请求在提交时按当前配置构造，构造失败会在执行阶段体现为 KindRequestFailed。
func (c *Client) Enqueue(url string, payload map[string]any, method Method, headerLines ...string) (int, error) {
	if c.state != StateCollecting {
		return -1, fmt.Errorf("%w: %s (%s)", ErrInvalidState, constants.ErrMsgBatchNotStarted, c.state)
	}

	h := c.newHandle(c.batch.len(), Pending{URL: url, Payload: payload, Method: method, Headers: headerLines})
	return c.batch.add(h), nil
}

// ExecBatch 并发执行所有已提交的请求，等待全部完成后按提交顺序检查结果。
// 全部成功时返回按提交顺序排列的响应体；否则返回第一个失败请求对应的 *BatchError。
// 无论成功与否，批量都会被释放，客户端回到 StateIdle。
func (c *Client) ExecBatch(ctx context.Context) ([]any, error) {
	if c.state != StateCollecting {
		return nil, fmt.Errorf("%w: %s (%s)", ErrInvalidState, constants.ErrMsgBatchNotStarted, c.state)
	}

	b := c.batch
	c.state = StateDraining
	defer func() {
		b.release()
		c.batch = nil
		c.state = StateIdle
	}()

	startTime := time.Now()
	b.drain(ctx, c.execute)
	bodies, err := b.collect()
	duration := time.Since(startTime)

	if err != nil {
		c.metrics.RecordBatch(constants.MetricsBatchAborted, b.len(), duration)
		c.logger.Info("Batch aborted",
			"batch_size", b.len(),
			"error", err.Error(),
			"execution_duration_ms", duration.Milliseconds())
		return nil, err
	}

	c.metrics.RecordBatch(constants.MetricsBatchSucceeded, b.len(), duration)
	c.logger.Info("Batch completed",
		"batch_size", b.len(),
		"execution_duration_ms", duration.Milliseconds())
	return bodies, nil
}

// AbortBatch 丢弃正在收集的批量而不执行，可重复调用
func (c *Client) AbortBatch() {
	if c.state != StateCollecting {
		return
	}

	c.batch.release()
	c.batch = nil
	c.state = StateIdle
}

// Close 关闭连接池，之后的请求会失败
func (c *Client) Close() error {
	c.AbortBatch()
	if c.breakers != nil {
		c.logger.V(1).Info("Closing client", "breaker_hosts", c.breakers.Len())
	}
	if c.engine == nil {
		return nil
	}
	return c.engine.Close()
}

// engineFor 返回与配置匹配的连接池，连接相关配置变化时新建
func (c *Client) engineFor(cfg Config) (client.HTTPClient, error) {
	engineCfg := cfg.engineConfig()
	if c.engine != nil && c.engineCfg == engineCfg {
		return c.engine, nil
	}

	engine, err := c.factory.Create(&engineCfg)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(c.logger)

	// 已提交到批量中的请求仍持有旧连接池，这里只回收空闲连接
	if c.engine != nil {
		c.engine.CloseIdleConnections()
	}

	c.engine = engine
	c.engineCfg = engineCfg
	return engine, nil
}

// newHandle 按当前配置快照构造请求
func (c *Client) newHandle(index int, p Pending) *handle {
	cfg := c.config
	h := &handle{index: index, pending: p, json: cfg.JSON}

	h.engine, h.err = c.engineFor(cfg)
	if h.err == nil {
		h.req, h.err = c.build(p, cfg)
	}
	return h
}

// execute 执行单个请求并把分类结果写入 handle
func (c *Client) execute(ctx context.Context, h *handle) {
	startTime := time.Now()
	host := ""
	var size int64

	defer func() {
		c.metrics.RecordRequest(string(h.method()), host, resultLabel(h.result), h.result.StatusCode, time.Since(startTime), size)
	}()
	defer func() {
		if r := recover(); r != nil {
			h.result = failure(KindRequestFailed, fmt.Sprint(r), 0)
		}
	}()

	if h.err != nil {
		h.result = failure(KindRequestFailed, h.err.Error(), 0)
		return
	}

	req := h.req.WithContext(ctx)
	host = req.URL.Host

	exchange, err := c.roundTrip(ctx, h.engine, req)
	if exchange != nil {
		size = int64(len(exchange.Body))
	}
	h.result = classify(exchange, err, h.json)
}

// roundTrip 经过限流与熔断后发出请求
func (c *Client) roundTrip(ctx context.Context, engine client.HTTPClient, req *http.Request) (*client.Exchange, error) {
	if c.limiter != nil {
		waited, err := c.limiter.Wait(ctx, req.URL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			// 截止时间内拿不到令牌
			return nil, fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		c.metrics.RecordRateLimitWait(req.URL.Host, waited)
	}

	if c.breakers == nil {
		return engine.Do(req)
	}
	cb, err := c.breakers.Get(req.URL.Host)
	if err != nil {
		return engine.Do(req)
	}

	var exchange *client.Exchange
	_, err = cb.Execute(func() (interface{}, error) {
		var doErr error
		exchange, doErr = engine.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if exchange.StatusCode >= http.StatusInternalServerError {
			return nil, errServerStatus
		}
		return nil, nil
	})
	if errors.Is(err, errServerStatus) {
		return exchange, nil
	}
	return exchange, err
}

// onBreakerStateChange 记录熔断器状态变化
func (c *Client) onBreakerStateChange(host string, from, to gobreaker.State) {
	c.metrics.RecordCircuitBreakerStateChange(host, from.String(), to.String())
	c.logger.Info("Circuit breaker state changed", "host", host, "from", from.String(), "to", to.String())
}

// resultLabel 结果在指标中的标签值
func resultLabel(r Result) string {
	if r.OK() {
		return constants.MetricsResultSuccess
	}
	return r.Kind.String()
}
