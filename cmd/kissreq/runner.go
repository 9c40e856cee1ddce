package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/go-logr/logr"

	"github.com/shengyanli1982/kissreq/internal/breaker"
	"github.com/shengyanli1982/kissreq/internal/config"
	"github.com/shengyanli1982/kissreq/internal/constants"
	"github.com/shengyanli1982/kissreq/internal/metrics"
	"github.com/shengyanli1982/kissreq/pkg/request"
)

// resultLine 单个请求结果的输出格式
type resultLine struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	Detail     string `json:"detail,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       any    `json:"body,omitempty"`
}

// batchFailure 批量中止时的输出格式
type batchFailure struct {
	Name   string `json:"name"`
	Index  int    `json:"index"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// planRunner 按请求计划执行请求并输出结果
type planRunner struct {
	plan      *config.Config
	client    *request.Client
	collector metrics.MetricsCollector
	encoder   *json.Encoder
	logger    logr.Logger
}

// newPlanRunner 根据计划创建请求客户端
func newPlanRunner(plan *config.Config, logger logr.Logger, out io.Writer) (*planRunner, error) {
	collector, err := newCollector(plan.Metrics)
	if err != nil {
		return nil, err
	}

	opts := []request.Option{
		request.WithConfig(clientConfig(&plan.Client)),
		request.WithLogger(logger),
		request.WithMetrics(collector),
	}
	if plan.RateLimit != nil {
		opts = append(opts, request.WithRateLimit(plan.RateLimit.PerSecond, plan.RateLimit.Burst))
	}
	if plan.Breaker != nil {
		opts = append(opts, request.WithBreaker(breaker.CreateFromConfig(constants.DefaultBreakerName, plan.Breaker)))
	}

	client, err := request.New(opts...)
	if err != nil {
		_ = collector.Close()
		return nil, err
	}

	return &planRunner{
		plan:      plan,
		client:    client,
		collector: collector,
		encoder:   json.NewEncoder(out),
		logger:    logger,
	}, nil
}

// clientConfig 把计划中的客户端配置转换为请求客户端配置
func clientConfig(cfg *config.ClientConfig) request.Config {
	result := request.DefaultConfig()
	if cfg.ConnectTimeout != nil {
		result.ConnectTimeout = *cfg.ConnectTimeout
	}
	if cfg.Timeout != nil {
		result.Timeout = *cfg.Timeout
	}
	if cfg.KeepAlive != nil {
		result.KeepAlive = *cfg.KeepAlive
	}
	result.MaxConcurrency = cfg.MaxConcurrency
	if cfg.Agent != "" {
		result.UserAgent = cfg.Agent
	}
	if cfg.JSON != nil {
		result.JSON = *cfg.JSON
	}
	if cfg.Insecure != nil {
		result.InsecureSkipVerify = *cfg.Insecure
	}
	if cfg.Proxy != nil {
		result.ProxyURL = cfg.Proxy.URL
	}
	return result
}

// newCollector 按指标配置创建收集器，未启用时使用空操作收集器
func newCollector(cfg *config.MetricsConfig) (metrics.MetricsCollector, error) {
	mc := metrics.DefaultConfig()
	if cfg != nil && cfg.Enabled {
		mc.Type = constants.MetricsTypePrometheus
		if cfg.Namespace != "" {
			mc.Namespace = cfg.Namespace
		}
	}
	return metrics.New(mc)
}

// Run 执行计划并返回进程退出码
func (r *planRunner) Run(ctx context.Context) int {
	defer r.logMetrics()

	if r.plan.Batch {
		return r.runBatch(ctx)
	}
	return r.runSingle(ctx)
}

// runSingle 逐个同步执行请求，每个结果输出一行
func (r *planRunner) runSingle(ctx context.Context) int {
	for _, req := range r.plan.Requests {
		result := r.client.Request(ctx, req.URL, req.Payload, request.Method(req.Method), req.Headers...)

		line := resultLine{
			Name:       req.Name,
			OK:         result.OK(),
			Error:      result.Kind.String(),
			Detail:     result.Detail,
			StatusCode: result.StatusCode,
			Body:       result.Body,
		}
		if err := r.encoder.Encode(line); err != nil {
			r.logger.Error(err, "Failed to write result", "name", req.Name)
			return constants.ExitFailure
		}
	}

	return constants.ExitSuccess
}

// runBatch 以批量方式执行全部请求，任一失败时只输出第一个失败
func (r *planRunner) runBatch(ctx context.Context) int {
	if err := r.client.BeginBatch(); err != nil {
		r.logger.Error(err, "Failed to begin batch")
		return constants.ExitFailure
	}

	for _, req := range r.plan.Requests {
		if _, err := r.client.Enqueue(req.URL, req.Payload, request.Method(req.Method), req.Headers...); err != nil {
			r.client.AbortBatch()
			r.logger.Error(err, "Failed to enqueue request", "name", req.Name)
			return constants.ExitFailure
		}
	}

	bodies, err := r.client.ExecBatch(ctx)
	if err != nil {
		var batchErr *request.BatchError
		if !errors.As(err, &batchErr) {
			r.logger.Error(err, "Failed to execute batch")
			return constants.ExitFailure
		}

		failure := batchFailure{
			Name:   r.plan.Requests[batchErr.Index].Name,
			Index:  batchErr.Index,
			Error:  batchErr.Err.Kind.String(),
			Detail: batchErr.Err.Detail,
		}
		if encErr := r.encoder.Encode(failure); encErr != nil {
			r.logger.Error(encErr, "Failed to write batch failure")
		}
		return constants.ExitBatchFailed
	}

	lines := make([]resultLine, 0, len(bodies))
	for i, body := range bodies {
		lines = append(lines, resultLine{Name: r.plan.Requests[i].Name, OK: true, Body: body})
	}
	if err := r.encoder.Encode(lines); err != nil {
		r.logger.Error(err, "Failed to write batch results")
		return constants.ExitFailure
	}

	return constants.ExitSuccess
}

// logMetrics 输出本次执行收集到的指标概要
func (r *planRunner) logMetrics() {
	registry := r.collector.GetRegistry()
	if registry == nil {
		return
	}

	families, err := registry.Gather()
	if err != nil {
		r.logger.Error(err, "Failed to gather metrics")
		return
	}

	for _, family := range families {
		r.logger.Info("Metric summary", "name", family.GetName(), "series", len(family.GetMetric()))
	}
}

// Close 释放客户端与指标收集器
func (r *planRunner) Close() error {
	return errors.Join(r.client.Close(), r.collector.Close())
}
