package request

import (
	"context"
	"net/http"

	"github.com/shengyanli1982/kissreq/internal/client"
	"golang.org/x/sync/errgroup"
)

// handle 批量中的一个请求，构造于提交时，执行后持有分类结果
type handle struct {
	index   int
	pending Pending
	json    bool
	engine  client.HTTPClient
	req     *http.Request
	err     error // 构造失败的原因
	result  Result
}

func (h *handle) method() Method {
	return wireMethod(h.pending.Method)
}

// batch 按提交顺序保存的请求集合
type batch struct {
	handles []*handle
	limit   int // 开始收集时的并发上限，0 表示不限制
}

func newBatch(limit int) *batch {
	return &batch{handles: make([]*handle, 0, 8), limit: limit}
}

func (b *batch) add(h *handle) int {
	b.handles = append(b.handles, h)
	return h.index
}

func (b *batch) len() int {
	return len(b.handles)
}

// drain 并发执行全部请求并等待结束，上限取自开始收集时的配置。
// 单个请求的失败不会取消其他请求。
func (b *batch) drain(ctx context.Context, run func(context.Context, *handle)) {
	var g errgroup.Group
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}

	for _, h := range b.handles {
		h := h
		g.Go(func() error {
			run(ctx, h)
			return nil
		})
	}

	_ = g.Wait()
}

// collect 按提交顺序汇总结果，遇到第一个失败即返回
func (b *batch) collect() ([]any, error) {
	bodies := make([]any, 0, len(b.handles))
	for _, h := range b.handles {
		if !h.result.OK() {
			return nil, &BatchError{Index: h.index, Size: len(b.handles), Err: h.result.asError()}
		}
		bodies = append(bodies, h.result.Body)
	}
	return bodies, nil
}

// release 释放所有请求并回收批量使用过的连接池中的空闲连接
func (b *batch) release() {
	seen := make(map[client.HTTPClient]struct{})
	for _, h := range b.handles {
		if h.engine != nil {
			if _, ok := seen[h.engine]; !ok {
				seen[h.engine] = struct{}{}
				h.engine.CloseIdleConnections()
			}
		}
		h.req = nil
	}
	b.handles = nil
}
