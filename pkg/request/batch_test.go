package request

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shengyanli1982/kissreq/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecBatch_Ordered(t *testing.T) {
	server := newTestServer(t)
	c := newTestClient(t)

	require.NoError(t, c.BeginBatch())
	// 先提交的请求最后完成
	for i, delay := range []int{300, 150, 0} {
		index, err := c.Enqueue(fmt.Sprintf("%s/id?id=%d&delay=%d", server.URL, i, delay), nil, MethodGET)
		require.NoError(t, err)
		assert.Equal(t, i, index)
	}

	bodies, err := c.ExecBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"id": float64(0)},
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
	}, bodies)
	assert.Equal(t, StateIdle, c.State())
}

func TestExecBatch_AbortsOnTimeout(t *testing.T) {
	server := newTestServer(t)
	c := newTestClient(t)
	require.NoError(t, c.Configure(1, 1, 0, true))

	require.NoError(t, c.BeginBatch())
	for _, path := range []string{"/echo", "/slow", "/echo"} {
		_, err := c.Enqueue(server.URL+path, nil, MethodGET)
		require.NoError(t, err)
	}

	bodies, err := c.ExecBatch(context.Background())
	assert.Nil(t, bodies)
	require.Error(t, err)
	assert.Equal(t, KindRequestTimedOut, KindOf(err))

	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, 1, batchErr.Index)
	assert.Equal(t, 3, batchErr.Size)
	assert.Equal(t, StateIdle, c.State())
}

func TestExecBatch_FirstFailureInSubmissionOrder(t *testing.T) {
	server := newTestServer(t)
	c := newTestClient(t)

	require.NoError(t, c.BeginBatch())
	_, _ = c.Enqueue(server.URL+"/echo", nil, MethodGET)
	_, _ = c.Enqueue(server.URL+"/missing", nil, MethodGET)
	_, _ = c.Enqueue(server.URL+"/empty", nil, MethodGET)

	_, err := c.ExecBatch(context.Background())
	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, 1, batchErr.Index)
	assert.Equal(t, KindRequestFailed, batchErr.Err.Kind)
}

func TestExecBatch_BuildFailure(t *testing.T) {
	server := newTestServer(t)
	c := newTestClient(t)

	require.NoError(t, c.BeginBatch())
	_, err := c.Enqueue(server.URL+"/echo", nil, MethodGET)
	require.NoError(t, err)
	_, err = c.Enqueue("http://[::1", nil, MethodGET)
	require.NoError(t, err)

	_, err = c.ExecBatch(context.Background())
	assert.Equal(t, KindRequestFailed, KindOf(err))
}

func TestExecBatch_Refused(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.BeginBatch())
	_, _ = c.Enqueue(closedURL(t), nil, MethodGET)

	_, err := c.ExecBatch(context.Background())
	assert.Equal(t, KindRequestRefused, KindOf(err))
}

func TestExecBatch_Empty(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.BeginBatch())
	bodies, err := c.ExecBatch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bodies)
	assert.NotNil(t, bodies)

	// 批量结束后可以重新开始
	require.NoError(t, c.BeginBatch())
	c.AbortBatch()
}

func TestExecBatch_ConfigSnapshot(t *testing.T) {
	server := newTestServer(t)
	c := newTestClient(t)

	require.NoError(t, c.BeginBatch())
	_, err := c.Enqueue(server.URL+"/id?id=1", nil, MethodGET)
	require.NoError(t, err)

	require.NoError(t, c.Configure(5, 12, 20, false))
	_, err = c.Enqueue(server.URL+"/id?id=2", nil, MethodGET)
	require.NoError(t, err)

	bodies, err := c.ExecBatch(context.Background())
	require.NoError(t, err)
	require.Len(t, bodies, 2)
	assert.Equal(t, map[string]any{"id": float64(1)}, bodies[0])
	assert.Equal(t, `{"id":2}`, bodies[1])
}

func TestExecBatch_Concurrency(t *testing.T) {
	t.Run("unbounded", func(t *testing.T) {
		server := newTestServer(t)
		c := newTestClient(t)

		require.NoError(t, c.BeginBatch())
		for i := 0; i < 4; i++ {
			_, _ = c.Enqueue(server.URL+"/inflight", nil, MethodGET)
		}
		_, err := c.ExecBatch(context.Background())
		require.NoError(t, err)
		assert.Greater(t, server.maxInflight.Load(), int32(1))
	})

	t.Run("bounded", func(t *testing.T) {
		server := newTestServer(t)
		cfg := DefaultConfig()
		cfg.MaxConcurrency = 2
		c := newTestClient(t, WithConfig(cfg))

		require.NoError(t, c.BeginBatch())
		for i := 0; i < 6; i++ {
			_, _ = c.Enqueue(server.URL+"/inflight", nil, MethodGET)
		}
		bodies, err := c.ExecBatch(context.Background())
		require.NoError(t, err)
		assert.Len(t, bodies, 6)
		assert.LessOrEqual(t, server.maxInflight.Load(), int32(2))
	})
}

func TestExecBatch_Metrics(t *testing.T) {
	server := newTestServer(t)
	collector, err := metrics.NewPrometheusCollector(&metrics.Config{Type: metrics.PrometheusType, Enabled: true, Namespace: "batch"})
	require.NoError(t, err)
	c := newTestClient(t, WithMetrics(collector))

	require.NoError(t, c.BeginBatch())
	_, _ = c.Enqueue(server.URL+"/echo", nil, MethodGET)
	_, err = c.ExecBatch(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.BeginBatch())
	_, _ = c.Enqueue(server.URL+"/empty", nil, MethodGET)
	_, err = c.ExecBatch(context.Background())
	require.Error(t, err)

	count, err := testutil.GatherAndCount(collector.GetRegistry(), "batch_batches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestExecBatch_ConcurrencyFixedAtBegin(t *testing.T) {
	server := newTestServer(t)
	c := newTestClient(t)

	require.NoError(t, c.BeginBatch())
	for i := 0; i < 6; i++ {
		_, _ = c.Enqueue(server.URL+"/inflight", nil, MethodGET)
	}

	// 收集期间收紧上限不影响已开始的批量
	cfg := c.Config()
	cfg.MaxConcurrency = 1
	require.NoError(t, c.SetConfig(cfg))

	bodies, err := c.ExecBatch(context.Background())
	require.NoError(t, err)
	assert.Len(t, bodies, 6)
	assert.Greater(t, server.maxInflight.Load(), int32(1))

	// 下一个批量使用新的上限
	require.NoError(t, c.BeginBatch())
	for i := 0; i < 3; i++ {
		_, _ = c.Enqueue(server.URL+"/inflight", nil, MethodGET)
	}
	server.maxInflight.Store(0)
	_, err = c.ExecBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), server.maxInflight.Load())
}
