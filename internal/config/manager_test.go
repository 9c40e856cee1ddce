package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `
client:
  connectTimeout: 3
  timeout: 10
  json: false
  maxConcurrency: 4
ratelimit:
  perSecond: 5
breaker:
  threshold: 0.6
metrics:
  enabled: true
batch: true
requests:
  - name: items
    url: https://api.example.test/items
    method: get
    payload:
      id: 1
      tags: [a, b]
    headers:
      - "X-Trace: abc"
  - url: https://api.example.test/orders
    payload:
      order:
        sku: x-1
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestManager_LoadFromFile(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	path := writePlan(t, samplePlan)
	require.NoError(t, manager.LoadFromFile(path))

	cfg := manager.GetConfig()
	require.NotNil(t, cfg)
	assert.True(t, filepath.IsAbs(manager.GetConfigPath()))

	// 客户端配置与默认值
	require.NotNil(t, cfg.Client.ConnectTimeout)
	assert.Equal(t, 3, *cfg.Client.ConnectTimeout)
	require.NotNil(t, cfg.Client.Timeout)
	assert.Equal(t, 10, *cfg.Client.Timeout)
	require.NotNil(t, cfg.Client.KeepAlive)
	assert.Equal(t, 20, *cfg.Client.KeepAlive)
	assert.Equal(t, "KISSReq/1.0", cfg.Client.Agent)
	require.NotNil(t, cfg.Client.JSON)
	assert.False(t, *cfg.Client.JSON)
	require.NotNil(t, cfg.Client.Insecure)
	assert.True(t, *cfg.Client.Insecure)
	assert.Equal(t, 4, cfg.Client.MaxConcurrency)

	// 保护机制默认值
	assert.Equal(t, 5.0, cfg.RateLimit.PerSecond)
	assert.Equal(t, 1, cfg.RateLimit.Burst)
	assert.Equal(t, 0.6, cfg.Breaker.Threshold)
	assert.Equal(t, 30000, cfg.Breaker.Cooldown)
	assert.Equal(t, uint32(3), cfg.Breaker.MaxRequests)
	assert.Equal(t, "kissreq", cfg.Metrics.Namespace)

	// 请求列表
	assert.True(t, cfg.Batch)
	require.Len(t, cfg.Requests, 2)
	assert.Equal(t, "GET", cfg.Requests[0].Method)
	assert.Equal(t, []string{"X-Trace: abc"}, cfg.Requests[0].Headers)
	assert.Equal(t, 1, cfg.Requests[0].Payload["id"])
	assert.Equal(t, "POST", cfg.Requests[1].Method)
	assert.Equal(t, "request-1", cfg.Requests[1].Name)
	assert.Equal(t, map[string]any{"sku": "x-1"}, cfg.Requests[1].Payload["order"])
}

func TestManager_Load_ExplicitZero(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	plan := "client:\n  connectTimeout: 0\n  timeout: 0\n  keepalive: 0\nrequests:\n  - url: http://a.test\n"
	require.NoError(t, manager.Load([]byte(plan)))

	// 显式写 0 的字段保持为 0，不被默认值覆盖
	client := manager.GetConfig().Client
	require.NotNil(t, client.ConnectTimeout)
	assert.Equal(t, 0, *client.ConnectTimeout)
	require.NotNil(t, client.Timeout)
	assert.Equal(t, 0, *client.Timeout)
	require.NotNil(t, client.KeepAlive)
	assert.Equal(t, 0, *client.KeepAlive)
}

func TestManager_LoadFromFile_NotFound(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	err = manager.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestManager_Load_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		plan   string
		errMsg string
	}{
		{
			name:   "malformed yaml",
			plan:   "requests: [",
			errMsg: "failed to parse config file",
		},
		{
			name:   "no requests",
			plan:   "client:\n  timeout: 5\n",
			errMsg: "config validation failed",
		},
		{
			name:   "unsupported method",
			plan:   "requests:\n  - url: http://a.test\n    method: PUT\n",
			errMsg: "config validation failed",
		},
		{
			name:   "bad header line",
			plan:   "requests:\n  - url: http://a.test\n    headers: [\"no-separator\"]\n",
			errMsg: "config validation failed",
		},
		{
			name:   "bad proxy url",
			plan:   "client:\n  proxy:\n    url: ftp://proxy\nrequests:\n  - url: http://a.test\n",
			errMsg: "config validation failed",
		},
		{
			name:   "negative timeout",
			plan:   "client:\n  timeout: -1\nrequests:\n  - url: http://a.test\n",
			errMsg: "config validation failed",
		},
		{
			name:   "duplicate names",
			plan:   "requests:\n  - name: a\n    url: http://a.test\n  - name: a\n    url: http://b.test\n",
			errMsg: "duplicate request name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewManager()
			require.NoError(t, err)

			err = manager.Load([]byte(tt.plan))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, manager.GetConfig())
		})
	}
}

func TestValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("header_line", validateHeaderLine))
	require.NoError(t, v.RegisterValidation("http_url", validateHTTPURL))

	assert.NoError(t, v.Var("Accept: */*", "header_line"))
	assert.Error(t, v.Var(": value", "header_line"))
	assert.Error(t, v.Var("Accept", "header_line"))

	assert.NoError(t, v.Var("http://proxy.example.test:8080", "http_url"))
	assert.NoError(t, v.Var("HTTPS://proxy.example.test", "http_url"))
	assert.Error(t, v.Var("socks5://proxy.example.test", "http_url"))
	assert.Error(t, v.Var("http://", "http_url"))
	assert.Error(t, v.Var("", "http_url"))
}
