package metrics

import (
	"errors"
	"testing"
)

// TestNew 测试根据类型创建收集器
func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantName string
		wantErr  error
	}{
		{
			name:     "noop collector",
			config:   &Config{Type: "noop", Enabled: true, Namespace: "test"},
			wantName: "noop",
		},
		{
			name:     "prometheus collector",
			config:   &Config{Type: "prometheus", Enabled: true, Namespace: "test"},
			wantName: "prometheus",
		},
		{
			name:     "disabled falls back to noop",
			config:   &Config{Type: "prometheus", Enabled: false, Namespace: "test"},
			wantName: "noop",
		},
		{
			name:    "nil config",
			config:  nil,
			wantErr: ErrNilConfig,
		},
		{
			name:    "unknown type",
			config:  &Config{Type: "statsd", Enabled: true, Namespace: "test"},
			wantErr: ErrInvalidMetricsType,
		},
		{
			name:    "empty namespace",
			config:  &Config{Type: "prometheus", Enabled: true},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "invalid subsystem",
			config:  &Config{Type: "prometheus", Enabled: true, Namespace: "test", Subsystem: "a.b"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "invalid namespace",
			config:  &Config{Type: "prometheus", Enabled: true, Namespace: "bad-name"},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector, err := New(tt.config)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if collector.Name() != tt.wantName {
				t.Errorf("Expected collector name %s, got %s", tt.wantName, collector.Name())
			}
		})
	}
}

// TestNew_Defaults 测试默认配置创建空操作收集器
func TestNew_Defaults(t *testing.T) {
	collector, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if collector.Name() != "noop" {
		t.Errorf("Expected noop collector by default, got %s", collector.Name())
	}
}
