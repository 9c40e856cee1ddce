package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shengyanli1982/kissreq/internal/constants"
	"github.com/shengyanli1982/kissreq/internal/ratelimit"
	"gopkg.in/yaml.v3"
)

// 全局验证器实例，用于配置验证
var validate = validator.New()

// Manager 代表配置管理器，负责请求计划文件的加载、验证和管理
type Manager struct {
	config     *Config             // 当前加载的配置实例
	configPath string              // 配置文件的绝对路径
	validator  *validator.Validate // 配置验证器
}

// NewManager 创建新的配置管理器实例
func NewManager() (*Manager, error) {
	var err error
	// 注册自定义验证器
	err = validate.RegisterValidation("header_line", validateHeaderLine)
	if err != nil {
		return nil, err
	}
	err = validate.RegisterValidation("http_url", validateHTTPURL)
	if err != nil {
		return nil, err
	}

	return &Manager{
		validator: validate,
	}, nil
}

// LoadFromFile 从指定路径加载请求计划文件并进行验证
// configPath: 配置文件路径
func (m *Manager) LoadFromFile(configPath string) error {
	// 检查文件是否存在
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := m.Load(data); err != nil {
		return err
	}

	m.configPath, _ = filepath.Abs(configPath)
	return nil
}

// Load 从内存中的 YAML 数据加载配置
func (m *Manager) Load(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// 设置默认值
	m.SetDefaults(&config)

	// 验证配置结构
	if err := m.validator.Struct(&config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// 验证请求名称唯一
	if err := m.validateReferences(&config); err != nil {
		return fmt.Errorf("config reference validation failed: %w", err)
	}

	m.config = &config
	return nil
}

// validateReferences 验证请求名称不重复，名称为空的请求不参与检查
func (m *Manager) validateReferences(config *Config) error {
	names := make(map[string]bool, len(config.Requests))
	for _, request := range config.Requests {
		if request.Name == "" {
			continue
		}
		if names[request.Name] {
			return fmt.Errorf("duplicate request name '%s'", request.Name)
		}
		names[request.Name] = true
	}

	return nil
}

// GetConfig 返回当前加载的配置实例
func (m *Manager) GetConfig() *Config {
	return m.config
}

// GetConfigPath 返回当前配置文件的绝对路径
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// SetDefaults 为配置设置默认值，确保所有必需字段都有合理的默认值
func (m *Manager) SetDefaults(config *Config) {
	m.setClientDefaults(&config.Client)
	m.setProtectionDefaults(config)

	for i := range config.Requests {
		request := &config.Requests[i]
		if request.Method == "" {
			request.Method = constants.MethodPOST
		} else {
			request.Method = strings.ToUpper(request.Method)
		}
		if request.Name == "" {
			request.Name = fmt.Sprintf("request-%d", i)
		}
	}
}

// setClientDefaults 设置客户端的默认值
func (m *Manager) setClientDefaults(client *ClientConfig) {
	if client.Agent == "" {
		client.Agent = constants.UserAgent
	}
	if client.ConnectTimeout == nil {
		client.ConnectTimeout = intPtr(constants.DefaultConnectTimeout)
	}
	if client.Timeout == nil {
		client.Timeout = intPtr(constants.DefaultRequestTimeout)
	}
	if client.KeepAlive == nil {
		client.KeepAlive = intPtr(constants.DefaultKeepAlive)
	}
	if client.JSON == nil {
		useJSON := constants.DefaultUseJSON
		client.JSON = &useJSON
	}
	if client.Insecure == nil {
		insecure := constants.DefaultInsecureSkipVerify
		client.Insecure = &insecure
	}
}

// setProtectionDefaults 设置限流、熔断和指标的默认值
func (m *Manager) setProtectionDefaults(config *Config) {
	if config.RateLimit != nil {
		defaults := ratelimit.DefaultConfig()
		if config.RateLimit.PerSecond == 0 {
			config.RateLimit.PerSecond = defaults.PerSecond
		}
		if config.RateLimit.Burst == 0 {
			config.RateLimit.Burst = defaults.Burst
		}
	}

	if config.Breaker != nil {
		if config.Breaker.Threshold == 0 {
			config.Breaker.Threshold = constants.DefaultBreakerThreshold
		}
		if config.Breaker.Cooldown == 0 {
			config.Breaker.Cooldown = constants.DefaultBreakerCooldown
		}
		if config.Breaker.MaxRequests == 0 {
			config.Breaker.MaxRequests = constants.DefaultBreakerMaxRequests
		}
		if config.Breaker.Interval == 0 {
			config.Breaker.Interval = constants.DefaultBreakerInterval
		}
	}

	if config.Metrics != nil && config.Metrics.Namespace == "" {
		config.Metrics.Namespace = constants.MetricsNamespace
	}
}

// validateHeaderLine 验证头部行必须是 "Name: value" 形式且名称非空
func validateHeaderLine(fl validator.FieldLevel) bool {
	key, _, found := strings.Cut(fl.Field().String(), constants.HeaderSeparator)
	return found && strings.TrimSpace(key) != ""
}

// validateHTTPURL 验证URL必须使用HTTP或HTTPS协议
func validateHTTPURL(fl validator.FieldLevel) bool {
	urlStr := fl.Field().String()
	if urlStr == "" {
		return false // 空URL无效
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false // URL格式无效
	}

	// 检查协议必须是http或https（大小写不敏感）
	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != constants.ProtocolHTTP && scheme != constants.ProtocolHTTPS {
		return false
	}

	return parsedURL.Host != ""
}

func intPtr(v int) *int {
	return &v
}
