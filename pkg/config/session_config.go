package config

import (
	"fmt"
	"os"

	"github.com/decker502/idletower/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultSessionConfigPath 内置会话默认配置路径
const DefaultSessionConfigPath = "data/session.yaml"

// SessionConfig 会话配置
//
// 内置默认值位于 data/session.yaml，
// 用户可通过外部文件覆盖任意字段（未出现的字段保留默认值）。
type SessionConfig struct {
	// AppName gdata 存储使用的应用名
	AppName string `yaml:"appName"`

	// Seed 出生角度随机数种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`

	// TicksPerSecond 宿主每秒调用 Tick 的次数
	TicksPerSecond int `yaml:"ticksPerSecond"`

	// Verbose 是否输出详细日志
	Verbose bool `yaml:"verbose"`

	// AutoSave 退出局时是否立即保存进度
	AutoSave bool `yaml:"autoSave"`
}

// LoadSessionConfig 加载会话配置
//
// 参数：
//
//	overridePath - 外部覆盖文件路径，为空时只使用内置默认值
//
// 返回：
//
//	*SessionConfig - 合并后的配置
//	error - 读取、解析或校验失败时返回错误
func LoadSessionConfig(overridePath string) (*SessionConfig, error) {
	data, err := embedded.ReadFile(DefaultSessionConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session defaults: %w", err)
	}

	var cfg SessionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse session defaults: %w", err)
	}

	if overridePath != "" {
		override, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read session config %s: %w", overridePath, err)
		}
		// 在默认值之上覆盖
		if err := yaml.Unmarshal(override, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse session config %s: %w", overridePath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 验证会话配置
func (c *SessionConfig) Validate() error {
	if c.AppName == "" {
		return fmt.Errorf("appName is required")
	}
	if c.TicksPerSecond < 1 || c.TicksPerSecond > 240 {
		return fmt.Errorf("ticksPerSecond must be in [1, 240], got %d", c.TicksPerSecond)
	}
	return nil
}

// TickDelta 返回每次 Tick 的固定时间步长（秒）
func (c *SessionConfig) TickDelta() float64 {
	return 1.0 / float64(c.TicksPerSecond)
}
