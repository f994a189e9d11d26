// internal/config/service.go

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ServiceConfig 服务自身的运行配置 (config.yaml)
type ServiceConfig struct {
	Port            int           `mapstructure:"port"`
	DBPath          string        `mapstructure:"db_path"`
	ConfDir         string        `mapstructure:"conf_dir"`
	LogLevel        string        `mapstructure:"log_level"`
	MonitorInterval time.Duration `mapstructure:"monitor_interval"`
	QueueDepth      int           `mapstructure:"queue_depth"`
}

// LoadService 加载服务配置
//
// path 为空时使用默认值加上 FANCTRL_ 前缀的环境变量覆盖，
// 指定了配置文件但文件不可读时视为致命错误。
func LoadService(path string) (*ServiceConfig, error) {
	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "fancontrol.db")
	v.SetDefault("conf_dir", "configs")
	v.SetDefault("log_level", "info")
	v.SetDefault("monitor_interval", 5*time.Second)
	v.SetDefault("queue_depth", 64)

	v.SetEnvPrefix("FANCTRL")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read service config %s: %w", path, err)
		}
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal service config: %w", err)
	}
	if cfg.QueueDepth <= 0 {
		return nil, fmt.Errorf("queue_depth must be positive, got %d", cfg.QueueDepth)
	}
	if cfg.MonitorInterval <= 0 {
		return nil, fmt.Errorf("monitor_interval must be positive, got %v", cfg.MonitorInterval)
	}
	return &cfg, nil
}
