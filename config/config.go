package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Clock    ClockConfig    `mapstructure:"clock"`
	Email    EmailConfig    `mapstructure:"email"`
	Export   ExportConfig   `mapstructure:"export"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置
// Driver 为 sqlite 时使用 Path，为 mysql 时使用其余连接参数
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// ClockConfig 远程时间服务配置
type ClockConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	URL               string        `mapstructure:"url"`
	TimeoutSeconds    int           `mapstructure:"timeout_seconds"`
	RetryDelaySeconds int           `mapstructure:"retry_delay_seconds"`
	RefreshMinutes    int           `mapstructure:"refresh_minutes"`
	Timeout           time.Duration `mapstructure:"-"`
	RetryDelay        time.Duration `mapstructure:"-"`
	RefreshInterval   time.Duration `mapstructure:"-"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"` // 报表默认收件人
}

// ExportConfig 导出配置
type ExportConfig struct {
	RateLimit         int           `mapstructure:"rate_limit"`
	RateWindowMinutes int           `mapstructure:"rate_window_minutes"`
	RateWindow        time.Duration `mapstructure:"-"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	// .env 文件可选，不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	log.Println("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/agencybooks")
		externalViper.AddConfigPath("$HOME/.agencybooks")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 环境变量覆盖，如 AGENCY_DATABASE_DRIVER=mysql
	v.SetEnvPrefix("AGENCY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// applyDefaults 填充时长字段与缺省值
func (c *Config) applyDefaults() {
	if c.Clock.TimeoutSeconds <= 0 {
		c.Clock.TimeoutSeconds = 5
	}
	if c.Clock.RetryDelaySeconds <= 0 {
		c.Clock.RetryDelaySeconds = 5
	}
	if c.Clock.RefreshMinutes <= 0 {
		c.Clock.RefreshMinutes = 30
	}
	c.Clock.Timeout = time.Duration(c.Clock.TimeoutSeconds) * time.Second
	c.Clock.RetryDelay = time.Duration(c.Clock.RetryDelaySeconds) * time.Second
	c.Clock.RefreshInterval = time.Duration(c.Clock.RefreshMinutes) * time.Minute

	if c.Export.RateLimit <= 0 {
		c.Export.RateLimit = 5
	}
	if c.Export.RateWindowMinutes <= 0 {
		c.Export.RateWindowMinutes = 1
	}
	c.Export.RateWindow = time.Duration(c.Export.RateWindowMinutes) * time.Minute

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Server.Port != "" && !strings.HasPrefix(c.Server.Port, ":") {
		c.Server.Port = ":" + c.Server.Port
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	var errs []string

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, "sqlite 数据库路径不能为空")
		}
	case "mysql":
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, "mysql 需要配置 host 与 dbname")
		}
	default:
		errs = append(errs, fmt.Sprintf("不支持的数据库驱动 '%s'，可选: sqlite, mysql", c.Database.Driver))
	}

	if c.Clock.Enabled && c.Clock.URL == "" {
		errs = append(errs, "启用时间服务时 clock.url 不能为空")
	}

	if c.Email.Enabled {
		if c.Email.Host == "" || c.Email.Port <= 0 {
			errs = append(errs, "启用邮件服务时需要配置 host 与 port")
		}
		// username 即发件地址，from 只是显示名称
		if c.Email.Username == "" {
			errs = append(errs, "启用邮件服务时需要配置 username（发件邮箱）")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("配置校验失败:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	if GlobalConfig.Database.Driver == "mysql" {
		log.Printf("  数据库: mysql %s@%s:%s/%s",
			GlobalConfig.Database.Username,
			GlobalConfig.Database.Host,
			GlobalConfig.Database.Port,
			GlobalConfig.Database.DBName)
	} else {
		log.Printf("  数据库: sqlite %s", GlobalConfig.Database.Path)
	}
	log.Printf("  时间服务: %v (%s)", GlobalConfig.Clock.Enabled, GlobalConfig.Clock.URL)
	log.Printf("  邮件服务: %v", GlobalConfig.Email.Enabled)
}
