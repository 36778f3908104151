package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultPath 默认配置文件路径
const DefaultPath = "config/config.yaml"

// Config 全局配置（apiserver 与 thumbnail_worker 共用）
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	MySQL      MySQLConfig      `mapstructure:"mysql"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Lmstfy     LmstfyConfig     `mapstructure:"lmstfy"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Thumbnail  ThumbnailConfig  `mapstructure:"thumbnail"`
	Workers    []WorkerConfig   `mapstructure:"workers"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	// MachineID 病历号生成器机器ID（0-99），多实例部署时需各不相同
	MachineID int64 `mapstructure:"machine_id"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
}

// MySQLConfig MySQL 配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置
type LmstfyConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Namespace      string `mapstructure:"namespace"`
	Token          string `mapstructure:"token"`
	ThumbnailQueue string `mapstructure:"thumbnail_queue"`
}

// StorageConfig 上传文件存储配置
type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

// ClassifierConfig 分类器配置
// Seed 为 0 时使用随机种子
type ClassifierConfig struct {
	Seed uint64 `mapstructure:"seed"`
}

// ThumbnailConfig 缩略图配置
type ThumbnailConfig struct {
	Size uint `mapstructure:"size"`
	// MetricsAddr thumbnail_worker 暴露 /metrics 的地址，为空时不启动
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// WorkerConfig Worker 配置
type WorkerConfig struct {
	Name       string           `mapstructure:"name"`
	QueueName  string           `mapstructure:"queue_name"`
	Subscriber SubscriberConfig `mapstructure:"subscriber"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
}

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`       // 并发拉取数
	Rate         time.Duration `mapstructure:"rate"`          // 拉取速率
	Timeout      time.Duration `mapstructure:"timeout"`       // 拉取超时
	TTR          time.Duration `mapstructure:"ttr"`           // Time-To-Run
	ErrorBackoff time.Duration `mapstructure:"error_backoff"` // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`     // 并发处理数
	BufferSize int           `mapstructure:"buffer_size"` // Channel 缓冲大小
	Timeout    time.Duration `mapstructure:"timeout"`     // 单个任务超时
}

// Load 从配置文件加载配置，环境变量 NEUROSCAN_* 覆盖文件中的值
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("neuroscan")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	cfg.applyWorkerDefaults()
	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load(DefaultPath)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "neuroscan")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.max_upload_mb", 16)
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("thumbnail.size", 192)
	v.SetDefault("thumbnail.metrics_addr", ":9102")
	v.SetDefault("lmstfy.port", 7777)
	v.SetDefault("lmstfy.thumbnail_queue", "thumbnail_render")
}

// applyWorkerDefaults 补齐 Worker 的零值配置
func (c *Config) applyWorkerDefaults() {
	for i := range c.Workers {
		w := &c.Workers[i]
		if w.QueueName == "" {
			w.QueueName = c.Lmstfy.ThumbnailQueue
		}
		if w.Subscriber.Threads <= 0 {
			w.Subscriber.Threads = 1
		}
		if w.Subscriber.Timeout <= 0 {
			w.Subscriber.Timeout = 3 * time.Second
		}
		if w.Subscriber.TTR <= 0 {
			w.Subscriber.TTR = 30 * time.Second
		}
		if w.Subscriber.ErrorBackoff <= 0 {
			w.Subscriber.ErrorBackoff = time.Second
		}
		if w.Processor.Threads <= 0 {
			w.Processor.Threads = 1
		}
		if w.Processor.BufferSize <= 0 {
			w.Processor.BufferSize = w.Processor.Threads
		}
		if w.Processor.Timeout <= 0 {
			w.Processor.Timeout = 30 * time.Second
		}
	}
}

// Validate 验证 apiserver 配置完整性
func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if c.Lmstfy.Namespace == "" {
		return fmt.Errorf("lmstfy.namespace is required")
	}
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("storage.upload_dir is required")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive")
	}
	return nil
}

// ValidateWorker 验证 thumbnail_worker 配置完整性
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	for _, w := range c.Workers {
		if w.Name == "" {
			return fmt.Errorf("worker name is required")
		}
	}
	if c.Thumbnail.Size == 0 {
		return fmt.Errorf("thumbnail.size must be positive")
	}
	return nil
}

// MaxUploadBytes 单个上传文件的字节上限
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}
