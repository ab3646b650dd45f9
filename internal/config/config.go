package config

import "time"

type Config struct {
	API    APIConfig    `mapstructure:"api" yaml:"api"`
	Cache  CacheConfig  `mapstructure:"cache" yaml:"cache"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Facade FacadeConfig `mapstructure:"facade" yaml:"facade"`
}

type APIConfig struct {
	Key            string        `mapstructure:"key" yaml:"key"`
	AnalyticsURL   string        `mapstructure:"analytics_url" yaml:"analytics_url"`
	BacklinksURL   string        `mapstructure:"backlinks_url" yaml:"backlinks_url"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"`
	MaxRetries     int           `mapstructure:"max_retries" yaml:"max_retries"`
	RetryDelay     time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
	RateLimit      float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

type CacheConfig struct {
	Backend string        `mapstructure:"backend" yaml:"backend"`
	Size    int           `mapstructure:"size" yaml:"size"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	Output     string `mapstructure:"output" yaml:"output"`
	TimeFormat string `mapstructure:"time_format" yaml:"time_format"`
}

type FacadeConfig struct {
	DefaultRegion string `mapstructure:"default_region" yaml:"default_region"`
	ErrorPolicy   string `mapstructure:"error_policy" yaml:"error_policy"`
}

// Default returns the configuration used when no file or env overrides are present
func Default() Config {
	return Config{
		API: APIConfig{
			AnalyticsURL:   "https://api.semrush.com/",
			BacklinksURL:   "https://api.semrush.com/analytics/v1/",
			Timeout:        30 * time.Second,
			ConnectTimeout: 30 * time.Second,
			MaxRetries:     2,
			RetryDelay:     500 * time.Millisecond,
			RateLimit:      10,
			RateBurst:      1,
		},
		Cache: CacheConfig{
			Backend: CacheMemory,
			Size:    1000,
			TTL:     time.Hour,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "semrush:response:",
			},
		},
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stderr",
			TimeFormat: "2006-01-02T15:04:05Z07:00",
		},
		Facade: FacadeConfig{
			DefaultRegion: "en-us",
			ErrorPolicy:   "tolerant",
		},
	}
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
