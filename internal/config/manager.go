package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"semrush-go/pkg/seo"
)

// EnvPrefix prefixes every environment override, e.g. SEMRUSH_API_KEY
const EnvPrefix = "SEMRUSH"

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
	path   string
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads configPath and applies SEMRUSH_* env overrides.
// An empty path loads defaults and env only.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.viper = viper.New()
	m.path = configPath
	m.setupViper()

	config, err := m.read()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	config, err := m.read()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) read() (*Config, error) {
	if m.path != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := m.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (m *manager) setupViper() {
	if m.path != "" {
		m.viper.SetConfigFile(m.path)
	}

	m.viper.SetEnvPrefix(EnvPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	// Defaults register every key so env overrides reach Unmarshal
	d := Default()
	m.viper.SetDefault("api.key", d.API.Key)
	m.viper.SetDefault("api.analytics_url", d.API.AnalyticsURL)
	m.viper.SetDefault("api.backlinks_url", d.API.BacklinksURL)
	m.viper.SetDefault("api.timeout", d.API.Timeout)
	m.viper.SetDefault("api.connect_timeout", d.API.ConnectTimeout)
	m.viper.SetDefault("api.max_retries", d.API.MaxRetries)
	m.viper.SetDefault("api.retry_delay", d.API.RetryDelay)
	m.viper.SetDefault("api.rate_limit", d.API.RateLimit)
	m.viper.SetDefault("api.rate_burst", d.API.RateBurst)
	m.viper.SetDefault("cache.backend", d.Cache.Backend)
	m.viper.SetDefault("cache.size", d.Cache.Size)
	m.viper.SetDefault("cache.ttl", d.Cache.TTL)
	m.viper.SetDefault("cache.redis.addr", d.Cache.Redis.Addr)
	m.viper.SetDefault("cache.redis.password", d.Cache.Redis.Password)
	m.viper.SetDefault("cache.redis.db", d.Cache.Redis.DB)
	m.viper.SetDefault("cache.redis.prefix", d.Cache.Redis.Prefix)
	m.viper.SetDefault("logger.level", d.Logger.Level)
	m.viper.SetDefault("logger.format", d.Logger.Format)
	m.viper.SetDefault("logger.output", d.Logger.Output)
	m.viper.SetDefault("logger.time_format", d.Logger.TimeFormat)
	m.viper.SetDefault("facade.default_region", d.Facade.DefaultRegion)
	m.viper.SetDefault("facade.error_policy", d.Facade.ErrorPolicy)
}

func (m *manager) validateConfig(config *Config) error {
	if strings.TrimSpace(config.API.Key) == "" {
		return fmt.Errorf("api.key cannot be empty (set %s_API_KEY)", EnvPrefix)
	}

	for name, raw := range map[string]string{
		"api.analytics_url": config.API.AnalyticsURL,
		"api.backlinks_url": config.API.BacklinksURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) url: %q", name, raw)
		}
	}

	if config.API.Timeout <= 0 || config.API.ConnectTimeout <= 0 {
		return fmt.Errorf("api timeouts must be positive")
	}

	if config.API.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative")
	}

	switch config.Cache.Backend {
	case CacheMemory:
		if config.Cache.Size <= 0 {
			return fmt.Errorf("cache.size must be positive")
		}
	case CacheRedis:
		if config.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr cannot be empty")
		}
	case CacheNone:
	default:
		return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative")
	}

	if _, err := seo.DefaultRegions().Resolve(config.Facade.DefaultRegion); err != nil {
		return fmt.Errorf("default_region: %w", err)
	}

	if _, err := seo.ParseErrorPolicy(config.Facade.ErrorPolicy); err != nil {
		return fmt.Errorf("error_policy: %w", err)
	}

	return nil
}

// WriteDefault writes a starter yaml config to path. It refuses to overwrite
// an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	header := []byte("# semrush-go configuration. Every key can be overridden with SEMRUSH_<SECTION>_<KEY>.\n")
	if err := os.WriteFile(path, append(header, data...), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
