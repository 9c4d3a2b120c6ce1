package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Webhooks  WebhooksConfig  `mapstructure:"webhooks"`
	Search    SearchConfig    `mapstructure:"search"`
	Content   ContentConfig   `mapstructure:"content"`
	Chat      ChatConfig      `mapstructure:"chat"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Host        string `mapstructure:"host"`
	SecretKey   string `mapstructure:"secret_key"`
	SwaggerFile string `mapstructure:"swagger_file"`
	// TrustedProxies lists peers (IPs or CIDRs) whose ProxyHeader names the
	// client. Requests from any other peer are identified by socket address.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
	ProxyHeader    string   `mapstructure:"proxy_header"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type RateLimitConfig struct {
	// Store is "memory" or "redis".
	Store           string          `mapstructure:"store"`
	CleanupInterval time.Duration   `mapstructure:"cleanup_interval"`
	Default         RateLimitRule   `mapstructure:"default"`
	Rules           []RateLimitRule `mapstructure:"rules"`
}

type RateLimitRule struct {
	Prefix      string        `mapstructure:"prefix"`
	Window      time.Duration `mapstructure:"window"`
	MaxRequests int           `mapstructure:"max_requests"`
}

type WebhooksConfig struct {
	Workers         int           `mapstructure:"workers"`
	QueueSize       int           `mapstructure:"queue_size"`
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout"`
	// DeliveryLog is "database" or "jsonl".
	DeliveryLog     string `mapstructure:"delivery_log"`
	DeliveryLogPath string `mapstructure:"delivery_log_path"`
	ContentEvents   bool   `mapstructure:"content_events"`
}

type SearchConfig struct {
	Threshold    float64       `mapstructure:"threshold"`
	DefaultLimit int           `mapstructure:"default_limit"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

type ContentConfig struct {
	Root     string        `mapstructure:"root"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

type ChatConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Provider     string        `mapstructure:"provider"`
	Model        string        `mapstructure:"model"`
	APIKey       string        `mapstructure:"api_key"`
	// BaseURL overrides the openai endpoint for compatible servers.
	BaseURL      string        `mapstructure:"base_url"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Temperature  float64       `mapstructure:"temperature"`
	SystemPrompt string        `mapstructure:"system_prompt"`
	ContextItems int           `mapstructure:"context_items"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

var globalConfig Config

func Load(configPath string) error {
	setDefaultValues()
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.metrics_port", 9090)
	viper.SetDefault("server.swagger_file", "docs/swagger.json")
	viper.SetDefault("server.proxy_header", "X-Forwarded-For")
	viper.SetDefault("metrics.enabled", true)

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "data/folio.db")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)

	viper.SetDefault("rate_limit.store", "memory")
	viper.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	viper.SetDefault("rate_limit.default.window", time.Minute)
	viper.SetDefault("rate_limit.default.max_requests", 100)

	viper.SetDefault("webhooks.workers", 4)
	viper.SetDefault("webhooks.queue_size", 1024)
	viper.SetDefault("webhooks.delivery_timeout", 10*time.Second)
	viper.SetDefault("webhooks.delivery_log", "database")
	viper.SetDefault("webhooks.delivery_log_path", "data/webhook-deliveries.jsonl")
	viper.SetDefault("webhooks.content_events", true)

	viper.SetDefault("search.threshold", 0.4)
	viper.SetDefault("search.default_limit", 20)
	viper.SetDefault("search.cache_ttl", time.Minute)

	viper.SetDefault("content.root", "content")
	viper.SetDefault("content.debounce", 500*time.Millisecond)

	viper.SetDefault("chat.provider", "anthropic")
	viper.SetDefault("chat.max_tokens", 512)
	viper.SetDefault("chat.context_items", 3)
	viper.SetDefault("chat.timeout", 30*time.Second)
}

func GetConfig() *Config {
	return &globalConfig
}
