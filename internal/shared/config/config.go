package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App      AppConfig         `mapstructure:"app"`
	Bot      BotConfig         `mapstructure:"bot"`
	CatAPI   CatAPIConfig      `mapstructure:"cat_api"`
	Roster   RosterConfig      `mapstructure:"roster"`
	HTTP     HTTPConfig        `mapstructure:"http"`
	Workers  WorkersConfig     `mapstructure:"workers"`
	Metrics  MetricsConfig     `mapstructure:"metrics"`
	Messages map[string]string `mapstructure:"messages"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// IsDev reports whether human-readable logs and API debug output are wanted.
func (c AppConfig) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

type BotConfig struct {
	Token      string              `mapstructure:"token"`
	Connection BotConnectionConfig `mapstructure:"connection"`
}

// BotConnectionConfig selects how updates are received.
type BotConnectionConfig struct {
	Mode    string        `mapstructure:"mode"` // "polling" or "webhook"
	Polling PollingConfig `mapstructure:"polling"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

type PollingConfig struct {
	Timeout int `mapstructure:"timeout"` // Long-poll timeout in seconds
}

type WebhookConfig struct {
	URL        string `mapstructure:"url"`
	ListenPort int    `mapstructure:"listen_port"`
}

type CatAPIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RosterConfig struct {
	ImagePath       string        `mapstructure:"image_path"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
}

// HTTPConfig tunes the circuit breaker wrapped around outbound HTTP calls.
type HTTPConfig struct {
	CBMaxRequests     uint32        `mapstructure:"cb_max_requests"`
	CBInterval        time.Duration `mapstructure:"cb_interval"`
	CBOpenTimeout     time.Duration `mapstructure:"cb_open_timeout"`
	CBMinimumRequests uint32        `mapstructure:"cb_minimum_requests"`
	CBFailureRatio    float64       `mapstructure:"cb_failure_ratio"`
}

type PoolConfig struct {
	Size      int `mapstructure:"size"`
	QueueSize int `mapstructure:"queue_size"`
}

type WorkersConfig struct {
	Cat             PoolConfig    `mapstructure:"cat"`
	Roster          PoolConfig    `mapstructure:"roster"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MetricsConfig struct {
	Port int `mapstructure:"port"` // 0 disables the metrics server
}

// Load reads configuration from (in order of precedence) environment
// variables, the .env file, the YAML file at path and built-in defaults.
// A missing .env or YAML file is not an error.
func Load(path string) (*Config, error) {
	// 1. Load .env file into the process environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 2. Every key can be overridden by its upper-cased env name (bot.token -> BOT_TOKEN)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("bot.token", "BOT_TOKEN", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("could not bind bot.token: %w", err)
	}

	// 3. Optional YAML file
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have no usable default.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("BOT_TOKEN is not set in environment, .env or config file")
	}

	switch c.Bot.Connection.Mode {
	case "polling":
	case "webhook":
		if c.Bot.Connection.Webhook.URL == "" {
			return errors.New("bot.connection.webhook.url is required in webhook mode")
		}
	default:
		return fmt.Errorf("unknown bot mode: %q", c.Bot.Connection.Mode)
	}

	if c.CatAPI.URL == "" {
		return errors.New("cat_api.url must not be empty")
	}
	if c.Roster.ImagePath == "" {
		return errors.New("roster.image_path must not be empty")
	}

	for name, pool := range map[string]PoolConfig{"cat": c.Workers.Cat, "roster": c.Workers.Roster} {
		if pool.Size <= 0 {
			return fmt.Errorf("workers.%s.size must be positive, got %d", name, pool.Size)
		}
		if pool.QueueSize <= 0 {
			return fmt.Errorf("workers.%s.queue_size must be positive, got %d", name, pool.QueueSize)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("bot.connection.mode", "polling")
	v.SetDefault("bot.connection.polling.timeout", 60)
	v.SetDefault("bot.connection.webhook.url", "")
	v.SetDefault("bot.connection.webhook.listen_port", 8443)

	v.SetDefault("cat_api.url", "https://api.thecatapi.com/v1/images/search")
	v.SetDefault("cat_api.timeout", "60s")

	v.SetDefault("roster.image_path", "data/duty_roster.jpg")
	v.SetDefault("roster.download_timeout", "60s")

	v.SetDefault("http.cb_max_requests", 1)
	v.SetDefault("http.cb_interval", "60s")
	v.SetDefault("http.cb_open_timeout", "30s")
	v.SetDefault("http.cb_minimum_requests", 5)
	v.SetDefault("http.cb_failure_ratio", 0.6)

	v.SetDefault("workers.cat.size", 20)
	v.SetDefault("workers.cat.queue_size", 100)
	v.SetDefault("workers.roster.size", 20)
	v.SetDefault("workers.roster.queue_size", 100)
	v.SetDefault("workers.shutdown_timeout", "10s")

	v.SetDefault("metrics.port", 9090)

	for key, text := range DefaultMessages {
		v.SetDefault("messages."+key, text)
	}
}
