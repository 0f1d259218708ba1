package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL       string  `yaml:"base_url" default:"https://api.coingecko.com/api/v3" validate:"required,url|eq=mock"`
		APIKey        string  `yaml:"api_key"`
		Coin          string  `yaml:"coin" default:"bitcoin" validate:"required"`
		Currency      string  `yaml:"currency" default:"eur" validate:"required"`
		RatePerMinute float64 `yaml:"rate_per_minute" default:"10" validate:"gt=0"`
	} `yaml:"data_source"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron" default:"0 5 0 * * *" validate:"required"`
		ReportDays int    `yaml:"report_days" default:"30" validate:"gte=2,lte=3650"`
	} `yaml:"schedule"`
	Cache struct {
		SQLitePath string        `yaml:"sqlite_path" default:"data/marketlens.db"`
		TTL        time.Duration `yaml:"ttl" default:"6h"`
	} `yaml:"cache"`
	Engine struct {
		ProfitSearch string `yaml:"profit_search" default:"quadratic" validate:"oneof=quadratic linear"`
	} `yaml:"engine"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

var validate = validator.New()

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("REPORT_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.ReportDays = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}

	// Defaults fill only zero-valued fields
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints shared by every entry point.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// ValidateBot additionally requires the Telegram credentials.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
