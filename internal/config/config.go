package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/Spok95/inventory-tracker/internal/rules"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Storage struct {
		Driver  string
		Timeout time.Duration
	} `mapstructure:"storage"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Log Log `mapstructure:"log"`

	Telegram Telegram `mapstructure:"telegram"`

	Webhook Webhook `mapstructure:"webhook"`

	Alerts Alerts `mapstructure:"alerts"`

	Analytics Analytics `mapstructure:"analytics"`
}

// Log enables rotated file output in addition to stdout when File is set.
type Log struct {
	File       string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
}

type Telegram struct {
	Enabled     bool
	Token       string
	AdminChatID int64         `mapstructure:"admin_chat_id"`
	PollTimeout int           `mapstructure:"poll_timeout"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

type Webhook struct {
	Enabled bool
	URL     string
	Timeout time.Duration
}

type Alerts struct {
	rules.Thresholds `mapstructure:",squash"`
	// CheckCron schedules the periodic alert check; empty disables it.
	CheckCron string `mapstructure:"check_cron"`
}

type Analytics struct {
	DefaultUnitCost float64            `mapstructure:"default_unit_cost"`
	LossFactor      float64            `mapstructure:"loss_factor"`
	CategoryCosts   map[string]float64 `mapstructure:"category_costs"`
	TrendDays       int                `mapstructure:"trend_days"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func setDefaults(v *viper.Viper) {
	th := rules.DefaultThresholds()

	v.SetDefault("app.env", "dev")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("storage.timeout", 5*time.Second)
	v.SetDefault("metrics.enabled", true)

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_chat_id", 0)
	v.SetDefault("telegram.poll_timeout", 30)
	v.SetDefault("telegram.send_timeout", 10*time.Second)

	v.SetDefault("webhook.enabled", false)
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.timeout", 10*time.Second)

	v.SetDefault("alerts.mismatch_min_variance", th.MismatchMinVariance)
	v.SetDefault("alerts.mismatch_min_percent", th.MismatchMinPercent)
	v.SetDefault("alerts.critical_percent", th.CriticalPercent)
	v.SetDefault("alerts.critical_variance", th.CriticalVariance)
	v.SetDefault("alerts.error_percent", th.ErrorPercent)
	v.SetDefault("alerts.error_variance", th.ErrorVariance)
	v.SetDefault("alerts.low_stock_level", th.LowStockLevel)
	v.SetDefault("alerts.low_stock_critical", th.LowStockCritical)
	v.SetDefault("alerts.check_cron", "*/15 * * * *")

	v.SetDefault("analytics.default_unit_cost", 10.0)
	v.SetDefault("analytics.loss_factor", 0.5)
	v.SetDefault("analytics.trend_days", 7)
}

// Load reads the YAML file at path (optional) and overlays APP_* environment
// variables, e.g. APP_POSTGRES_DSN. A .env file next to the binary is loaded
// into the environment first when present.
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("config: postgres.dsn is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.Timeout <= 0 {
		return errors.New("config: storage.timeout must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("config: app.timezone: %w", err)
	}
	if c.Telegram.Enabled && c.Telegram.Token == "" {
		return errors.New("config: telegram.token is required when telegram is enabled")
	}
	if c.Webhook.Enabled && c.Webhook.URL == "" {
		return errors.New("config: webhook.url is required when webhook is enabled")
	}
	if err := c.Alerts.Thresholds.Validate(); err != nil {
		return fmt.Errorf("config: alerts: %w", err)
	}
	if c.Alerts.CheckCron != "" {
		if _, err := cron.ParseStandard(c.Alerts.CheckCron); err != nil {
			return fmt.Errorf("config: alerts.check_cron: %w", err)
		}
	}
	if c.Analytics.LossFactor < 0 || c.Analytics.LossFactor > 1 {
		return errors.New("config: analytics.loss_factor must be within [0, 1]")
	}
	if c.Analytics.DefaultUnitCost < 0 {
		return errors.New("config: analytics.default_unit_cost must be >= 0")
	}
	if c.Analytics.TrendDays < 1 || c.Analytics.TrendDays > 366 {
		return errors.New("config: analytics.trend_days must be within [1, 366]")
	}
	return nil
}

// Location is the zone used for calendar day bucketing. Call after Validate.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
