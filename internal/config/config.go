package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"rosteriq/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Logging    logging.Config   `mapstructure:"logging"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Projection ProjectionConfig `mapstructure:"projection"`
	Reference  ReferenceConfig  `mapstructure:"reference"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Alerting   AlertingConfig   `mapstructure:"alerting"`
	Watch      WatchConfig      `mapstructure:"watch"`
	Export     ExportConfig     `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig encapsulates PostgreSQL connectivity.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ProjectionConfig governs the projection pipeline and its consumers.
type ProjectionConfig struct {
	Season          int  `mapstructure:"season"`
	StarterCount    int  `mapstructure:"starter_count"`
	IncludeInjuries bool `mapstructure:"include_injuries"`
	WaiverPoolSize  int  `mapstructure:"waiver_pool_size"`
}

// ReferenceConfig points at the static injury/SOS tables. Empty paths
// fall back to the built-in datasets.
type ReferenceConfig struct {
	InjuryCSV string `mapstructure:"injury_csv"`
	SOSCSV    string `mapstructure:"sos_csv"`
}

// ScoringConfig holds the linear weight vector the recalc command
// applies to raw stat lines.
type ScoringConfig struct {
	PassingYards     float64 `mapstructure:"passing_yards"`
	PassingTDs       float64 `mapstructure:"passing_tds"`
	Interceptions    float64 `mapstructure:"interceptions"`
	RushingYards     float64 `mapstructure:"rushing_yards"`
	RushingTDs       float64 `mapstructure:"rushing_tds"`
	TwoPtConversions float64 `mapstructure:"two_pt_conversions"`
	Receptions       float64 `mapstructure:"receptions"`
	ReceivingYards   float64 `mapstructure:"receiving_yards"`
	ReceivingTDs     float64 `mapstructure:"receiving_tds"`
	FumblesLost      float64 `mapstructure:"fumbles_lost"`
}

// AlertingConfig defines alert routing.
type AlertingConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig describes Telegram delivery parameters.
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

// WatchConfig governs the periodic alert scan.
type WatchConfig struct {
	Interval        time.Duration `mapstructure:"interval"`
	AlignToBucket   bool          `mapstructure:"align_to_bucket"`
	AdvisoryLockKey int64         `mapstructure:"advisory_lock_key"`
	StartupDelay    time.Duration `mapstructure:"startup_delay"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ROSTERIQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "rosteriq")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("projection.season", 2024)
	v.SetDefault("projection.starter_count", 9)
	v.SetDefault("projection.include_injuries", true)
	v.SetDefault("projection.waiver_pool_size", 100)

	// Half-PPR default weights.
	v.SetDefault("scoring.passing_yards", 0.04)
	v.SetDefault("scoring.passing_tds", 4.0)
	v.SetDefault("scoring.interceptions", -2.0)
	v.SetDefault("scoring.rushing_yards", 0.1)
	v.SetDefault("scoring.rushing_tds", 6.0)
	v.SetDefault("scoring.two_pt_conversions", 2.0)
	v.SetDefault("scoring.receptions", 0.5)
	v.SetDefault("scoring.receiving_yards", 0.1)
	v.SetDefault("scoring.receiving_tds", 6.0)
	v.SetDefault("scoring.fumbles_lost", -2.0)

	v.SetDefault("alerting.enabled", false)
	v.SetDefault("alerting.telegram.enabled", false)
	v.SetDefault("alerting.telegram.api_base", "https://api.telegram.org")

	v.SetDefault("watch.interval", "1h")
	v.SetDefault("watch.align_to_bucket", true)
	v.SetDefault("watch.advisory_lock_key", int64(0x726f7374))
	v.SetDefault("watch.startup_delay", "0s")

	v.SetDefault("export.max_data_points", 100000)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Projection.Season <= 0 {
		return fmt.Errorf("projection.season must be greater than zero")
	}
	if c.Projection.StarterCount <= 0 {
		return fmt.Errorf("projection.starter_count must be greater than zero")
	}
	if c.Projection.WaiverPoolSize <= 0 {
		return fmt.Errorf("projection.waiver_pool_size must be greater than zero")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be greater than zero")
	}
	if c.Alerting.Telegram.Enabled {
		if c.Alerting.Telegram.BotToken == "" {
			return fmt.Errorf("alerting.telegram.bot_token is required")
		}
		if c.Alerting.Telegram.ChatID == "" {
			return fmt.Errorf("alerting.telegram.chat_id is required")
		}
	}
	return nil
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxDataPoints
}
