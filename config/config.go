package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the console needs to boot. Values come from
// config.yaml (optional) overridden by APP_* environment variables.
type Config struct {
	ServerPort string `mapstructure:"server_port"`

	DatabaseDSN string `mapstructure:"database_dsn"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// CacheDebounce coalesces snapshot writes after store mutations.
	CacheDebounce time.Duration `mapstructure:"cache_debounce"`
	// SnapshotOrderCap bounds how many recent orders the snapshot keeps.
	SnapshotOrderCap int `mapstructure:"snapshot_order_cap"`

	// RealtimeDelay defers subscriptions until bootstrap traffic settles.
	RealtimeDelay    time.Duration `mapstructure:"realtime_delay"`
	RealtimeDebounce time.Duration `mapstructure:"realtime_debounce"`

	OrderRowCap  int `mapstructure:"order_row_cap"`
	EntityRowCap int `mapstructure:"entity_row_cap"`

	LogLevel string `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("server_port", "8080")
	v.SetDefault("database_dsn", "host=localhost user=postgres password=postgres dbname=console port=5432 sslmode=disable")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_debounce", 2*time.Second)
	v.SetDefault("snapshot_order_cap", 100)
	v.SetDefault("realtime_delay", 5*time.Second)
	v.SetDefault("realtime_debounce", 3*time.Second)
	v.SetDefault("order_row_cap", 500)
	v.SetDefault("entity_row_cap", 1000)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config file is optional; env + defaults are enough
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
