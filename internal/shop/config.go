package shop

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

const (
	StorageFiles   = "files"
	StorageStoolap = "stoolap"
)

type Config struct {
	Addr       string `mapstructure:"addr"`
	DataDir    string `mapstructure:"data_dir"`
	Storage    string `mapstructure:"storage"`
	StoolapDSN string `mapstructure:"stoolap_dsn"`
	LogLevel   string `mapstructure:"log_level"`

	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsToken   string `mapstructure:"metrics_token"`

	RateLimit              int `mapstructure:"rate_limit"`
	RateLimitWindowSeconds int `mapstructure:"rate_limit_window_seconds"`
}

// LoadConfig reads storefront.yaml plus STOREFRONT_* env overrides. A
// missing config file is fine; every setting has a default. An unreadable
// or malformed file is an error: unlike state documents, a broken config is
// operator input worth failing loudly on.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("storage", StorageFiles)
	v.SetDefault("stoolap_dsn", "file://./data/storefront.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_token", "")
	v.SetDefault("rate_limit", 0)
	v.SetDefault("rate_limit_window_seconds", 60)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	switch strings.ToLower(cfg.Storage) {
	case StorageFiles, StorageStoolap:
		cfg.Storage = strings.ToLower(cfg.Storage)
	default:
		return Config{}, errors.New("storage must be files or stoolap")
	}

	return cfg, nil
}
