package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file next to the binary or in /etc/curve. Absence is
	// fine; environment variables alone can configure the service.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/curve")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// CURVE_SERVER_PORT overrides server.port, and so on.
	v.SetEnvPrefix("CURVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("review.initial_interval_days", 1)
	v.SetDefault("review.duplicate_window_seconds", 60)
	v.SetDefault("review.free_max_interval_days", 7)
	v.SetDefault("review.basic_max_interval_days", 30)
	v.SetDefault("review.pro_max_interval_days", 180)
}

// bindEnvs registers every config key with viper so AutomaticEnv picks up
// variables for keys that have no default and appear in no config file.
func bindEnvs(v *viper.Viper) {
	keys := []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.jwt_secret",
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.pool_size",
		"review.initial_interval_days",
		"review.duplicate_window_seconds",
		"review.free_max_interval_days",
		"review.basic_max_interval_days",
		"review.pro_max_interval_days",
	}
	for _, key := range keys {
		// BindEnv only errors on an empty key.
		_ = v.BindEnv(key)
	}
}
