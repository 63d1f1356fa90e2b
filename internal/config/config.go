package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis" validate:"required"`
	Review   ReviewConfig   `mapstructure:"review" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// RedisConfig contains connection settings for the dashboard cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0,lte=15"`
	PoolSize int    `mapstructure:"pool_size" validate:"gt=0"`
}

// ReviewConfig contains the tunable knobs of the scheduling algorithm.
// The interval ladder itself is compiled in; only the boundary parameters
// vary between deployments.
type ReviewConfig struct {
	// InitialIntervalDays is the gap between creating a content item and
	// its first review.
	InitialIntervalDays int `mapstructure:"initial_interval_days" validate:"required,gt=0"`

	// DuplicateWindowSeconds is how long after a completion a repeat
	// submission for the same schedule is rejected as a duplicate.
	DuplicateWindowSeconds int `mapstructure:"duplicate_window_seconds" validate:"required,gt=0"`

	// Tier interval caps in days. A schedule can never be pushed further
	// into the future than the owner's cap.
	FreeMaxIntervalDays  int `mapstructure:"free_max_interval_days" validate:"required,gt=0"`
	BasicMaxIntervalDays int `mapstructure:"basic_max_interval_days" validate:"required,gt=0"`
	ProMaxIntervalDays   int `mapstructure:"pro_max_interval_days" validate:"required,gt=0"`
}
