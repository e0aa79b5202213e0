package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Redis       RedisConfig       `yaml:"redis"`
	Postgres    PostgresConfig    `yaml:"postgres"`
	Kafka       KafkaConfig       `yaml:"kafka"`
	Sources     SourcesConfig     `yaml:"sources"`
	Session     SessionConfig     `yaml:"session"`
	Timing      TimingConfig      `yaml:"timing"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Locale      LocaleConfig      `yaml:"locale"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxConnections  int           `yaml:"max_connections"`
	MinConnections  int           `yaml:"min_connections"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
}

// ConnectionString returns the PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslMode,
	)
}

// KafkaConfig holds Kafka connection configuration
type KafkaConfig struct {
	Enabled           bool          `yaml:"enabled"`
	Brokers           []string      `yaml:"brokers"`
	ActivityTopic     string        `yaml:"activity_topic"`
	NotificationTopic string        `yaml:"notification_topic"`
	GroupID           string        `yaml:"group_id"`
	BatchSize         int           `yaml:"batch_size"`
	BatchTimeout      time.Duration `yaml:"batch_timeout"`
}

// Source kinds
const (
	SourceMock     = "mock"
	SourceRedis    = "redis"
	SourcePostgres = "postgres"
)

// SourcesConfig selects where screens read their data from
type SourcesConfig struct {
	Leaderboard string `yaml:"leaderboard"`
	Catalog     string `yaml:"catalog"`
}

// SessionConfig controls session lifetime
type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// TimingConfig holds the simulated delays of the UI flows
type TimingConfig struct {
	Splash       time.Duration `yaml:"splash"`
	Reveal       time.Duration `yaml:"reveal"`
	Reset        time.Duration `yaml:"reset"`
	OTPSend      time.Duration `yaml:"otp_send"`
	OTPVerify    time.Duration `yaml:"otp_verify"`
	ProfileSetup time.Duration `yaml:"profile_setup"`
}

// LeaderboardConfig holds leaderboard-specific configuration
type LeaderboardConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// LocaleConfig holds notice localization settings
type LocaleConfig struct {
	Default string `yaml:"default"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that have no sensible default
func (c *Config) Validate() error {
	switch c.Sources.Leaderboard {
	case SourceMock, SourceRedis:
	default:
		return fmt.Errorf("sources.leaderboard: unknown source %q", c.Sources.Leaderboard)
	}
	switch c.Sources.Catalog {
	case SourceMock, SourcePostgres:
	default:
		return fmt.Errorf("sources.catalog: unknown source %q", c.Sources.Catalog)
	}
	if c.Sources.Leaderboard == SourceRedis && !c.Redis.Enabled {
		return fmt.Errorf("sources.leaderboard is redis but redis is disabled")
	}
	if c.Sources.Catalog == SourcePostgres && !c.Postgres.Enabled {
		return fmt.Errorf("sources.catalog is postgres but postgres is disabled")
	}
	if c.Leaderboard.DefaultLimit > c.Leaderboard.MaxLimit {
		return fmt.Errorf("leaderboard.default_limit %d exceeds max_limit %d",
			c.Leaderboard.DefaultLimit, c.Leaderboard.MaxLimit)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	// Redis defaults
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 20
	}
	if c.Redis.MinIdleConns == 0 {
		c.Redis.MinIdleConns = 2
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}

	// PostgreSQL defaults
	if c.Postgres.Host == "" {
		c.Postgres.Host = "localhost"
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.Postgres.MaxConnections == 0 {
		c.Postgres.MaxConnections = 10
	}
	if c.Postgres.MinConnections == 0 {
		c.Postgres.MinConnections = 1
	}
	if c.Postgres.MaxConnLifetime == 0 {
		c.Postgres.MaxConnLifetime = 1 * time.Hour
	}
	if c.Postgres.MaxConnIdleTime == 0 {
		c.Postgres.MaxConnIdleTime = 30 * time.Minute
	}

	// Kafka defaults
	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
	if c.Kafka.ActivityTopic == "" {
		c.Kafka.ActivityTopic = "predict-win-activity"
	}
	if c.Kafka.NotificationTopic == "" {
		c.Kafka.NotificationTopic = "predict-win-notifications"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "predict-win-server"
	}
	if c.Kafka.BatchSize == 0 {
		c.Kafka.BatchSize = 20
	}
	if c.Kafka.BatchTimeout == 0 {
		c.Kafka.BatchTimeout = 500 * time.Millisecond
	}

	// Source defaults
	if c.Sources.Leaderboard == "" {
		c.Sources.Leaderboard = SourceMock
	}
	if c.Sources.Catalog == "" {
		c.Sources.Catalog = SourceMock
	}

	// Session defaults
	if c.Session.IdleTTL == 0 {
		c.Session.IdleTTL = 30 * time.Minute
	}
	if c.Session.SweepInterval == 0 {
		c.Session.SweepInterval = 1 * time.Minute
	}

	// Timing defaults
	if c.Timing.Splash == 0 {
		c.Timing.Splash = 2500 * time.Millisecond
	}
	if c.Timing.Reveal == 0 {
		c.Timing.Reveal = 3 * time.Second
	}
	if c.Timing.Reset == 0 {
		c.Timing.Reset = 3 * time.Second
	}
	if c.Timing.OTPSend == 0 {
		c.Timing.OTPSend = 1500 * time.Millisecond
	}
	if c.Timing.OTPVerify == 0 {
		c.Timing.OTPVerify = 1500 * time.Millisecond
	}
	if c.Timing.ProfileSetup == 0 {
		c.Timing.ProfileSetup = 1500 * time.Millisecond
	}

	// Leaderboard defaults
	if c.Leaderboard.DefaultLimit == 0 {
		c.Leaderboard.DefaultLimit = 10
	}
	if c.Leaderboard.MaxLimit == 0 {
		c.Leaderboard.MaxLimit = 100
	}

	if c.Locale.Default == "" {
		c.Locale.Default = "en"
	}
}

// DefaultConfig returns a configuration with all defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
