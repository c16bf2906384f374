package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type NATSConfig struct {
	Enabled    bool               `mapstructure:"enabled"`
	URL        string             `mapstructure:"url"`
	StreamName string             `mapstructure:"stream_name"`
	Subjects   NATSSubjectsConfig `mapstructure:"subjects"`
}

type NATSSubjectsConfig struct {
	AlertGenerated  string `mapstructure:"alert_generated"`
	CampaignUpdated string `mapstructure:"campaign_updated"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// MatchingConfig tunes the fingerprint matcher and report deduplication.
type MatchingConfig struct {
	NGramSize          int     `mapstructure:"ngram_size"`
	FuzzyFloor         float64 `mapstructure:"fuzzy_floor"`
	StrongSimilarity   float64 `mapstructure:"strong_similarity"`
	ExactConfidence    float64 `mapstructure:"exact_confidence"`
	StrongConfidence   float64 `mapstructure:"strong_confidence"`
	WeakConfidence     float64 `mapstructure:"weak_confidence"`
	DedupHammingMax    int     `mapstructure:"dedup_hamming_max"`
	SimilarCampaignMax int     `mapstructure:"similar_campaign_max"`
}

// DefaultMatching returns the matcher thresholds used in production.
func DefaultMatching() MatchingConfig {
	return MatchingConfig{
		NGramSize:          2,
		FuzzyFloor:         0.7,
		StrongSimilarity:   0.9,
		ExactConfidence:    0.95,
		StrongConfidence:   0.85,
		WeakConfidence:     0.65,
		DedupHammingMax:    3,
		SimilarCampaignMax: 3,
	}
}

// AlertsConfig tunes automatic alert generation.
type AlertsConfig struct {
	AutoThreshold     int `mapstructure:"auto_threshold"`
	WarningThreshold  int `mapstructure:"warning_threshold"`
	CriticalThreshold int `mapstructure:"critical_threshold"`
	FeedLimit         int `mapstructure:"feed_limit"`
}

// DefaultAlerts returns the alert thresholds used in production.
func DefaultAlerts() AlertsConfig {
	return AlertsConfig{
		AutoThreshold:     100,
		WarningThreshold:  1000,
		CriticalThreshold: 3000,
		FeedLimit:         50,
	}
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/scamtrace")
	}

	// Environment variables
	v.SetEnvPrefix("SCAMTRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.host", "SCAMTRACE_REDIS_HOST")
	v.BindEnv("redis.port", "SCAMTRACE_REDIS_PORT")
	v.BindEnv("redis.password", "SCAMTRACE_REDIS_PASSWORD")
	v.BindEnv("database.host", "SCAMTRACE_DATABASE_HOST")
	v.BindEnv("database.port", "SCAMTRACE_DATABASE_PORT")
	v.BindEnv("database.user", "SCAMTRACE_DATABASE_USER")
	v.BindEnv("database.password", "SCAMTRACE_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "SCAMTRACE_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "SCAMTRACE_DATABASE_SSLMODE")
	v.BindEnv("nats.enabled", "SCAMTRACE_NATS_ENABLED")
	v.BindEnv("app.environment", "SCAMTRACE_APP_ENVIRONMENT")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine when no explicit path was given:
		// env vars and defaults take over.
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

// applyDefaults fills zero-valued tuning knobs so a minimal config file works.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "scamtrace"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "scamtrace:"
	}
	if cfg.NATS.StreamName == "" {
		cfg.NATS.StreamName = "SCAMTRACE_ALERTS"
	}

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "json"
	}

	def := DefaultMatching()
	if cfg.Matching.NGramSize == 0 {
		cfg.Matching.NGramSize = def.NGramSize
	}
	if cfg.Matching.FuzzyFloor == 0 {
		cfg.Matching.FuzzyFloor = def.FuzzyFloor
	}
	if cfg.Matching.StrongSimilarity == 0 {
		cfg.Matching.StrongSimilarity = def.StrongSimilarity
	}
	if cfg.Matching.ExactConfidence == 0 {
		cfg.Matching.ExactConfidence = def.ExactConfidence
	}
	if cfg.Matching.StrongConfidence == 0 {
		cfg.Matching.StrongConfidence = def.StrongConfidence
	}
	if cfg.Matching.WeakConfidence == 0 {
		cfg.Matching.WeakConfidence = def.WeakConfidence
	}
	if cfg.Matching.DedupHammingMax == 0 {
		cfg.Matching.DedupHammingMax = def.DedupHammingMax
	}
	if cfg.Matching.SimilarCampaignMax == 0 {
		cfg.Matching.SimilarCampaignMax = def.SimilarCampaignMax
	}

	defAlerts := DefaultAlerts()
	if cfg.Alerts.AutoThreshold == 0 {
		cfg.Alerts.AutoThreshold = defAlerts.AutoThreshold
	}
	if cfg.Alerts.WarningThreshold == 0 {
		cfg.Alerts.WarningThreshold = defAlerts.WarningThreshold
	}
	if cfg.Alerts.CriticalThreshold == 0 {
		cfg.Alerts.CriticalThreshold = defAlerts.CriticalThreshold
	}
	if cfg.Alerts.FeedLimit == 0 {
		cfg.Alerts.FeedLimit = defAlerts.FeedLimit
	}
}
