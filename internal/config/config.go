package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	SLA          SLAConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SLAConfig carries the monitor's tunables. Values here are the
// environment-level layer; persisted overrides in the sla_config table take
// precedence when they can be read.
type SLAConfig struct {
	PollIntervalMS   int
	WarningRatio     float64
	CriticalRatio    float64
	DedupWindowHours int
	BusinessDayStart int
	BusinessDayEnd   int
	ResolutionHours  map[domain.TicketPriority]int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	defaults := domain.DefaultResolutionHours()
	thresholds := domain.DefaultSLAThresholds()

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "sla-monitor"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8080"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		SLA: SLAConfig{
			PollIntervalMS:   getEnvAsInt("SLA_POLL_INTERVAL_MS", 900000),
			WarningRatio:     getEnvAsFloat("SLA_WARNING_RATIO", thresholds.WarningRatio),
			CriticalRatio:    getEnvAsFloat("SLA_CRITICAL_RATIO", thresholds.CriticalRatio),
			DedupWindowHours: getEnvAsInt("SLA_DEDUP_WINDOW_HOURS", 24),
			BusinessDayStart: getEnvAsInt("SLA_BUSINESS_DAY_START_HOUR", 9),
			BusinessDayEnd:   getEnvAsInt("SLA_BUSINESS_DAY_END_HOUR", 17),
			ResolutionHours: map[domain.TicketPriority]int{
				domain.TicketPriorityCritical: getEnvAsInt("SLA_HOURS_CRITICAL", defaults[domain.TicketPriorityCritical]),
				domain.TicketPriorityHigh:     getEnvAsInt("SLA_HOURS_HIGH", defaults[domain.TicketPriorityHigh]),
				domain.TicketPriorityMedium:   getEnvAsInt("SLA_HOURS_MEDIUM", defaults[domain.TicketPriorityMedium]),
				domain.TicketPriorityLow:      getEnvAsInt("SLA_HOURS_LOW", defaults[domain.TicketPriorityLow]),
			},
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if cfg.SLA.PollIntervalMS <= 0 {
		return nil, fmt.Errorf("SLA_POLL_INTERVAL_MS must be positive, got %d", cfg.SLA.PollIntervalMS)
	}
	if cfg.SLA.BusinessDayStart < 0 || cfg.SLA.BusinessDayEnd > 24 || cfg.SLA.BusinessDayStart >= cfg.SLA.BusinessDayEnd {
		return nil, fmt.Errorf("invalid business window %d-%d", cfg.SLA.BusinessDayStart, cfg.SLA.BusinessDayEnd)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// PollInterval returns the monitor's tick interval.
func (s SLAConfig) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMS) * time.Millisecond
}

// DedupWindow returns the alert suppression window.
func (s SLAConfig) DedupWindow() time.Duration {
	return time.Duration(s.DedupWindowHours) * time.Hour
}

// Thresholds returns the environment-level classification thresholds.
func (s SLAConfig) Thresholds() domain.SLAThresholds {
	return domain.SLAThresholds{
		WarningRatio:  s.WarningRatio,
		CriticalRatio: s.CriticalRatio,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
