package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Submission store backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Store    StoreConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Log      LogConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	PublicBaseURL   string
	Environment     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig selects where submissions and notifications live.
type StoreConfig struct {
	Backend             string
	SubmissionFile      string
	NotificationFile    string
	NotificationBackend string
	ReadThrough         bool
}

// RedisConfig holds Redis connection settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds the snapshot database settings.
type PostgresConfig struct {
	URL          string
	Driver       string
	MaxOpenConns int
	MaxIdleConns int
}

// KafkaConfig enables the notification mirror when Brokers is non-empty.
type KafkaConfig struct {
	Brokers          []string
	Topic            string
	FailureThreshold int
	Cooldown         time.Duration
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string
	Format string
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:            getEnv("GOVDESK_ADDR", ":8080"),
			PublicBaseURL:   strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			RequestTimeout:  getDuration("REQUEST_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Backend:             strings.ToLower(getEnv("SUBMISSION_STORE", BackendFile)),
			SubmissionFile:      getEnv("SUBMISSION_DB_FILE", "data/submissions.json"),
			NotificationFile:    getEnv("NOTIFICATION_DB_FILE", "data/notifications.json"),
			NotificationBackend: strings.ToLower(getEnv("NOTIFICATION_STORE", BackendFile)),
			ReadThrough:         getBool("SUBMISSION_READ_THROUGH", true),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL:          os.Getenv("DATABASE_URL"),
			Driver:       getEnv("DATABASE_DRIVER", "pgx"),
			MaxOpenConns: getInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Kafka: KafkaConfig{
			Brokers:          splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:            getEnv("NOTIFICATION_TOPIC", "govdesk.notifications"),
			FailureThreshold: getInt("KAFKA_FAILURE_THRESHOLD", 5),
			Cooldown:         getDuration("KAFKA_COOLDOWN", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate rejects backend selections that cannot be satisfied.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("SUBMISSION_STORE=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("SUBMISSION_STORE=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown SUBMISSION_STORE %q", c.Store.Backend)
	}
	switch c.Store.NotificationBackend {
	case BackendFile:
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("NOTIFICATION_STORE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown NOTIFICATION_STORE %q", c.Store.NotificationBackend)
	}
	return nil
}

// IsProduction reports whether the process runs in production.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
