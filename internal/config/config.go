package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	NotifyModeDirect = "direct"
	NotifyModeOutbox = "outbox"
)

type Config struct {
	Port       string
	Env        string
	AppBaseURL string

	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBSSLMode     string
	RunMigrations bool

	RedisAddr   string
	KafkaBroker string

	NotifyMode         string
	OutboxPollInterval time.Duration

	EmailEnabled bool
	EmailFrom    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	UploadDir      string
	MaxUploadBytes int64

	LeaveCapWindow string

	JWTSecret      string
	RBACModelPath  string
	RBACPolicyPath string

	RateLimitPerSecond float64
	RateLimitBurst     int
}

func Load() Config {
	return Config{
		Port:       getEnv("PORT", "3000"),
		Env:        getEnv("APP_ENV", "development"),
		AppBaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "go_leave"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", ""),

		NotifyMode:         strings.ToLower(getEnv("NOTIFY_MODE", NotifyModeDirect)),
		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),

		EmailEnabled: getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:    getEnv("EMAIL_FROM", "no-reply@example.com"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", true),

		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),

		LeaveCapWindow: strings.ToLower(getEnv("LEAVE_CAP_WINDOW", "lifetime")),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		RBACModelPath:  getEnv("RBAC_MODEL_PATH", "internal/rbac/model.conf"),
		RBACPolicyPath: getEnv("RBAC_POLICY_PATH", "internal/rbac/policy.csv"),

		RateLimitPerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", 5),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBHost) == "" || strings.TrimSpace(c.DBName) == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	switch c.NotifyMode {
	case NotifyModeDirect:
	case NotifyModeOutbox:
		if c.KafkaBroker == "" {
			return fmt.Errorf("KAFKA_BROKER is required when NOTIFY_MODE is outbox")
		}
	default:
		return fmt.Errorf("NOTIFY_MODE must be %q or %q", NotifyModeDirect, NotifyModeOutbox)
	}
	switch c.LeaveCapWindow {
	case "lifetime", "annual":
	default:
		return fmt.Errorf("LEAVE_CAP_WINDOW must be lifetime or annual")
	}
	if c.Env == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least 1024")
	}
	if c.RateLimitPerSecond <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
