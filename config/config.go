package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL       string
	JWTSecretKey      string
	ServerPort        int
	AdminPasswordHash string
	LogLevel          slog.Level

	ConfirmationTimeout time.Duration
	ReportRateLimit     float64
	ReportRateBurst     int
	CORSAllowedOrigins  []string

	NATSURL     string
	NATSSubject string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
// JWT_SECRET_KEY обязателен только для HTTP-сервера, см. RequireServerSecrets.
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	timeout, err := durationEnv("CONFIRMATION_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("CONFIRMATION_TIMEOUT must be positive, got %s", timeout)
	}

	rps, err := floatEnv("REPORT_RATE_LIMIT", 2)
	if err != nil {
		return nil, err
	}
	burst, err := intEnv("REPORT_RATE_BURST", 5)
	if err != nil {
		return nil, err
	}

	subject := os.Getenv("NATS_SUBJECT")
	if subject == "" {
		subject = "league.events"
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		JWTSecretKey:      os.Getenv("JWT_SECRET_KEY"),
		ServerPort:        port,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		LogLevel:          level,

		ConfirmationTimeout: timeout,
		ReportRateLimit:     rps,
		ReportRateBurst:     burst,
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		NATSURL:     os.Getenv("NATS_URL"),
		NATSSubject: subject,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}
	return cfg, nil
}

// RequireServerSecrets проверяет параметры, без которых сервер не должен стартовать.
func (c *Config) RequireServerSecrets() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	return nil
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return f, nil
}

// durationEnv принимает как "90s", так и число секунд.
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
