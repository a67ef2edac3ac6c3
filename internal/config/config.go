package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBMaxOpenConns int
	DBConnMaxIdle  time.Duration

	RedisURL string

	JWTSecret string
	JWTTTL    time.Duration

	LeaderboardSchedule     string
	LeaderboardTimezone     string
	LeaderboardMaxStaleness time.Duration
	RefreshRateLimit        time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "3000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "image_annotation"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		LeaderboardSchedule: getEnv("LEADERBOARD_CRON_SCHEDULE", "*/5 * * * *"),
		LeaderboardTimezone: getEnv("LEADERBOARD_TIMEZONE", "Europe/Paris"),
	}

	var err error
	cfg.DBMaxOpenConns, err = strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	// Parsing durations
	cfg.DBConnMaxIdle, err = parseDuration(getEnv("DB_CONN_MAX_IDLE", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_IDLE: %w", err)
	}
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.LeaderboardMaxStaleness, err = parseDuration(getEnv("LEADERBOARD_MAX_STALENESS", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_MAX_STALENESS: %w", err)
	}
	cfg.RefreshRateLimit, err = parseDuration(getEnv("REFRESH_RATE_LIMIT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_RATE_LIMIT: %w", err)
	}

	if _, err := time.LoadLocation(cfg.LeaderboardTimezone); err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
