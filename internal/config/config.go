package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret     string
	JWTExpiration time.Duration

	// CORS
	CORSAllowedOrigins []string

	// Match lifecycle
	MatchIdleTimeout time.Duration
	MatchRetention   time.Duration
	IssueTimeout     time.Duration
	RoomCodeLength   int

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func Load() (*Config, error) {
	// .env 파일 로드 (있는 경우)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiration:      parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		MatchIdleTimeout:   parseDuration(getEnv("MATCH_IDLE_TIMEOUT", "5m"), 5*time.Minute),
		MatchRetention:     parseDuration(getEnv("MATCH_RETENTION", "5m"), 5*time.Minute),
		IssueTimeout:       parseDuration(getEnv("ISSUE_TIMEOUT", "5s"), 5*time.Second),
		RoomCodeLength:     parseInt(getEnv("ROOM_CODE_LENGTH", "6"), 6),
		RateLimitRequests:  parseInt(getEnv("RATE_LIMIT_REQUESTS", "100"), 100),
		RateLimitWindow:    parseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"), time.Minute),
		CORSAllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
