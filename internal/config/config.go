package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppPort           string
	CMSAPIURL         string
	CMSTimeout        time.Duration
	CloudinaryURL     string
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	CacheTTL          time.Duration
	RateLimitPerMin   int
	JWTSecret         string
	TokenExpires      time.Duration
	AdminUsername     string
	AdminPasswordHash string
	TelegramBotToken  string
	TelegramAdminChat string
	CORSOrigins       string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		CMSAPIURL:         strings.TrimRight(getEnv("CMS_API_URL", "http://localhost:4000/api"), "/"),
		CMSTimeout:        getEnvDuration("CMS_TIMEOUT_SECONDS", 15) * time.Second,
		CloudinaryURL:     getEnv("CLOUDINARY_URL", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		CacheTTL:          getEnvDuration("CACHE_TTL_SECONDS", 30) * time.Second,
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 5),
		JWTSecret:         getEnv("JWT_SECRET", "c1f0a7e25b9d4e8faa3d6b71f02c94e8d5a6b3c7e19f42d08a7b65c3e2d1f0a9"),
		TokenExpires:      getEnvDuration("JWT_TTL_HOURS", 24) * time.Hour,
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminChat: getEnv("TELEGRAM_ADMIN_CHAT_ID", ""),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	if cfg.CMSAPIURL == "" {
		log.Fatal("CMS_API_URL must be set")
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback))
}
