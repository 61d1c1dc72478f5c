// config/config.go
package config

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env  string
	Port string

	MongoURI string
	MongoDB  string

	SessionSecret string
	SessionTTL    time.Duration
	SessionStore  string // "redis" or "memory"

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	EmailProvider    string // "postmark" or "sendgrid"
	PostmarkAPIToken string
	SendGridAPIKey   string
	EmailSender      string

	RabbitMQURL string
	NotifyQueue string

	UploadDir      string
	MaxUploadBytes int64

	// AuthzDenyStatus is the single status code used for every authorization denial
	AuthzDenyStatus int

	BcryptCost int

	LogLevel  string
	LogFormat string
	LogOutput string
	LogFile   string
}

// Load reads an optional .env file and then the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found. Proceeding with environment variables.")
	}

	return &Config{
		Env:              getEnv("APP_ENV", "dev"),
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "ecommerce"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SessionStore:     getEnv("SESSION_STORE", "redis"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		EmailProvider:    getEnv("EMAIL_PROVIDER", "postmark"),
		PostmarkAPIToken: os.Getenv("POSTMARK_API_TOKEN"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		EmailSender:      getEnv("EMAIL_SENDER", "no-reply@localhost"),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		NotifyQueue:      getEnv("NOTIFY_QUEUE", "notifications.welcome"),
		UploadDir:        getEnv("UPLOAD_DIR", "public/images"),
		MaxUploadBytes:   int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
		AuthzDenyStatus:  getEnvAsStatus("AUTHZ_DENY_STATUS", http.StatusUnauthorized),
		BcryptCost:       getEnvAsInt("BCRYPT_COST", 10),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LogOutput:        getEnv("LOG_OUTPUT", "stdout"),
		LogFile:          getEnv("LOG_FILE", "logs/app.log"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// only 401 and 403 are meaningful denial codes
func getEnvAsStatus(key string, defaultValue int) int {
	switch code := getEnvAsInt(key, defaultValue); code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return code
	default:
		return defaultValue
	}
}
