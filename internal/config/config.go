package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development signing secret used when JWT_SECRET is unset.
const DefaultJWTSecret = "edujiin_secret_key"

type Config struct {
	AppEnv string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Cache
	RedisURL string
	CacheTTL time.Duration

	// JWT
	JWTSecret    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	// AI provider (OpenAI-compatible chat completions)
	AIAPIKey  string
	AIAPIURL  string
	AIModel   string
	AITimeout time.Duration

	// Documents
	UploadDir          string
	StorageBackend     string
	GCSBucket          string
	GCSCredentialsJSON string

	// Admin
	AdminToken  string
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string

	SentryDSN        string
	LogRetentionDays int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "edujiin"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: parseDuration(getEnv("CACHE_TTL", "5m"), 5*time.Minute),

		JWTSecret:    getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTExpiresIn: parseDuration(getEnv("JWT_EXPIRES_IN", "168h"), 168*time.Hour),
		BcryptCost:   getInt("BCRYPT_COST", 10),

		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIAPIURL:  getEnv("AI_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		AIModel:   getEnv("AI_MODEL", "deepseek/deepseek-chat"),
		AITimeout: parseDuration(getEnv("AI_TIMEOUT", "60s"), 60*time.Second),

		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		StorageBackend:     strings.ToLower(getEnv("STORAGE_BACKEND", "local")),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsJSON: getEnv("GCS_CREDENTIALS_JSON", ""),

		AdminToken:  getEnv("ADMIN_TOKEN", ""),
		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		LogRetentionDays: getInt("LOG_RETENTION_DAYS", 30),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AdminEmailList returns ADMIN_EMAILS split on commas, lower-cased.
func (c *Config) AdminEmailList() []string {
	if c.AdminEmails == "" {
		return nil
	}
	parts := strings.Split(c.AdminEmails, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "default", fallback)
		return fallback
	}
	return i
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
