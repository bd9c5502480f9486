package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_SECRET", "JWT_EXPIRES_IN", "BCRYPT_COST", "AI_MODEL", "STORAGE_BACKEND", "CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "deepseek/deepseek-chat", cfg.AIModel)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("STORAGE_BACKEND", "GCS")
	t.Setenv("AI_TIMEOUT", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "gcs", cfg.StorageBackend)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "ten")
	assert.Equal(t, 10, Load().BcryptCost)
}

func TestAdminEmailList(t *testing.T) {
	cfg := &Config{AdminEmails: " Admin@Example.com, ,ops@example.com"}
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.AdminEmailList())

	assert.Nil(t, (&Config{}).AdminEmailList())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
