package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback time.Duration
		expected time.Duration
	}{
		{"hours", "1h", time.Minute, time.Hour},
		{"days", "7d", time.Minute, 7 * 24 * time.Hour},
		{"bad days", "xd", time.Minute, time.Minute},
		{"garbage", "soon", time.Minute, time.Minute},
		{"negative", "-5m", time.Minute, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseDuration(tt.value, tt.fallback))
		})
	}
}

func TestParseMaxUploadSize(t *testing.T) {
	assert.Equal(t, int64(2048), parseMaxUploadSize("2048"))
	assert.Equal(t, int64(10*1024*1024), parseMaxUploadSize("ten"))
	assert.Equal(t, int64(10*1024*1024), parseMaxUploadSize("0"))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg := LoadConfig()

	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, "secret", cfg.JWTSecretKey)
	assert.Equal(t, time.Hour, cfg.AccessTokenDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenDuration)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("JWT_REFRESH_SECRET_KEY", "other")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("STORAGE_BACKEND", "minio")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := LoadConfig()

	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, "other", cfg.JWTRefreshSecretKey)
	assert.Equal(t, "sqlite3", cfg.DB.DbDRIVER)
	assert.Equal(t, "minio", cfg.Storage.Backend)
	assert.True(t, cfg.MinIO.UseSSL)
}
