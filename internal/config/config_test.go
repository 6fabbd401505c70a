package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 168, cfg.JWTExpiryHours)
	assert.Equal(t, 100, cfg.RateLimitRPM)
	assert.Equal(t, "fs", cfg.BlobDriver)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSizeBytes)
	assert.Equal(t, 10, cfg.MaxFilesPerComplaint)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://monanji.ao,https://app.monanji.ao")
	t.Setenv("BLOB_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://monanji.ao", "https://app.monanji.ao"}, cfg.AllowedOrigins)
	assert.Equal(t, "memory", cfg.BlobDriver)
}

func TestProductionValidation(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/monanji")

	t.Run("default JWT secret refused", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("s3 driver needs a bucket", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "real-secret")
		t.Setenv("BLOB_DRIVER", "s3")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("complete production config loads", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "real-secret")
		t.Setenv("BLOB_DRIVER", "s3")
		t.Setenv("S3_BUCKET", "monanji-evidence")
		_, err := Load()
		assert.NoError(t, err)
	})
}
