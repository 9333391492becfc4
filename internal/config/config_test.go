package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 11, cfg.PasswordCost)
	assert.Equal(t, "loan-api", cfg.JWT.Issuer)
	assert.Equal(t, "loan-api-clients", cfg.JWT.Audience)
	assert.Equal(t, 5, cfg.RateLimit.Auth)
	assert.Equal(t, 100, cfg.RateLimit.API)
	assert.Equal(t, "loan.events", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "0 8 * * *", cfg.Digest.Schedule)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_MODE", " prod ")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("AUTH_RATE_LIMIT", "50")
	t.Setenv("ALLOWED_ORIGINS", "https://loans.example.com")
	t.Setenv("DIGEST_SCHEDULE", "off")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 50, cfg.RateLimit.Auth)
	assert.Equal(t, "https://loans.example.com", cfg.GetAllowedOrigins())
	assert.Empty(t, cfg.Digest.Schedule)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("app mode", func(t *testing.T) {
		t.Setenv("APP_MODE", "staging")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("db driver", func(t *testing.T) {
		t.Setenv("APP_MODE", "dev")
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestBuildDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "n"}
	assert.Equal(t, "u:p@tcp(h:1)/n?charset=utf8mb4&parseTime=True&loc=Local", buildMySQLDSN(d))
	assert.Contains(t, buildPostgresDSN(d), "host=h port=1 user=u password=p dbname=n")
}
