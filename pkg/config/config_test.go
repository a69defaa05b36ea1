package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("AUTH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, []string{"http://localhost:4200", "https://localhost:4200"}, cfg.HTTP.AllowedOrigins)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, 60, cfg.JWT.Expiration)
}

func TestLoad_EntornoSobrescribe(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 1e-9)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestValidate_AuthExigeSecretYHash(t *testing.T) {
	cfg := &Config{
		DB:   DBConfig{Driver: DriverMemory},
		HTTP: HTTPConfig{Port: 8080},
		JWT:  JWTConfig{Expiration: 60},
		Auth: AuthConfig{Enabled: true},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD_HASH")

	cfg.JWT.Secret = "s3cret"
	cfg.Auth.AdminPasswordHash = "$2a$10$hash"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_DriverDesconocido(t *testing.T) {
	cfg := &Config{DB: DBConfig{Driver: "mysql"}, HTTP: HTTPConfig{Port: 8080}, JWT: JWTConfig{Expiration: 1}}
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_ConnectionStringEscapa(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss:word", DBName: "grants", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aword@db:5432/grants?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
