package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:           "development",
		Port:          "8080",
		JWTSecret:     "secure-secret-at-least-32-chars-long",
		JWTExpiration: time.Hour,
		DBPassword:    "secure-password",
		DBSSLMode:     "require",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero expiration", func(c *Config) { c.JWTExpiration = 0 }, true},
		{"admin email without password", func(c *Config) { c.AdminEmail = "root@example.com" }, true},
		{"admin email with password", func(c *Config) {
			c.AdminEmail = "root@example.com"
			c.AdminPassword = "secret123"
		}, false},
		{"production default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"production short secret", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
		{"production weak db password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"production hardened", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	c := &Config{DBHost: "db", DBPort: "5433", DBUser: "blog", DBPassword: "pw", DBName: "datablog"}
	assert.Equal(t, "host=db port=5433 user=blog password=pw dbname=datablog sslmode=disable", c.DSN())

	c.DBSSLMode = "require"
	assert.Contains(t, c.DSN(), "sslmode=require")
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("DB_NAME", "datablog_test")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, 90*time.Minute, c.JWTExpiration)
	assert.Equal(t, "datablog_test", c.DBName)
	assert.False(t, c.IsProduction())
}
