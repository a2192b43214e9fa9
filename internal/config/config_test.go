package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with empty SSL mode", "prod", "", true},
		{"Prod with disable SSL mode", "prod", "disable", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:                      tt.env,
				DBSSLMode:                tt.sslMode,
				JWTSecret:                "secure-secret-at-least-32-chars-long",
				DBPassword:               "secure-password",
				Port:                     "8080",
				DBConnMaxLifetimeMinutes: 1,
				RedisURL:                 "localhost:6379",
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProductionSecrets(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:                      "production",
			DBSSLMode:                "require",
			JWTSecret:                "secure-secret-at-least-32-chars-long",
			DBPassword:               "secure-password",
			Port:                     "8080",
			DBConnMaxLifetimeMinutes: 5,
		}
	}

	t.Run("Default JWT secret rejected", func(t *testing.T) {
		c := base()
		c.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, c.Validate())
	})

	t.Run("Short JWT secret rejected", func(t *testing.T) {
		c := base()
		c.JWTSecret = "too-short"
		assert.Error(t, c.Validate())
	})

	t.Run("Weak DB password rejected", func(t *testing.T) {
		c := base()
		c.DBPassword = "password"
		assert.Error(t, c.Validate())
	})

	t.Run("Valid production config accepted", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})
}

func TestLoadConfig_SSLModeNormalization(t *testing.T) {
	// Clean up environment variables and viper after test
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
}

func TestConfig_IsTestLike(t *testing.T) {
	assert.True(t, (&Config{Env: "test"}).IsTestLike())
	assert.True(t, (&Config{Env: "development"}).IsTestLike())
	assert.False(t, (&Config{Env: "production"}).IsTestLike())
}
