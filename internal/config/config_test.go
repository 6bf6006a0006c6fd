package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:               "8080",
		DBPassword:         "s3curepassw0rd",
		DBSSLMode:          "require",
		SecretKey:          "0123456789abcdef0123456789abcdef",
		ActivationTokenTTL: 3600,
		AuthTokenTTL:       3600,
		PostsPerPage:       10,
		CommentsPerPage:    10,
		Env:                "development",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"MissingPort", func(c *Config) { c.Port = "" }, true},
		{"MissingSecret", func(c *Config) { c.SecretKey = "" }, true},
		{"ZeroActivationTTL", func(c *Config) { c.ActivationTokenTTL = 0 }, true},
		{"NegativeAuthTTL", func(c *Config) { c.AuthTokenTTL = -1 }, true},
		{"ZeroPageSize", func(c *Config) { c.PostsPerPage = 0 }, true},
		{"ShortSecretAllowedInDev", func(c *Config) { c.SecretKey = "short" }, false},
		{"DefaultSecretRejectedInProduction", func(c *Config) {
			c.Env = "production"
			c.SecretKey = "dev-secret-change-in-production"
		}, true},
		{"ShortSecretRejectedInProduction", func(c *Config) {
			c.Env = "production"
			c.SecretKey = "short"
		}, true},
		{"WeakDBPasswordRejectedInProduction", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"StrongProductionConfig", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTTLHelpers(t *testing.T) {
	cfg := &Config{ActivationTokenTTL: 3600, AuthTokenTTL: 900}
	assert.Equal(t, time.Hour, cfg.ActivationTTL())
	assert.Equal(t, 15*time.Minute, cfg.AuthTTL())
}
