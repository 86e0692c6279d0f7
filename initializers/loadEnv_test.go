package initializers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BACKEND", "")
	t.Setenv("PORT", "")
	t.Setenv("DELIVERY_FEE", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "2.99", cfg.DeliveryFee.StringFixed(2))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadEnvRejectsBadConfig(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":  {"JWT_SECRET": ""},
		"negative fee":    {"DELIVERY_FEE": "-1"},
		"garbage fee":     {"DELIVERY_FEE": "two"},
		"mysql no dsn":    {"BACKEND": "mysql", "DB_DSN": ""},
		"remote no url":   {"BACKEND": "remote", "REMOTE_API_URL": ""},
		"unknown backend": {"BACKEND": "redis"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv("BACKEND", "")
			t.Setenv("DELIVERY_FEE", "")
			for key, value := range env {
				t.Setenv(key, value)
			}
			_, err := LoadEnv()
			assert.Error(t, err)
		})
	}
}
