package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClient(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("HIPCHAT_TOKEN", "blah")
		t.Setenv("HIPCHAT_SERVER_URL", "")
		t.Setenv("HIPCHAT_API_VERSION", "")
		t.Setenv("HIPCHAT_LOG_LEVEL", "")

		c, err := LoadClient()
		require.NoError(t, err)
		assert.Equal(t, "blah", c.Token)
		assert.Equal(t, "https://api.hipchat.com", c.ServerURL)
		assert.Equal(t, "v2", c.APIVersion)
		assert.Equal(t, "info", c.LogLevel)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("HIPCHAT_TOKEN", "blah")
		t.Setenv("HIPCHAT_SERVER_URL", "http://localhost:8080")
		t.Setenv("HIPCHAT_LOG_LEVEL", "debug")

		c, err := LoadClient()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", c.ServerURL)
		assert.Equal(t, "debug", c.LogLevel)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv("HIPCHAT_TOKEN", "")

		_, err := LoadClient()
		assert.ErrorContains(t, err, "HIPCHAT_TOKEN")
	})
}

func TestLoadServer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_TTL_HOURS", "")
		t.Setenv("PORT", "")

		s, err := LoadServer()
		require.NoError(t, err)
		assert.Equal(t, "8080", s.Port)
		assert.Equal(t, 24, s.JWTTTLHrs)
		assert.Equal(t, "dev", s.Env)
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_TTL_HOURS", "soon")

		_, err := LoadServer()
		assert.ErrorContains(t, err, "JWT_TTL_HOURS")
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("JWT_TTL_HOURS", "")

		_, err := LoadServer()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
