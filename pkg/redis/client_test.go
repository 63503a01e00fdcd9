package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	t.Run("Should default the port and read password from URL", func(t *testing.T) {
		opts, err := ParseOptions(Config{URL: "redis://:secret@cache.local"})
		require.NoError(t, err)
		assert.Equal(t, "cache.local:6379", opts.Addr)
		assert.Equal(t, "secret", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("Should enable TLS for rediss and prefer explicit password", func(t *testing.T) {
		opts, err := ParseOptions(Config{URL: "rediss://:fromurl@cache.local:6380", Password: "explicit"})
		require.NoError(t, err)
		assert.Equal(t, "cache.local:6380", opts.Addr)
		assert.Equal(t, "explicit", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})

	t.Run("Should reject missing or foreign URLs", func(t *testing.T) {
		_, err := ParseOptions(Config{})
		assert.Error(t, err)

		_, err = ParseOptions(Config{URL: "http://cache.local"})
		assert.Error(t, err)
	})
}

func TestNilClientBypasses(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.False(t, c.Available())
	assert.Nil(t, c.Raw())

	var out map[string]string
	found, err := c.GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.SetJSON(ctx, "k", map[string]string{"a": "b"}, 0))
	assert.NoError(t, c.DeleteByPattern(ctx, "k*"))
	assert.ErrorIs(t, c.HealthCheck(ctx), ErrUnavailable)
	assert.NoError(t, c.Close())
}
