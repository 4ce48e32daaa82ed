package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bukuinduk/internal/platform/config"
)

func TestOpenWithoutURLDisablesCache(t *testing.T) {
	client, err := Open(context.Background(), config.RedisConfig{URL: "  "})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestOpenRejectsMalformedURL(t *testing.T) {
	_, err := Open(context.Background(), config.RedisConfig{URL: "http://cache:6379"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse url")
}

func TestOptionsKeepDriverDefaultsForZeroValues(t *testing.T) {
	opts, err := options(config.RedisConfig{
		URL:         "redis://cache:6379/2",
		PoolSize:    20,
		ReadTimeout: 250 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 250*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, 0, opts.MinIdleConns)
}
