package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigClampsFeedPageSize(t *testing.T) {
	t.Setenv("PLATFORM_FEED_PAGE_SIZE", "50")
	cfg := DefaultConfig()
	assert.Equal(t, DefaultFeedPageSize, cfg.FeedPageSize,
		"out-of-bounds page size falls back to the default")

	t.Setenv("PLATFORM_FEED_PAGE_SIZE", "0")
	cfg = DefaultConfig()
	assert.Equal(t, DefaultFeedPageSize, cfg.FeedPageSize)

	t.Setenv("PLATFORM_FEED_PAGE_SIZE", "15")
	cfg = DefaultConfig()
	assert.Equal(t, 15, cfg.FeedPageSize)
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("PLATFORM_TEST_BOOL", "")
	assert.True(t, GetEnvBool("PLATFORM_TEST_BOOL", true))
	assert.False(t, GetEnvBool("PLATFORM_TEST_BOOL", false))

	t.Setenv("PLATFORM_TEST_BOOL", "true")
	assert.True(t, GetEnvBool("PLATFORM_TEST_BOOL", false))

	t.Setenv("PLATFORM_TEST_BOOL", "0")
	assert.False(t, GetEnvBool("PLATFORM_TEST_BOOL", true))

	t.Setenv("PLATFORM_TEST_BOOL", "not-a-bool")
	assert.True(t, GetEnvBool("PLATFORM_TEST_BOOL", true))
}

func TestLogJSONFromEnv(t *testing.T) {
	t.Setenv("PLATFORM_LOG_JSON", "true")
	assert.True(t, DefaultConfig().LogJSON)

	t.Setenv("PLATFORM_LOG_JSON", "false")
	assert.False(t, DefaultConfig().LogJSON)
}
