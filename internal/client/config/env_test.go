package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("set variables overlay, unset keep earlier values", func(t *testing.T) {
		t.Setenv("RESOURCEHUB_SERVER_BASE_URL", "http://env.example/api")
		t.Setenv("RESOURCEHUB_SEARCH_DEBOUNCE", "150ms")
		t.Setenv("RESOURCEHUB_UPLOAD_CONCURRENCY", "5")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://env.example/api", cfg.ServerBaseURL)
		assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
		assert.Equal(t, 5, cfg.UploadConcurrency)
		assert.Equal(t, 10, cfg.SearchLimit, "unset variable keeps the default")
	})

	t.Run("malformed value panics", func(t *testing.T) {
		t.Setenv("RESOURCEHUB_SEARCH_LIMIT", "lots")

		cfg := &Config{}
		cfg.LoadDefaults()
		require.Panics(t, func() { parseEnv(cfg) })
	})
}
