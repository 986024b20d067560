package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors Config with pointer fields so only variables that are
// actually set overlay earlier sources.
type envConfig struct {
	ServerBaseURL         *string        `envconfig:"SERVER_BASE_URL"`
	CacheFile             *string        `envconfig:"CACHE_FILE"`
	SearchDebounce        *time.Duration `envconfig:"SEARCH_DEBOUNCE"`
	SearchLimit           *int           `envconfig:"SEARCH_LIMIT"`
	ChunkSize             *int64         `envconfig:"CHUNK_SIZE"`
	SimpleUploadThreshold *int64         `envconfig:"SIMPLE_UPLOAD_THRESHOLD"`
	UploadConcurrency     *int           `envconfig:"UPLOAD_CONCURRENCY"`
	RequestTimeout        *time.Duration `envconfig:"REQUEST_TIMEOUT"`
}

// parseEnv overlays cfg with RESOURCEHUB_* environment variables. Panics on
// malformed values, matching the JSON loader.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process("resourcehub", &ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != nil {
		cfg.ServerBaseURL = *ec.ServerBaseURL
	}
	if ec.CacheFile != nil {
		cfg.CacheFile = *ec.CacheFile
	}
	if ec.SearchDebounce != nil {
		cfg.SearchDebounce = *ec.SearchDebounce
	}
	if ec.SearchLimit != nil {
		cfg.SearchLimit = *ec.SearchLimit
	}
	if ec.ChunkSize != nil {
		cfg.ChunkSize = *ec.ChunkSize
	}
	if ec.SimpleUploadThreshold != nil {
		cfg.SimpleUploadThreshold = *ec.SimpleUploadThreshold
	}
	if ec.UploadConcurrency != nil {
		cfg.UploadConcurrency = *ec.UploadConcurrency
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
}
