package config

import "time"

// Config holds runtime settings for the ResourceHub CLI.
//
// Units: SearchDebounce and RequestTimeout are time.Durations; ChunkSize and
// SimpleUploadThreshold are bytes.
type Config struct {
	ServerBaseURL         string
	CacheFile             string
	SearchDebounce        time.Duration
	SearchLimit           int
	ChunkSize             int64
	SimpleUploadThreshold int64
	UploadConcurrency     int
	RequestTimeout        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000/api"
	c.CacheFile = "resourcehub.db"
	c.SearchDebounce = 300 * time.Millisecond
	c.SearchLimit = 10
	c.ChunkSize = 5 << 20
	c.SimpleUploadThreshold = 10 << 20
	c.UploadConcurrency = 3
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
