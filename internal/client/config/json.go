package config

import (
	"encoding/json"
	"os"
	"time"

	"resourcehub/internal/flagx"
	"resourcehub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "300ms"
// or as integer nanoseconds. After parsing, set values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL         string         `json:"server_base_url"`
	CacheFile             string         `json:"cache_file"`
	SearchDebounce        timex.Duration `json:"search_debounce"`
	SearchLimit           int            `json:"search_limit"`
	ChunkSize             int64          `json:"chunk_size"`
	SimpleUploadThreshold int64          `json:"simple_upload_threshold"`
	UploadConcurrency     int            `json:"upload_concurrency"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file path
// comes from the -c or -config flags; when neither is given, nothing is
// loaded. Fields absent from the file keep their earlier values. Panics on
// read or unmarshal errors, since a named-but-broken config file is not
// something to silently ignore.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.CacheFile != "" {
		cfg.CacheFile = jc.CacheFile
	}
	if jc.SearchDebounce.Duration != 0 {
		cfg.SearchDebounce = time.Duration(jc.SearchDebounce.Duration)
	}
	if jc.SearchLimit != 0 {
		cfg.SearchLimit = jc.SearchLimit
	}
	if jc.ChunkSize != 0 {
		cfg.ChunkSize = jc.ChunkSize
	}
	if jc.SimpleUploadThreshold != 0 {
		cfg.SimpleUploadThreshold = jc.SimpleUploadThreshold
	}
	if jc.UploadConcurrency != 0 {
		cfg.UploadConcurrency = jc.UploadConcurrency
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
