// Package config loads runtime configuration for the ResourceHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables with the RESOURCEHUB_ prefix (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API, e.g. http://localhost:8000/api
//	-f string   path to the local cache file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "300ms" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8000/api",
//	  "cache_file": "resourcehub.db",
//	  "search_debounce": "300ms",
//	  "search_limit": 10,
//	  "chunk_size": 5242880,
//	  "simple_upload_threshold": 10485760,
//	  "upload_concurrency": 3,
//	  "request_timeout": "30s"
//	}
//
// Environment variables
//
// Each field can also be set via RESOURCEHUB_* variables, e.g.
// RESOURCEHUB_SERVER_BASE_URL or RESOURCEHUB_SEARCH_DEBOUNCE=250ms.
package config
