package config

import (
	"time"
)

const (
	// DefaultBranch mirrors the provider's historical primary branch
	// name; an empty search.branch switches to per-project metadata.
	DefaultBranch = "master"

	DefaultBaseURL = "https://gitlab.com"

	DefaultJobs = 3
)

// DefaultConfig returns the configuration used when no config file is
// present. The retry bounds are the provider call policy: 5 attempts
// with exponential backoff between 4 and 10 seconds.
func DefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Level: "info",
			Path:  "groupgrep.log",
		},
		HttpClient: HttpClient{
			Debug:            false,
			RetryAttempts:    5,
			RetryWaitTime:    Duration(4 * time.Second),
			RetryMaxWaitTime: Duration(10 * time.Second),
			Timeout:          Duration(30 * time.Second),
			TlsClientConfig:  TlsClientConfig{Verify: true},
		},
		Search: Search{
			BaseURL: DefaultBaseURL,
			Branch:  DefaultBranch,
			Jobs:    DefaultJobs,
		},
	}
}
