package config

import (
	"strings"
	"time"
)

// Config holds runtime configuration for the service. The coordinator calls
// Load again at the start of every update cycle, so interval and retention
// changes take effect without a restart.
type Config struct {
	Port             string
	BaseURL          string
	TeamPath         string
	PollInterval     time.Duration
	LivePollInterval time.Duration
	RetentionDays    int
	StatePath        string
	Metrics          MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults
// and clamped bounds.
func Load() Config {
	return Config{
		Port:             envOrDefault(envPort, defaultPort),
		BaseURL:          strings.TrimRight(envOrDefault(envBaseURL, defaultBaseURL), "/"),
		TeamPath:         normalizeTeamPath(envOrDefault(envTeamPath, defaultTeamPath)),
		PollInterval:     clampDuration(durationEnvOrDefault(envPollInterval, defaultPollInterval), minPollInterval, maxPollInterval),
		LivePollInterval: clampDuration(durationEnvOrDefault(envLivePollInterval, defaultLivePollInterval), minLivePollInterval, maxLivePollInterval),
		RetentionDays:    clampInt(intEnvOrDefault(envRetentionDays, defaultRetentionDays), minRetentionDays, maxRetentionDays),
		StatePath:        envOrDefault(envStatePath, defaultStatePath),
		Metrics:          loadMetrics(),
	}
}

func normalizeTeamPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultTeamPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
