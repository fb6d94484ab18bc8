package config

import "time"

// Environment variable names.
const (
	envPort             = "PORT"
	envBaseURL          = "SCHEDULE_BASE_URL"
	envTeamPath         = "SCHEDULE_TEAM_PATH"
	envPollInterval     = "POLL_INTERVAL"
	envLivePollInterval = "LIVE_POLL_INTERVAL"
	envRetentionDays    = "STATE_RETENTION_DAYS"
	envStatePath        = "STATE_PATH"
)

// Defaults and bounds. Poll bounds mirror what the upstream site tolerates;
// the live interval is deliberately tight to catch score changes.
const (
	defaultPort     = "8080"
	defaultBaseURL  = "https://zalgiris.lt"
	defaultTeamPath = "/schedule"

	defaultPollInterval = 10 * time.Minute
	minPollInterval     = 60 * time.Second
	maxPollInterval     = 3600 * time.Second

	defaultLivePollInterval = 20 * time.Second
	minLivePollInterval     = 5 * time.Second
	maxLivePollInterval     = 120 * time.Second

	defaultRetentionDays = 60
	minRetentionDays     = 1
	maxRetentionDays     = 365

	defaultStatePath = "data/state.json"
)
