package domain

import "time"

// MatchRecord is the canonical per-match shape reconciled from schedule and
// detail pages. Fields the page may not yield are pointers; nil means the
// parsers have not seen a value yet.
type MatchRecord struct {
	GameID     string     `json:"game_id"`
	Start      *time.Time `json:"start,omitempty"`
	League     *string    `json:"league,omitempty"`
	Home       *string    `json:"home,omitempty"`
	Away       *string    `json:"away,omitempty"`
	HomeLogo   *string    `json:"home_logo,omitempty"`
	AwayLogo   *string    `json:"away_logo,omitempty"`
	TV         *string    `json:"tv,omitempty"`
	Arena      *string    `json:"arena,omitempty"`
	ScoreHome  *int       `json:"score_home,omitempty"`
	ScoreAway  *int       `json:"score_away,omitempty"`
	InfoURL    string     `json:"info_url"`
	TicketsURL *string    `json:"tickets_url,omitempty"`
	IsLive     bool       `json:"is_live"`
}

// HasScore reports whether both sides of the score are known.
func (m MatchRecord) HasScore() bool {
	return m.ScoreHome != nil && m.ScoreAway != nil
}

// StartKey returns the RFC3339 sort key for the record, or the empty string
// when the start time was never parsed.
func (m MatchRecord) StartKey() string {
	if m.Start == nil {
		return ""
	}
	return m.Start.Format(time.RFC3339)
}

// ParseDebug carries diagnostics about one schedule parse, exposed on the
// snapshot so a misbehaving upstream page can be diagnosed from the API.
type ParseDebug struct {
	ParseMode    string `json:"parse_mode"`
	LinksFound   int    `json:"links_found"`
	MatchesFound int    `json:"matches_found"`
	HasSchedule  bool   `json:"has_schedule_items"`
	HasUUID      bool   `json:"has_uuid"`
	HTMLHead     string `json:"html_head"`
}

// Snapshot is the derived view produced by one update cycle. It is rebuilt
// every cycle and never persisted itself.
type Snapshot struct {
	TeamPath              string        `json:"team_path"`
	SourceURL             string        `json:"source_url"`
	FetchedAt             time.Time     `json:"fetched_at"`
	Live                  *MatchRecord  `json:"live,omitempty"`
	Upcoming              []MatchRecord `json:"upcoming"`
	Finished              []MatchRecord `json:"finished"`
	LastFinishedWithScore *MatchRecord  `json:"last_finished_with_score,omitempty"`
	Debug                 ParseDebug    `json:"debug"`
}

// String returns a pointer to s, for building records in call sites and tests.
func String(s string) *string { return &s }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }
