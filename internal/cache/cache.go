// Package cache holds the reconciled set of match records between poll
// cycles. Merges are field-wise: a parse that failed to extract a field
// never erases a value an earlier cycle established.
package cache

import (
	"sync"
	"time"

	"zalgiris-matches-service/internal/domain"
)

// Cache keeps a thread-safe map of match records keyed by game ID.
type Cache struct {
	mu      sync.RWMutex
	records map[string]domain.MatchRecord
}

// New constructs an empty Cache.
func New() *Cache {
	return &Cache{
		records: make(map[string]domain.MatchRecord),
	}
}

// Load replaces the cache contents with previously persisted records.
func (c *Cache) Load(records map[string]domain.MatchRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make(map[string]domain.MatchRecord, len(records))
	for id, rec := range records {
		rec.GameID = id
		c.records[id] = rec
	}
}

// ApplySchedule merges a record parsed from a schedule-page card. The live
// flag is taken as-is: the schedule page is authoritative for whether a
// match is currently marked live.
func (c *Cache) ApplySchedule(rec domain.MatchRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, ok := c.records[rec.GameID]
	if !ok {
		c.records[rec.GameID] = rec
		return
	}
	merged := mergeFields(old, rec)
	merged.IsLive = rec.IsLive
	c.records[rec.GameID] = merged
}

// ApplyDetail merges a record parsed from a match detail page. Detail pages
// sometimes drop the live badge the schedule still shows, so the live flag
// only ever turns on here.
func (c *Cache) ApplyDetail(rec domain.MatchRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, ok := c.records[rec.GameID]
	if !ok {
		c.records[rec.GameID] = rec
		return
	}
	merged := mergeFields(old, rec)
	merged.IsLive = old.IsLive || rec.IsLive
	c.records[rec.GameID] = merged
}

// Get retrieves a record by game ID.
func (c *Cache) Get(id string) (domain.MatchRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	return rec, ok
}

// Records returns a copy of all cached records.
func (c *Cache) Records() []domain.MatchRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]domain.MatchRecord, 0, len(c.records))
	for _, rec := range c.records {
		result = append(result, rec)
	}
	return result
}

// Map returns a copy of the cache keyed by game ID, for persistence.
func (c *Cache) Map() map[string]domain.MatchRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]domain.MatchRecord, len(c.records))
	for id, rec := range c.records {
		result[id] = rec
	}
	return result
}

// Len reports the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Prune drops records whose start is strictly older than the retention
// horizon. Records without a parsed start are kept: without a date there is
// no evidence they are stale.
func (c *Cache) Prune(now time.Time, retention time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	horizon := now.Add(-retention)
	dropped := 0
	for id, rec := range c.records {
		if rec.Start != nil && rec.Start.Before(horizon) {
			delete(c.records, id)
			dropped++
		}
	}
	return dropped
}

// mergeFields overlays next onto old field by field. A nil field in next keeps
// the old value; scores in particular survive cycles where the score markup
// failed to parse. The live flag is left for the caller to decide.
func mergeFields(old, next domain.MatchRecord) domain.MatchRecord {
	out := old

	if next.Start != nil {
		out.Start = next.Start
	}
	if next.League != nil {
		out.League = next.League
	}
	if next.Home != nil {
		out.Home = next.Home
	}
	if next.Away != nil {
		out.Away = next.Away
	}
	if next.HomeLogo != nil {
		out.HomeLogo = next.HomeLogo
	}
	if next.AwayLogo != nil {
		out.AwayLogo = next.AwayLogo
	}
	if next.TV != nil {
		out.TV = next.TV
	}
	if next.Arena != nil {
		out.Arena = next.Arena
	}
	if next.ScoreHome != nil {
		out.ScoreHome = next.ScoreHome
	}
	if next.ScoreAway != nil {
		out.ScoreAway = next.ScoreAway
	}
	if next.InfoURL != "" {
		out.InfoURL = next.InfoURL
	}
	if next.TicketsURL != nil {
		out.TicketsURL = next.TicketsURL
	}
	return out
}
