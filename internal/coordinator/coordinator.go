// Package coordinator runs the update cycle: fetch the schedule page, parse
// it into match records, reconcile them into the cache, classify, fetch the
// detail pages worth refreshing, and publish a snapshot.
package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"zalgiris-matches-service/internal/cache"
	"zalgiris-matches-service/internal/classify"
	"zalgiris-matches-service/internal/config"
	"zalgiris-matches-service/internal/domain"
	"zalgiris-matches-service/internal/fetch"
	"zalgiris-matches-service/internal/logging"
	"zalgiris-matches-service/internal/metrics"
	"zalgiris-matches-service/internal/parse"
)

const (
	// detailCandidates is how many of the most recent finished matches are
	// considered for a detail refresh each cycle.
	detailCandidates = 3
	// detailFetchCap bounds concurrent detail fetches per cycle.
	detailFetchCap = 2
	// detailRecentWindow is how long after tip-off a scoreless match still
	// earns a detail fetch.
	detailRecentWindow = 24 * time.Hour
)

// Fetcher retrieves a page as text with conditional-request caching.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Result, error)
}

// StateStore persists the cache between restarts.
type StateStore interface {
	Save(records map[string]domain.MatchRecord, now time.Time) error
	Load() (map[string]domain.MatchRecord, int, error)
}

// Coordinator owns the cache and produces snapshots. Settings are re-read at
// the start of every cycle so interval and retention changes apply live.
type Coordinator struct {
	fetcher  Fetcher
	store    StateStore
	cache    *cache.Cache
	settings func() config.Config
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time

	mu       sync.RWMutex
	snapshot *domain.Snapshot
}

// Options bundles the coordinator dependencies. Fetcher and Settings are
// required; the rest are optional.
type Options struct {
	Fetcher  Fetcher
	Store    StateStore
	Settings func() config.Config
	Logger   *slog.Logger
	Recorder *metrics.Recorder
	Now      func() time.Time
}

// New constructs a Coordinator and seeds the cache from the state store.
func New(opts Options) *Coordinator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	c := &Coordinator{
		fetcher:  opts.Fetcher,
		store:    opts.Store,
		cache:    cache.New(),
		settings: opts.Settings,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		now:      now,
	}
	c.restore()
	return c
}

func (c *Coordinator) restore() {
	if c.store == nil {
		return
	}
	records, skipped, err := c.store.Load()
	if err != nil {
		logging.Warn(c.logger, "state restore failed, starting empty", "error", err)
		return
	}
	c.cache.Load(records)
	logging.Info(c.logger, "state restored",
		logging.FieldCount, len(records), "skipped", skipped)
}

// Snapshot returns the latest published snapshot, if any cycle has completed.
func (c *Coordinator) Snapshot() (domain.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return domain.Snapshot{}, false
	}
	return *c.snapshot, true
}

// Match looks up one record by game ID.
func (c *Coordinator) Match(id string) (domain.MatchRecord, bool) {
	return c.cache.Get(id)
}

// RunCycle executes one full update cycle and returns the interval until the
// next one. Only a schedule fetch or setup failure fails the cycle; detail
// fetch failures are logged and skipped.
func (c *Coordinator) RunCycle(ctx context.Context) (time.Duration, error) {
	cfg := c.settings()
	started := c.now()

	interval, err := c.runCycle(ctx, cfg)
	if c.recorder != nil {
		c.recorder.RecordCycle(c.now().Sub(started), err)
	}
	return interval, err
}

func (c *Coordinator) runCycle(ctx context.Context, cfg config.Config) (time.Duration, error) {
	scheduleURL := cfg.BaseURL + cfg.TeamPath

	parser, err := parse.NewParser(cfg.BaseURL)
	if err != nil {
		return cfg.PollInterval, err
	}
	parser.WithClock(c.now)

	body, err := c.timedFetch(ctx, metrics.TargetSchedule, scheduleURL)
	if err != nil {
		logging.Error(c.logger, "schedule fetch failed", err, logging.FieldURL, scheduleURL)
		return cfg.PollInterval, err
	}

	ids := parse.GameIDs(body)
	debug := parse.Diagnostics(body, ids)
	if len(ids) == 0 {
		logging.Warn(c.logger, "no matches found on schedule page",
			logging.FieldURL, scheduleURL, "html_head", debug.HTMLHead)
	}

	for _, id := range ids {
		window := parse.Window(body, id)
		c.cache.ApplySchedule(parser.Match(id, window))
	}

	now := c.now()
	buckets := classify.Partition(c.cache.Records(), now)

	targets := selectDetailTargets(buckets, now)
	if len(targets) > 0 {
		c.fetchDetails(ctx, parser, targets)
		buckets = classify.Partition(c.cache.Records(), now)
	}

	if pruned := c.cache.Prune(now, time.Duration(cfg.RetentionDays)*24*time.Hour); pruned > 0 {
		logging.Info(c.logger, "pruned stale matches", logging.FieldCount, pruned)
	}

	if c.store != nil {
		if err := c.store.Save(c.cache.Map(), now); err != nil {
			logging.Warn(c.logger, "state persist failed", "error", err)
		}
	}

	c.publish(domain.Snapshot{
		TeamPath:              cfg.TeamPath,
		SourceURL:             scheduleURL,
		FetchedAt:             now,
		Live:                  buckets.Live,
		Upcoming:              buckets.Upcoming,
		Finished:              buckets.Finished,
		LastFinishedWithScore: buckets.LastFinishedWithScore,
		Debug:                 debug,
	})

	if buckets.Live != nil {
		return cfg.LivePollInterval, nil
	}
	return cfg.PollInterval, nil
}

func (c *Coordinator) publish(snap domain.Snapshot) {
	if snap.Upcoming == nil {
		snap.Upcoming = []domain.MatchRecord{}
	}
	if snap.Finished == nil {
		snap.Finished = []domain.MatchRecord{}
	}
	c.mu.Lock()
	c.snapshot = &snap
	c.mu.Unlock()
}

func (c *Coordinator) timedFetch(ctx context.Context, target, url string) (string, error) {
	started := c.now()
	res, err := c.fetcher.Fetch(ctx, url)
	if c.recorder != nil {
		c.recorder.RecordFetch(target, c.now().Sub(started), res.NotModified, err)
	}
	return res.Body, err
}

// selectDetailTargets picks which matches deserve a detail-page fetch this
// cycle: a live match alone, otherwise recently finished matches still
// missing a score.
func selectDetailTargets(b classify.Buckets, now time.Time) []domain.MatchRecord {
	if b.Live != nil {
		return []domain.MatchRecord{*b.Live}
	}

	var targets []domain.MatchRecord
	for i, rec := range b.Finished {
		if i >= detailCandidates || len(targets) >= detailFetchCap {
			break
		}
		if rec.HasScore() || rec.Start == nil {
			continue
		}
		if now.Sub(*rec.Start) <= detailRecentWindow {
			targets = append(targets, rec)
		}
	}
	return targets
}

type detailResult struct {
	record domain.MatchRecord
	ok     bool
}

// fetchDetails retrieves the detail pages concurrently. A failed fetch only
// skips its own match.
func (c *Coordinator) fetchDetails(ctx context.Context, parser *parse.Parser, targets []domain.MatchRecord) {
	p := pool.NewWithResults[detailResult]()
	for _, target := range targets {
		target := target
		p.Go(func() detailResult {
			body, err := c.timedFetch(ctx, metrics.TargetDetail, target.InfoURL)
			if err != nil {
				logging.Warn(c.logger, "detail fetch failed",
					logging.FieldGameID, target.GameID,
					logging.FieldURL, target.InfoURL,
					"error", err)
				return detailResult{}
			}
			window := parse.DetailWindow(body)
			return detailResult{record: parser.Match(target.GameID, window), ok: true}
		})
	}
	for _, res := range p.Wait() {
		if res.ok {
			c.cache.ApplyDetail(res.record)
		}
	}
}
