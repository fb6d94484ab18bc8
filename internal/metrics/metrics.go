package metrics

import (
	"sync"
	"time"
)

type fetchStats struct {
	calls           int
	errors          int
	notModifiedHits int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about page fetches and
// poll cycles. It is intentionally simple so it can be swapped for a real
// backend later.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*fetchStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*fetchStats),
		otel:  otel,
	}
}

// RecordFetch increments counters for one page fetch and stores the last
// observed latency. A 304 revalidation counts as a call and a not-modified
// hit, not as an error.
func (r *Recorder) RecordFetch(target string, duration time.Duration, notModified bool, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(target)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	if notModified {
		stats.notModifiedHits++
	}
	if r.otel != nil {
		r.otel.recordFetch(target, duration, notModified, err)
	}
}

// FetchCalls returns the total fetches recorded for a target.
func (r *Recorder) FetchCalls(target string) int {
	return r.Snapshot(target).Calls
}

// FetchErrors returns the total failed fetches recorded for a target.
func (r *Recorder) FetchErrors(target string) int {
	return r.Snapshot(target).Errors
}

// NotModifiedHits returns the number of 304 revalidations seen for a target.
func (r *Recorder) NotModifiedHits(target string) int {
	return r.Snapshot(target).NotModifiedHits
}

// LastCallLatency returns the last recorded latency for a target.
func (r *Recorder) LastCallLatency(target string) time.Duration {
	return r.Snapshot(target).LastCallLatency
}

// Snapshot is a copy of the current stats for one fetch target.
type Snapshot struct {
	Calls           int
	Errors          int
	NotModifiedHits int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(target string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(target)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		NotModifiedHits: stats.notModifiedHits,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordCycle tracks update cycles and errors.
func (r *Recorder) RecordCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordCycle(duration, err)
}

func (r *Recorder) ensureStats(target string) *fetchStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[target]
	if !ok {
		stats = &fetchStats{}
		r.stats[target] = stats
	}
	return stats
}

func (r *Recorder) snapshot(target string) fetchStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[target]; ok && stats != nil {
		return *stats
	}
	return fetchStats{}
}
