// Package teststubs provides shared fakes for coordinator, poller, and
// server tests.
package teststubs

import (
	"context"
	"sync"
	"time"

	"zalgiris-matches-service/internal/domain"
	"zalgiris-matches-service/internal/fetch"
)

// StubFetcher serves canned pages by URL and records every request.
type StubFetcher struct {
	mu    sync.Mutex
	Pages map[string]string
	Errs  map[string]error
	calls []string
}

// Fetch returns the configured page or error for url.
func (f *StubFetcher) Fetch(_ context.Context, url string) (fetch.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if err, ok := f.Errs[url]; ok && err != nil {
		return fetch.Result{}, err
	}
	return fetch.Result{Body: f.Pages[url]}, nil
}

// Calls returns a copy of the requested URLs in order.
func (f *StubFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times url was requested.
func (f *StubFetcher) CallCount(url string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == url {
			n++
		}
	}
	return n
}

// StubStateStore keeps persisted records in memory.
type StubStateStore struct {
	mu      sync.Mutex
	Records map[string]domain.MatchRecord
	SaveErr error
	LoadErr error
	saves   int
}

// Save stores a copy of records.
func (s *StubStateStore) Save(records map[string]domain.MatchRecord, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Records = make(map[string]domain.MatchRecord, len(records))
	for id, rec := range records {
		s.Records[id] = rec
	}
	return nil
}

// Load returns the stored records.
func (s *StubStateStore) Load() (map[string]domain.MatchRecord, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoadErr != nil {
		return nil, 0, s.LoadErr
	}
	out := make(map[string]domain.MatchRecord, len(s.Records))
	for id, rec := range s.Records {
		out[id] = rec
	}
	return out, 0, nil
}

// Saves reports how many times Save was called.
func (s *StubStateStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
