package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// stubRunner returns scripted intervals and errors, notifying on each cycle.
type stubRunner struct {
	mu        sync.Mutex
	intervals []time.Duration
	errs      []error
	calls     int
	notify    chan struct{}
}

func (r *stubRunner) RunCycle(context.Context) (time.Duration, error) {
	r.mu.Lock()
	i := r.calls
	r.calls++
	r.mu.Unlock()

	if r.notify != nil {
		select {
		case r.notify <- struct{}{}:
		default:
		}
	}

	interval := time.Hour
	if i < len(r.intervals) {
		interval = r.intervals[i]
	} else if len(r.intervals) > 0 {
		interval = r.intervals[len(r.intervals)-1]
	}
	var err error
	if i < len(r.errs) {
		err = r.errs[i]
	}
	return interval, err
}

func (r *stubRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestPollerRunsInitialCycleOnStart(t *testing.T) {
	runner := &stubRunner{intervals: []time.Duration{time.Hour}, notify: make(chan struct{}, 1)}
	p := New(runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitFor(t, func() bool { return p.Status().IsReady() }, "ready after a successful cycle")
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestPollerUsesReturnedInterval(t *testing.T) {
	// A short first interval means a second cycle fires quickly.
	runner := &stubRunner{
		intervals: []time.Duration{5 * time.Millisecond, time.Hour},
		notify:    make(chan struct{}, 4),
	}
	p := New(runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitFor(t, func() bool { return p.Status().NextInterval == time.Hour },
		"the second cycle's interval")
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	runner := &stubRunner{
		intervals: []time.Duration{2 * time.Millisecond},
		notify:    make(chan struct{}, 1),
	}
	p := New(runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	select {
	case <-runner.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for the initial cycle")
	}

	cancel()
	_ = p.Stop(context.Background())

	time.Sleep(20 * time.Millisecond)
	after := runner.callCount()
	time.Sleep(20 * time.Millisecond)
	if runner.callCount() != after {
		t.Fatal("expected no cycles after stop")
	}
}

func TestPollerStatusTracksFailures(t *testing.T) {
	boom := errors.New("boom")
	runner := &stubRunner{
		intervals: []time.Duration{time.Hour},
		errs:      []error{boom},
		notify:    make(chan struct{}, 1),
	}
	p := New(runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitFor(t, func() bool { return p.Status().ConsecutiveFailures == 1 }, "the failed cycle")

	status := p.Status()
	if status.LastError != "boom" {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.IsReady() {
		t.Fatal("expected not ready without a success")
	}
}

func TestStatusReadiness(t *testing.T) {
	var s Status
	if s.IsReady() {
		t.Fatal("zero status must not be ready")
	}
	s.LastSuccess = time.Now()
	if !s.IsReady() {
		t.Fatal("expected ready after a success")
	}
	s.ConsecutiveFailures = 3
	if s.IsReady() {
		t.Fatal("expected not ready after repeated failures")
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&stubRunner{}, nil)
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	runner := &stubRunner{intervals: []time.Duration{time.Hour}, notify: make(chan struct{}, 2)}
	p := New(runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	p.Start(ctx)

	select {
	case <-runner.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for the initial cycle")
	}
	time.Sleep(20 * time.Millisecond)
	if got := runner.callCount(); got != 1 {
		t.Fatalf("expected a single warm-up cycle, got %d", got)
	}
}
