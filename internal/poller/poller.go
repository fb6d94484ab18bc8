// Package poller drives the update loop. The coordinator decides the delay
// before the next cycle, so the loop runs on a resettable timer rather than
// a fixed ticker and tightens automatically while a match is live.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"zalgiris-matches-service/internal/logging"
)

const defaultInterval = 10 * time.Minute

// CycleRunner executes one update cycle and returns the delay before the
// next one.
type CycleRunner interface {
	RunCycle(ctx context.Context) (time.Duration, error)
}

// Poller runs cycles until stopped.
type Poller struct {
	runner CycleRunner
	logger *slog.Logger
	now    func() time.Time

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the polling loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	NextInterval        time.Duration
}

// IsReady reports whether the loop has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller.
func New(runner CycleRunner, logger *slog.Logger) *Poller {
	return &Poller{
		runner: runner,
		logger: logger,
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
// The first cycle runs immediately to warm the snapshot on boot.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "poller started")

		interval := p.runOnce(ctx)
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				logging.Info(p.logger, "poller stopped")
				return
			case <-timer.C:
				timer.Reset(p.runOnce(ctx))
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
	})
	return nil
}

// runOnce executes a cycle and returns the delay until the next one.
func (p *Poller) runOnce(ctx context.Context) time.Duration {
	start := p.now()
	p.recordAttempt(start)

	interval, err := p.runner.RunCycle(ctx)
	if interval <= 0 {
		interval = defaultInterval
	}
	if err != nil {
		logging.Error(p.logger, "update cycle failed", err,
			logging.FieldDurationMS, p.now().Sub(start).Milliseconds())
		p.recordFailure(err, start, interval)
		return interval
	}

	p.recordSuccess(start, interval)
	logging.Info(p.logger, "update cycle completed",
		logging.FieldDurationMS, p.now().Sub(start).Milliseconds(),
		"next_interval", interval.String())
	return interval
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, interval time.Duration) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.NextInterval = interval
}

func (p *Poller) recordFailure(err error, at time.Time, interval time.Duration) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
	p.status.NextInterval = interval
}

// Status returns a snapshot of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
