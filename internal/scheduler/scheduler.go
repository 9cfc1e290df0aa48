// Package scheduler hosts the expiry sweeper (spec §4.12): a single
// background worker that periodically destroys key material for records
// past their deadline. It survives transient I/O failures by logging and
// continuing, and exposes a synchronous Sweep for the admin force-expire
// trigger.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vaultchat-backend/internal/storage"
	"vaultchat-backend/pkg/metrics"
)

// Scheduler runs the expiry sweep on a fixed interval.
type Scheduler struct {
	submissions *storage.SubmissionRepo
	chat        *storage.ChatRepo
	metrics     *metrics.Metrics
	log         *zap.Logger
	interval    time.Duration

	stop chan struct{}
	done chan struct{}
}

// New returns a Scheduler. Start must be called once to launch its
// background goroutine.
func New(submissions *storage.SubmissionRepo, chat *storage.ChatRepo, m *metrics.Metrics, log *zap.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{
		submissions: submissions,
		chat:        chat,
		metrics:     m,
		log:         log,
		interval:    interval,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the sweeper's daemon goroutine. It must be called
// exactly once per process lifetime.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

// Stop signals the background goroutine to exit and waits for it.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Error("expiry sweep failed, will retry next tick", zap.Error(err))
			}
		}
	}
}

func isExpired(expiry string) bool {
	t, err := time.Parse(time.RFC3339, expiry)
	if err != nil {
		return false
	}
	return !time.Now().UTC().Before(t)
}

// Sweep runs one sweep cycle across submissions and chat messages,
// returning the total number of records whose key material was destroyed.
// It is idempotent: records already cleared are left untouched.
func (s *Scheduler) Sweep(ctx context.Context) (int, error) {
	destroyedSubs, err := s.submissions.SweepExpired(isExpired)
	if err != nil {
		return 0, err
	}

	destroyedChat, err := s.chat.SweepExpired(isExpired)
	if err != nil {
		return destroyedSubs, err
	}

	total := destroyedSubs + destroyedChat
	s.metrics.RecordSweep(total)
	if total > 0 {
		s.log.Info("expiry sweep destroyed records",
			zap.Int("submissions", destroyedSubs),
			zap.Int("chat_messages", destroyedChat),
		)
	}
	return total, nil
}
