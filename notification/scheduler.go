package notification

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"teamop.dk/bosted/logging"
)

type entry struct {
	trigger Trigger
	payload Payload
}

// DailyScheduler is an in-process Scheduler. A ticker loop delivers every
// trigger that passed since the previous tick through the Notifier.
type DailyScheduler struct {
	notifier Notifier
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	entries  map[string]entry
	lastTick time.Time

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewDailyScheduler(notifier Notifier) *DailyScheduler {
	return &DailyScheduler{
		notifier: notifier,
		interval: 1 * time.Minute,
		now:      time.Now,
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}
}

func (s *DailyScheduler) Schedule(ctx context.Context, id string, trigger Trigger, payload Payload) error {
	if err := trigger.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[id] = entry{trigger: trigger, payload: payload}
	s.mu.Unlock()

	logging.FromContext(ctx).Debug("notification scheduled",
		"id", id,
		"at", trigger.Next(s.now()).Format(time.DateTime),
	)
	return nil
}

func (s *DailyScheduler) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *DailyScheduler) CancelPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.entries {
		if strings.HasPrefix(id, prefix) {
			delete(s.entries, id)
		}
	}
	return nil
}

// Pending lists the scheduled ids in sorted order.
func (s *DailyScheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Start begins the scheduler loop. Triggers that passed before Start are not
// delivered.
func (s *DailyScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.lastTick = s.now()
	s.mu.Unlock()

	logging.FromContext(ctx).Info("starting notification scheduler", "interval", s.interval)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.tick(ctx, s.now())
			case <-s.stopChan:
				logging.FromContext(ctx).Info("notification scheduler stopped")
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the loop. It is safe to call more than once.
func (s *DailyScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// tick delivers every entry whose last firing falls in (lastTick, now].
func (s *DailyScheduler) tick(ctx context.Context, now time.Time) {
	s.mu.Lock()
	since := s.lastTick
	s.lastTick = now
	due := make(map[string]Payload)
	for id, e := range s.entries {
		fired := e.trigger.Last(now)
		if fired.After(since) && !fired.After(now) {
			due[id] = e.payload
		}
	}
	s.mu.Unlock()

	logger := logging.FromContext(ctx)
	for id, payload := range due {
		if err := s.notifier.Notify(ctx, payload); err != nil {
			logger.Warn("notification delivery failed", "id", id, "error", err)
			continue
		}
		logger.Debug("notification delivered", "id", id)
	}
}
