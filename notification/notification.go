package notification

import (
	"context"
	"fmt"
	"time"

	"teamop.dk/bosted/logging"
)

// Trigger fires once a day at Hour:Minute local time.
type Trigger struct {
	Hour   int
	Minute int
}

func (t Trigger) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("invalid trigger %02d:%02d", t.Hour, t.Minute)
	}
	return nil
}

// Next returns the first firing at or after from.
func (t Trigger) Next(from time.Time) time.Time {
	next := t.on(from)
	if next.Before(from) {
		next = t.on(from.AddDate(0, 0, 1))
	}
	return next
}

// Last returns the latest firing at or before now.
func (t Trigger) Last(now time.Time) time.Time {
	last := t.on(now)
	if last.After(now) {
		last = t.on(now.AddDate(0, 0, -1))
	}
	return last
}

func (t Trigger) on(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Notifier delivers a payload somewhere a person will see it.
type Notifier interface {
	Notify(ctx context.Context, payload Payload) error
}

// Scheduler keeps recurring notifications keyed by id. Scheduling an id that
// already exists replaces it.
type Scheduler interface {
	Schedule(ctx context.Context, id string, trigger Trigger, payload Payload) error
	Cancel(ctx context.Context, id string) error
	CancelPrefix(ctx context.Context, prefix string) error
}

// LogNotifier writes payloads to the logger on ctx. It is the fallback when
// no chat integration is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, payload Payload) error {
	logging.FromContext(ctx).Info("notification", "title", payload.Title, "body", payload.Body)
	return nil
}
