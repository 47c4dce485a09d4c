// Package broadcast delivers fixture and result notifications to the channels a
// competition has configured.
package broadcast

import (
	"context"
	"errors"
	"time"
)

type EventType string

const (
	EventFixturesGenerated EventType = "FIXTURES_GENERATED"
	EventFixtureCompleted  EventType = "FIXTURE_COMPLETED"
	EventResultReported    EventType = "RESULT_REPORTED"
)

type Event struct {
	Type          EventType   `json:"type"`
	Channel       string      `json:"channel"`
	CompetitionID int64       `json:"competition_id"`
	Payload       interface{} `json:"payload"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// Notifier is a delivery sink addressed by Event.Channel.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// MultiNotifier fans one event out to every sink and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
