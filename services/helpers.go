package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/league-system/broadcast"
	"github.com/Dosada05/league-system/models"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

func validateIDs(ids ...int64) error {
	for _, id := range ids {
		if id <= 0 {
			return ErrInvalidID
		}
	}
	return nil
}

// publish forwards an event to the competition's channel for role. Competitions
// without that channel are skipped. Delivery failures are logged, never returned:
// the store is already committed.
func publish(ctx context.Context, n broadcast.Notifier, logger *slog.Logger, comp *models.Competition, role models.ChannelRole, typ broadcast.EventType, payload interface{}, at time.Time) {
	if n == nil {
		return
	}
	channel := derefString(comp.Channel(role))
	if channel == "" {
		return
	}
	ev := broadcast.Event{
		Type:          typ,
		Channel:       channel,
		CompetitionID: comp.ID,
		Payload:       payload,
		OccurredAt:    at,
	}
	if err := n.Notify(ctx, ev); err != nil {
		logger.Warn("event delivery failed",
			slog.String("event", string(typ)),
			slog.Int64("competition_id", comp.ID),
			slog.String("channel", channel),
			slog.Any("error", err))
	}
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
