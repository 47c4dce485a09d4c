package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
)

const streamName = "LEAGUE_EVENTS"

// NATSPublisher writes events to a JetStream subject tree: <subject>.<channel>.
type NATSPublisher struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
}

func NewNATSPublisher(natsURL, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err = js.StreamInfo(streamName); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject + ".>"},
			Storage:  nats.FileStorage,
		})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create stream: %w", err)
		}
	}

	return &NATSPublisher{nc: nc, js: js, subject: subject}, nil
}

// SubjectFor maps a delivery channel to a NATS subject token.
func SubjectFor(base, channel string) string {
	token := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t':
			return '_'
		}
		return r
	}, channel)
	if token == "" {
		token = "_"
	}
	return base + "." + token
}

func (p *NATSPublisher) Notify(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := p.js.Publish(SubjectFor(p.subject, ev.Channel), data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish to NATS: %w", err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.nc.Close()
}
