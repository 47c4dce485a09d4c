package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/league-system/broadcast"
	"github.com/Dosada05/league-system/repositories/mockrepo"
	"github.com/itbasis/go-clock"
)

type testDeps struct {
	tx           *mockrepo.Transactor
	teams        *mockrepo.TeamRepository
	players      *mockrepo.PlayerRepository
	comps        *mockrepo.CompetitionRepository
	participants *mockrepo.ParticipantRepository
	fixtures     *mockrepo.FixtureRepository
	matches      *mockrepo.MatchRepository
	notifier     *recordingNotifier
	clock        *clock.Mock
}

func newTestDeps() *testDeps {
	return &testDeps{
		tx:           new(mockrepo.Transactor),
		teams:        new(mockrepo.TeamRepository),
		players:      new(mockrepo.PlayerRepository),
		comps:        new(mockrepo.CompetitionRepository),
		participants: new(mockrepo.ParticipantRepository),
		fixtures:     new(mockrepo.FixtureRepository),
		matches:      new(mockrepo.MatchRepository),
		notifier:     &recordingNotifier{},
		clock:        clock.NewMock(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (n *recordingNotifier) Notify(_ context.Context, ev broadcast.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *recordingNotifier) Events() []broadcast.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]broadcast.Event, len(n.events))
	copy(out, n.events)
	return out
}

func strPtr(s string) *string { return &s }
