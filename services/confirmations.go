package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingConfirmation is an outstanding request to replace a competition's schedule.
type PendingConfirmation struct {
	Token            uuid.UUID `json:"token"`
	CompetitionID    int64     `json:"competition_id"`
	ExistingFixtures int       `json:"existing_fixtures"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// confirmationRegistry keeps at most one pending confirmation per competition.
// Tokens are single use.
type confirmationRegistry struct {
	mu            sync.Mutex
	byToken       map[uuid.UUID]*PendingConfirmation
	byCompetition map[int64]uuid.UUID
}

func newConfirmationRegistry() *confirmationRegistry {
	return &confirmationRegistry{
		byToken:       make(map[uuid.UUID]*PendingConfirmation),
		byCompetition: make(map[int64]uuid.UUID),
	}
}

// put registers p and drops any earlier confirmation for the same competition.
// It reports whether one was replaced.
func (r *confirmationRegistry) put(p *PendingConfirmation) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, replaced := r.byCompetition[p.CompetitionID]
	if replaced {
		delete(r.byToken, old)
	}
	r.byToken[p.Token] = p
	r.byCompetition[p.CompetitionID] = p.Token
	return replaced
}

func (r *confirmationRegistry) take(token uuid.UUID) (*PendingConfirmation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byToken[token]
	if !ok {
		return nil, false
	}
	delete(r.byToken, token)
	if r.byCompetition[p.CompetitionID] == token {
		delete(r.byCompetition, p.CompetitionID)
	}
	return p, true
}

func (r *confirmationRegistry) sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, p := range r.byToken {
		if now.After(p.ExpiresAt) {
			delete(r.byToken, token)
			if r.byCompetition[p.CompetitionID] == token {
				delete(r.byCompetition, p.CompetitionID)
			}
			removed++
		}
	}
	return removed
}

func (r *confirmationRegistry) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byToken)
}
