package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	objects map[string][]byte
	headers map[string]PutOptions
	failOn  string
}

func (m *memStore) Put(_ context.Context, key string, body []byte, opts PutOptions) (*UploadResult, error) {
	if m.failOn != "" && strings.HasSuffix(key, m.failOn) {
		return nil, errors.New("bucket unavailable")
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
		m.headers = map[string]PutOptions{}
	}
	m.objects[key] = body
	m.headers[key] = opts
	return &UploadResult{Key: key, Location: m.PublicURL(key)}, nil
}

func (m *memStore) Remove(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStore) PublicURL(key string) string {
	return joinPublicURL("https://cdn.example.com/league", key)
}

func TestJoinPublicURL(t *testing.T) {
	tests := map[string]struct {
		base, key, want string
	}{
		"no base":       {base: "", key: "a.json", want: ""},
		"no key":        {base: "https://x.dev", key: "", want: ""},
		"host only":     {base: "https://x.dev", key: "a/b.json", want: "https://x.dev/a/b.json"},
		"path no slash": {base: "https://x.dev/pub", key: "a.json", want: "https://x.dev/pub/a.json"},
		"both slashes":  {base: "https://x.dev/pub/", key: "/a.json", want: "https://x.dev/pub/a.json"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, joinPublicURL(tc.base, tc.key))
		})
	}
}

func springCupSnapshot() ScheduleSnapshot {
	return ScheduleSnapshot{
		Competition: &models.Competition{ID: 4, Name: "Spring Cup", Kind: models.KindCup},
		Fixtures:    []*models.Fixture{{ID: 1, CompetitionID: 4, Slot: 1, Participant1: models.PlayerRef(9), IsComplete: true}},
		GeneratedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestSnapshotArchiver_Archive(t *testing.T) {
	store := &memStore{}
	a := NewSnapshotArchiver(store, "")

	res, err := a.Archive(context.Background(), springCupSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "schedules/competition-4/20260301T123000Z.json", res.Key)
	assert.Equal(t, "https://cdn.example.com/league/schedules/competition-4/20260301T123000Z.json", res.Location)

	var snap ScheduleSnapshot
	require.NoError(t, json.Unmarshal(store.objects[res.Key], &snap))
	assert.Equal(t, "Spring Cup", snap.Competition.Name)
	require.Len(t, snap.Fixtures, 1)
	assert.True(t, snap.Fixtures[0].IsBye())

	latest := a.LatestKey(4)
	assert.Equal(t, store.objects[res.Key], store.objects[latest])
	assert.Equal(t, "no-cache", store.headers[latest].CacheControl)
	assert.Equal(t, "application/json", store.headers[res.Key].ContentType)
}

func TestSnapshotArchiver_rollsBackWhenLatestFails(t *testing.T) {
	store := &memStore{failOn: "latest.json"}
	a := NewSnapshotArchiver(store, "archive")

	_, err := a.Archive(context.Background(), springCupSnapshot())
	require.Error(t, err)
	assert.Empty(t, store.objects)
}

func TestSnapshotArchiver_requiresCompetition(t *testing.T) {
	_, err := NewSnapshotArchiver(&memStore{}, "").Archive(context.Background(), ScheduleSnapshot{})
	assert.Error(t, err)
}

func TestNewCloudflareR2Store_requiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Store(context.Background(), CloudflareR2UploaderConfig{BucketName: "b"})
	assert.ErrorIs(t, err, ErrR2NotConfigured)
	assert.ErrorContains(t, err, "account id")
	assert.False(t, CloudflareR2UploaderConfig{}.Enabled())
	assert.True(t, CloudflareR2UploaderConfig{BucketName: "b"}.Enabled())
}
