package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/Dosada05/league-system/models"
)

// ScheduleSnapshot is the archived form of a generated schedule.
type ScheduleSnapshot struct {
	Competition *models.Competition `json:"competition"`
	Fixtures    []*models.Fixture   `json:"fixtures"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// SnapshotArchiver keeps every generated schedule under
// <prefix>/competition-<id>/<timestamp>.json and mirrors the newest one to latest.json.
type SnapshotArchiver struct {
	store  ObjectStore
	prefix string
}

func NewSnapshotArchiver(store ObjectStore, prefix string) *SnapshotArchiver {
	if prefix == "" {
		prefix = "schedules"
	}
	return &SnapshotArchiver{store: store, prefix: prefix}
}

func (a *SnapshotArchiver) dir(competitionID int64) string {
	return path.Join(a.prefix, fmt.Sprintf("competition-%d", competitionID))
}

func (a *SnapshotArchiver) SnapshotKey(competitionID int64, at time.Time) string {
	return path.Join(a.dir(competitionID), at.UTC().Format("20060102T150405Z")+".json")
}

func (a *SnapshotArchiver) LatestKey(competitionID int64) string {
	return path.Join(a.dir(competitionID), "latest.json")
}

// Archive uploads the schedule and points latest.json at it. If the pointer cannot be
// written the timestamped copy is removed again so the two never disagree.
func (a *SnapshotArchiver) Archive(ctx context.Context, snap ScheduleSnapshot) (*UploadResult, error) {
	if snap.Competition == nil {
		return nil, errors.New("schedule snapshot without competition")
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule snapshot: %w", err)
	}

	key := a.SnapshotKey(snap.Competition.ID, snap.GeneratedAt)
	res, err := a.store.Put(ctx, key, body, PutOptions{ContentType: "application/json"})
	if err != nil {
		return nil, err
	}

	_, err = a.store.Put(ctx, a.LatestKey(snap.Competition.ID), body, PutOptions{
		ContentType:  "application/json",
		CacheControl: "no-cache",
	})
	if err != nil {
		if rmErr := a.store.Remove(ctx, key); rmErr != nil {
			return nil, errors.Join(err, rmErr)
		}
		return nil, err
	}
	return res, nil
}
