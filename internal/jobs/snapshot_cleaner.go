package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/draftloom/manuscript/internal/store"
)

// SnapshotCleaner trims pre-overwrite document snapshots once they are older
// than the retention window. Snapshots exist to recover edits discarded by a
// pull; after a while they are only dead weight in the local database.
type SnapshotCleaner struct {
	store     store.SnapshotStore
	retention time.Duration
	cron      string
}

func NewSnapshotCleaner(s store.SnapshotStore, retention time.Duration, schedule string) *SnapshotCleaner {
	return &SnapshotCleaner{
		store:     s,
		retention: retention,
		cron:      schedule,
	}
}

func (c *SnapshotCleaner) Schedule() string {
	return c.cron
}

func (c *SnapshotCleaner) Run() {
	ctx := context.Background()
	cutoff := time.Now().Add(-c.retention)

	stale, err := c.store.ListSnapshotsBefore(ctx, cutoff)
	if err != nil {
		logrus.Errorf("listing stale snapshots: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	ids := make([]string, 0, len(stale))
	for _, s := range stale {
		ids = append(ids, s.ID)
	}
	if err := c.store.DeleteSnapshots(ctx, ids); err != nil {
		logrus.Errorf("deleting stale snapshots: %v", err)
		return
	}

	logrus.Infof("removed %d snapshots older than %s", len(ids), c.retention)
}
