package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/store"
	"github.com/draftloom/manuscript/internal/tester"
)

func TestSnapshotCleaner_Run(t *testing.T) {
	s := store.NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	docID := uuid.NewString()
	stale := &model.DocumentSnapshot{
		ID:         uuid.NewString(),
		DocumentID: docID,
		Payload:    []byte("old"),
		Reason:     "pre-pull overwrite",
		CreatedAt:  time.Now().Add(-48 * time.Hour),
	}
	fresh := &model.DocumentSnapshot{
		ID:         uuid.NewString(),
		DocumentID: docID,
		Payload:    []byte("new"),
		Reason:     "pre-pull overwrite",
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	assert.NoError(t, s.CreateSnapshot(ctx, stale))
	assert.NoError(t, s.CreateSnapshot(ctx, fresh))

	cleaner := NewSnapshotCleaner(s, 24*time.Hour, "0 3 * * *")
	assert.Equal(t, "0 3 * * *", cleaner.Schedule())

	cleaner.Run()

	remaining, err := s.ListSnapshots(ctx, uuid.MustParse(docID))
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)

	// Nothing left to trim; a second run is a no-op.
	cleaner.Run()

	remaining, err = s.ListSnapshots(ctx, uuid.MustParse(docID))
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
}
