package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/store"
)

// Queue records intent to synchronize, decoupled from current-state tables
// so the sync engine can replay intent even if current state has changed
// further. It imposes no ordering beyond insertion order and does not
// deduplicate: repeated edits enqueue repeated operations, all harmless to
// replay because the remote write is an upsert.
type Queue struct {
	store store.QueueStore
	now   func() time.Time
}

func New(s store.QueueStore) *Queue {
	return &Queue{
		store: s,
		now:   time.Now,
	}
}

// Enqueue appends an operation with a fresh identifier and the current
// timestamp.
func (q *Queue) Enqueue(ctx context.Context, kind model.OperationKind, table, targetID string, payload datatypes.JSON) error {
	op := &model.PendingOperation{
		ID:        uuid.NewString(),
		Kind:      kind,
		Table:     table,
		TargetID:  targetID,
		Payload:   payload,
		CreatedAt: q.now(),
	}
	if err := q.store.AppendOperation(ctx, op); err != nil {
		return fmt.Errorf("enqueueing %s %s: %w", kind, table, err)
	}
	return nil
}

// Count reports the number of outstanding operations.
func (q *Queue) Count(ctx context.Context) (int64, error) {
	return q.store.CountOperations(ctx)
}

// List returns outstanding operations in enqueue order.
func (q *Queue) List(ctx context.Context) ([]*model.PendingOperation, error) {
	return q.store.ListOperations(ctx)
}

// Clear removes confirmed entries.
func (q *Queue) Clear(ctx context.Context, ids []string) error {
	return q.store.DeleteOperations(ctx, ids)
}

// WithTx returns a queue bound to a transactional store, so an enqueue can
// share the transaction of the mutation it records.
func (q *Queue) WithTx(tx store.QueueStore) *Queue {
	return &Queue{store: tx, now: q.now}
}
