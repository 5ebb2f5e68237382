package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/tester"
)

func testDocument(userID string) *model.Document {
	now := time.Now().UTC().Truncate(time.Second)
	doc := &model.Document{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          "Low Tide",
		CurrentSection: model.SectionArrival,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	doc.SetSenseTracker(model.NewSenseTracker())
	doc.SetIdentityTracker(model.IdentityTracker{})
	return doc
}

func TestGormStore_PutDocumentIdempotent(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	doc := testDocument(uuid.NewString())
	assert.NoError(t, s.PutDocument(ctx, doc))

	// A second put with changed fields overwrites in place.
	doc.Title = "High Tide"
	assert.NoError(t, s.PutDocument(ctx, doc))

	got, err := s.GetDocument(ctx, uuid.MustParse(doc.ID))
	assert.NoError(t, err)
	assert.Equal(t, "High Tide", got.Title)

	docs, err := s.ListDocuments(ctx, doc.UserID)
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestGormStore_PutPreservesTimestamps(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	stamp := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	doc := testDocument(uuid.NewString())
	doc.UpdatedAt = stamp
	assert.NoError(t, s.PutDocument(ctx, doc))

	got, err := s.GetDocument(ctx, uuid.MustParse(doc.ID))
	assert.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(stamp), "stored timestamp must match what the caller set")
}

func TestGormStore_GetDocumentNotFound(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())

	_, err := s.GetDocument(context.TODO(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_ListUnitsOrdered(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	doc := testDocument(uuid.NewString())
	assert.NoError(t, s.PutDocument(ctx, doc))

	for _, pos := range []int{2, 0, 1} {
		unit := &model.ContentUnit{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Position:   pos,
			Section:    model.SectionArrival,
			Status:     model.UnitDraft,
		}
		assert.NoError(t, s.PutUnit(ctx, unit))
	}

	units, err := s.ListUnits(ctx, uuid.MustParse(doc.ID))
	assert.NoError(t, err)
	assert.Len(t, units, 3)
	for i, unit := range units {
		assert.Equal(t, i, unit.Position)
	}
}

func TestGormStore_DeleteUnitKeepsSiblings(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	doc := testDocument(uuid.NewString())
	assert.NoError(t, s.PutDocument(ctx, doc))

	ids := make([]uuid.UUID, 0, 3)
	for pos := 0; pos < 3; pos++ {
		id := uuid.New()
		ids = append(ids, id)
		assert.NoError(t, s.PutUnit(ctx, &model.ContentUnit{
			ID:         id.String(),
			DocumentID: doc.ID,
			Position:   pos,
			Section:    model.SectionArrival,
			Status:     model.UnitDraft,
		}))
	}

	assert.NoError(t, s.DeleteUnit(ctx, ids[1]))

	units, err := s.ListUnits(ctx, uuid.MustParse(doc.ID))
	assert.NoError(t, err)
	assert.Len(t, units, 2)
	assert.Equal(t, 0, units[0].Position)
	assert.Equal(t, 2, units[1].Position)
}

func TestGormStore_AnnotationsByUnit(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	docID := uuid.NewString()
	unit1 := uuid.NewString()
	unit2 := uuid.NewString()

	for i, unitID := range []string{unit1, unit1, unit2} {
		assert.NoError(t, s.PutAnnotation(ctx, &model.Annotation{
			ID:         uuid.NewString(),
			DocumentID: docID,
			UnitID:     unitID,
			Text:       "quoted",
			Category:   model.CategoryPrimaryVoice,
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	all, err := s.ListAnnotations(ctx, uuid.MustParse(docID))
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	ofUnit, err := s.ListUnitAnnotations(ctx, uuid.MustParse(unit1))
	assert.NoError(t, err)
	assert.Len(t, ofUnit, 2)
}

func TestGormStore_Operations(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	base := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		ids = append(ids, id)
		assert.NoError(t, s.AppendOperation(ctx, &model.PendingOperation{
			ID:        id,
			Kind:      model.OpUpdate,
			Table:     "documents",
			TargetID:  uuid.NewString(),
			Payload:   datatypes.JSON("{}"),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	count, err := s.CountOperations(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	ops, err := s.ListOperations(ctx)
	assert.NoError(t, err)
	assert.Len(t, ops, 3)
	for i, op := range ops {
		assert.Equal(t, ids[i], op.ID)
	}

	assert.NoError(t, s.DeleteOperations(ctx, []string{ids[0], ids[2]}))
	assert.NoError(t, s.DeleteOperations(ctx, nil))

	ops, err = s.ListOperations(ctx)
	assert.NoError(t, err)
	assert.Len(t, ops, 1)
	assert.Equal(t, ids[1], ops[0].ID)
}

func TestGormStore_SnapshotsBeforeCutoff(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	docID := uuid.NewString()
	cutoff := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	stale := &model.DocumentSnapshot{
		ID:         uuid.NewString(),
		DocumentID: docID,
		Payload:    []byte("old"),
		Reason:     "pre-pull overwrite",
		CreatedAt:  cutoff.Add(-time.Hour),
	}
	recent := &model.DocumentSnapshot{
		ID:         uuid.NewString(),
		DocumentID: docID,
		Payload:    []byte("new"),
		Reason:     "pre-pull overwrite",
		CreatedAt:  cutoff.Add(time.Hour),
	}
	assert.NoError(t, s.CreateSnapshot(ctx, stale))
	assert.NoError(t, s.CreateSnapshot(ctx, recent))

	old, err := s.ListSnapshotsBefore(ctx, cutoff)
	assert.NoError(t, err)
	assert.Len(t, old, 1)
	assert.Equal(t, stale.ID, old[0].ID)

	assert.NoError(t, s.DeleteSnapshots(ctx, []string{stale.ID}))

	remaining, err := s.ListSnapshots(ctx, uuid.MustParse(docID))
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, recent.ID, remaining[0].ID)
}

func TestGormStore_GetSnapshot(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	_, err := s.GetSnapshot(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	snap := &model.DocumentSnapshot{
		ID:         uuid.NewString(),
		DocumentID: uuid.NewString(),
		Payload:    []byte("payload"),
		Reason:     "pre-pull overwrite",
		CreatedAt:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, s.CreateSnapshot(ctx, snap))

	got, err := s.GetSnapshot(ctx, uuid.MustParse(snap.ID))
	assert.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, []byte("payload"), got.Payload)
}

func TestGormStore_TransactionRollsBack(t *testing.T) {
	s := NewGormStore(tester.MemoryDB())
	ctx := context.TODO()

	doc := testDocument(uuid.NewString())
	err := s.Transaction(ctx, func(tx LocalStore) error {
		if err := tx.PutDocument(ctx, doc); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = s.GetDocument(ctx, uuid.MustParse(doc.ID))
	assert.ErrorIs(t, err, ErrNotFound)
}
