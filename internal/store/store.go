package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/draftloom/manuscript/internal/model"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// LocalStore is the durable per-device storage for the document tree, its
// auxiliary records, and the operation queue. It is the single source of
// truth for callers; every operation completes before the caller considers
// an action finished. A single Put of one record is atomic.
type LocalStore interface {
	DocumentStore
	UnitStore
	AnnotationStore
	QueueStore
	SnapshotStore
	Transaction(ctx context.Context, f func(tx LocalStore) error) error
	Migrate() error
}

type DocumentStore interface {
	// PutDocument upserts a document by ID; repeated calls are idempotent.
	PutDocument(ctx context.Context, doc *model.Document) error
	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error)
	// ListDocuments retrieves every document owned by a user.
	ListDocuments(ctx context.Context, userID string) ([]*model.Document, error)
	// DeleteDocument removes a document by ID.
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type UnitStore interface {
	// PutUnit upserts a content unit by ID.
	PutUnit(ctx context.Context, unit *model.ContentUnit) error
	// GetUnit retrieves a content unit by ID.
	GetUnit(ctx context.Context, id uuid.UUID) (*model.ContentUnit, error)
	// ListUnits retrieves the children of a document ordered by position.
	ListUnits(ctx context.Context, documentID uuid.UUID) ([]*model.ContentUnit, error)
	// DeleteUnit removes a content unit by ID. Siblings are not renumbered.
	DeleteUnit(ctx context.Context, id uuid.UUID) error
	// DeleteUnitsByDocument removes every unit of a document.
	DeleteUnitsByDocument(ctx context.Context, documentID uuid.UUID) error
}

type AnnotationStore interface {
	// PutAnnotation upserts an annotation by ID.
	PutAnnotation(ctx context.Context, a *model.Annotation) error
	// GetAnnotation retrieves an annotation by ID.
	GetAnnotation(ctx context.Context, id uuid.UUID) (*model.Annotation, error)
	// ListAnnotations retrieves every annotation of a document.
	ListAnnotations(ctx context.Context, documentID uuid.UUID) ([]*model.Annotation, error)
	// ListUnitAnnotations retrieves the annotations raised within one unit.
	ListUnitAnnotations(ctx context.Context, unitID uuid.UUID) ([]*model.Annotation, error)
	// DeleteAnnotation removes an annotation by ID.
	DeleteAnnotation(ctx context.Context, id uuid.UUID) error
	// DeleteAnnotationsByDocument removes every annotation of a document.
	DeleteAnnotationsByDocument(ctx context.Context, documentID uuid.UUID) error
}

// QueueStore is the append-only log of not-yet-acknowledged mutations,
// independent of the current-state tables.
type QueueStore interface {
	// AppendOperation appends an operation to the queue.
	AppendOperation(ctx context.Context, op *model.PendingOperation) error
	// ListOperations returns outstanding operations in insertion order.
	ListOperations(ctx context.Context) ([]*model.PendingOperation, error)
	// CountOperations reports outstanding work for UI indicators.
	CountOperations(ctx context.Context) (int64, error)
	// DeleteOperations removes confirmed entries by ID.
	DeleteOperations(ctx context.Context, ids []string) error
}

type SnapshotStore interface {
	// CreateSnapshot stores a pre-overwrite aggregate snapshot.
	CreateSnapshot(ctx context.Context, s *model.DocumentSnapshot) error
	// GetSnapshot retrieves a snapshot by ID.
	GetSnapshot(ctx context.Context, id uuid.UUID) (*model.DocumentSnapshot, error)
	// ListSnapshots retrieves the snapshots of a document, newest first.
	ListSnapshots(ctx context.Context, documentID uuid.UUID) ([]*model.DocumentSnapshot, error)
	// ListSnapshotsBefore retrieves snapshots created before the cutoff.
	ListSnapshotsBefore(ctx context.Context, cutoff time.Time) ([]*model.DocumentSnapshot, error)
	// DeleteSnapshots removes snapshots by ID.
	DeleteSnapshots(ctx context.Context, ids []string) error
}
