package store

import (
	"context"

	"github.com/draftloom/manuscript/internal/model"
)

// RemoteStore is the shared remote copy the sync engine reconciles against.
// Any backend offering these four read shapes and upsert-by-ID writes
// satisfies the contract; the engine never sees the wire shape because
// implementations map rows to model types at this boundary.
type RemoteStore interface {
	// SelectDocuments returns every remote document owned by the user.
	SelectDocuments(ctx context.Context, userID string) ([]*model.Document, error)
	// SelectUnits returns the remote content units of a document.
	SelectUnits(ctx context.Context, documentID string) ([]*model.ContentUnit, error)
	// SelectAnnotations returns the remote annotations of a document.
	SelectAnnotations(ctx context.Context, documentID string) ([]*model.Annotation, error)
	// UpsertDocument writes a document keyed by ID (ON CONFLICT DO UPDATE).
	UpsertDocument(ctx context.Context, doc *model.Document) error
	// UpsertUnit writes a content unit keyed by ID.
	UpsertUnit(ctx context.Context, unit *model.ContentUnit) error
	// UpsertAnnotation writes an annotation keyed by ID.
	UpsertAnnotation(ctx context.Context, a *model.Annotation) error
}
