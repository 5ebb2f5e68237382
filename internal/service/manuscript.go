// Package service owns the document model: every UI-facing mutation goes
// through it, and each mutation performs its local-store write and its
// operation-queue append as one transactional unit. Validation runs
// synchronously inside the mutation path; nothing here touches the network.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/draftloom/manuscript/internal/compress"
	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/queue"
	"github.com/draftloom/manuscript/internal/store"
)

// Manuscript is the explicit state container over the local store.
type Manuscript struct {
	store   store.LocalStore
	queue   *queue.Queue
	encoder compress.Compress
	now     func() time.Time
}

func New(s store.LocalStore, q *queue.Queue) *Manuscript {
	return &Manuscript{
		store:   s,
		queue:   q,
		encoder: compress.NewGZip(),
		now:     time.Now,
	}
}

func payload(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.Errorf("encoding operation payload: %v", err)
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}

// CreateDocument starts a new manuscript for a user.
func (m *Manuscript) CreateDocument(ctx context.Context, userID, title, penName, realName string, mask bool) (*model.Document, error) {
	now := m.now()
	doc := &model.Document{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          title,
		MaskIdentity:   mask,
		PenName:        penName,
		RealName:       realName,
		CurrentSection: model.SectionArrival,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	doc.SetSenseTracker(model.NewSenseTracker())
	doc.SetIdentityTracker(model.IdentityTracker{})

	err := m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.PutDocument(ctx, doc); err != nil {
			return err
		}
		return m.queue.WithTx(tx).Enqueue(ctx, model.OpCreate, doc.TableName(), doc.ID, payload(doc))
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument reads a document.
func (m *Manuscript) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	return m.store.GetDocument(ctx, id)
}

// ListDocuments reads every document of a user.
func (m *Manuscript) ListDocuments(ctx context.Context, userID string) ([]*model.Document, error) {
	return m.store.ListDocuments(ctx, userID)
}

// UpdateDocument is the single update path for document attributes. It
// stamps a new UpdatedAt; callers never set the timestamp themselves.
func (m *Manuscript) UpdateDocument(ctx context.Context, doc *model.Document) error {
	doc.Touch(m.now())
	return m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.PutDocument(ctx, doc); err != nil {
			return err
		}
		return m.queue.WithTx(tx).Enqueue(ctx, model.OpUpdate, doc.TableName(), doc.ID, payload(doc))
	})
}

// DeleteDocument removes a document and its children.
func (m *Manuscript) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.DeleteAnnotationsByDocument(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteUnitsByDocument(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteDocument(ctx, id); err != nil {
			return err
		}
		return m.queue.WithTx(tx).Enqueue(ctx, model.OpDelete, model.Document{}.TableName(), id.String(), nil)
	})
}

// QueueDepth reports outstanding sync work for UI indicators.
func (m *Manuscript) QueueDepth(ctx context.Context) (int64, error) {
	return m.queue.Count(ctx)
}

// touchDocument re-derives the document's aggregate state (word count,
// timestamps) inside a mutation transaction and records the update intent.
func (m *Manuscript) touchDocument(ctx context.Context, tx store.LocalStore, doc *model.Document) error {
	docID := uuid.MustParse(doc.ID)
	units, err := tx.ListUnits(ctx, docID)
	if err != nil {
		return err
	}

	total := 0
	for _, unit := range units {
		total += unit.WordCount
	}
	doc.WordCount = total
	doc.Touch(m.now())

	if err := tx.PutDocument(ctx, doc); err != nil {
		return err
	}
	return m.queue.WithTx(tx).Enqueue(ctx, model.OpUpdate, doc.TableName(), doc.ID, payload(doc))
}
