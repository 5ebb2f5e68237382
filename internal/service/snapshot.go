package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/store"
)

// ListSnapshots returns the pre-overwrite recovery snapshots of a document,
// newest first.
func (m *Manuscript) ListSnapshots(ctx context.Context, documentID uuid.UUID) ([]*model.DocumentSnapshot, error) {
	return m.store.ListSnapshots(ctx, documentID)
}

// RestoreSnapshot replays a recovery snapshot over the live aggregate,
// wholesale. The restored state counts as a fresh local edit: the document
// gets a new update stamp and every restored record is queued, so the next
// sync pushes the recovered version back out.
func (m *Manuscript) RestoreSnapshot(ctx context.Context, snapshotID uuid.UUID) (*model.Document, error) {
	snap, err := m.store.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	data, err := m.encoder.Decode(snap.Payload)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", snap.ID, err)
	}
	var archive model.DocumentArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", snap.ID, err)
	}
	if archive.Document == nil {
		return nil, fmt.Errorf("snapshot %s holds no document", snap.ID)
	}

	doc := archive.Document
	now := m.now()
	doc.Touch(now)
	docID := uuid.MustParse(doc.ID)

	err = m.store.Transaction(ctx, func(tx store.LocalStore) error {
		q := m.queue.WithTx(tx)
		if err := tx.PutDocument(ctx, doc); err != nil {
			return err
		}
		if err := q.Enqueue(ctx, model.OpUpdate, doc.TableName(), doc.ID, payload(doc)); err != nil {
			return err
		}

		if err := tx.DeleteUnitsByDocument(ctx, docID); err != nil {
			return err
		}
		for _, unit := range archive.Units {
			unit.UpdatedAt = now
			if err := tx.PutUnit(ctx, unit); err != nil {
				return err
			}
			if err := q.Enqueue(ctx, model.OpUpdate, unit.TableName(), unit.ID, payload(unit)); err != nil {
				return err
			}
		}

		if err := tx.DeleteAnnotationsByDocument(ctx, docID); err != nil {
			return err
		}
		for _, a := range archive.Annotations {
			if err := tx.PutAnnotation(ctx, a); err != nil {
				return err
			}
			if err := q.Enqueue(ctx, model.OpUpdate, a.TableName(), a.ID, payload(a)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
