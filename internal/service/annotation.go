package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/store"
	"github.com/draftloom/manuscript/internal/validation"
)

// AddAnnotation raises a quoted, speaker-tagged excerpt within a unit. Motif
// quotes are lexically classified on the way in; an active-tool usage sets
// the flagged bit and turns the owning unit red.
func (m *Manuscript) AddAnnotation(ctx context.Context, unitID uuid.UUID, text, speaker string, category model.AnnotationCategory) (*model.Annotation, error) {
	unit, err := m.store.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	doc, err := m.store.GetDocument(ctx, uuid.MustParse(unit.DocumentID))
	if err != nil {
		return nil, err
	}

	a := &model.Annotation{
		ID:         uuid.NewString(),
		DocumentID: unit.DocumentID,
		UnitID:     unit.ID,
		Text:       text,
		Speaker:    speaker,
		Category:   category,
		CreatedAt:  m.now(),
	}
	if category == model.CategoryMotif {
		a.Flagged = validation.FlagMention(text)
	}

	annotations, err := m.store.ListUnitAnnotations(ctx, unitID)
	if err != nil {
		return nil, err
	}
	unit.ValidationStat = validation.ValidateUnit(unit, append(annotations, a))
	unit.UpdatedAt = m.now()

	err = m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.PutAnnotation(ctx, a); err != nil {
			return err
		}
		q := m.queue.WithTx(tx)
		if err := q.Enqueue(ctx, model.OpCreate, a.TableName(), a.ID, payload(a)); err != nil {
			return err
		}
		if err := tx.PutUnit(ctx, unit); err != nil {
			return err
		}
		if err := q.Enqueue(ctx, model.OpUpdate, unit.TableName(), unit.ID, payload(unit)); err != nil {
			return err
		}
		return m.touchDocument(ctx, tx, doc)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// LinkAnnotation records that a different unit echoes the annotation. The
// final-review gate requires these links for secondary-voice annotations and
// for both halves of the dual-voice pair.
func (m *Manuscript) LinkAnnotation(ctx context.Context, annotationID, echoUnitID uuid.UUID) error {
	a, err := m.store.GetAnnotation(ctx, annotationID)
	if err != nil {
		return err
	}
	if a.UnitID == echoUnitID.String() {
		return ErrEchoSameUnit
	}
	if _, err := m.store.GetUnit(ctx, echoUnitID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEchoUnitNotFound
		}
		return err
	}
	doc, err := m.store.GetDocument(ctx, uuid.MustParse(a.DocumentID))
	if err != nil {
		return err
	}

	echo := echoUnitID.String()
	a.EchoUnitID = &echo

	return m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.PutAnnotation(ctx, a); err != nil {
			return err
		}
		if err := m.queue.WithTx(tx).Enqueue(ctx, model.OpUpdate, a.TableName(), a.ID, payload(a)); err != nil {
			return err
		}
		return m.touchDocument(ctx, tx, doc)
	})
}

// ListAnnotations reads every annotation of a document.
func (m *Manuscript) ListAnnotations(ctx context.Context, documentID uuid.UUID) ([]*model.Annotation, error) {
	return m.store.ListAnnotations(ctx, documentID)
}
