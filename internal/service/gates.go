package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/store"
	"github.com/draftloom/manuscript/internal/validation"
)

func sectionIndex(s model.Section) int {
	for i, candidate := range model.Sections {
		if candidate == s {
			return i
		}
	}
	return -1
}

// SectionAdvanceAllowed reports whether the document may advance to the
// target section, along with the senses still missing when it may not.
// Only reaching the full-sensory-coverage section is gated.
func (m *Manuscript) SectionAdvanceAllowed(ctx context.Context, documentID uuid.UUID, target model.Section) (bool, []model.Sense, error) {
	if sectionIndex(target) < sectionIndex(model.SectionConvergence) {
		return true, nil, nil
	}

	units, err := m.store.ListUnits(ctx, documentID)
	if err != nil {
		return false, nil, err
	}
	if validation.SenseCoverageComplete(units) {
		return true, nil, nil
	}
	return false, validation.MissingSenses(units), nil
}

// AdvanceSection moves the document's current-section pointer, enforcing the
// section-advance gate.
func (m *Manuscript) AdvanceSection(ctx context.Context, documentID uuid.UUID, target model.Section) error {
	if sectionIndex(target) < 0 {
		return ErrUnknownSection
	}

	allowed, _, err := m.SectionAdvanceAllowed(ctx, documentID, target)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrSenseCoverageIncomplete
	}

	doc, err := m.store.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	doc.CurrentSection = target
	return m.UpdateDocument(ctx, doc)
}

// FinalReview recomputes the final-review gate over the whole document. The
// gate is a read; the document's unlocked flag is only persisted the first
// time the gate passes.
func (m *Manuscript) FinalReview(ctx context.Context, documentID uuid.UUID) (bool, error) {
	doc, err := m.store.GetDocument(ctx, documentID)
	if err != nil {
		return false, err
	}
	annotations, err := m.store.ListAnnotations(ctx, documentID)
	if err != nil {
		return false, err
	}

	ready := validation.FinalReviewReady(doc, annotations)
	if ready && !doc.FinalGate {
		doc.FinalGate = true
		doc.Touch(m.now())
		err = m.store.Transaction(ctx, func(tx store.LocalStore) error {
			if err := tx.PutDocument(ctx, doc); err != nil {
				return err
			}
			return m.queue.WithTx(tx).Enqueue(ctx, model.OpUpdate, doc.TableName(), doc.ID, payload(doc))
		})
		if err != nil {
			return ready, err
		}
	}
	return ready, nil
}
