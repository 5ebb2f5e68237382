package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/store"
	"github.com/draftloom/manuscript/internal/validation"
)

// CreateUnit appends a new scene to the given section of a document.
func (m *Manuscript) CreateUnit(ctx context.Context, documentID uuid.UUID, title string, section model.Section) (*model.ContentUnit, error) {
	doc, err := m.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	units, err := m.store.ListUnits(ctx, documentID)
	if err != nil {
		return nil, err
	}
	position := 0
	for _, u := range units {
		if u.Section == section && u.Position >= position {
			position = u.Position + 1
		}
	}

	now := m.now()
	unit := &model.ContentUnit{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Position:   position,
		Title:      title,
		Section:    section,
		Status:     model.UnitDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	unit.SetChecklist(validation.GenerateChecklist(unit))
	unit.ValidationStat = validation.ValidateUnit(unit, nil)

	err = m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.PutUnit(ctx, unit); err != nil {
			return err
		}
		if err := m.queue.WithTx(tx).Enqueue(ctx, model.OpCreate, unit.TableName(), unit.ID, payload(unit)); err != nil {
			return err
		}
		return m.touchDocument(ctx, tx, doc)
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// GetUnit reads a content unit.
func (m *Manuscript) GetUnit(ctx context.Context, id uuid.UUID) (*model.ContentUnit, error) {
	return m.store.GetUnit(ctx, id)
}

// ListUnits reads the units of a document ordered by position.
func (m *Manuscript) ListUnits(ctx context.Context, documentID uuid.UUID) ([]*model.ContentUnit, error) {
	return m.store.ListUnits(ctx, documentID)
}

// UpdateUnit is the single mutation path for a unit's text and
// classification fields. It re-derives everything downstream of the edit:
// word count, the checklist (carrying checked state where the rule set is
// unchanged), the validation status, and the document's trackers and
// timestamp.
func (m *Manuscript) UpdateUnit(ctx context.Context, unit *model.ContentUnit) error {
	unitID, err := uuid.Parse(unit.ID)
	if err != nil {
		return err
	}
	old, err := m.store.GetUnit(ctx, unitID)
	if err != nil {
		return err
	}
	doc, err := m.store.GetDocument(ctx, uuid.MustParse(unit.DocumentID))
	if err != nil {
		return err
	}

	unit.WordCount = model.CountWords(unit.Body)
	unit.SetChecklist(validation.CarryChecked(validation.GenerateChecklist(unit), old.Checklist()))

	annotations, err := m.store.ListUnitAnnotations(ctx, unitID)
	if err != nil {
		return err
	}
	unit.ValidationStat = validation.ValidateUnit(unit, annotations)
	unit.UpdatedAt = m.now()

	// The document-level trackers accumulate on classification changes.
	if unit.SensoryFocus != "" && unit.SensoryFocus != old.SensoryFocus {
		tracker := doc.SenseTracker()
		tracker.Record(unit.SensoryFocus)
		doc.SetSenseTracker(tracker)
	}
	if unit.IdentityType != "" && old.IdentityType == "" {
		tracker := doc.IdentityTracker()
		tracker.Record(unit.IdentityType)
		doc.SetIdentityTracker(tracker)
	}

	return m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.PutUnit(ctx, unit); err != nil {
			return err
		}
		if err := m.queue.WithTx(tx).Enqueue(ctx, model.OpUpdate, unit.TableName(), unit.ID, payload(unit)); err != nil {
			return err
		}
		return m.touchDocument(ctx, tx, doc)
	})
}

// SetChecklistItem toggles the user-driven checked state of one item and
// reclassifies the unit.
func (m *Manuscript) SetChecklistItem(ctx context.Context, unitID uuid.UUID, itemID string, checked bool) (*model.ContentUnit, error) {
	unit, err := m.store.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	items := unit.Checklist()
	found := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Checked = checked
			found = true
			break
		}
	}
	if !found {
		return nil, ErrChecklistItemNotFound
	}
	unit.SetChecklist(items)

	annotations, err := m.store.ListUnitAnnotations(ctx, unitID)
	if err != nil {
		return nil, err
	}
	unit.ValidationStat = validation.ValidateUnit(unit, annotations)
	unit.UpdatedAt = m.now()

	doc, err := m.store.GetDocument(ctx, uuid.MustParse(unit.DocumentID))
	if err != nil {
		return nil, err
	}

	err = m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.PutUnit(ctx, unit); err != nil {
			return err
		}
		if err := m.queue.WithTx(tx).Enqueue(ctx, model.OpUpdate, unit.TableName(), unit.ID, payload(unit)); err != nil {
			return err
		}
		return m.touchDocument(ctx, tx, doc)
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// ReorderUnits assigns new positions to the units of one section. The order
// must name every unit of the section exactly once; this is the only path
// that renumbers siblings.
func (m *Manuscript) ReorderUnits(ctx context.Context, documentID uuid.UUID, section model.Section, orderedIDs []string) error {
	doc, err := m.store.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	units, err := m.store.ListUnits(ctx, documentID)
	if err != nil {
		return err
	}

	inSection := make(map[string]*model.ContentUnit)
	for _, u := range units {
		if u.Section == section {
			inSection[u.ID] = u
		}
	}
	if len(orderedIDs) != len(inSection) {
		return ErrReorderMismatch
	}

	ordered := make([]*model.ContentUnit, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		unit, ok := inSection[id]
		if !ok {
			return ErrReorderMismatch
		}
		delete(inSection, id)
		ordered = append(ordered, unit)
	}

	now := m.now()
	return m.store.Transaction(ctx, func(tx store.LocalStore) error {
		q := m.queue.WithTx(tx)
		for i, unit := range ordered {
			if unit.Position == i {
				continue
			}
			unit.Position = i
			unit.UpdatedAt = now
			if err := tx.PutUnit(ctx, unit); err != nil {
				return err
			}
			if err := q.Enqueue(ctx, model.OpUpdate, unit.TableName(), unit.ID, payload(unit)); err != nil {
				return err
			}
		}
		return m.touchDocument(ctx, tx, doc)
	})
}

// DeleteUnit removes one scene. Siblings keep their positions; only an
// explicit reorder renumbers them.
func (m *Manuscript) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	unit, err := m.store.GetUnit(ctx, id)
	if err != nil {
		return err
	}
	doc, err := m.store.GetDocument(ctx, uuid.MustParse(unit.DocumentID))
	if err != nil {
		return err
	}

	return m.store.Transaction(ctx, func(tx store.LocalStore) error {
		if err := tx.DeleteUnit(ctx, id); err != nil {
			return err
		}
		if err := m.queue.WithTx(tx).Enqueue(ctx, model.OpDelete, unit.TableName(), unit.ID, nil); err != nil {
			return err
		}
		return m.touchDocument(ctx, tx, doc)
	})
}
