package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/tester"
)

func TestManuscript_AdvanceSection(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	svc := newTestService()
	ctx := context.TODO()

	doc, err := svc.CreateDocument(ctx, uuid.NewString(), "Low Tide", "", "", false)
	assert.NoError(t, err)
	docID := uuid.MustParse(doc.ID)

	// Sections before full sensory coverage are never gated.
	assert.NoError(t, svc.AdvanceSection(ctx, docID, model.SectionAwakening))
	assert.NoError(t, svc.AdvanceSection(ctx, docID, model.SectionDeepening))

	// Four senses are not enough for convergence.
	for _, s := range []model.Sense{model.SenseSight, model.SenseSound, model.SenseTouch, model.SenseSmell} {
		unit, err := svc.CreateUnit(ctx, docID, string(s), model.SectionDeepening)
		assert.NoError(t, err)
		unit.SensoryFocus = s
		assert.NoError(t, svc.UpdateUnit(ctx, unit))
	}

	assert.ErrorIs(t, svc.AdvanceSection(ctx, docID, model.SectionConvergence), ErrSenseCoverageIncomplete)

	allowed, missing, err := svc.SectionAdvanceAllowed(ctx, docID, model.SectionConvergence)
	assert.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, []model.Sense{model.SenseTaste}, missing)

	// The fifth sense opens the gate.
	unit, err := svc.CreateUnit(ctx, docID, "taste", model.SectionDeepening)
	assert.NoError(t, err)
	unit.SensoryFocus = model.SenseTaste
	assert.NoError(t, svc.UpdateUnit(ctx, unit))

	assert.NoError(t, svc.AdvanceSection(ctx, docID, model.SectionConvergence))

	got, err := svc.GetDocument(ctx, docID)
	assert.NoError(t, err)
	assert.Equal(t, model.SectionConvergence, got.CurrentSection)

	// Anything past convergence stays gated on the same coverage.
	assert.NoError(t, svc.AdvanceSection(ctx, docID, model.SectionRelease))

	assert.ErrorIs(t, svc.AdvanceSection(ctx, docID, model.Section("afterword")), ErrUnknownSection)
}
