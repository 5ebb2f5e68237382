package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/draftloom/manuscript/internal/model"
)

func TestDocumentRowMapping(t *testing.T) {
	doc := &model.Document{
		ID:             uuid.NewString(),
		UserID:         uuid.NewString(),
		Title:          "Low Tide",
		MaskIdentity:   true,
		PenName:        "Iris Vale",
		RealName:       "Mara Quinn",
		CurrentSection: model.SectionDeepening,
		WordCount:      420,
		FinalGate:      true,
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 1, 3, 3, 4, 5, 0, time.UTC),
	}
	tracker := model.NewSenseTracker()
	tracker.Record(model.SenseSight)
	doc.SetSenseTracker(tracker)
	doc.SetIdentityTracker(model.IdentityTracker{PrimaryUnits: 3})

	got := documentToRow(doc).toModel()
	assert.Equal(t, doc, got)
	assert.Equal(t, tracker, got.SenseTracker())
	assert.Equal(t, model.IdentityTracker{PrimaryUnits: 3}, got.IdentityTracker())
}

func TestContentUnitRowMapping(t *testing.T) {
	chapter := "tideline"
	unit := &model.ContentUnit{
		ID:             uuid.NewString(),
		DocumentID:     uuid.NewString(),
		Position:       4,
		Title:          "Opening",
		Section:        model.SectionConvergence,
		Chapter:        &chapter,
		Body:           "four words land here",
		Footnote:       "a dry aside",
		WordCount:      4,
		IdentityType:   model.IdentityPrimary,
		SensoryFocus:   model.SenseTouch,
		AwarenessLevel: model.AwarenessHighDrift,
		FootnoteTone:   model.ToneSharp,
		Status:         model.UnitRevised,
		ValidationStat: model.StatusGreen,
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 1, 3, 3, 4, 5, 0, time.UTC),
	}
	unit.SetChecklist(model.Checklist{
		{ID: "drift-tone", Label: "Mark the footnote tone as sharp", Checked: true, Category: "drift"},
	})

	row := unitToRow(unit)
	assert.Equal(t, unit.Position, row.OrderIndex)

	got := row.toModel()
	assert.Equal(t, unit, got)
}

func TestContentUnitRowMapping_MalformedChecklist(t *testing.T) {
	row := contentUnitRow{
		ID:         uuid.NewString(),
		DocumentID: uuid.NewString(),
		Section:    string(model.SectionArrival),
		Checklist:  "{broken",
	}

	got := row.toModel()
	assert.Empty(t, got.Checklist())
	assert.Equal(t, datatypes.JSON("[]"), got.Items)
}

func TestAnnotationRowMapping(t *testing.T) {
	echo := uuid.NewString()
	a := &model.Annotation{
		ID:         uuid.NewString(),
		DocumentID: uuid.NewString(),
		UnitID:     uuid.NewString(),
		Text:       "she kept wearing it",
		Speaker:    "Iris Vale",
		Category:   model.CategoryMotif,
		EchoUnitID: &echo,
		Flagged:    true,
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	got := annotationToRow(a).toModel()
	assert.Equal(t, a, got)
}
