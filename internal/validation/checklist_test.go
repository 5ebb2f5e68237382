package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftloom/manuscript/internal/model"
)

func TestGenerateChecklist(t *testing.T) {
	tests := []struct {
		name string
		unit model.ContentUnit
		ids  []string
	}{
		{
			name: "bare unit gets only the section item",
			unit: model.ContentUnit{Section: model.SectionArrival},
			ids:  []string{"section-arrival"},
		},
		{
			name: "primary identity adds voice and insight items",
			unit: model.ContentUnit{
				Section:      model.SectionAwakening,
				IdentityType: model.IdentityPrimary,
			},
			ids: []string{"identity-voice", "identity-insight", "section-awakening"},
		},
		{
			name: "secondary identity adds the issue item",
			unit: model.ContentUnit{
				Section:      model.SectionDeepening,
				IdentityType: model.IdentitySecondary,
			},
			ids: []string{"issue-clear", "section-deepening"},
		},
		{
			name: "sensory focus adds the recovery item",
			unit: model.ContentUnit{
				Section:      model.SectionArrival,
				SensoryFocus: model.SenseSmell,
			},
			ids: []string{"sense-smell", "section-arrival"},
		},
		{
			name: "light drift adds the tone item",
			unit: model.ContentUnit{
				Section:        model.SectionRelease,
				AwarenessLevel: model.AwarenessLightDrift,
			},
			ids: []string{"drift-tone", "section-release"},
		},
		{
			name: "high drift adds the tone item",
			unit: model.ContentUnit{
				Section:        model.SectionRelease,
				AwarenessLevel: model.AwarenessHighDrift,
			},
			ids: []string{"drift-tone", "section-release"},
		},
		{
			name: "grounded awareness adds nothing",
			unit: model.ContentUnit{
				Section:        model.SectionArrival,
				AwarenessLevel: model.AwarenessGrounded,
			},
			ids: []string{"section-arrival"},
		},
		{
			name: "all fields set yields every item",
			unit: model.ContentUnit{
				Section:        model.SectionConvergence,
				IdentityType:   model.IdentityPrimary,
				SensoryFocus:   model.SenseTouch,
				AwarenessLevel: model.AwarenessHighDrift,
			},
			ids: []string{"identity-voice", "identity-insight", "sense-touch", "drift-tone", "section-convergence"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := GenerateChecklist(&tt.unit)
			assert.Equal(t, tt.ids, items.IDs())
			for _, item := range items {
				assert.False(t, item.Checked)
				assert.NotEmpty(t, item.Label)
				assert.NotEmpty(t, item.Category)
			}
		})
	}
}

func TestGenerateChecklist_Deterministic(t *testing.T) {
	unit := model.ContentUnit{
		Section:        model.SectionConvergence,
		IdentityType:   model.IdentitySecondary,
		SensoryFocus:   model.SenseSight,
		AwarenessLevel: model.AwarenessAware,
	}

	first := GenerateChecklist(&unit)
	second := GenerateChecklist(&unit)
	assert.Equal(t, first, second)
}

func TestCarryChecked(t *testing.T) {
	unit := model.ContentUnit{
		Section:      model.SectionArrival,
		IdentityType: model.IdentityPrimary,
		SensoryFocus: model.SenseSound,
	}

	old := GenerateChecklist(&unit)
	for i := range old {
		old[i].Checked = true
	}

	// The sense changed, so sense-sound disappears and sense-taste is fresh.
	unit.SensoryFocus = model.SenseTaste
	fresh := CarryChecked(GenerateChecklist(&unit), old)

	byID := make(map[string]model.ChecklistItem)
	for _, item := range fresh {
		byID[item.ID] = item
	}

	assert.True(t, byID["identity-voice"].Checked)
	assert.True(t, byID["identity-insight"].Checked)
	assert.True(t, byID["section-arrival"].Checked)
	assert.False(t, byID["sense-taste"].Checked)
	assert.NotContains(t, fresh.IDs(), "sense-sound")
}

func TestCarryChecked_UncheckedStaysUnchecked(t *testing.T) {
	unit := model.ContentUnit{Section: model.SectionArrival}

	old := GenerateChecklist(&unit)
	fresh := CarryChecked(GenerateChecklist(&unit), old)
	for _, item := range fresh {
		assert.False(t, item.Checked)
	}
}
