package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftloom/manuscript/internal/model"
)

func unitsWithSenses(senses ...model.Sense) []*model.ContentUnit {
	units := make([]*model.ContentUnit, 0, len(senses))
	for i, s := range senses {
		units = append(units, &model.ContentUnit{
			ID:           string(rune('a' + i)),
			Section:      model.SectionArrival,
			SensoryFocus: s,
		})
	}
	return units
}

func TestSenseCoverageComplete(t *testing.T) {
	assert.False(t, SenseCoverageComplete(nil))
	assert.False(t, SenseCoverageComplete(unitsWithSenses(
		model.SenseSight, model.SenseSound, model.SenseTouch, model.SenseSmell,
	)))
	assert.True(t, SenseCoverageComplete(unitsWithSenses(
		model.SenseSight, model.SenseSound, model.SenseTouch, model.SenseSmell, model.SenseTaste,
	)))

	// Repeats of one sense do not stand in for the missing ones.
	assert.False(t, SenseCoverageComplete(unitsWithSenses(
		model.SenseSight, model.SenseSight, model.SenseSight, model.SenseSight, model.SenseSight,
	)))

	// Units without a focus contribute nothing.
	units := unitsWithSenses(model.SenseSight)
	units = append(units, &model.ContentUnit{ID: "x", Section: model.SectionArrival})
	assert.False(t, SenseCoverageComplete(units))
}

func TestMissingSenses(t *testing.T) {
	missing := MissingSenses(unitsWithSenses(model.SenseSound, model.SenseTaste))
	assert.Equal(t, []model.Sense{model.SenseSight, model.SenseTouch, model.SenseSmell}, missing)

	assert.Empty(t, MissingSenses(unitsWithSenses(
		model.SenseSight, model.SenseSound, model.SenseTouch, model.SenseSmell, model.SenseTaste,
	)))
}

func TestFinalReviewReady(t *testing.T) {
	doc := &model.Document{ID: "d1", PenName: "Iris Vale", RealName: "Mara Quinn"}
	echo := "u2"

	tests := []struct {
		name        string
		annotations []*model.Annotation
		want        bool
	}{
		{
			name: "no annotations passes",
			want: true,
		},
		{
			name: "unlinked secondary voice blocks",
			annotations: []*model.Annotation{
				{ID: "a1", UnitID: "u1", Category: model.CategorySecondaryVoice},
			},
			want: false,
		},
		{
			name: "linked secondary voice passes",
			annotations: []*model.Annotation{
				{ID: "a1", UnitID: "u1", Category: model.CategorySecondaryVoice, EchoUnitID: &echo},
			},
			want: true,
		},
		{
			name: "unlinked pen name speaker blocks",
			annotations: []*model.Annotation{
				{ID: "a1", UnitID: "u1", Category: model.CategoryPrimaryVoice, Speaker: "Iris Vale"},
			},
			want: false,
		},
		{
			name: "unlinked real name speaker blocks",
			annotations: []*model.Annotation{
				{ID: "a1", UnitID: "u1", Category: model.CategoryPrimaryVoice, Speaker: "Mara Quinn"},
			},
			want: false,
		},
		{
			name: "unlinked third party speaker passes",
			annotations: []*model.Annotation{
				{ID: "a1", UnitID: "u1", Category: model.CategoryPrimaryVoice, Speaker: "Someone Else"},
			},
			want: true,
		},
		{
			name: "both conditions must hold",
			annotations: []*model.Annotation{
				{ID: "a1", UnitID: "u1", Category: model.CategorySecondaryVoice, EchoUnitID: &echo},
				{ID: "a2", UnitID: "u1", Category: model.CategoryMotif, Speaker: "Iris Vale"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalReviewReady(doc, tt.annotations))
		})
	}
}
