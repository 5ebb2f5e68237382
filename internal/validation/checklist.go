// Package validation derives a unit's checklist, its traffic-light status,
// and the document-wide gates from structured metadata. Every function here
// is pure and total: no I/O, no errors, defined output for every input.
package validation

import "github.com/draftloom/manuscript/internal/model"

// Checklist item categories.
const (
	CategoryIdentity = "identity"
	CategorySense    = "sense"
	CategoryDrift    = "drift"
	CategorySection  = "section"
)

// senseItems maps each sense to its recovery-moment checklist label.
var senseItems = map[model.Sense]string{
	model.SenseSight: "Describe the moment sight comes back",
	model.SenseSound: "Describe the moment sound comes back",
	model.SenseTouch: "Describe the moment touch comes back",
	model.SenseSmell: "Describe the moment smell comes back",
	model.SenseTaste: "Describe the moment taste comes back",
}

// sectionItems holds the section-specific item appended to every checklist,
// one per narrative phase.
var sectionItems = map[model.Section]string{
	model.SectionArrival:     "Establish where and when the scene lands",
	model.SectionAwakening:   "Show the first thing that changes",
	model.SectionDeepening:   "Let the scene sit with what it costs",
	model.SectionConvergence: "Bring the gathered senses into one moment",
	model.SectionRelease:     "Leave something behind on purpose",
}

// GenerateChecklist derives a unit's required follow-ups from its own
// classification fields and section tag. It is deterministic and never marks
// an item checked; checked state is user driven and preserved across
// regeneration by item-ID continuity.
func GenerateChecklist(unit *model.ContentUnit) model.Checklist {
	items := model.Checklist{}

	switch unit.IdentityType {
	case model.IdentityPrimary:
		items = append(items,
			model.ChecklistItem{
				ID:       "identity-voice",
				Label:    "Keep the voice consistent with the primary identity",
				Category: CategoryIdentity,
			},
			model.ChecklistItem{
				ID:       "identity-insight",
				Label:    "Tag the core insight of this scene",
				Category: CategoryIdentity,
			},
		)
	case model.IdentitySecondary:
		items = append(items, model.ChecklistItem{
			ID:       "issue-clear",
			Label:    "Represent the secondary issue clearly",
			Category: CategoryIdentity,
		})
	}

	if label, ok := senseItems[unit.SensoryFocus]; ok {
		items = append(items, model.ChecklistItem{
			ID:       "sense-" + string(unit.SensoryFocus),
			Label:    label,
			Category: CategorySense,
		})
	}

	// Enforced as a hard rule in classification too; the item is the
	// reminder, the red status is the enforcement.
	if unit.AwarenessLevel.IsDrift() {
		items = append(items, model.ChecklistItem{
			ID:       "drift-tone",
			Label:    "Mark the footnote tone as sharp",
			Category: CategoryDrift,
		})
	}

	if label, ok := sectionItems[unit.Section]; ok {
		items = append(items, model.ChecklistItem{
			ID:       "section-" + string(unit.Section),
			Label:    label,
			Category: CategorySection,
		})
	}

	return items
}

// CarryChecked copies user-checked state from an old checklist onto a freshly
// generated one wherever the item identifier survived regeneration. Items
// whose rules changed get fresh unchecked entries.
func CarryChecked(fresh, old model.Checklist) model.Checklist {
	checked := make(map[string]bool, len(old))
	for _, item := range old {
		if item.Checked {
			checked[item.ID] = true
		}
	}

	for i := range fresh {
		if checked[fresh[i].ID] {
			fresh[i].Checked = true
		}
	}
	return fresh
}
