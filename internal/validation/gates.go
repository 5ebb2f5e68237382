package validation

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/draftloom/manuscript/internal/model"
)

// SenseCoverageComplete is the section-advance gate: a document may not be
// considered to have reached the full-sensory-coverage section until every
// one of the five tracked senses has been activated in at least one unit.
// The gate checks activation only; strength tiers do not matter here.
func SenseCoverageComplete(units []*model.ContentUnit) bool {
	activated := mapset.NewSet[model.Sense]()
	for _, unit := range units {
		if unit.SensoryFocus != "" {
			activated.Add(unit.SensoryFocus)
		}
	}

	for _, s := range model.Senses {
		if !activated.Contains(s) {
			return false
		}
	}
	return true
}

// MissingSenses lists the senses not yet activated by any unit, in tracked
// order. Empty when the section-advance gate passes.
func MissingSenses(units []*model.ContentUnit) []model.Sense {
	activated := mapset.NewSet[model.Sense]()
	for _, unit := range units {
		if unit.SensoryFocus != "" {
			activated.Add(unit.SensoryFocus)
		}
	}

	var missing []model.Sense
	for _, s := range model.Senses {
		if !activated.Contains(s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// FinalReviewReady is the final-review gate: every secondary-voice
// annotation anywhere in the document must be linked to an echoing unit, and
// every annotation spoken by either half of the document's dual-voice pair
// must likewise be linked. The gate is the AND of both conditions and is
// recomputed on demand, never stored.
func FinalReviewReady(doc *model.Document, annotations []*model.Annotation) bool {
	pen, real := doc.VoicePair()

	for _, a := range annotations {
		if a.Category == model.CategorySecondaryVoice && !a.Linked() {
			return false
		}
		if a.Speaker != "" && (a.Speaker == pen || a.Speaker == real) && !a.Linked() {
			return false
		}
	}
	return true
}
