package validation

import "github.com/draftloom/manuscript/internal/model"

// ValidateUnit classifies a unit's traffic-light status in strict priority
// order:
//
//  1. red:    a logic error, either drift awareness without the sharp
//             footnote tone or a flagged motif annotation raised in the unit
//  2. yellow: non-empty body, checklist not fully checked
//  3. green:  non-empty body, checklist fully checked
//  4. yellow: default (empty body)
//
// The function is total; a unit with no body or no annotations is simply the
// default case, not an error.
func ValidateUnit(unit *model.ContentUnit, annotations []*model.Annotation) model.ValidationStatus {
	if unit.AwarenessLevel.IsDrift() && unit.FootnoteTone != model.ToneSharp {
		return model.StatusRed
	}
	for _, a := range annotations {
		if a.UnitID == unit.ID && a.Flagged {
			return model.StatusRed
		}
	}

	if unit.Body != "" {
		if unit.Checklist().Complete() {
			return model.StatusGreen
		}
		return model.StatusYellow
	}

	return model.StatusYellow
}
