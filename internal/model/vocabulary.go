package model

// Section is one of the fixed ordered narrative phases a unit belongs to.
type Section string

const (
	SectionArrival     Section = "arrival"
	SectionAwakening   Section = "awakening"
	SectionDeepening   Section = "deepening"
	SectionConvergence Section = "convergence"
	SectionRelease     Section = "release"
)

// Sections lists the narrative phases in document order. SectionConvergence
// is the phase that requires full sensory coverage before a document may
// reach it.
var Sections = []Section{
	SectionArrival,
	SectionAwakening,
	SectionDeepening,
	SectionConvergence,
	SectionRelease,
}

// Sense is one of the five tracked senses.
type Sense string

const (
	SenseSight Sense = "sight"
	SenseSound Sense = "sound"
	SenseTouch Sense = "touch"
	SenseSmell Sense = "smell"
	SenseTaste Sense = "taste"
)

var Senses = []Sense{SenseSight, SenseSound, SenseTouch, SenseSmell, SenseTaste}

// IdentityType classifies whose voice a unit carries.
type IdentityType string

const (
	IdentityNone      IdentityType = ""
	IdentityPrimary   IdentityType = "primary-identity"
	IdentitySecondary IdentityType = "secondary-issue"
)

// AwarenessLevel describes how present the narrator is within a unit.
type AwarenessLevel string

const (
	AwarenessGrounded   AwarenessLevel = "grounded"
	AwarenessAware      AwarenessLevel = "aware"
	AwarenessLightDrift AwarenessLevel = "light-drift"
	AwarenessHighDrift  AwarenessLevel = "high-drift"
)

// IsDrift reports whether the level is one of the two drift values. Drift
// units must carry the sharpest footnote tone.
func (a AwarenessLevel) IsDrift() bool {
	return a == AwarenessLightDrift || a == AwarenessHighDrift
}

// Tone is the register of a unit's footnote.
type Tone string

const (
	ToneGentle  Tone = "gentle"
	ToneWry     Tone = "wry"
	TonePointed Tone = "pointed"
	ToneSharp   Tone = "sharp" // sharpest; required for drift units
)

// AnnotationCategory tags who or what an annotation quotes.
type AnnotationCategory string

const (
	CategoryPrimaryVoice   AnnotationCategory = "primary-voice"
	CategorySecondaryVoice AnnotationCategory = "secondary-voice"
	CategoryMotif          AnnotationCategory = "motif"
)

// UnitStatus is the lifecycle state of a unit, user driven.
type UnitStatus string

const (
	UnitDraft   UnitStatus = "draft"
	UnitRevised UnitStatus = "revised"
	UnitDone    UnitStatus = "done"
)

// ValidationStatus is the derived traffic-light state of a unit.
type ValidationStatus string

const (
	StatusRed    ValidationStatus = "red"
	StatusYellow ValidationStatus = "yellow"
	StatusGreen  ValidationStatus = "green"
)

// StrengthTier grades how often a sense has been exercised.
type StrengthTier string

const (
	TierWeak     StrengthTier = "weak"
	TierModerate StrengthTier = "moderate"
	TierStrong   StrengthTier = "strong"
)

// Occurrence counts at which a sense's tier is raised.
const (
	TierModerateThreshold = 2
	TierStrongThreshold   = 5
)

// TierForCount maps an occurrence count to its strength tier.
func TierForCount(count int) StrengthTier {
	switch {
	case count >= TierStrongThreshold:
		return TierStrong
	case count >= TierModerateThreshold:
		return TierModerate
	default:
		return TierWeak
	}
}
