package model

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// SenseState records whether and how often one sense has been exercised
// across a document's units.
type SenseState struct {
	Activated bool         `json:"activated"`
	Count     int          `json:"count"`
	Tier      StrengthTier `json:"tier"`
}

// SenseTracker is the document's sensory-coverage tracker, keyed by sense.
type SenseTracker map[Sense]SenseState

// NewSenseTracker returns a tracker with every sense unactivated.
func NewSenseTracker() SenseTracker {
	t := make(SenseTracker, len(Senses))
	for _, s := range Senses {
		t[s] = SenseState{Tier: TierWeak}
	}
	return t
}

// Record notes one occurrence of a sense. Activation is set the first time;
// the tier follows the accumulated count.
func (t SenseTracker) Record(s Sense) {
	state := t[s]
	state.Activated = true
	state.Count++
	state.Tier = TierForCount(state.Count)
	t[s] = state
}

// Activated reports whether the sense has been exercised at least once.
func (t SenseTracker) Activated(s Sense) bool {
	return t[s].Activated
}

// IdentityTracker is the document's identity-consistency tracker: how many
// units carry each identity type.
type IdentityTracker struct {
	PrimaryUnits   int `json:"primary_units"`
	SecondaryUnits int `json:"secondary_units"`
}

// Record notes one unit carrying the given identity type.
func (t *IdentityTracker) Record(it IdentityType) {
	switch it {
	case IdentityPrimary:
		t.PrimaryUnits++
	case IdentitySecondary:
		t.SecondaryUnits++
	}
}

func encodeJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.Errorf("encoding tracker: %v", err)
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}

// EncodeSenseTracker serializes the tracker for a JSON column.
func EncodeSenseTracker(t SenseTracker) datatypes.JSON {
	if t == nil {
		t = NewSenseTracker()
	}
	return encodeJSON(t)
}

// DecodeSenseTracker parses a stored tracker, falling back to an empty
// tracker on malformed payloads.
func DecodeSenseTracker(data datatypes.JSON) SenseTracker {
	t := NewSenseTracker()
	if len(data) == 0 {
		return t
	}
	if err := json.Unmarshal(data, &t); err != nil {
		logrus.Warnf("malformed sense tracker, resetting: %v", err)
		return NewSenseTracker()
	}
	return t
}

// EncodeIdentityTracker serializes the tracker for a JSON column.
func EncodeIdentityTracker(t IdentityTracker) datatypes.JSON {
	return encodeJSON(t)
}

// DecodeIdentityTracker parses a stored tracker, falling back to zero counts
// on malformed payloads.
func DecodeIdentityTracker(data datatypes.JSON) IdentityTracker {
	var t IdentityTracker
	if len(data) == 0 {
		return t
	}
	if err := json.Unmarshal(data, &t); err != nil {
		logrus.Warnf("malformed identity tracker, resetting: %v", err)
		return IdentityTracker{}
	}
	return t
}
