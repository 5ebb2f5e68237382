package model

import (
	"time"

	"gorm.io/datatypes"
)

// Document is the manuscript-level aggregate, owned by exactly one user.
// UpdatedAt is stamped by the service's single update path and is the basis
// for last-writer-wins conflict resolution, so gorm's automatic timestamping
// is disabled on it.
type Document struct {
	ID             string `gorm:"primaryKey;uuid;not null"`
	UserID         string `gorm:"uuid;not null;index:idx_documents_user_id"`
	Title          string `gorm:"not null"`
	MaskIdentity   bool
	PenName        string
	RealName       string // the real-world name the pen name masks
	CurrentSection Section
	WordCount      int
	IdentityState  datatypes.JSON
	SenseState     datatypes.JSON
	FinalGate      bool
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (Document) TableName() string {
	return "documents"
}

// SenseTracker decodes the document's sensory-coverage tracker.
func (d *Document) SenseTracker() SenseTracker {
	return DecodeSenseTracker(d.SenseState)
}

// SetSenseTracker stores the sensory-coverage tracker.
func (d *Document) SetSenseTracker(t SenseTracker) {
	d.SenseState = EncodeSenseTracker(t)
}

// IdentityTracker decodes the document's identity-consistency tracker.
func (d *Document) IdentityTracker() IdentityTracker {
	return DecodeIdentityTracker(d.IdentityState)
}

// SetIdentityTracker stores the identity-consistency tracker.
func (d *Document) SetIdentityTracker(t IdentityTracker) {
	d.IdentityState = EncodeIdentityTracker(t)
}

// VoicePair returns the two halves of the document's dual-voice identity
// pair: the pen name shown and the real name it masks.
func (d *Document) VoicePair() (string, string) {
	return d.PenName, d.RealName
}

// Touch stamps a new update time, keeping the timestamp monotone even when
// the wall clock steps backwards.
func (d *Document) Touch(now time.Time) {
	if now.After(d.UpdatedAt) {
		d.UpdatedAt = now
	}
}
