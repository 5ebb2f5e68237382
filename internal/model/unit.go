package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ContentUnit is an ordered scene belonging to one document. The four
// classification fields (IdentityType, SensoryFocus, AwarenessLevel,
// FootnoteTone) feed checklist generation and status classification;
// ValidationStatus is always derived, never set by callers directly.
type ContentUnit struct {
	ID             string `gorm:"primaryKey;uuid;not null"`
	DocumentID     string `gorm:"uuid;not null;index:idx_content_units_document_id"`
	Position       int    `gorm:"not null"`
	Title          string
	Section        Section `gorm:"not null"`
	Chapter        *string
	Body           string
	Footnote       string
	WordCount      int
	IdentityType   IdentityType
	SensoryFocus   Sense
	AwarenessLevel AwarenessLevel
	FootnoteTone   Tone
	Status         UnitStatus       `gorm:"not null;default:draft"`
	ValidationStat ValidationStatus `gorm:"column:validation_status"`
	Items          datatypes.JSON   `gorm:"column:checklist"`
	CreatedAt      time.Time        `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime:false"`
}

func (ContentUnit) TableName() string {
	return "content_units"
}

// Checklist decodes the unit's generated checklist.
func (u *ContentUnit) Checklist() Checklist {
	return DecodeChecklist(u.Items)
}

// SetChecklist stores the unit's checklist.
func (u *ContentUnit) SetChecklist(c Checklist) {
	u.Items = EncodeChecklist(c)
}

// CountWords computes the derived word count of the body text.
func CountWords(body string) int {
	return len(strings.Fields(body))
}
