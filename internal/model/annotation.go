package model

import "time"

// Annotation is a quoted, speaker-tagged excerpt raised within one unit.
// EchoUnitID optionally links it to a different unit that echoes it; the
// final-review gate requires these links for secondary-voice annotations and
// for both halves of the document's dual-voice pair.
type Annotation struct {
	ID         string             `gorm:"primaryKey;uuid;not null"`
	DocumentID string             `gorm:"uuid;not null;index:idx_annotations_document_id"`
	UnitID     string             `gorm:"uuid;not null;index:idx_annotations_unit_id"`
	Text       string             `gorm:"not null"`
	Speaker    string
	Category   AnnotationCategory `gorm:"not null"`
	EchoUnitID *string            `gorm:"uuid"`
	Flagged    bool
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (Annotation) TableName() string {
	return "annotations"
}

// Linked reports whether the annotation has been echoed by another unit.
func (a *Annotation) Linked() bool {
	return a.EchoUnitID != nil && *a.EchoUnitID != ""
}
