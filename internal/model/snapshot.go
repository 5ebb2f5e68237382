package model

import "time"

// DocumentSnapshot is a gzip-compressed copy of a whole local aggregate
// (document plus children), written just before a pull overwrites it. It is
// the recovery path for edits discarded by document-granularity
// last-writer-wins.
type DocumentSnapshot struct {
	ID         string `gorm:"primaryKey;uuid;not null"`
	DocumentID string `gorm:"uuid;not null;index:idx_document_snapshots_document_id"`
	Payload    []byte `gorm:"not null"`
	Reason     string
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (DocumentSnapshot) TableName() string {
	return "document_snapshots"
}
