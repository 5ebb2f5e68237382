package model

import (
	"time"

	"gorm.io/datatypes"
)

// OperationKind is the intent recorded by a pending operation.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// PendingOperation records intent to synchronize one mutation, decoupled
// from current-state tables so the sync engine can replay intent even after
// the record itself has changed further. Entries exist only until the remote
// write is confirmed; replays are harmless because remote writes are
// upserts.
type PendingOperation struct {
	ID        string         `gorm:"primaryKey;uuid;not null"`
	Kind      OperationKind  `gorm:"not null"`
	Table     string         `gorm:"column:target_table;not null"`
	TargetID  string         `gorm:"uuid;not null"`
	Payload   datatypes.JSON
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (PendingOperation) TableName() string {
	return "pending_operations"
}
