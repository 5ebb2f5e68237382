package model

import "gorm.io/gorm"

// Migrate creates or updates the local schema.
func Migrate(db *gorm.DB) error {
	for _, m := range []any{
		&Document{},
		&ContentUnit{},
		&Annotation{},
		&PendingOperation{},
		&DocumentSnapshot{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}

	return nil
}
