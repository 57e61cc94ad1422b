package database

import "datingmeet/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Profile{},
		&models.Like{},
		&models.Match{},
		&models.Notification{},
		&models.Message{},
	}
}
