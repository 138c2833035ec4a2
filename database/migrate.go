package database

import (
	"brushwork_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema. uuid-ossp provides uuid_generate_v4 for
// primary key defaults.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.ArtistProfile{},
		&models.Order{},
		&models.Review{},
		&models.Notification{},
	)
}
