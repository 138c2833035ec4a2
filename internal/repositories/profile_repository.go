package repositories

import (
	"errors"

	"brushwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("artist profile not found")

type ProfileRepository interface {
	CreateArtistProfile(db *gorm.DB, profile *models.ArtistProfile) error
	FindArtistByUserID(db *gorm.DB, userID string) (*models.ArtistProfile, error)
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) CreateArtistProfile(db *gorm.DB, profile *models.ArtistProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindArtistByUserID(db *gorm.DB, userID string) (*models.ArtistProfile, error) {
	var profile models.ArtistProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
