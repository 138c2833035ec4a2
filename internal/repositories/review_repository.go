package repositories

import (
	"errors"
	"math"

	"brushwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this order")
)

// ArtistAggregate is the cached rating pair derived from the review set.
type ArtistAggregate struct {
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"review_count"`
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByArtist(db *gorm.DB, artistID string, page, pageSize int) ([]models.Review, int64, error)
	ExistsForOrder(db *gorm.DB, customerID, orderID string) (bool, error)

	// RecomputeAggregate derives the artist's rating and review count from the
	// full review set and writes both onto the artist profile. The recompute is
	// intentionally not incremental: deriving from the complete set tolerates
	// out-of-order and backfilled reviews.
	RecomputeAggregate(db *gorm.DB, artistID string) (*ArtistAggregate, error)
	GetAggregate(db *gorm.DB, artistID string) (*ArtistAggregate, error)
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	var existing models.Review
	err := db.Where("customer_id = ? AND order_id = ?", review.CustomerID, review.OrderID).
		First(&existing).Error
	if err == nil {
		return ErrReviewAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(review).Error
}

func (r *reviewRepository) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByArtist(db *gorm.DB, artistID string, page, pageSize int) ([]models.Review, int64, error) {
	var total int64
	if err := db.Model(&models.Review{}).Where("artist_id = ?", artistID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	offset := (page - 1) * pageSize
	err := db.Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) ExistsForOrder(db *gorm.DB, customerID, orderID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("customer_id = ? AND order_id = ?", customerID, orderID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) RecomputeAggregate(db *gorm.DB, artistID string) (*ArtistAggregate, error) {
	agg, err := r.computeAggregate(db, artistID)
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.ArtistProfile{}).
		Where("user_id = ?", artistID).
		Updates(map[string]interface{}{
			"rating":       agg.Rating,
			"review_count": agg.ReviewCount,
		}).Error
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *reviewRepository) GetAggregate(db *gorm.DB, artistID string) (*ArtistAggregate, error) {
	var profile models.ArtistProfile
	err := db.Select("rating", "review_count").First(&profile, "user_id = ?", artistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &ArtistAggregate{Rating: profile.Rating, ReviewCount: profile.ReviewCount}, nil
}

func (r *reviewRepository) computeAggregate(db *gorm.DB, artistID string) (*ArtistAggregate, error) {
	var agg ArtistAggregate
	err := db.Model(&models.Review{}).
		Where("artist_id = ?", artistID).
		Select("COUNT(*) as review_count, COALESCE(AVG(rating), 0) as rating").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	// Display precision is one decimal place.
	agg.Rating = math.Round(agg.Rating*10) / 10
	return &agg, nil
}
