package services

import (
	"strings"

	"brushwork_backend/internal/metrics"
	"brushwork_backend/internal/models"
	"brushwork_backend/internal/repositories"
	"brushwork_backend/internal/services/dto"
	"brushwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ReviewService is the rating aggregation engine. Submitting a review folds
// it into the artist's cached rating/reviewCount pair by recomputing the
// aggregate from the full review set, never by incremental patching.
type ReviewService interface {
	SubmitReview(db *gorm.DB, customerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetArtistReviews(db *gorm.DB, artistID string, page, pageSize int) (*dto.ReviewListResponse, error)

	// GetArtistAggregate is a read-only projection of the cached pair.
	GetArtistAggregate(db *gorm.DB, artistID string) (*dto.ArtistAggregateResponse, error)

	// RecomputeAggregate re-derives the pair from the review set. Idempotent:
	// with no new reviews, two consecutive calls produce the same aggregate.
	RecomputeAggregate(db *gorm.DB, artistID string) (*dto.ArtistAggregateResponse, error)
}

type reviewService struct {
	reviewRepo          repositories.ReviewRepository
	orderRepo           repositories.OrderRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
) ReviewService {
	return &reviewService{
		reviewRepo:          reviewRepo,
		orderRepo:           orderRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *reviewService) SubmitReview(db *gorm.DB, customerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	// Input validation never reaches the persistence layer.
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, apperrors.ErrEmptyComment
	}

	// Eligibility: the review must be licensed by a completed order binding
	// this customer to this artist.
	order, err := s.orderRepo.FindByID(db, req.OrderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotEligible
		}
		return nil, apperrors.StorageUnavailable(err)
	}
	if order.Status != models.OrderStatusCompleted ||
		order.CustomerID != customerID ||
		order.ArtistID != req.ArtistID {
		return nil, apperrors.ErrNotEligible
	}

	exists, err := s.reviewRepo.ExistsForOrder(db, customerID, req.OrderID)
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	customer, err := s.userRepo.FindByID(db, customerID)
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}

	review := &models.Review{
		ArtistID:     req.ArtistID,
		CustomerID:   customerID,
		CustomerName: customer.Name,
		OrderID:      req.OrderID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	// Persist the review and recompute the aggregate in one transaction so the
	// read-compute-write sequence is serialized per submission and a crash
	// between the two writes cannot leave the cached pair behind the set.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}
		if _, err := s.reviewRepo.RecomputeAggregate(tx, req.ArtistID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, apperrors.StorageUnavailable(err)
	}

	metrics.ReviewsSubmittedTotal.Inc()
	metrics.AggregateRecomputesTotal.Inc()
	s.notificationService.EmitReviewReceived(db, review)

	return buildReviewResponse(review), nil
}

func (s *reviewService) GetArtistReviews(db *gorm.DB, artistID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	reviews, total, err := s.reviewRepo.FindByArtist(db, artistID, page, pageSize)
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, buildReviewResponse(&reviews[i]))
	}

	return &dto.ReviewListResponse{
		Reviews:    responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

func (s *reviewService) GetArtistAggregate(db *gorm.DB, artistID string) (*dto.ArtistAggregateResponse, error) {
	agg, err := s.reviewRepo.GetAggregate(db, artistID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageUnavailable(err)
	}
	return &dto.ArtistAggregateResponse{
		ArtistID:    artistID,
		Rating:      agg.Rating,
		ReviewCount: agg.ReviewCount,
	}, nil
}

func (s *reviewService) RecomputeAggregate(db *gorm.DB, artistID string) (*dto.ArtistAggregateResponse, error) {
	var agg *repositories.ArtistAggregate
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		agg, err = s.reviewRepo.RecomputeAggregate(tx, artistID)
		return err
	})
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}

	metrics.AggregateRecomputesTotal.Inc()
	return &dto.ArtistAggregateResponse{
		ArtistID:    artistID,
		Rating:      agg.Rating,
		ReviewCount: agg.ReviewCount,
	}, nil
}

func buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:           review.ID,
		ArtistID:     review.ArtistID,
		CustomerID:   review.CustomerID,
		CustomerName: review.CustomerName,
		OrderID:      review.OrderID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
	}
}
