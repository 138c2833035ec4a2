package services

import (
	"encoding/json"
	"time"

	"brushwork_backend/internal/metrics"
	"brushwork_backend/internal/models"
	"brushwork_backend/internal/repositories"
	"brushwork_backend/internal/services/dto"
	"brushwork_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderService is the order lifecycle manager. An order's status only ever
// moves forward along requested -> accepted -> in_progress -> delivered ->
// completed, or into rejected from requested; which party may trigger which
// step is encoded in the models transition table.
type OrderService interface {
	CreateOrder(db *gorm.DB, customerID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(db *gorm.DB, orderID string) (*dto.OrderResponse, error)
	ListOrders(db *gorm.DB, userID string, role models.UserRole, page, pageSize int) (*dto.OrderListResponse, error)

	// TransitionOrder validates authorization and table membership, applies
	// the status change as a compare-and-set, and fires side effects for the
	// winning writer only.
	TransitionOrder(db *gorm.DB, orderID, actingUserID string, actingRole models.UserRole, target models.OrderStatus) (*dto.OrderResponse, error)
}

type orderService struct {
	orderRepo           repositories.OrderRepository
	userRepo            repositories.UserRepository
	profileRepo         repositories.ProfileRepository
	notificationService NotificationService
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notificationService NotificationService,
) OrderService {
	return &orderService{
		orderRepo:           orderRepo,
		userRepo:            userRepo,
		profileRepo:         profileRepo,
		notificationService: notificationService,
	}
}

func (s *orderService) CreateOrder(db *gorm.DB, customerID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if req.Budget <= 0 {
		return nil, apperrors.NewBadRequestError("Budget must be positive")
	}
	if customerID == req.ArtistID {
		return nil, apperrors.NewBadRequestError("Cannot commission yourself")
	}

	artist, err := s.userRepo.FindByID(db, req.ArtistID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageUnavailable(err)
	}
	if artist.Role != models.UserRoleArtist {
		return nil, apperrors.NewBadRequestError("Target user is not an artist")
	}

	order := &models.Order{
		CustomerID:      customerID,
		ArtistID:        req.ArtistID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		ReferenceImages: marshalReferenceImages(req.ReferenceImages),
		Budget:          req.Budget,
		Deadline:        req.Deadline,
		Status:          models.OrderStatusRequested,
	}

	if err := s.orderRepo.Create(db, order); err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}

	return buildOrderResponse(order), nil
}

func (s *orderService) GetOrder(db *gorm.DB, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(db, orderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageUnavailable(err)
	}
	return buildOrderResponse(order), nil
}

func (s *orderService) ListOrders(db *gorm.DB, userID string, role models.UserRole, page, pageSize int) (*dto.OrderListResponse, error) {
	var (
		orders []models.Order
		total  int64
		err    error
	)

	switch role {
	case models.UserRoleArtist:
		orders, total, err = s.orderRepo.FindByArtist(db, userID, page, pageSize)
	default:
		orders, total, err = s.orderRepo.FindByCustomer(db, userID, page, pageSize)
	}
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}

	responses := make([]*dto.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, buildOrderResponse(&orders[i]))
	}

	return &dto.OrderListResponse{
		Orders:     responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

func (s *orderService) TransitionOrder(db *gorm.DB, orderID, actingUserID string, actingRole models.UserRole, target models.OrderStatus) (*dto.OrderResponse, error) {
	if !target.Valid() {
		return nil, apperrors.NewBadRequestError("Unknown order status")
	}

	order, err := s.orderRepo.FindByID(db, orderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageUnavailable(err)
	}

	// Authorization comes first: a legal (state, role, target) triple from the
	// wrong party must fail as NotAuthorized, not InvalidTransition.
	if err := authorizeOrderActor(order, actingUserID, actingRole); err != nil {
		return nil, err
	}

	// Re-requesting the status the order already has is a no-op success;
	// client retries after a slow response are common.
	if order.Status == target {
		return buildOrderResponse(order), nil
	}

	if order.Status.Terminal() {
		return nil, apperrors.ErrOrderClosed
	}

	if !models.CanTransition(order.Status, actingRole, target) {
		return nil, apperrors.ErrInvalidTransition.WithDetails(map[string]interface{}{
			"current": order.Status,
			"target":  target,
		})
	}

	if err := s.orderRepo.UpdateStatus(db, orderID, order.Status, target); err != nil {
		if apperrors.Is(err, repositories.ErrOrderStatusConflict) {
			metrics.OrderTransitionConflictsTotal.Inc()
			// Another actor won the race. If they applied the same target,
			// treat the retry as a no-op success.
			current, rerr := s.orderRepo.FindByID(db, orderID)
			if rerr == nil && current.Status == target {
				return buildOrderResponse(current), nil
			}
			return nil, apperrors.ErrConcurrentModification
		}
		return nil, apperrors.StorageUnavailable(err)
	}

	order.Status = target
	order.UpdatedAt = time.Now()
	metrics.OrderTransitionsTotal.WithLabelValues(string(target)).Inc()

	// Side effects run only in the CAS winner, so ReviewEligible fires exactly
	// once per order.
	s.notificationService.EmitOrderStatus(db, order, target)
	if target == models.OrderStatusCompleted {
		s.notificationService.EmitReviewEligible(db, order)
	}

	return buildOrderResponse(order), nil
}

func authorizeOrderActor(order *models.Order, actingUserID string, actingRole models.UserRole) error {
	switch actingRole {
	case models.UserRoleArtist:
		if order.ArtistID != actingUserID {
			return apperrors.ErrNotAuthorized
		}
	case models.UserRoleCustomer:
		if order.CustomerID != actingUserID {
			return apperrors.ErrNotAuthorized
		}
	default:
		return apperrors.ErrNotAuthorized
	}
	return nil
}

func buildOrderResponse(order *models.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		ArtistID:        order.ArtistID,
		Title:           order.Title,
		Description:     order.Description,
		Category:        order.Category,
		ReferenceImages: unmarshalReferenceImages(order.ReferenceImages),
		Budget:          order.Budget,
		Deadline:        order.Deadline,
		Status:          string(order.Status),
		ProgressIndex:   order.Status.ProgressIndex(),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func marshalReferenceImages(urls []string) datatypes.JSON {
	if len(urls) == 0 {
		return nil
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func unmarshalReferenceImages(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		return nil
	}
	return urls
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
