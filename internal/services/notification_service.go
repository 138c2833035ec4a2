package services

import (
	"encoding/json"
	"fmt"

	"brushwork_backend/internal/email"
	"brushwork_backend/internal/logger"
	"brushwork_backend/internal/models"
	"brushwork_backend/internal/repositories"
	"brushwork_backend/internal/services/dto"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationService writes in-app notification rows and mirrors them to
// email. Both are best effort: side effects never fail the calling operation,
// a lost notification just leaves the client stale until its next read.
type NotificationService interface {
	EmitOrderStatus(db *gorm.DB, order *models.Order, status models.OrderStatus)
	EmitReviewEligible(db *gorm.DB, order *models.Order)
	EmitReviewReceived(db *gorm.DB, review *models.Review)

	ListNotifications(db *gorm.DB, userID string, limit int) (*dto.NotificationListResponse, error)
	MarkRead(db *gorm.DB, userID, notificationID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	emailProvider    email.Provider
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailProvider:    emailProvider,
	}
}

var statusTitles = map[models.OrderStatus]string{
	models.OrderStatusAccepted:   "Your commission was accepted",
	models.OrderStatusInProgress: "Work on your commission has started",
	models.OrderStatusDelivered:  "Your commission was delivered",
	models.OrderStatusCompleted:  "Commission completed",
	models.OrderStatusRejected:   "Your commission was declined",
}

func (s *notificationService) EmitOrderStatus(db *gorm.DB, order *models.Order, status models.OrderStatus) {
	// The artist drives most transitions, so status notices go to the
	// customer; the completion confirmation comes from the customer and goes
	// to the artist.
	recipient := order.CustomerID
	if status == models.OrderStatusCompleted {
		recipient = order.ArtistID
	}

	title := statusTitles[status]
	if title == "" {
		title = fmt.Sprintf("Order moved to %s", status)
	}

	s.emit(db, &models.Notification{
		UserID:  recipient,
		Type:    models.NotificationTypeOrderStatus,
		Title:   title,
		Message: fmt.Sprintf("Order %q is now %s.", order.Title, status),
		Data:    notificationData(map[string]interface{}{"order_id": order.ID, "status": string(status)}),
	})
}

func (s *notificationService) EmitReviewEligible(db *gorm.DB, order *models.Order) {
	s.emit(db, &models.Notification{
		UserID:  order.CustomerID,
		Type:    models.NotificationTypeReviewEligible,
		Title:   "Leave a review",
		Message: fmt.Sprintf("Your order %q is complete. You can now review the artist.", order.Title),
		Data: notificationData(map[string]interface{}{
			"order_id":    order.ID,
			"customer_id": order.CustomerID,
			"artist_id":   order.ArtistID,
		}),
	})
}

func (s *notificationService) EmitReviewReceived(db *gorm.DB, review *models.Review) {
	s.emit(db, &models.Notification{
		UserID:  review.ArtistID,
		Type:    models.NotificationTypeReviewReceived,
		Title:   "New review",
		Message: fmt.Sprintf("%s rated you %d/5.", review.CustomerName, review.Rating),
		Data:    notificationData(map[string]interface{}{"review_id": review.ID, "order_id": review.OrderID}),
	})
}

func (s *notificationService) emit(db *gorm.DB, notification *models.Notification) {
	if err := s.notificationRepo.Create(db, notification); err != nil {
		logger.WithError(err).Warn("failed to persist notification",
			"user_id", notification.UserID, "type", notification.Type)
		return
	}

	if s.emailProvider == nil {
		return
	}
	user, err := s.userRepo.FindByID(db, notification.UserID)
	if err != nil {
		logger.WithError(err).Warn("notification recipient lookup failed", "user_id", notification.UserID)
		return
	}
	if err := s.emailProvider.Send(user.Email, notification.Title, notification.Message); err != nil {
		logger.WithError(err).Warn("notification email delivery failed", "user_id", user.ID)
	}
}

func (s *notificationService) ListNotifications(db *gorm.DB, userID string, limit int) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindByUser(db, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) MarkRead(db *gorm.DB, userID, notificationID string) error {
	return s.notificationRepo.MarkRead(db, userID, notificationID)
}

func buildNotificationResponse(n *models.Notification) *dto.NotificationResponse {
	var data map[string]interface{}
	if len(n.Data) > 0 {
		_ = json.Unmarshal(n.Data, &data)
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func notificationData(fields map[string]interface{}) datatypes.JSON {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
