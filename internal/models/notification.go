package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index"`
	Type    string         `gorm:"not null"` // "order_status", "review_eligible", "review_received"
	Title   string         `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"order_id": "...", "status": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}

const (
	NotificationTypeOrderStatus    = "order_status"
	NotificationTypeReviewEligible = "review_eligible"
	NotificationTypeReviewReceived = "review_received"
)
