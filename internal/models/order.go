package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order is a single customer-to-artist commission. Everything except Status
// and UpdatedAt is immutable after creation; Status only moves forward along
// the lifecycle below.
type Order struct {
	BaseModel
	CustomerID      string         `gorm:"not null;index"`
	ArtistID        string         `gorm:"not null;index"`
	Title           string         `gorm:"not null"`
	Description     string
	Category        string
	ReferenceImages datatypes.JSON `gorm:"type:jsonb"`
	Budget          float64        `gorm:"not null;check:budget > 0"`
	Deadline        time.Time
	Status          OrderStatus    `gorm:"type:varchar(20);not null;default:'requested';index"`

	Customer User `gorm:"foreignKey:CustomerID"`
	Artist   User `gorm:"foreignKey:ArtistID"`
}

// orderTransitions is the full set of legal transitions:
// (current status, acting role) -> allowed targets. Anything absent is
// illegal. completed and rejected have no outgoing edges.
var orderTransitions = map[OrderStatus]map[UserRole][]OrderStatus{
	OrderStatusRequested: {
		UserRoleArtist: {OrderStatusAccepted, OrderStatusRejected},
	},
	OrderStatusAccepted: {
		UserRoleArtist: {OrderStatusInProgress},
	},
	OrderStatusInProgress: {
		UserRoleArtist: {OrderStatusDelivered},
	},
	OrderStatusDelivered: {
		UserRoleCustomer: {OrderStatusCompleted},
	},
}

// progressSequence is the strictly ordered happy path. The client renders the
// progress bar by position in this sequence, so the order must not change.
var progressSequence = []OrderStatus{
	OrderStatusRequested,
	OrderStatusAccepted,
	OrderStatusInProgress,
	OrderStatusDelivered,
	OrderStatusCompleted,
}

// CanTransition reports whether role may move an order from `from` to `to`.
func CanTransition(from OrderStatus, role UserRole, to OrderStatus) bool {
	byRole, ok := orderTransitions[from]
	if !ok {
		return false
	}
	for _, target := range byRole[role] {
		if target == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the targets role may reach from `from`.
func AllowedTargets(from OrderStatus, role UserRole) []OrderStatus {
	byRole, ok := orderTransitions[from]
	if !ok {
		return nil
	}
	targets := make([]OrderStatus, len(byRole[role]))
	copy(targets, byRole[role])
	return targets
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusRejected
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusRequested, OrderStatusAccepted, OrderStatusInProgress,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

// ProgressIndex returns the step position on the progress bar, or -1 for
// rejected, which sits outside the happy path.
func (s OrderStatus) ProgressIndex() int {
	for i, step := range progressSequence {
		if step == s {
			return i
		}
	}
	return -1
}
