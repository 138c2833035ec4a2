package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []OrderStatus{
	OrderStatusRequested,
	OrderStatusAccepted,
	OrderStatusInProgress,
	OrderStatusDelivered,
	OrderStatusCompleted,
	OrderStatusRejected,
}

var allRoles = []UserRole{UserRoleCustomer, UserRoleArtist, UserRoleAdmin}

func TestCanTransitionHappyPath(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusRequested, UserRoleArtist, OrderStatusAccepted))
	assert.True(t, CanTransition(OrderStatusRequested, UserRoleArtist, OrderStatusRejected))
	assert.True(t, CanTransition(OrderStatusAccepted, UserRoleArtist, OrderStatusInProgress))
	assert.True(t, CanTransition(OrderStatusInProgress, UserRoleArtist, OrderStatusDelivered))
	assert.True(t, CanTransition(OrderStatusDelivered, UserRoleCustomer, OrderStatusCompleted))
}

func TestCanTransitionExhaustive(t *testing.T) {
	type edge struct {
		from OrderStatus
		role UserRole
		to   OrderStatus
	}
	legal := map[edge]bool{
		{OrderStatusRequested, UserRoleArtist, OrderStatusAccepted}:    true,
		{OrderStatusRequested, UserRoleArtist, OrderStatusRejected}:    true,
		{OrderStatusAccepted, UserRoleArtist, OrderStatusInProgress}:   true,
		{OrderStatusInProgress, UserRoleArtist, OrderStatusDelivered}:  true,
		{OrderStatusDelivered, UserRoleCustomer, OrderStatusCompleted}: true,
	}

	for _, from := range allStatuses {
		for _, role := range allRoles {
			for _, to := range allStatuses {
				want := legal[edge{from, role, to}]
				got := CanTransition(from, role, to)
				assert.Equal(t, want, got,
					"from=%s role=%s to=%s", from, role, to)
			}
		}
	}
}

func TestCustomerCannotDriveArtistTransitions(t *testing.T) {
	assert.False(t, CanTransition(OrderStatusRequested, UserRoleCustomer, OrderStatusAccepted))
	assert.False(t, CanTransition(OrderStatusRequested, UserRoleCustomer, OrderStatusRejected))
	assert.False(t, CanTransition(OrderStatusInProgress, UserRoleCustomer, OrderStatusDelivered))
}

func TestArtistCannotComplete(t *testing.T) {
	assert.False(t, CanTransition(OrderStatusDelivered, UserRoleArtist, OrderStatusCompleted))
}

func TestRejectedOnlyFromRequested(t *testing.T) {
	for _, from := range allStatuses {
		for _, role := range allRoles {
			want := from == OrderStatusRequested && role == UserRoleArtist
			assert.Equal(t, want, CanTransition(from, role, OrderStatusRejected),
				"from=%s role=%s", from, role)
		}
	}
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusCompleted, OrderStatusRejected} {
		assert.True(t, from.Terminal())
		for _, role := range allRoles {
			assert.Empty(t, AllowedTargets(from, role), "from=%s role=%s", from, role)
		}
	}
}

func TestNoBackwardTransitions(t *testing.T) {
	for _, from := range allStatuses {
		for _, role := range allRoles {
			for _, to := range AllowedTargets(from, role) {
				if to == OrderStatusRejected {
					continue
				}
				assert.Greater(t, to.ProgressIndex(), from.ProgressIndex(),
					"transition %s -> %s goes backwards", from, to)
			}
		}
	}
}

func TestAllowedTargets(t *testing.T) {
	assert.ElementsMatch(t,
		[]OrderStatus{OrderStatusAccepted, OrderStatusRejected},
		AllowedTargets(OrderStatusRequested, UserRoleArtist))
	assert.Empty(t, AllowedTargets(OrderStatusRequested, UserRoleAdmin))
	assert.Empty(t, AllowedTargets(OrderStatusDelivered, UserRoleArtist))
}

func TestValid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid(), "status=%s", s)
	}
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("cancelled").Valid())
	assert.False(t, OrderStatus("Requested").Valid())
}

func TestProgressIndex(t *testing.T) {
	assert.Equal(t, 0, OrderStatusRequested.ProgressIndex())
	assert.Equal(t, 1, OrderStatusAccepted.ProgressIndex())
	assert.Equal(t, 2, OrderStatusInProgress.ProgressIndex())
	assert.Equal(t, 3, OrderStatusDelivered.ProgressIndex())
	assert.Equal(t, 4, OrderStatusCompleted.ProgressIndex())
	assert.Equal(t, -1, OrderStatusRejected.ProgressIndex())
}
