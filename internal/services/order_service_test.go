package services

import (
	"testing"
	"time"

	"brushwork_backend/internal/models"
	"brushwork_backend/internal/repositories"
	"brushwork_backend/internal/services/dto"
	"brushwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCustomerID = "c0000000-0000-4000-8000-000000000001"
	testArtistID   = "a0000000-0000-4000-8000-000000000002"
	otherArtistID  = "a0000000-0000-4000-8000-000000000003"
)

func newOrderServiceFixture() (*fakeOrderRepo, *fakeUserRepo, *fakeNotifier, OrderService) {
	orderRepo := newFakeOrderRepo()
	userRepo := newFakeUserRepo()
	notifier := &fakeNotifier{}

	userRepo.add(&models.User{
		BaseModel: models.BaseModel{ID: testCustomerID},
		Email:     "customer@example.com",
		Name:      "Dana",
		Role:      models.UserRoleCustomer,
	})
	userRepo.add(&models.User{
		BaseModel: models.BaseModel{ID: testArtistID},
		Email:     "artist@example.com",
		Name:      "Iris",
		Role:      models.UserRoleArtist,
	})

	svc := NewOrderService(orderRepo, userRepo, repositories.NewProfileRepository(), notifier)
	return orderRepo, userRepo, notifier, svc
}

func seedOrder(repo *fakeOrderRepo, status models.OrderStatus) *models.Order {
	return repo.add(&models.Order{
		CustomerID: testCustomerID,
		ArtistID:   testArtistID,
		Title:      "Portrait commission",
		Budget:     150,
		Deadline:   time.Now().Add(14 * 24 * time.Hour),
		Status:     status,
	})
}

func TestCreateOrder(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()

	resp, err := svc.CreateOrder(nil, testCustomerID, &dto.CreateOrderRequest{
		ArtistID: testArtistID,
		Title:    "Portrait commission",
		Budget:   150,
		Deadline: time.Now().Add(14 * 24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.OrderStatusRequested), resp.Status)
	assert.Equal(t, 0, resp.ProgressIndex)
	assert.Equal(t, testCustomerID, resp.CustomerID)
	assert.Equal(t, testArtistID, resp.ArtistID)
	assert.Len(t, orderRepo.orders, 1)
}

func TestCreateOrderRejectsNonPositiveBudget(t *testing.T) {
	_, _, _, svc := newOrderServiceFixture()

	_, err := svc.CreateOrder(nil, testCustomerID, &dto.CreateOrderRequest{
		ArtistID: testArtistID,
		Title:    "Portrait commission",
		Budget:   0,
		Deadline: time.Now(),
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestCreateOrderRejectsSelfCommission(t *testing.T) {
	_, _, _, svc := newOrderServiceFixture()

	_, err := svc.CreateOrder(nil, testCustomerID, &dto.CreateOrderRequest{
		ArtistID: testCustomerID,
		Title:    "Portrait commission",
		Budget:   150,
		Deadline: time.Now(),
	})
	require.Error(t, err)
}

func TestCreateOrderRejectsNonArtistTarget(t *testing.T) {
	_, userRepo, _, svc := newOrderServiceFixture()
	other := userRepo.add(&models.User{
		Email: "other@example.com",
		Name:  "Lee",
		Role:  models.UserRoleCustomer,
	})

	_, err := svc.CreateOrder(nil, testCustomerID, &dto.CreateOrderRequest{
		ArtistID: other.ID,
		Title:    "Portrait commission",
		Budget:   150,
		Deadline: time.Now(),
	})
	require.Error(t, err)
}

func TestTransitionFullLifecycle(t *testing.T) {
	orderRepo, _, notifier, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusRequested)

	steps := []struct {
		actor  string
		role   models.UserRole
		target models.OrderStatus
	}{
		{testArtistID, models.UserRoleArtist, models.OrderStatusAccepted},
		{testArtistID, models.UserRoleArtist, models.OrderStatusInProgress},
		{testArtistID, models.UserRoleArtist, models.OrderStatusDelivered},
		{testCustomerID, models.UserRoleCustomer, models.OrderStatusCompleted},
	}

	for i, step := range steps {
		resp, err := svc.TransitionOrder(nil, order.ID, step.actor, step.role, step.target)
		require.NoError(t, err, "step %d to %s", i, step.target)
		assert.Equal(t, string(step.target), resp.Status)
		assert.Equal(t, step.target.ProgressIndex(), resp.ProgressIndex)
	}

	assert.Equal(t, models.OrderStatusCompleted, orderRepo.orders[order.ID].Status)
	assert.Equal(t, []models.OrderStatus{
		models.OrderStatusAccepted,
		models.OrderStatusInProgress,
		models.OrderStatusDelivered,
		models.OrderStatusCompleted,
	}, notifier.statusEvents)
	assert.Equal(t, []string{order.ID}, notifier.eligibleOrders)
}

func TestTransitionRejectFromRequested(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusRequested)

	resp, err := svc.TransitionOrder(nil, order.ID, testArtistID, models.UserRoleArtist, models.OrderStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderStatusRejected), resp.Status)
	assert.Equal(t, -1, resp.ProgressIndex)
}

func TestTransitionUnknownStatus(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusRequested)

	_, err := svc.TransitionOrder(nil, order.ID, testArtistID, models.UserRoleArtist, models.OrderStatus("cancelled"))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestTransitionOrderNotFound(t *testing.T) {
	_, _, _, svc := newOrderServiceFixture()

	_, err := svc.TransitionOrder(nil, "missing-id", testArtistID, models.UserRoleArtist, models.OrderStatusAccepted)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestTransitionStrangerIsNotAuthorized(t *testing.T) {
	// A legal (state, role, target) triple from an artist who is not a party
	// to the order must fail authorization, not table membership.
	orderRepo, _, notifier, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusRequested)

	_, err := svc.TransitionOrder(nil, order.ID, otherArtistID, models.UserRoleArtist, models.OrderStatusAccepted)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotAuthorized))
	assert.Equal(t, models.OrderStatusRequested, orderRepo.orders[order.ID].Status)
	assert.Empty(t, notifier.statusEvents)
}

func TestTransitionWrongRoleIsInvalid(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()

	// The customer cannot drive artist-owned steps.
	order := seedOrder(orderRepo, models.OrderStatusRequested)
	_, err := svc.TransitionOrder(nil, order.ID, testCustomerID, models.UserRoleCustomer, models.OrderStatusAccepted)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidTransition))

	// The artist cannot confirm completion on the customer's behalf.
	delivered := seedOrder(orderRepo, models.OrderStatusDelivered)
	_, err = svc.TransitionOrder(nil, delivered.ID, testArtistID, models.UserRoleArtist, models.OrderStatusCompleted)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidTransition))
}

func TestTransitionSkippingStepsIsInvalid(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusRequested)

	_, err := svc.TransitionOrder(nil, order.ID, testArtistID, models.UserRoleArtist, models.OrderStatusDelivered)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidTransition))
}

func TestTransitionRejectAfterAcceptIsInvalid(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusAccepted)

	_, err := svc.TransitionOrder(nil, order.ID, testArtistID, models.UserRoleArtist, models.OrderStatusRejected)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidTransition))
}

func TestTransitionOnClosedOrder(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()

	completed := seedOrder(orderRepo, models.OrderStatusCompleted)
	_, err := svc.TransitionOrder(nil, completed.ID, testArtistID, models.UserRoleArtist, models.OrderStatusInProgress)
	assert.True(t, apperrors.Is(err, apperrors.ErrOrderClosed))

	rejected := seedOrder(orderRepo, models.OrderStatusRejected)
	_, err = svc.TransitionOrder(nil, rejected.ID, testArtistID, models.UserRoleArtist, models.OrderStatusAccepted)
	assert.True(t, apperrors.Is(err, apperrors.ErrOrderClosed))
}

func TestTransitionSameTargetIsNoOp(t *testing.T) {
	orderRepo, _, notifier, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusAccepted)

	resp, err := svc.TransitionOrder(nil, order.ID, testArtistID, models.UserRoleArtist, models.OrderStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderStatusAccepted), resp.Status)

	// No write, no side effects.
	assert.Zero(t, orderRepo.updateCalls)
	assert.Empty(t, notifier.statusEvents)
}

func TestTransitionNoOpOnTerminalOrder(t *testing.T) {
	// A retried completion lands after the first one already closed the order.
	// The same-target check wins over the closed check.
	orderRepo, _, notifier, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusCompleted)

	resp, err := svc.TransitionOrder(nil, order.ID, testCustomerID, models.UserRoleCustomer, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderStatusCompleted), resp.Status)
	assert.Empty(t, notifier.eligibleOrders)
}

func TestTransitionConflictSameTargetIsNoOp(t *testing.T) {
	// Two deliveries race. The loser's conditional write matches no row, but
	// the re-read shows the order already where the loser wanted it.
	orderRepo, _, notifier, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusInProgress)

	orderRepo.nextUpdateErr = repositories.ErrOrderStatusConflict
	orderRepo.conflictStatus = models.OrderStatusDelivered

	resp, err := svc.TransitionOrder(nil, order.ID, testArtistID, models.UserRoleArtist, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderStatusDelivered), resp.Status)
	assert.Empty(t, notifier.statusEvents, "the losing writer must not emit side effects")
}

func TestTransitionConflictDifferentTarget(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusRequested)

	orderRepo.nextUpdateErr = repositories.ErrOrderStatusConflict
	orderRepo.conflictStatus = models.OrderStatusRejected

	_, err := svc.TransitionOrder(nil, order.ID, testArtistID, models.UserRoleArtist, models.OrderStatusAccepted)
	assert.True(t, apperrors.Is(err, apperrors.ErrConcurrentModification))
}

func TestReviewEligibleFiresOncePerOrder(t *testing.T) {
	orderRepo, _, notifier, svc := newOrderServiceFixture()
	order := seedOrder(orderRepo, models.OrderStatusDelivered)

	_, err := svc.TransitionOrder(nil, order.ID, testCustomerID, models.UserRoleCustomer, models.OrderStatusCompleted)
	require.NoError(t, err)

	// The client retries the completion.
	_, err = svc.TransitionOrder(nil, order.ID, testCustomerID, models.UserRoleCustomer, models.OrderStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, []string{order.ID}, notifier.eligibleOrders)
}

func TestListOrdersByRole(t *testing.T) {
	orderRepo, _, _, svc := newOrderServiceFixture()
	seedOrder(orderRepo, models.OrderStatusRequested)
	seedOrder(orderRepo, models.OrderStatusCompleted)

	asCustomer, err := svc.ListOrders(nil, testCustomerID, models.UserRoleCustomer, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), asCustomer.Total)

	asArtist, err := svc.ListOrders(nil, testArtistID, models.UserRoleArtist, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), asArtist.Total)

	empty, err := svc.ListOrders(nil, otherArtistID, models.UserRoleArtist, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}
