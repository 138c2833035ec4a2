package services

import (
	"math"
	"testing"

	"brushwork_backend/internal/models"
	"brushwork_backend/internal/repositories"
	"brushwork_backend/internal/services/dto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB builds a *gorm.DB over sqlmock so code paths that open
// transactions can run. All row access in these tests goes through the
// in-memory fakes below, so only Begin/Commit/Rollback reach the driver.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 16; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

// --- order repository fake ---

type fakeOrderRepo struct {
	orders      map[string]*models.Order
	updateCalls int

	// nextUpdateErr is returned by the next UpdateStatus call, then cleared.
	// conflictStatus, when set, is applied to the stored order at that moment,
	// simulating the concurrent writer that caused the conflict.
	nextUpdateErr  error
	conflictStatus models.OrderStatus
	findErr        error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (f *fakeOrderRepo) add(order *models.Order) *models.Order {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	f.orders[order.ID] = order
	return order
}

func (f *fakeOrderRepo) Create(db *gorm.DB, order *models.Order) error {
	f.add(order)
	return nil
}

func (f *fakeOrderRepo) FindByID(db *gorm.DB, id string) (*models.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	order, ok := f.orders[id]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) FindByCustomer(db *gorm.DB, customerID string, page, pageSize int) ([]models.Order, int64, error) {
	return f.findByParty(func(o *models.Order) bool { return o.CustomerID == customerID })
}

func (f *fakeOrderRepo) FindByArtist(db *gorm.DB, artistID string, page, pageSize int) ([]models.Order, int64, error) {
	return f.findByParty(func(o *models.Order) bool { return o.ArtistID == artistID })
}

func (f *fakeOrderRepo) findByParty(match func(*models.Order) bool) ([]models.Order, int64, error) {
	var orders []models.Order
	for _, o := range f.orders {
		if match(o) {
			orders = append(orders, *o)
		}
	}
	return orders, int64(len(orders)), nil
}

func (f *fakeOrderRepo) UpdateStatus(db *gorm.DB, orderID string, from, to models.OrderStatus) error {
	f.updateCalls++
	if f.nextUpdateErr != nil {
		err := f.nextUpdateErr
		f.nextUpdateErr = nil
		if f.conflictStatus != "" {
			if order, ok := f.orders[orderID]; ok {
				order.Status = f.conflictStatus
			}
		}
		return err
	}
	order, ok := f.orders[orderID]
	if !ok || order.Status != from {
		return repositories.ErrOrderStatusConflict
	}
	order.Status = to
	return nil
}

// --- user repository fake ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrEmailAlreadyTaken
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

// --- review repository fake ---

type fakeReviewRepo struct {
	reviews []*models.Review

	// aggregates mirrors the artist_profiles rating columns keyed by user id.
	aggregates map[string]*repositories.ArtistAggregate
}

func newFakeReviewRepo(artistIDs ...string) *fakeReviewRepo {
	f := &fakeReviewRepo{aggregates: map[string]*repositories.ArtistAggregate{}}
	for _, id := range artistIDs {
		f.aggregates[id] = &repositories.ArtistAggregate{}
	}
	return f
}

func (f *fakeReviewRepo) Create(db *gorm.DB, review *models.Review) error {
	for _, r := range f.reviews {
		if r.CustomerID == review.CustomerID && r.OrderID == review.OrderID {
			return repositories.ErrReviewAlreadyExists
		}
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (f *fakeReviewRepo) FindByArtist(db *gorm.DB, artistID string, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	for _, r := range f.reviews {
		if r.ArtistID == artistID {
			reviews = append(reviews, *r)
		}
	}
	return reviews, int64(len(reviews)), nil
}

func (f *fakeReviewRepo) ExistsForOrder(db *gorm.DB, customerID, orderID string) (bool, error) {
	for _, r := range f.reviews {
		if r.CustomerID == customerID && r.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) RecomputeAggregate(db *gorm.DB, artistID string) (*repositories.ArtistAggregate, error) {
	var count int64
	var sum int
	for _, r := range f.reviews {
		if r.ArtistID == artistID {
			count++
			sum += r.Rating
		}
	}
	agg := &repositories.ArtistAggregate{ReviewCount: count}
	if count > 0 {
		agg.Rating = math.Round(float64(sum)/float64(count)*10) / 10
	}
	f.aggregates[artistID] = agg
	copied := *agg
	return &copied, nil
}

func (f *fakeReviewRepo) GetAggregate(db *gorm.DB, artistID string) (*repositories.ArtistAggregate, error) {
	agg, ok := f.aggregates[artistID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	copied := *agg
	return &copied, nil
}

// --- notification service fake ---

type fakeNotifier struct {
	statusEvents   []models.OrderStatus
	eligibleOrders []string
	receivedCount  int
}

func (f *fakeNotifier) EmitOrderStatus(db *gorm.DB, order *models.Order, status models.OrderStatus) {
	f.statusEvents = append(f.statusEvents, status)
}

func (f *fakeNotifier) EmitReviewEligible(db *gorm.DB, order *models.Order) {
	f.eligibleOrders = append(f.eligibleOrders, order.ID)
}

func (f *fakeNotifier) EmitReviewReceived(db *gorm.DB, review *models.Review) {
	f.receivedCount++
}

func (f *fakeNotifier) ListNotifications(db *gorm.DB, userID string, limit int) (*dto.NotificationListResponse, error) {
	return &dto.NotificationListResponse{}, nil
}

func (f *fakeNotifier) MarkRead(db *gorm.DB, userID, notificationID string) error {
	return nil
}
