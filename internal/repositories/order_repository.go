package repositories

import (
	"errors"
	"time"

	"brushwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderStatusConflict: the conditional status update matched no row,
	// meaning the order's status changed since it was read.
	ErrOrderStatusConflict = errors.New("order status changed concurrently")
)

type OrderRepository interface {
	Create(db *gorm.DB, order *models.Order) error
	FindByID(db *gorm.DB, id string) (*models.Order, error)
	FindByCustomer(db *gorm.DB, customerID string, page, pageSize int) ([]models.Order, int64, error)
	FindByArtist(db *gorm.DB, artistID string, page, pageSize int) ([]models.Order, int64, error)

	// UpdateStatus is a compare-and-set: the write only applies while the
	// stored status still equals `from`. Returns ErrOrderStatusConflict when
	// another writer got there first.
	UpdateStatus(db *gorm.DB, orderID string, from, to models.OrderStatus) error
}

type orderRepository struct{}

func NewOrderRepository() OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(db *gorm.DB, order *models.Order) error {
	return db.Create(order).Error
}

func (r *orderRepository) FindByID(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := db.First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByCustomer(db *gorm.DB, customerID string, page, pageSize int) ([]models.Order, int64, error) {
	return r.findByParty(db, "customer_id", customerID, page, pageSize)
}

func (r *orderRepository) FindByArtist(db *gorm.DB, artistID string, page, pageSize int) ([]models.Order, int64, error) {
	return r.findByParty(db, "artist_id", artistID, page, pageSize)
}

func (r *orderRepository) findByParty(db *gorm.DB, column, id string, page, pageSize int) ([]models.Order, int64, error) {
	var total int64
	if err := db.Model(&models.Order{}).Where(column+" = ?", id).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	offset := (page - 1) * pageSize
	err := db.Where(column+" = ?", id).
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) UpdateStatus(db *gorm.DB, orderID string, from, to models.OrderStatus) error {
	result := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderStatusConflict
	}
	return nil
}
