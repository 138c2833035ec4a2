package models

// Review is authored once by the customer of a completed order and never
// mutated afterward. The unique index enforces at most one review per
// (customer, order) pair.
type Review struct {
	BaseModel
	ArtistID     string `gorm:"not null;index"`
	CustomerID   string `gorm:"not null;index;uniqueIndex:idx_reviews_customer_order"`
	CustomerName string `gorm:"not null"`
	OrderID      string `gorm:"not null;uniqueIndex:idx_reviews_customer_order"`
	Rating       int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string `gorm:"not null"`

	Artist   User  `gorm:"foreignKey:ArtistID"`
	Customer User  `gorm:"foreignKey:CustomerID"`
	Order    Order `gorm:"foreignKey:OrderID"`
}
