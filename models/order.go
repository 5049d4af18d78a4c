package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is immutable after creation except for Status. Items are point-in-time
// snapshots of the products, so later catalog edits never alter history.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"orderNumber"`
	FirstName   string      `gorm:"not null" json:"firstName"`
	LastName    string      `gorm:"not null" json:"lastName"`
	Phone       string      `gorm:"not null" json:"phone"`
	Address     string      `gorm:"not null" json:"address"`
	Email       *string     `json:"email"`
	BrandSlug   *string     `json:"brandSlug"`
	Status      string      `gorm:"index;not null;default:pending" json:"status"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem holds denormalized product fields copied at checkout time, not
// live references.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"index;not null" json:"orderId"`
	ProductID   uint   `json:"productId"`
	ProductCode string `json:"productCode"`
	Title       string `gorm:"not null" json:"title"`
	Price       string `json:"price"`
	SizeRange   string `json:"sizeRange"`
	ImageURL    string `json:"imageUrl"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	VariantID   *uint  `json:"variantId"`
	Color       string `json:"color"`
}
