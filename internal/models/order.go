package models

import "time"

// OrderItem represents a single item within an order.
type OrderItem struct {
	ProductID ID      `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at the time of order
}

// Order represents a customer order built from a checked-out cart.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items       []OrderItem `json:"items" gorm:"serializer:json"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status" gorm:"type:varchar(20)"` // e.g., "pending", "processing", "shipped", "delivered", "cancelled"
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
