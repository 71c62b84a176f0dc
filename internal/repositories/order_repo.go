package repositories

import (
	"lapak/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never deleted; a cancelled order keeps its record with a cancelled status.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
}
