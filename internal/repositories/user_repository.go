package repositories

import "lapak/internal/models"

// UserRepository defines the interface for account data access. GetByID is
// the lookup behind the authenticated profile, so its argument is the same
// value the record store uses as a profile namespace.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
