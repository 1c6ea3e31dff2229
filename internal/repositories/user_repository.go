package repositories

import "edcall/internal/models"

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(email string) (*models.User, error)

	// GetByPhone retrieves a user by their phone number
	GetByPhone(phone string) (*models.User, error)

	// Update updates an existing user's profile
	Update(user *models.User) error

	// Delete removes a user
	Delete(id uint) error

	// IncrementTokenVersion invalidates the user's outstanding tokens
	IncrementTokenVersion(userID uint) error

	// List retrieves users with pagination
	List(offset, limit int) ([]*models.User, int64, error)

	// FirstAdmin retrieves the admin account support chats are routed to
	FirstAdmin() (*models.User, error)

	// SetOnline updates the user's online flag
	SetOnline(userID uint, online bool) error
}
