package registry

import "edcall/internal/models"

// UserStore is the subset of the user repository the registry needs. The
// registry is the only component allowed to mutate tier and verification
// status.
type UserStore interface {
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
}

// TransactionStore reads and transitions transaction records.
type TransactionStore interface {
	GetByID(id string) (*models.Transaction, error)
	Create(tx *models.Transaction) error
	Update(tx *models.Transaction) error
}

// Extender is notified when an approved payment should unlock call time
// for the paying user's ongoing session. Implemented by the entitlement
// service.
type Extender interface {
	GrantPaidExtensionForUser(callerID uint) bool
}

// PaymentRequest describes a manual mobile-money payment being initiated.
type PaymentRequest struct {
	UserID    uint
	Amount    int                    `json:"amount"`
	Type      models.TransactionType `json:"type"`
	Provider  string                 `json:"provider"`
	Reference string                 `json:"reference"`
}
