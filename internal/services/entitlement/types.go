package entitlement

import (
	"context"
	"time"

	"edcall/internal/models"
)

// Session states
type State string

const (
	StateActive  State = "ACTIVE"
	StateExpired State = "EXPIRED"
)

// Session is a snapshot of the live entitlement state of a call. The
// service owns the mutable state; callers always receive copies.
type Session struct {
	ID         string          `json:"id"`
	CallerID   uint            `json:"caller_id"`
	ReceiverID uint            `json:"receiver_id"`
	Kind       models.CallKind `json:"kind"`
	Elapsed    int             `json:"elapsed"`
	Ceiling    int             `json:"ceiling"`
	State      State           `json:"state"`
	StartedAt  time.Time       `json:"started_at"`
}

// Remaining returns the seconds left before expiry.
func (s Session) Remaining() int {
	if s.Elapsed >= s.Ceiling {
		return 0
	}
	return s.Ceiling - s.Elapsed
}

// UserStore is the subset of the user repository the engine needs.
type UserStore interface {
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
}

// SessionStore persists the call session audit trail.
type SessionStore interface {
	Create(session *models.CallSession) error
	Update(session *models.CallSession) error
}

// Ledger debits points for in-call minute redemption.
type Ledger interface {
	Debit(ctx context.Context, userID uint, amount int, purpose models.TransactionType, reference string) error
}
