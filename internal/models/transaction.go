package models

import (
	"time"
)

// Transaction types
type TransactionType string

const (
	TransactionTypeSubscription     TransactionType = "SUBSCRIPTION"
	TransactionTypeWeeklyPass       TransactionType = "WEEKLY_PASS"
	TransactionTypeWithdrawal       TransactionType = "WITHDRAWAL"
	TransactionTypePointsConversion TransactionType = "POINTS_CONVERSION"
	TransactionTypeMinutesPurchase  TransactionType = "MINUTES_PURCHASE"
	TransactionTypeProfileBoost     TransactionType = "PROFILE_BOOST"
)

// Transaction statuses
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

// Provider recorded on transactions settled against the internal points
// balance rather than a mobile-money channel.
const ProviderPointsBalance = "POINTS_BALANCE"

const CurrencyTZS = "TZS"

type Transaction struct {
	ID        string            `gorm:"primarykey"`
	UserID    uint              `gorm:"not null;index"`
	UserName  string            // denormalized snapshot at creation time
	Amount    int               `gorm:"not null"`
	Currency  string            `gorm:"default:'TZS'"`
	Type      TransactionType   `gorm:"not null"`
	Status    TransactionStatus `gorm:"not null;default:'PENDING'"`
	Provider  string            `gorm:"not null"`
	Reference string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the transaction has reached a final status.
// Terminal transactions are immutable.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted ||
		t.Status == TransactionStatusRejected ||
		t.Status == TransactionStatusFailed
}

// GrantsPremium reports whether approving the transaction upgrades the
// owning user's tier.
func (t *Transaction) GrantsPremium() bool {
	return t.Type == TransactionTypeSubscription || t.Type == TransactionTypeWeeklyPass
}
