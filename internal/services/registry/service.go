package registry

import (
	"context"
	"errors"
	"fmt"
	"log"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/validation"

	"github.com/google/uuid"
)

// Service owns transaction approval and the moderation actions that follow
// from it. Approving a subscription payment is the only path that upgrades
// a user's tier.
//
// Unknown transaction and user ids are silently ignored rather than
// reported: the admin console may act on stale state, and a no-op is the
// intended outcome.
type Service interface {
	// InitiatePayment records a pending manual payment awaiting approval.
	InitiatePayment(ctx context.Context, req PaymentRequest) (*models.Transaction, error)

	// Approve completes a pending transaction and applies its side effects.
	Approve(ctx context.Context, txID string) error

	// Reject marks a pending transaction rejected. No tier side effect.
	Reject(ctx context.Context, txID string) error

	// Verify sets a user's verification status.
	Verify(ctx context.Context, userID uint, status models.VerificationStatus) error

	// RefillTrials resets a user's trial call counter.
	RefillTrials(ctx context.Context, userID uint) error

	// SetBlocked flips a user's blocked flag.
	SetBlocked(ctx context.Context, userID uint, blocked bool) error

	// Remove deletes a user entirely.
	Remove(ctx context.Context, userID uint) error
}

type service struct {
	users    UserStore
	txs      TransactionStore
	extender Extender // optional
}

// NewService creates a new transaction/moderation registry.
func NewService(users UserStore, txs TransactionStore, extender Extender) Service {
	if users == nil {
		panic("user store is required")
	}
	if txs == nil {
		panic("transaction store is required")
	}

	return &service{
		users:    users,
		txs:      txs,
		extender: extender,
	}
}

func (s *service) InitiatePayment(ctx context.Context, req PaymentRequest) (*models.Transaction, error) {
	if !validation.ValidTransactionType(req.Type) {
		return nil, ErrInvalidType
	}

	// Priced products have fixed prices; the client-sent amount is not
	// trusted for them.
	amount := req.Amount
	switch req.Type {
	case models.TransactionTypeSubscription:
		amount = PriceMonthly
	case models.TransactionTypeWeeklyPass:
		amount = PriceWeeklyPass
	case models.TransactionTypeMinutesPurchase:
		amount = PricePerMinute * ExtensionMinutes
	case models.TransactionTypeProfileBoost:
		amount = PriceProfileBoost
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.users.GetByID(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	tx := &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Amount:    amount,
		Currency:  models.CurrencyTZS,
		Type:      req.Type,
		Status:    models.TransactionStatusPending,
		Provider:  req.Provider,
		Reference: req.Reference,
	}
	if err := s.txs.Create(tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

func (s *service) Approve(ctx context.Context, txID string) error {
	tx, err := s.txs.GetByID(txID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	// Terminal transactions are immutable.
	if tx.IsTerminal() {
		return nil
	}

	tx.Status = models.TransactionStatusCompleted
	if err := s.txs.Update(tx); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if tx.GrantsPremium() {
		if err := s.upgradeTier(tx.UserID); err != nil {
			return err
		}
	}

	// An approved minutes purchase unlocks the payer's ongoing call.
	if tx.Type == models.TransactionTypeMinutesPurchase && s.extender != nil {
		if s.extender.GrantPaidExtensionForUser(tx.UserID) {
			log.Printf("extended call time for user %d after approving %s", tx.UserID, tx.ID)
		}
	}

	return nil
}

func (s *service) Reject(ctx context.Context, txID string) error {
	tx, err := s.txs.GetByID(txID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	if tx.IsTerminal() {
		return nil
	}

	tx.Status = models.TransactionStatusRejected
	if err := s.txs.Update(tx); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, userID uint, status models.VerificationStatus) error {
	if !validation.ValidVerificationStatus(status) {
		return ErrInvalidStatus
	}

	return s.mutateUser(userID, func(user *models.User) {
		user.VerificationStatus = status
	})
}

func (s *service) RefillTrials(ctx context.Context, userID uint) error {
	return s.mutateUser(userID, func(user *models.User) {
		user.TrialCallsRemaining = DefaultTrialCalls
	})
}

func (s *service) SetBlocked(ctx context.Context, userID uint, blocked bool) error {
	return s.mutateUser(userID, func(user *models.User) {
		user.Blocked = blocked
	})
}

func (s *service) Remove(ctx context.Context, userID uint) error {
	if err := s.users.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *service) upgradeTier(userID uint) error {
	return s.mutateUser(userID, func(user *models.User) {
		user.Tier = models.TierPremium
	})
}

func (s *service) mutateUser(userID uint, mutate func(*models.User)) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	mutate(user)
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
