package ledger

import (
	"context"
	"fmt"

	"edcall/internal/models"

	"github.com/google/uuid"
)

// UserStore is the subset of the user repository the ledger needs. The
// ledger only ever mutates the points balance; tier changes belong to the
// registry.
type UserStore interface {
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
}

// TransactionStore appends and reads the transaction history.
type TransactionStore interface {
	Create(tx *models.Transaction) error
	ListByUser(userID uint, limit, offset int) ([]models.Transaction, int64, error)
}

// Service owns the points balance and its transaction history. Every
// balance change appends exactly one completed transaction record.
type Service interface {
	// Balance returns the user's current points balance.
	Balance(ctx context.Context, userID uint) (int, error)

	// Debit removes points from the balance. It fails without mutation when
	// the balance cannot cover the amount.
	Debit(ctx context.Context, userID uint, amount int, purpose models.TransactionType, reference string) error

	// Award credits the fixed rate for an earning event and returns the
	// amount credited.
	Award(ctx context.Context, userID uint, event EarnEvent) (int, error)

	// History lists the user's transactions, newest first.
	History(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error)
}

type service struct {
	users   UserStore
	txs     TransactionStore
	metrics MetricsCollector
}

// NewService creates a new points ledger service.
func NewService(users UserStore, txs TransactionStore, metrics MetricsCollector) Service {
	if users == nil {
		panic("user store is required")
	}
	if txs == nil {
		panic("transaction store is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		users:   users,
		txs:     txs,
		metrics: metrics,
	}
}

func (s *service) Balance(ctx context.Context, userID uint) (int, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	return user.Points, nil
}

func (s *service) Debit(ctx context.Context, userID uint, amount int, purpose models.TransactionType, reference string) error {
	if amount <= 0 {
		s.metrics.RecordError("debit", "invalid_amount")
		return ErrInvalidAmount
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	// The balance never goes negative: the debit fails instead.
	if user.Points < amount {
		s.metrics.RecordError("debit", "insufficient_points")
		return ErrInsufficientPoints
	}

	oldBalance := user.Points
	user.Points -= amount
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	if err := s.txs.Create(s.record(user, amount, purpose, reference)); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	s.metrics.RecordBalanceChange(user.ID, oldBalance, user.Points)
	s.metrics.RecordTransaction(string(purpose), amount)
	return nil
}

func (s *service) Award(ctx context.Context, userID uint, event EarnEvent) (int, error) {
	rate, ok := Rate(event)
	if !ok {
		s.metrics.RecordError("award", "unknown_event")
		return 0, ErrUnknownEarnEvent
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}

	oldBalance := user.Points
	user.Points += rate
	if err := s.users.Update(user); err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := s.txs.Create(s.record(user, rate, models.TransactionTypePointsConversion, string(event))); err != nil {
		return 0, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.metrics.RecordBalanceChange(user.ID, oldBalance, user.Points)
	s.metrics.RecordTransaction(string(models.TransactionTypePointsConversion), rate)
	return rate, nil
}

func (s *service) History(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	return s.txs.ListByUser(userID, limit, offset)
}

func (s *service) record(user *models.User, amount int, purpose models.TransactionType, reference string) *models.Transaction {
	return &models.Transaction{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Amount:    amount,
		Currency:  models.CurrencyTZS,
		Type:      purpose,
		Status:    models.TransactionStatusCompleted,
		Provider:  models.ProviderPointsBalance,
		Reference: reference,
	}
}
