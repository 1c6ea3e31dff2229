package ledger

import (
	"context"
	"errors"
	"testing"

	"edcall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	users map[uint]*models.User
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserStore) Update(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeTransactionStore struct {
	created []*models.Transaction
}

func (f *fakeTransactionStore) Create(tx *models.Transaction) error {
	f.created = append(f.created, tx)
	return nil
}

func (f *fakeTransactionStore) ListByUser(userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var out []models.Transaction
	for _, tx := range f.created {
		if tx.UserID == userID {
			out = append(out, *tx)
		}
	}
	return out, int64(len(out)), nil
}

func newFixture(points int) (*fakeUserStore, *fakeTransactionStore, Service) {
	users := &fakeUserStore{users: map[uint]*models.User{
		1: {Model: gorm.Model{ID: 1}, Name: "Neema K.", Points: points},
	}}
	txs := &fakeTransactionStore{}
	return users, txs, NewService(users, txs, nil)
}

func TestService_Debit(t *testing.T) {
	tests := []struct {
		name       string
		points     int
		amount     int
		wantErr    error
		wantPoints int
		wantTxs    int
	}{
		{
			name:       "successful debit",
			points:     6000,
			amount:     5000,
			wantPoints: 1000,
			wantTxs:    1,
		},
		{
			name:       "exact balance drains to zero",
			points:     5000,
			amount:     5000,
			wantPoints: 0,
			wantTxs:    1,
		},
		{
			name:       "insufficient balance leaves points untouched",
			points:     4999,
			amount:     5000,
			wantErr:    ErrInsufficientPoints,
			wantPoints: 4999,
			wantTxs:    0,
		},
		{
			name:       "zero amount rejected",
			points:     1000,
			amount:     0,
			wantErr:    ErrInvalidAmount,
			wantPoints: 1000,
			wantTxs:    0,
		},
		{
			name:       "negative amount rejected",
			points:     1000,
			amount:     -50,
			wantErr:    ErrInvalidAmount,
			wantPoints: 1000,
			wantTxs:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, txs, svc := newFixture(tt.points)

			err := svc.Debit(context.Background(), 1, tt.amount,
				models.TransactionTypeMinutesPurchase, "IN_CALL_REDEEM")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantPoints, users.users[1].Points)
			assert.Len(t, txs.created, tt.wantTxs)
		})
	}
}

func TestService_Debit_RecordsCompletedTransaction(t *testing.T) {
	_, txs, svc := newFixture(6000)

	err := svc.Debit(context.Background(), 1, 5000,
		models.TransactionTypeMinutesPurchase, "IN_CALL_REDEEM")

	require.NoError(t, err)
	require.Len(t, txs.created, 1)
	tx := txs.created[0]
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, uint(1), tx.UserID)
	assert.Equal(t, "Neema K.", tx.UserName)
	assert.Equal(t, 5000, tx.Amount)
	assert.Equal(t, models.TransactionTypeMinutesPurchase, tx.Type)
	assert.Equal(t, models.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, models.ProviderPointsBalance, tx.Provider)
	assert.Equal(t, "IN_CALL_REDEEM", tx.Reference)
}

func TestService_Award(t *testing.T) {
	users, txs, svc := newFixture(100)

	credited, err := svc.Award(context.Background(), 1, EarnCompletedCall)

	require.NoError(t, err)
	assert.Equal(t, 200, credited)
	assert.Equal(t, 300, users.users[1].Points)
	require.Len(t, txs.created, 1)
	assert.Equal(t, models.TransactionTypePointsConversion, txs.created[0].Type)
	assert.Equal(t, models.TransactionStatusCompleted, txs.created[0].Status)
	assert.Equal(t, string(EarnCompletedCall), txs.created[0].Reference)
}

func TestService_Award_UnknownEvent(t *testing.T) {
	users, txs, svc := newFixture(100)

	_, err := svc.Award(context.Background(), 1, EarnEvent("HACKED_EVENT"))

	assert.ErrorIs(t, err, ErrUnknownEarnEvent)
	assert.Equal(t, 100, users.users[1].Points)
	assert.Empty(t, txs.created)
}

func TestService_Balance(t *testing.T) {
	_, _, svc := newFixture(1200)

	balance, err := svc.Balance(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1200, balance)
}
