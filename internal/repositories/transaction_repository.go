package repositories

import (
	"errors"

	"edcall/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository defines the interface for transaction records
type TransactionRepository interface {
	Create(tx *models.Transaction) error
	GetByID(id string) (*models.Transaction, error)
	Update(tx *models.Transaction) error
	List(limit, offset int) ([]models.Transaction, int64, error)
	ListByUser(userID uint, limit, offset int) ([]models.Transaction, int64, error)
	ListByStatus(status models.TransactionStatus, limit, offset int) ([]models.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *transactionRepository) GetByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) Update(tx *models.Transaction) error {
	if err := r.db.Save(tx).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *transactionRepository) List(limit, offset int) ([]models.Transaction, int64, error) {
	var txs []models.Transaction
	var total int64

	if err := r.db.Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	err := r.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&txs).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return txs, total, nil
}

func (r *transactionRepository) ListByUser(userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var txs []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&txs).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return txs, total, nil
}

func (r *transactionRepository) ListByStatus(status models.TransactionStatus, limit, offset int) ([]models.Transaction, int64, error) {
	var txs []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&txs).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return txs, total, nil
}
