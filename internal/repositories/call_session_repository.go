package repositories

import (
	"errors"

	"edcall/internal/models"

	"gorm.io/gorm"
)

// CallSessionRepository persists the call audit trail
type CallSessionRepository interface {
	Create(session *models.CallSession) error
	Update(session *models.CallSession) error
	GetByID(id string) (*models.CallSession, error)
	ListByUser(userID uint, limit, offset int) ([]models.CallSession, int64, error)
}

type callSessionRepository struct {
	db *gorm.DB
}

// NewCallSessionRepository creates a new instance of CallSessionRepository
func NewCallSessionRepository(db *gorm.DB) CallSessionRepository {
	return &callSessionRepository{db: db}
}

func (r *callSessionRepository) Create(session *models.CallSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *callSessionRepository) Update(session *models.CallSession) error {
	if err := r.db.Save(session).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *callSessionRepository) GetByID(id string) (*models.CallSession, error) {
	var session models.CallSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *callSessionRepository) ListByUser(userID uint, limit, offset int) ([]models.CallSession, int64, error) {
	var sessions []models.CallSession
	var total int64

	query := r.db.Model(&models.CallSession{}).
		Where("caller_id = ? OR receiver_id = ?", userID, userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	err := query.Limit(limit).Offset(offset).Order("started_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return sessions, total, nil
}
