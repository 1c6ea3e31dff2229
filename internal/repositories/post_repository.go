package repositories

import (
	"errors"
	"time"

	"edcall/internal/models"

	"gorm.io/gorm"
)

// PostRepository persists the social feed: posts, comments, likes and
// expiring statuses.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id string) error
	List(limit, offset int) ([]models.Post, int64, error)

	AddComment(comment *models.Comment) error
	ListComments(postID string) ([]models.Comment, error)

	// AddLike records a like and reports whether it was the user's first
	// like on the post.
	AddLike(postID string, userID uint) (bool, error)

	CreateStatus(status *models.Status) error
	ListActiveStatuses(now time.Time) ([]models.Status, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *postRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(post *models.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *postRepository) Delete(id string) error {
	result := r.db.Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepository) List(limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	err := r.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return posts, total, nil
}

func (r *postRepository) AddComment(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *postRepository) ListComments(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at").Find(&comments).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return comments, nil
}

func (r *postRepository) AddLike(postID string, userID uint) (bool, error) {
	var existing models.PostLike
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrDatabaseOperation
	}

	like := models.PostLike{PostID: postID, UserID: userID}
	if err := r.db.Create(&like).Error; err != nil {
		return false, ErrDatabaseOperation
	}
	return true, nil
}

func (r *postRepository) CreateStatus(status *models.Status) error {
	if err := r.db.Create(status).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *postRepository) ListActiveStatuses(now time.Time) ([]models.Status, error) {
	var statuses []models.Status
	err := r.db.Where("expires_at > ?", now).Order("created_at DESC").Find(&statuses).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return statuses, nil
}
