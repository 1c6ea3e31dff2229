package feed

import (
	"context"
	"time"

	"edcall/internal/models"
	"edcall/internal/services/ledger"
)

// FeedFilter selects which feed view to return.
type FeedFilter string

const (
	FeedForYou FeedFilter = "foryou"
	FeedHot    FeedFilter = "hot"
)

// ValidFeedFilter reports whether f is one of the known feed views.
func ValidFeedFilter(f FeedFilter) bool {
	return f == FeedForYou || f == FeedHot
}

// PostStore is the subset of the post repository the feed needs.
type PostStore interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id string) error
	List(limit, offset int) ([]models.Post, int64, error)
	AddComment(comment *models.Comment) error
	ListComments(postID string) ([]models.Comment, error)
	AddLike(postID string, userID uint) (bool, error)
	CreateStatus(status *models.Status) error
	ListActiveStatuses(now time.Time) ([]models.Status, error)
}

// Ledger awards the content-creation points for new posts.
type Ledger interface {
	Award(ctx context.Context, userID uint, event ledger.EarnEvent) (int, error)
}
