package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/ledger"

	"github.com/google/uuid"
)

// Service owns the social feed: posts with likes and comments, expiring
// statuses, and the visibility and ranking rules of the feed views.
type Service interface {
	// CreatePost publishes a post and awards the content-creation points.
	CreatePost(ctx context.Context, author *models.User, content, image string, visibility models.PostVisibility) (*models.Post, error)

	// Feed returns the posts visible to the viewer for the given view.
	// The followingIDs set feeds the FOLLOWERS visibility rule.
	Feed(ctx context.Context, viewer *models.User, filter FeedFilter, followingIDs map[uint]bool) ([]models.Post, error)

	// Like records one like per user per post and returns the updated post.
	Like(ctx context.Context, postID string, userID uint) (*models.Post, error)

	// AddComment appends a comment and bumps the post's comment counter.
	AddComment(ctx context.Context, postID string, author *models.User, body string) (*models.Comment, error)

	// Comments lists a post's comments, oldest first.
	Comments(ctx context.Context, postID string) ([]models.Comment, error)

	// DeletePost removes a post. Only the author or an admin may delete.
	DeletePost(ctx context.Context, postID string, actor *models.User) error

	// SetFeatured pins or unpins a post at the top of the feed.
	SetFeatured(ctx context.Context, postID string, featured bool) error

	// SetHot flags a post for the hot view regardless of its like count.
	SetHot(ctx context.Context, postID string, hot bool) error

	// AddStatus publishes an expiring status image.
	AddStatus(ctx context.Context, author *models.User, image string) (*models.Status, error)

	// Statuses lists the statuses that have not yet expired.
	Statuses(ctx context.Context) ([]models.Status, error)
}

type service struct {
	posts  PostStore
	ledger Ledger
}

// NewService creates a new feed service.
func NewService(posts PostStore, ledg Ledger) Service {
	if posts == nil {
		panic("post store is required")
	}
	if ledg == nil {
		panic("ledger is required")
	}

	return &service{
		posts:  posts,
		ledger: ledg,
	}
}

func (s *service) CreatePost(ctx context.Context, author *models.User, content, image string, visibility models.PostVisibility) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if visibility == "" {
		visibility = models.PostVisibilityPublic
	}
	if !validVisibility(visibility) {
		return nil, ErrInvalidVisibility
	}

	post := &models.Post{
		ID:          uuid.NewString(),
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorPhoto: author.Photo,
		Content:     content,
		Image:       image,
		Visibility:  visibility,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	// Publishing earns points; a failed award must not unpublish the post.
	if _, err := s.ledger.Award(ctx, author.ID, ledger.EarnContentCreation); err != nil {
		log.Printf("Failed to award content points to user %d: %v", author.ID, err)
	}

	return post, nil
}

func (s *service) Feed(ctx context.Context, viewer *models.User, filter FeedFilter, followingIDs map[uint]bool) ([]models.Post, error) {
	posts, _, err := s.posts.List(FeedPoolSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	visible := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !visibleTo(&p, viewer, followingIDs) {
			continue
		}
		if filter == FeedHot && !isHot(&p) {
			continue
		}
		visible = append(visible, p)
	}

	// Featured posts float to the top; everything else keeps its
	// newest-first order.
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Featured && !visible[j].Featured
	})
	return visible, nil
}

func (s *service) Like(ctx context.Context, postID string, userID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}

	first, err := s.posts.AddLike(postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to record like: %w", err)
	}
	if !first {
		return post, nil
	}

	post.Likes++
	if err := s.posts.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *service) AddComment(ctx context.Context, postID string, author *models.User, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyContent
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:          uuid.NewString(),
		PostID:      post.ID,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorPhoto: author.Photo,
		Body:        body,
	}
	if err := s.posts.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	post.Comments++
	if err := s.posts.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return comment, nil
}

func (s *service) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.posts.ListComments(postID)
}

func (s *service) DeletePost(ctx context.Context, postID string, actor *models.User) error {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil
		}
		return err
	}

	if post.AuthorID != actor.ID && actor.Role != models.RoleAdmin {
		return ErrNotAllowed
	}
	return s.posts.Delete(postID)
}

func (s *service) SetFeatured(ctx context.Context, postID string, featured bool) error {
	return s.mutatePost(postID, func(post *models.Post) {
		post.Featured = featured
	})
}

func (s *service) SetHot(ctx context.Context, postID string, hot bool) error {
	return s.mutatePost(postID, func(post *models.Post) {
		post.IsHot = hot
	})
}

func (s *service) AddStatus(ctx context.Context, author *models.User, image string) (*models.Status, error) {
	if strings.TrimSpace(image) == "" {
		return nil, ErrEmptyContent
	}

	now := time.Now()
	status := &models.Status{
		ID:          uuid.NewString(),
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorPhoto: author.Photo,
		Image:       image,
		CreatedAt:   now,
		ExpiresAt:   now.Add(StatusTTL),
	}
	if err := s.posts.CreateStatus(status); err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}
	return status, nil
}

func (s *service) Statuses(ctx context.Context) ([]models.Status, error) {
	return s.posts.ListActiveStatuses(time.Now())
}

// mutatePost applies the moderation mutation, silently ignoring unknown
// ids the way the registry does: the admin console may act on stale state.
func (s *service) mutatePost(postID string, mutate func(*models.Post)) error {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil
		}
		return err
	}

	mutate(post)
	if err := s.posts.Update(post); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// visibleTo applies the visibility tiers. Authors always see their own
// posts; admins see everything.
func visibleTo(post *models.Post, viewer *models.User, followingIDs map[uint]bool) bool {
	if viewer.Role == models.RoleAdmin || post.AuthorID == viewer.ID {
		return true
	}
	switch post.Visibility {
	case models.PostVisibilityPublic:
		return true
	case models.PostVisibilityFollowers:
		return followingIDs[post.AuthorID]
	default: // ADMIN_ONLY
		return false
	}
}

func isHot(post *models.Post) bool {
	return post.IsHot || post.Likes > HotLikesThreshold
}

func validVisibility(v models.PostVisibility) bool {
	switch v {
	case models.PostVisibilityPublic, models.PostVisibilityFollowers, models.PostVisibilityAdminOnly:
		return true
	}
	return false
}
