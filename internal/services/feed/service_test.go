package feed

import (
	"context"
	"testing"
	"time"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePostStore struct {
	posts    []models.Post
	comments map[string][]models.Comment
	likes    map[string]map[uint]bool
	statuses []models.Status
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		comments: make(map[string][]models.Comment),
		likes:    make(map[string]map[uint]bool),
	}
}

func (f *fakePostStore) Create(post *models.Post) error {
	// Newest first, matching the repository's list order.
	f.posts = append([]models.Post{*post}, f.posts...)
	return nil
}

func (f *fakePostStore) GetByID(id string) (*models.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

func (f *fakePostStore) Update(post *models.Post) error {
	for i, p := range f.posts {
		if p.ID == post.ID {
			f.posts[i] = *post
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (f *fakePostStore) Delete(id string) error {
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (f *fakePostStore) List(limit, offset int) ([]models.Post, int64, error) {
	return f.posts, int64(len(f.posts)), nil
}

func (f *fakePostStore) AddComment(comment *models.Comment) error {
	f.comments[comment.PostID] = append(f.comments[comment.PostID], *comment)
	return nil
}

func (f *fakePostStore) ListComments(postID string) ([]models.Comment, error) {
	return f.comments[postID], nil
}

func (f *fakePostStore) AddLike(postID string, userID uint) (bool, error) {
	if f.likes[postID] == nil {
		f.likes[postID] = make(map[uint]bool)
	}
	if f.likes[postID][userID] {
		return false, nil
	}
	f.likes[postID][userID] = true
	return true, nil
}

func (f *fakePostStore) CreateStatus(status *models.Status) error {
	f.statuses = append(f.statuses, *status)
	return nil
}

func (f *fakePostStore) ListActiveStatuses(now time.Time) ([]models.Status, error) {
	var active []models.Status
	for _, s := range f.statuses {
		if !s.Expired(now) {
			active = append(active, s)
		}
	}
	return active, nil
}

type fakeLedger struct {
	awards []ledger.EarnEvent
}

func (f *fakeLedger) Award(ctx context.Context, userID uint, event ledger.EarnEvent) (int, error) {
	f.awards = append(f.awards, event)
	return 300, nil
}

func member(id uint) *models.User {
	return &models.User{Model: gorm.Model{ID: id}, Name: "Member", Role: models.RoleUser}
}

func admin() *models.User {
	return &models.User{Model: gorm.Model{ID: 99}, Name: "Admin", Role: models.RoleAdmin}
}

func TestService_CreatePost(t *testing.T) {
	store := newFakePostStore()
	ledg := &fakeLedger{}
	svc := NewService(store, ledg)

	post, err := svc.CreatePost(context.Background(), member(1), "hello out there", "", "")

	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, models.PostVisibilityPublic, post.Visibility, "visibility defaults to public")
	assert.Equal(t, []ledger.EarnEvent{ledger.EarnContentCreation}, ledg.awards)
}

func TestService_CreatePost_Validation(t *testing.T) {
	svc := NewService(newFakePostStore(), &fakeLedger{})

	_, err := svc.CreatePost(context.Background(), member(1), "   ", "", "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = svc.CreatePost(context.Background(), member(1), "hi", "", models.PostVisibility("FRIENDS"))
	assert.ErrorIs(t, err, ErrInvalidVisibility)
}

func TestService_Feed_Visibility(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeLedger{})
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, member(1), "public post", "", models.PostVisibilityPublic)
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, member(2), "followers only", "", models.PostVisibilityFollowers)
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, member(3), "mod note", "", models.PostVisibilityAdminOnly)
	require.NoError(t, err)

	// A stranger sees only the public post.
	posts, err := svc.Feed(ctx, member(4), FeedForYou, nil)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "public post", posts[0].Content)

	// A follower of user 2 also sees the followers-only post.
	posts, err = svc.Feed(ctx, member(4), FeedForYou, map[uint]bool{2: true})
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	// Authors always see their own posts.
	posts, err = svc.Feed(ctx, member(3), FeedForYou, nil)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	// Admins see everything.
	posts, err = svc.Feed(ctx, admin(), FeedForYou, nil)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestService_Feed_HotFilter(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeLedger{})
	ctx := context.Background()

	cold, err := svc.CreatePost(ctx, member(1), "cold", "", "")
	require.NoError(t, err)
	flagged, err := svc.CreatePost(ctx, member(1), "flagged", "", "")
	require.NoError(t, err)
	popular, err := svc.CreatePost(ctx, member(1), "popular", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.SetHot(ctx, flagged.ID, true))
	popular.Likes = HotLikesThreshold + 1
	require.NoError(t, store.Update(popular))

	posts, err := svc.Feed(ctx, member(1), FeedHot, nil)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.NotEqual(t, cold.ID, p.ID)
	}
}

func TestService_Feed_FeaturedFirst(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeLedger{})
	ctx := context.Background()

	older, err := svc.CreatePost(ctx, member(1), "older", "", "")
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, member(1), "newer", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.SetFeatured(ctx, older.ID, true))

	posts, err := svc.Feed(ctx, member(1), FeedForYou, nil)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "older", posts[0].Content, "featured posts float to the top")
}

func TestService_Like(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeLedger{})
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, member(1), "like me", "", "")
	require.NoError(t, err)

	liked, err := svc.Like(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	// A second like from the same user does not double count.
	liked, err = svc.Like(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	liked, err = svc.Like(ctx, post.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)

	_, err = svc.Like(ctx, "missing", 2)
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)
}

func TestService_AddComment(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeLedger{})
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, member(1), "discuss", "", "")
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, post.ID, member(2), "first!")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)

	updated, err := store.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Comments)

	comments, err := svc.Comments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	_, err = svc.AddComment(ctx, post.ID, member(2), "  ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestService_DeletePost(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeLedger{})
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, member(1), "mine", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(ctx, post.ID, member(2)), ErrNotAllowed)

	require.NoError(t, svc.DeletePost(ctx, post.ID, member(1)))
	_, err = store.GetByID(post.ID)
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)

	// Deleting a post that is already gone is a silent no-op.
	assert.NoError(t, svc.DeletePost(ctx, post.ID, member(1)))
}

func TestService_DeletePost_AdminOverride(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeLedger{})
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, member(1), "reported", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, post.ID, admin()))
	_, err = store.GetByID(post.ID)
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)
}

func TestService_Moderation_UnknownPost(t *testing.T) {
	svc := NewService(newFakePostStore(), &fakeLedger{})

	assert.NoError(t, svc.SetFeatured(context.Background(), "missing", true))
	assert.NoError(t, svc.SetHot(context.Background(), "missing", true))
}

func TestService_Statuses(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeLedger{})
	ctx := context.Background()

	_, err := svc.AddStatus(ctx, member(1), " ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	status, err := svc.AddStatus(ctx, member(1), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, StatusTTL, status.ExpiresAt.Sub(status.CreatedAt))

	active, err := svc.Statuses(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	// Age the status past its TTL and it drops out of the active list.
	store.statuses[0].ExpiresAt = time.Now().Add(-time.Minute)
	active, err = svc.Statuses(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
