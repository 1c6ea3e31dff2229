package handlers

import (
	"errors"
	"log"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/auth"
	"edcall/internal/services/feed"
	"edcall/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type FeedHandler struct {
	feedService feed.Service
	authService auth.Service
}

func NewFeedHandler(feedService feed.Service, authService auth.Service) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		authService: authService,
	}
}

// GetFeed returns the posts visible to the viewer. The filter query
// parameter selects foryou or hot; the following query parameter takes a
// comma-separated id list feeding the FOLLOWERS visibility rule.
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	filter := feed.FeedFilter(c.Query("filter", string(feed.FeedForYou)))
	if !feed.ValidFeedFilter(filter) {
		return utils.BadRequest(c, "unknown filter: "+string(filter))
	}

	posts, err := h.feedService.Feed(c.Context(), viewer, filter, parseIDSet(c.Query("following")))
	if err != nil {
		log.Printf("Failed to load feed for user %d: %v", viewer.ID, err)
		return utils.InternalError(c, "failed to load feed")
	}

	return utils.Success(c, fiber.Map{
		"filter": filter,
		"posts":  posts,
	})
}

// CreatePost publishes a new post.
func (h *FeedHandler) CreatePost(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	var req struct {
		Content    string                `json:"content"`
		Image      string                `json:"image"`
		Visibility models.PostVisibility `json:"visibility"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	post, err := h.feedService.CreatePost(c.Context(), viewer, req.Content, req.Image, req.Visibility)
	if err != nil {
		if errors.Is(err, feed.ErrEmptyContent) || errors.Is(err, feed.ErrInvalidVisibility) {
			return utils.BadRequest(c, err.Error())
		}
		log.Printf("Failed to create post for user %d: %v", viewer.ID, err)
		return utils.InternalError(c, "failed to create post")
	}

	return utils.Created(c, post)
}

// LikePost records a like. Liking a post twice is a no-op.
func (h *FeedHandler) LikePost(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	postID := c.Params("id")

	post, err := h.feedService.Like(c.Context(), postID, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return utils.NotFound(c, "post not found")
		}
		log.Printf("Failed to like post %s: %v", postID, err)
		return utils.InternalError(c, "failed to like post")
	}

	return utils.Success(c, post)
}

// AddComment appends a comment to a post.
func (h *FeedHandler) AddComment(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}
	postID := c.Params("id")

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	comment, err := h.feedService.AddComment(c.Context(), postID, viewer, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPostNotFound):
			return utils.NotFound(c, "post not found")
		case errors.Is(err, feed.ErrEmptyContent):
			return utils.BadRequest(c, err.Error())
		default:
			log.Printf("Failed to comment on post %s: %v", postID, err)
			return utils.InternalError(c, "failed to add comment")
		}
	}

	return utils.Created(c, comment)
}

// GetComments lists a post's comments, oldest first.
func (h *FeedHandler) GetComments(c *fiber.Ctx) error {
	postID := c.Params("id")

	comments, err := h.feedService.Comments(c.Context(), postID)
	if err != nil {
		log.Printf("Failed to list comments for post %s: %v", postID, err)
		return utils.InternalError(c, "failed to list comments")
	}

	return utils.Success(c, comments)
}

// DeletePost removes a post. Only the author or an admin may delete.
func (h *FeedHandler) DeletePost(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}
	postID := c.Params("id")

	if err := h.feedService.DeletePost(c.Context(), postID, viewer); err != nil {
		if errors.Is(err, feed.ErrNotAllowed) {
			return utils.Forbidden(c, "only the author can delete this post")
		}
		log.Printf("Failed to delete post %s: %v", postID, err)
		return utils.InternalError(c, "failed to delete post")
	}

	return utils.Success(c, fiber.Map{"message": "post deleted"})
}

// FeaturePost pins or unpins a post. Admin console action.
func (h *FeedHandler) FeaturePost(c *fiber.Ctx) error {
	postID := c.Params("id")

	var req struct {
		Featured bool `json:"featured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.feedService.SetFeatured(c.Context(), postID, req.Featured); err != nil {
		log.Printf("Failed to feature post %s: %v", postID, err)
		return utils.InternalError(c, "failed to update post")
	}

	return utils.Success(c, fiber.Map{"message": "post updated"})
}

// MarkPostHot flags a post for the hot view. Admin console action.
func (h *FeedHandler) MarkPostHot(c *fiber.Ctx) error {
	postID := c.Params("id")

	var req struct {
		Hot bool `json:"hot"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.feedService.SetHot(c.Context(), postID, req.Hot); err != nil {
		log.Printf("Failed to flag post %s: %v", postID, err)
		return utils.InternalError(c, "failed to update post")
	}

	return utils.Success(c, fiber.Map{"message": "post updated"})
}

// AddStatus publishes an expiring status image.
func (h *FeedHandler) AddStatus(c *fiber.Ctx) error {
	viewer, err := h.viewer(c)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	var req struct {
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	status, err := h.feedService.AddStatus(c.Context(), viewer, req.Image)
	if err != nil {
		if errors.Is(err, feed.ErrEmptyContent) {
			return utils.BadRequest(c, "status image is required")
		}
		log.Printf("Failed to create status for user %d: %v", viewer.ID, err)
		return utils.InternalError(c, "failed to create status")
	}

	return utils.Created(c, status)
}

// GetStatuses lists the statuses that have not yet expired.
func (h *FeedHandler) GetStatuses(c *fiber.Ctx) error {
	statuses, err := h.feedService.Statuses(c.Context())
	if err != nil {
		log.Printf("Failed to list statuses: %v", err)
		return utils.InternalError(c, "failed to list statuses")
	}

	return utils.Success(c, statuses)
}

func (h *FeedHandler) viewer(c *fiber.Ctx) (*models.User, error) {
	claims := c.Locals("claims").(*models.UserClaims)
	return h.authService.GetUserByID(claims.UserID)
}
