package models

import (
	"time"
)

// Post visibility tiers
type PostVisibility string

const (
	PostVisibilityPublic    PostVisibility = "PUBLIC"
	PostVisibilityFollowers PostVisibility = "FOLLOWERS"
	PostVisibilityAdminOnly PostVisibility = "ADMIN_ONLY"
)

// Post is a social feed entry. Author name and photo are denormalized
// snapshots taken at creation time, matching the transaction records.
type Post struct {
	ID          string `gorm:"primarykey"`
	AuthorID    uint   `gorm:"not null;index"`
	AuthorName  string
	AuthorPhoto string
	Content     string `gorm:"not null"`
	Image       string
	Likes       int            `gorm:"default:0"`
	Comments    int            `gorm:"default:0"`
	IsHot       bool           `gorm:"default:false"`
	Featured    bool           `gorm:"default:false"`
	Visibility  PostVisibility `gorm:"not null;default:'PUBLIC'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment belongs to a post.
type Comment struct {
	ID          string `gorm:"primarykey"`
	PostID      string `gorm:"not null;index"`
	AuthorID    uint   `gorm:"not null"`
	AuthorName  string
	AuthorPhoto string
	Body        string `gorm:"not null"`
	CreatedAt   time.Time
}

// PostLike records one like per user per post; the composite key makes a
// second like from the same user a no-op.
type PostLike struct {
	PostID    string `gorm:"primaryKey"`
	UserID    uint   `gorm:"primaryKey"`
	CreatedAt time.Time
}

// Status is an expiring story-style image post.
type Status struct {
	ID          string `gorm:"primarykey"`
	AuthorID    uint   `gorm:"not null;index"`
	AuthorName  string
	AuthorPhoto string
	Image       string `gorm:"not null"`
	CreatedAt   time.Time
	ExpiresAt   time.Time `gorm:"index"`
}

// Expired reports whether the status has passed its expiry time.
func (s *Status) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
